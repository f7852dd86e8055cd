package wbxml

import (
	"bytes"
	"errors"
	"io"
	"strconv"
)

// maxDepth bounds element nesting when decoding or skipping unknown
// subtrees so hostile input cannot exhaust the stack.
const maxDepth = 64

// Document pairs a root element tag with the schema of its content.
type Document[T any] struct {
	root   Tag
	schema *Schema[T]
}

// NewDocument returns a Document whose root element is root.
func NewDocument[T any](root Tag, schema *Schema[T]) Document[T] {
	return Document[T]{root: root, schema: schema}
}

// Marshal encodes v as a complete WBXML document. A nil v produces a
// document whose root element has no content.
func (d Document[T]) Marshal(v *T) []byte {
	e := newEncoder()
	e.writeHeader()
	if v == nil {
		e.empty(d.root)
		return e.bytes()
	}
	e.open(d.root)
	d.schema.encode(e, v)
	e.close()
	return e.bytes()
}

// Unmarshal decodes data into a new T. Unknown elements are skipped at
// any depth. The first occurrence of the root element wins; anything
// after it at top level is skipped.
func (d Document[T]) Unmarshal(data []byte) (*T, error) {
	dec := newDecoder(data)
	if err := dec.readHeader(); err != nil {
		return nil, err
	}

	var out *T
	for {
		b, err := dec.r.ReadByte()
		if errors.Is(err, io.EOF) {
			if out == nil {
				return nil, formatErr("missing root element %s (%s)", d.root, d.schema.name)
			}
			return out, nil
		}

		switch b {
		case tokenSwitchPage:
			if err := dec.switchPage(); err != nil {
				return nil, err
			}
			continue
		case tokenEnd, tokenStrI, tokenOpaque, tokenEntity, tokenLiteral:
			return nil, formatErr("unexpected token 0x%02X at top level", b)
		}

		tag, content, err := dec.tag(b)
		if err != nil {
			return nil, err
		}
		if tag == d.root && out == nil {
			v := new(T)
			if content {
				if err := d.schema.decode(dec, v); err != nil {
					return nil, err
				}
			}
			out = v
			continue
		}
		if content {
			if err := dec.skip(); err != nil {
				return nil, err
			}
		}
	}
}

type encoder struct {
	buf  bytes.Buffer
	page int
}

func newEncoder() *encoder {
	return &encoder{page: -1}
}

func (e *encoder) bytes() []byte { return e.buf.Bytes() }

func (e *encoder) writeHeader() {
	e.buf.Write([]byte{headerVersion, headerPublicID, headerCharset, headerStrTable})
}

func (e *encoder) setPage(t Tag) {
	if int(t.Page()) == e.page {
		return
	}
	e.buf.WriteByte(tokenSwitchPage)
	e.buf.WriteByte(t.Page())
	e.page = int(t.Page())
}

func (e *encoder) empty(t Tag) {
	e.setPage(t)
	e.buf.WriteByte(t.ID())
}

func (e *encoder) open(t Tag) {
	e.setPage(t)
	e.buf.WriteByte(t.ID() | flagContent)
}

func (e *encoder) close() {
	e.buf.WriteByte(tokenEnd)
}

func (e *encoder) text(t Tag, s string) {
	e.open(t)
	e.buf.WriteByte(tokenStrI)
	e.buf.WriteString(s)
	e.buf.WriteByte(0)
	e.close()
}

func (e *encoder) int(t Tag, n int) {
	e.text(t, strconv.Itoa(n))
}

type decoder struct {
	r     *bytes.Reader
	page  byte
	depth int
}

func newDecoder(data []byte) *decoder {
	return &decoder{r: bytes.NewReader(data)}
}

func (d *decoder) readByte() (byte, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		return 0, formatErr("unexpected end of input")
	}
	return b, nil
}

// readUint reads a WBXML mb_u_int32.
func (d *decoder) readUint() (uint32, error) {
	var v uint32
	for i := 0; i < 5; i++ {
		b, err := d.readByte()
		if err != nil {
			return 0, err
		}
		v = v<<7 | uint32(b&0x7F)
		if b&0x80 == 0 {
			return v, nil
		}
	}
	return 0, formatErr("multi-byte integer too long")
}

func (d *decoder) readHeader() error {
	if _, err := d.readByte(); err != nil {
		return err
	}
	publicID, err := d.readUint()
	if err != nil {
		return err
	}
	if publicID == 0 {
		// Public id given as a string table index.
		if _, err := d.readUint(); err != nil {
			return err
		}
	}
	if _, err := d.readUint(); err != nil {
		return err
	}
	n, err := d.readUint()
	if err != nil {
		return err
	}
	if int64(n) > int64(d.r.Len()) {
		return formatErr("string table length %d exceeds input", n)
	}
	_, err = d.r.Seek(int64(n), io.SeekCurrent)
	return err
}

func (d *decoder) switchPage() error {
	p, err := d.readByte()
	if err != nil {
		return err
	}
	d.page = p
	return nil
}

// tag interprets b as a tag token on the current page.
func (d *decoder) tag(b byte) (Tag, bool, error) {
	if b&flagAttribute != 0 {
		return 0, false, formatErr("attributes are not supported (token 0x%02X)", b)
	}
	return NewTag(d.page, b&IDMask), b&flagContent != 0, nil
}

// readString reads string content up to and including the closing END.
func (d *decoder) readString() (string, error) {
	var buf []byte
	for {
		b, err := d.readByte()
		if err != nil {
			return "", err
		}
		switch b {
		case tokenEnd:
			return string(buf), nil
		case tokenStrI:
			for {
				c, err := d.readByte()
				if err != nil {
					return "", err
				}
				if c == 0 {
					break
				}
				buf = append(buf, c)
			}
		case tokenOpaque:
			data, err := d.readOpaque()
			if err != nil {
				return "", err
			}
			buf = append(buf, data...)
		case tokenEntity:
			code, err := d.readUint()
			if err != nil {
				return "", err
			}
			buf = append(buf, string(rune(code))...)
		case tokenSwitchPage:
			if err := d.switchPage(); err != nil {
				return "", err
			}
		default:
			return "", formatErr("unexpected token 0x%02X in string content", b)
		}
	}
}

func (d *decoder) readOpaque() ([]byte, error) {
	n, err := d.readUint()
	if err != nil {
		return nil, err
	}
	if int64(n) > int64(d.r.Len()) {
		return nil, formatErr("opaque length %d exceeds input", n)
	}
	data := make([]byte, n)
	if _, err := io.ReadFull(d.r, data); err != nil {
		return nil, formatErr("short opaque data")
	}
	return data, nil
}

func (d *decoder) readInt() (int, error) {
	s, err := d.readString()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, formatErr("invalid integer %q", s)
	}
	return n, nil
}

func (d *decoder) enter() error {
	d.depth++
	if d.depth > maxDepth {
		return formatErr("nesting deeper than %d", maxDepth)
	}
	return nil
}

func (d *decoder) leave() { d.depth-- }

// skip consumes the content of an element whose start tag was already
// read, including the closing END.
func (d *decoder) skip() error {
	if err := d.enter(); err != nil {
		return err
	}
	defer d.leave()

	for {
		b, err := d.readByte()
		if err != nil {
			return err
		}
		switch b {
		case tokenEnd:
			return nil
		case tokenSwitchPage:
			if err := d.switchPage(); err != nil {
				return err
			}
		case tokenStrI:
			for {
				c, err := d.readByte()
				if err != nil {
					return err
				}
				if c == 0 {
					break
				}
			}
		case tokenOpaque:
			if _, err := d.readOpaque(); err != nil {
				return err
			}
		case tokenEntity:
			if _, err := d.readUint(); err != nil {
				return err
			}
		case tokenLiteral:
			return formatErr("string table references are not supported")
		default:
			_, content, err := d.tag(b)
			if err != nil {
				return err
			}
			if content {
				if err := d.skip(); err != nil {
					return err
				}
			}
		}
	}
}
