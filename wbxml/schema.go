package wbxml

import "fmt"

// Kind is the wire shape of a schema field.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindIntPtr
	KindBool
	KindObject
	KindList
	KindStringList
)

var kindNames = [...]string{"string", "int", "optional int", "bool", "object", "list", "string list"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Field binds one element tag to a slot of T.
type Field[T any] struct {
	tag    Tag
	kind   Kind
	encode func(e *encoder, v *T)
	// decode is called after the start tag was read. When content is
	// false the element was empty and nothing else must be consumed.
	decode func(d *decoder, v *T, content bool) error
}

// Schema is the ordered field table of one object type. Field order is
// the encode order; decoding accepts any order.
type Schema[T any] struct {
	name   string
	fields []Field[T]
	index  map[Tag]int
}

// NewSchema builds a schema. It panics on duplicate tags since schemas
// are package-level values built at init time.
func NewSchema[T any](name string, fields ...Field[T]) *Schema[T] {
	s := &Schema[T]{name: name, fields: fields, index: make(map[Tag]int, len(fields))}
	for i, f := range fields {
		if _, dup := s.index[f.tag]; dup {
			panic(fmt.Sprintf("wbxml: schema %s: duplicate tag %s", name, f.tag))
		}
		s.index[f.tag] = i
	}
	return s
}

func (s *Schema[T]) encode(e *encoder, v *T) {
	for _, f := range s.fields {
		f.encode(e, v)
	}
}

// decode reads object content up to and including the closing END.
func (s *Schema[T]) decode(d *decoder, v *T) error {
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
			continue
		case tokenStrI, tokenOpaque, tokenEntity, tokenLiteral:
			return formatErr("unexpected token 0x%02X inside %s", b, s.name)
		}

		tag, content, err := d.tag(b)
		if err != nil {
			return err
		}
		i, ok := s.index[tag]
		if !ok {
			if content {
				if err := d.skip(); err != nil {
					return err
				}
			}
			continue
		}
		f := s.fields[i]
		if err := f.decode(d, v, content); err != nil {
			return fmt.Errorf("%s.%s (%s): %w", s.name, tag, f.kind, err)
		}
	}
}

// String binds a string element. Empty strings are not encoded.
func String[T any](tag Tag, get func(*T) *string) Field[T] {
	return Field[T]{
		tag:  tag,
		kind: KindString,
		encode: func(e *encoder, v *T) {
			if s := *get(v); s != "" {
				e.text(tag, s)
			}
		},
		decode: func(d *decoder, v *T, content bool) error {
			if !content {
				*get(v) = ""
				return nil
			}
			s, err := d.readString()
			if err != nil {
				return err
			}
			*get(v) = s
			return nil
		},
	}
}

// Int binds a decimal integer element for which zero means absent.
func Int[T any](tag Tag, get func(*T) *int) Field[T] {
	return Field[T]{
		tag:  tag,
		kind: KindInt,
		encode: func(e *encoder, v *T) {
			if n := *get(v); n != 0 {
				e.int(tag, n)
			}
		},
		decode: func(d *decoder, v *T, content bool) error {
			if !content {
				return formatErr("empty integer element")
			}
			n, err := d.readInt()
			if err != nil {
				return err
			}
			*get(v) = n
			return nil
		},
	}
}

// IntPtr binds a decimal integer element where zero is a meaningful
// value. A nil pointer means absent.
func IntPtr[T any](tag Tag, get func(*T) **int) Field[T] {
	return Field[T]{
		tag:  tag,
		kind: KindIntPtr,
		encode: func(e *encoder, v *T) {
			if p := *get(v); p != nil {
				e.int(tag, *p)
			}
		},
		decode: func(d *decoder, v *T, content bool) error {
			if !content {
				return formatErr("empty integer element")
			}
			n, err := d.readInt()
			if err != nil {
				return err
			}
			*get(v) = &n
			return nil
		},
	}
}

// Bool binds a presence flag: true is an empty element, false is absent.
// An element with content is accepted and its content ignored.
func Bool[T any](tag Tag, get func(*T) *bool) Field[T] {
	return Field[T]{
		tag:  tag,
		kind: KindBool,
		encode: func(e *encoder, v *T) {
			if *get(v) {
				e.empty(tag)
			}
		},
		decode: func(d *decoder, v *T, content bool) error {
			if content {
				if err := d.skip(); err != nil {
					return err
				}
			}
			*get(v) = true
			return nil
		},
	}
}

// Object binds a nested element described by schema. A nil pointer is
// not encoded; an empty element decodes to a zero U.
func Object[T, U any](tag Tag, schema *Schema[U], get func(*T) **U) Field[T] {
	return Field[T]{
		tag:  tag,
		kind: KindObject,
		encode: func(e *encoder, v *T) {
			p := *get(v)
			if p == nil {
				return
			}
			e.open(tag)
			schema.encode(e, p)
			e.close()
		},
		decode: func(d *decoder, v *T, content bool) error {
			u := new(U)
			if content {
				if err := schema.decode(d, u); err != nil {
					return err
				}
			}
			*get(v) = u
			return nil
		},
	}
}

// List binds a repeated nested element. Each occurrence appends one item.
func List[T, U any](tag Tag, schema *Schema[U], get func(*T) *[]U) Field[T] {
	return Field[T]{
		tag:  tag,
		kind: KindList,
		encode: func(e *encoder, v *T) {
			items := *get(v)
			for i := range items {
				e.open(tag)
				schema.encode(e, &items[i])
				e.close()
			}
		},
		decode: func(d *decoder, v *T, content bool) error {
			var u U
			if content {
				if err := schema.decode(d, &u); err != nil {
					return err
				}
			}
			*get(v) = append(*get(v), u)
			return nil
		},
	}
}

// StringList binds a repeated string element.
func StringList[T any](tag Tag, get func(*T) *[]string) Field[T] {
	return Field[T]{
		tag:  tag,
		kind: KindStringList,
		encode: func(e *encoder, v *T) {
			for _, s := range *get(v) {
				e.text(tag, s)
			}
		},
		decode: func(d *decoder, v *T, content bool) error {
			var s string
			if content {
				var err error
				if s, err = d.readString(); err != nil {
					return err
				}
			}
			*get(v) = append(*get(v), s)
			return nil
		},
	}
}
