// Package wbxml encodes and decodes the WBXML 1.3 subset spoken by
// Exchange ActiveSync: tag tokens with code pages, inline strings and
// opaque data. Attributes and string-table references are not supported.
package wbxml

import (
	"errors"
	"fmt"
)

// ErrFormat is returned (wrapped) for any input that is not well-formed
// WBXML or does not match the target schema.
var ErrFormat = errors.New("wbxml: malformed document")

// Global tokens.
const (
	tokenSwitchPage byte = 0x00
	tokenEnd        byte = 0x01
	tokenEntity     byte = 0x02
	tokenStrI       byte = 0x03
	tokenLiteral    byte = 0x04
	tokenOpaque     byte = 0xC3
)

const (
	flagContent   byte = 0x40
	flagAttribute byte = 0x80
)

// Document header values written by Marshal.
const (
	headerVersion  byte = 0x03 // WBXML 1.3
	headerPublicID byte = 0x01 // unknown public identifier
	headerCharset  byte = 0x6A // UTF-8 (IANA MIBenum 106)
	headerStrTable byte = 0x00
)

const (
	// PageShift is the bit offset of the code page inside a Tag.
	PageShift = 6
	// IDMask selects the token identity inside a Tag. WBXML reserves the
	// two high bits of a tag byte for the content and attribute flags.
	IDMask = 0x3F
)

// Tag identifies an element as code page plus token id.
type Tag uint16

// NewTag builds a Tag from a code page and a token id.
func NewTag(page, id byte) Tag {
	return Tag(page)<<PageShift | Tag(id&IDMask)
}

// Page returns the code page of t.
func (t Tag) Page() byte { return byte(t >> PageShift) }

// ID returns the token id of t within its page.
func (t Tag) ID() byte { return byte(t & IDMask) }

func (t Tag) String() string {
	return fmt.Sprintf("%02X:%02X", t.Page(), t.ID())
}

func formatErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrFormat, fmt.Sprintf(format, args...))
}
