package font

import (
	"bytes"
	"fmt"
	"unicode/utf8"
)

// Name is a face metadata string.
type Name struct {
	Text  string
	Raw   []byte
	Lossy bool // Text is a quoted rendering of Raw, not its decoding
}

func (n Name) String() string { return n.Text }

// DecodeName decodes raw as UTF-8. Invalid input is rendered as a quoted byte
// string instead of failing.
func DecodeName(raw []byte) Name {
	raw = bytes.Clone(raw)
	if utf8.Valid(raw) {
		return Name{Text: string(raw), Raw: raw}
	}
	return Name{Text: fmt.Sprintf("%q", raw), Raw: raw, Lossy: true}
}
