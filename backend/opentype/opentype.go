// Package opentype is a font.Loader backed by golang.org/x/image/font/sfnt.
//
// It reads TrueType and OpenType fonts and collections. Each Face owns a
// single sfnt.Buffer that is reused across lookups, so a Face must not be used
// concurrently; wrap it with font.NewFace or load it through a font.Library.
package opentype

import (
	"bytes"
	"fmt"

	"golang.org/x/image/font/sfnt"

	"github.com/wippyai/fontguard/errors"
	"github.com/wippyai/fontguard/font"
)

// Compressed web font signatures. sfnt only reads uncompressed tables.
var compressedFormats = []struct {
	magic []byte
	name  string
}{
	{[]byte("wOFF"), "WOFF"},
	{[]byte("wOF2"), "WOFF2"},
}

// Loader parses font data. For collections, Index selects the font.
type Loader struct {
	Index int
}

var _ font.Loader = Loader{}

// LoadFont parses data into a Face. data is copied.
func (l Loader) LoadFont(data []byte) (font.Handle, error) {
	for _, f := range compressedFormats {
		if bytes.HasPrefix(data, f.magic) {
			return nil, errors.Unsupported(errors.PhaseLoad, f.name+" font data; decompress to TrueType or OpenType first")
		}
	}

	data = bytes.Clone(data)
	c, err := sfnt.ParseCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	if l.Index < 0 || l.Index >= c.NumFonts() {
		return nil, fmt.Errorf("font index %d out of range (collection has %d)", l.Index, c.NumFonts())
	}
	f, err := c.Font(l.Index)
	if err != nil {
		return nil, fmt.Errorf("font %d: %w", l.Index, err)
	}
	return newFace(f), nil
}

// Face is a parsed font. It is not safe for concurrent use.
type Face struct {
	font   *sfnt.Font
	buf    sfnt.Buffer
	family []byte
	style  []byte
}

var _ font.Handle = (*Face)(nil)

func newFace(f *sfnt.Font) *Face {
	face := &Face{font: f}
	face.family = face.name(sfnt.NameIDFamily)
	face.style = face.name(sfnt.NameIDSubfamily)
	return face
}

func (f *Face) name(id sfnt.NameID) []byte {
	s, err := f.font.Name(&f.buf, id)
	if err != nil {
		return nil
	}
	return []byte(s)
}

// GlyphID returns the glyph index for r, or 0 (.notdef) if there is none.
func (f *Face) GlyphID(r rune) font.GlyphID {
	idx, err := f.font.GlyphIndex(&f.buf, r)
	if err != nil {
		return 0
	}
	return font.GlyphID(idx)
}

// SupportsText reports whether every code point maps to a real glyph.
func (f *Face) SupportsText(codepoints []rune) bool {
	for _, r := range codepoints {
		if f.GlyphID(r) == 0 {
			return false
		}
	}
	return true
}

// FamilyName returns the name table family name.
func (f *Face) FamilyName() []byte { return f.family }

// StyleName returns the name table subfamily name.
func (f *Face) StyleName() []byte { return f.style }
