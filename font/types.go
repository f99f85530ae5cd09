package font

// GlyphID identifies a glyph within a face. Zero is the missing glyph.
type GlyphID uint32

// Handle is a loaded face from a rendering backend.
// Implementations need not be safe for concurrent use.
type Handle interface {
	// SupportsText reports whether every code point has a glyph.
	SupportsText(codepoints []rune) bool

	// GlyphID returns the glyph for r, or 0 if the face has none.
	GlyphID(r rune) GlyphID

	// FamilyName returns the raw family name as stored in the font.
	FamilyName() []byte

	// StyleName returns the raw style (subfamily) name as stored in the font.
	StyleName() []byte
}

// Loader turns raw font data into a Handle.
type Loader interface {
	LoadFont(data []byte) (Handle, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(data []byte) (Handle, error)

// LoadFont calls f(data).
func (f LoaderFunc) LoadFont(data []byte) (Handle, error) { return f(data) }

// PrintableFunc reduces text to the characters a face is expected to render.
type PrintableFunc func(string) string
