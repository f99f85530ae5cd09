package font

import (
	"iter"
	"maps"
	"slices"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/wippyai/fontguard/affinity"
	"github.com/wippyai/fontguard/errors"
	"github.com/wippyai/fontguard/resource"
)

const faceLabel = "font.Face"

// Face is a loaded font face bound to the thread that loaded it.
type Face struct {
	guard     *affinity.Guard[Handle]
	lib       *Library
	printable PrintableFunc
	family    Name
	style     Name
	slot      resource.Handle
}

// NewFace wraps a freshly loaded handle. The calling thread becomes the owner.
// Faces loaded through a Library are created with the library's options.
func NewFace(h Handle, opts ...Option) *Face {
	return newFace(h, buildConfig(opts))
}

func newFace(h Handle, c config) *Face {
	f := &Face{
		guard: affinity.New(h,
			affinity.WithLabel(faceLabel),
			affinity.WithSource(c.source),
			affinity.WithObserver(c.observers...),
		),
		printable: c.printable,
		family:    decodeName("family_name", h.FamilyName()),
		style:     decodeName("style_name", h.StyleName()),
	}
	return f
}

func decodeName(field string, raw []byte) Name {
	n := DecodeName(raw)
	if n.Lossy {
		Logger().Debug("face name is not valid UTF-8",
			zap.String("field", field),
			zap.Error(errors.InvalidUTF8(errors.PhaseDecode, faceLabel, raw)))
	}
	return n
}

// Family returns the decoded family name.
func (f *Face) Family() Name { return f.family }

// Style returns the decoded style name.
func (f *Face) Style() Name { return f.style }

// FamilyName returns the family name text.
func (f *Face) FamilyName() string { return f.family.Text }

// StyleName returns the style name text.
func (f *Face) StyleName() string { return f.style.Text }

// Owner returns the identity of the thread that loaded the face.
func (f *Face) Owner() affinity.ThreadID { return f.guard.Owner() }

// SupportsText reports whether the face has a glyph for every character of
// text. With filterNonPrintable, characters that are never rendered
// (controls, separators, combining marks) are ignored.
func (f *Face) SupportsText(text string, filterNonPrintable bool) (bool, error) {
	return affinity.Do(f.guard, func(h Handle) (bool, error) {
		cps, err := f.codepoints(text, filterNonPrintable)
		if err != nil {
			return false, err
		}
		return h.SupportsText(cps), nil
	})
}

// MissingRunes returns the unique code points of text that have no glyph,
// in ascending order.
func (f *Face) MissingRunes(text string, filterNonPrintable bool) ([]rune, error) {
	return affinity.Do(f.guard, func(h Handle) ([]rune, error) {
		cps, err := f.codepoints(text, filterNonPrintable)
		if err != nil {
			return nil, err
		}
		var missing []rune
		for _, r := range cps {
			if !h.SupportsText([]rune{r}) {
				missing = append(missing, r)
			}
		}
		return missing, nil
	})
}

// GlyphIDs returns a lazy sequence of glyph ids, one per character of text in
// order. Duplicates and non-printable characters are kept.
//
// Ownership is checked when the sequence is created and again before every
// element; a failed check yields the error and ends the sequence.
func (f *Face) GlyphIDs(text string) (iter.Seq2[GlyphID, error], error) {
	h, err := f.guard.Handle()
	if err != nil {
		return nil, err
	}
	if !utf8.ValidString(text) {
		return nil, errors.NotText(errors.PhaseValidate, faceLabel, text)
	}

	return func(yield func(GlyphID, error) bool) {
		for _, r := range text {
			if err := f.guard.Check(); err != nil {
				yield(0, err)
				return
			}
			if !yield(h.GlyphID(r), nil) {
				return
			}
		}
	}, nil
}

// GlyphIDList collects GlyphIDs into a slice.
func (f *Face) GlyphIDList(text string) ([]GlyphID, error) {
	seq, err := f.GlyphIDs(text)
	if err != nil {
		return nil, err
	}
	ids := make([]GlyphID, 0, utf8.RuneCountInString(text))
	for id, err := range seq {
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Close releases the face and removes it from its library.
// Only the owning thread may close a face; closing twice is a no-op.
func (f *Face) Close() error {
	if err := f.guard.Release(nil); err != nil {
		return err
	}
	// The slot may already hold another face after a double Close.
	if f.lib != nil {
		if cur, ok := f.lib.faces.Get(f.slot); ok && cur == f {
			f.lib.faces.Remove(f.slot)
		}
	}
	return nil
}

// Drop releases the face when its library is closed.
func (f *Face) Drop() {
	if err := f.guard.Release(nil); err != nil {
		Logger().Warn("failed to release face",
			zap.String("resource", f.guard.Label()),
			zap.String("family", f.family.Text),
			zap.Error(err))
	}
}

func (f *Face) codepoints(text string, filterNonPrintable bool) ([]rune, error) {
	if !utf8.ValidString(text) {
		return nil, errors.NotText(errors.PhaseValidate, faceLabel, text)
	}
	if filterNonPrintable && f.printable != nil {
		text = f.printable(text)
	}
	return uniqueRunes(text), nil
}

func uniqueRunes(s string) []rune {
	set := make(map[rune]struct{}, len(s))
	for _, r := range s {
		set[r] = struct{}{}
	}
	return slices.Sorted(maps.Keys(set))
}
