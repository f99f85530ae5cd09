package font

import (
	"sync/atomic"
)

// spyHandle is a backend face that records every call made to it.
type spyHandle struct {
	glyphs   map[rune]GlyphID
	family   []byte
	style    []byte
	queries  [][]rune
	calls    atomic.Int32
	released atomic.Bool
}

func newSpy(chars string) *spyHandle {
	s := &spyHandle{
		glyphs: make(map[rune]GlyphID),
		family: []byte("Spy Sans"),
		style:  []byte("Regular"),
	}
	for i, r := range chars {
		s.glyphs[r] = GlyphID(i + 1)
	}
	return s
}

func (s *spyHandle) SupportsText(cps []rune) bool {
	s.calls.Add(1)
	s.queries = append(s.queries, cps)
	for _, r := range cps {
		if _, ok := s.glyphs[r]; !ok {
			return false
		}
	}
	return true
}

func (s *spyHandle) GlyphID(r rune) GlyphID {
	s.calls.Add(1)
	return s.glyphs[r]
}

func (s *spyHandle) FamilyName() []byte { return s.family }
func (s *spyHandle) StyleName() []byte  { return s.style }

func (s *spyHandle) Close() error {
	s.released.Store(true)
	return nil
}

func onOtherGoroutine(fn func()) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	<-done
}
