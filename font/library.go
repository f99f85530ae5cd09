package font

import (
	"io"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/wippyai/fontguard/affinity"
	"github.com/wippyai/fontguard/errors"
	"github.com/wippyai/fontguard/resource"
)

const libraryLabel = "font.Library"

// Option configures a Library and the faces it loads.
type Option func(*config)

type config struct {
	source    affinity.Source
	printable PrintableFunc
	observers []affinity.Observer
}

func buildConfig(opts []Option) config {
	c := config{
		source:    affinity.Goroutine,
		printable: Printable,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithSource selects the thread identity used for ownership checks.
func WithSource(s affinity.Source) Option {
	return func(c *config) {
		if s != nil {
			c.source = s
		}
	}
}

// WithPrintable replaces the printable-character filter used by SupportsText.
func WithPrintable(fn PrintableFunc) Option {
	return func(c *config) {
		if fn != nil {
			c.printable = fn
		}
	}
}

// WithObserver registers guard observers on the library and every face.
func WithObserver(obs ...affinity.Observer) Option {
	return func(c *config) {
		c.observers = append(c.observers, obs...)
	}
}

// Library loads faces through a backend. It is bound to the thread that
// created it, and so are the faces it loads.
type Library struct {
	guard *affinity.Guard[Loader]
	faces *resource.Table[*Face]
	cfg   config
}

// NewLibrary creates a library owned by the calling thread.
func NewLibrary(loader Loader, opts ...Option) *Library {
	c := buildConfig(opts)
	l := &Library{
		guard: affinity.New(loader,
			affinity.WithLabel(libraryLabel),
			affinity.WithSource(c.source),
			affinity.WithObserver(c.observers...),
		),
		faces: resource.NewTable[*Face](),
		cfg:   c,
	}
	l.faces.Subscribe(resource.ObserverFunc[*Face](logFaceEvent))
	return l
}

func logFaceEvent(e resource.Event[*Face]) {
	Logger().Debug("face "+e.Type.String(),
		zap.Uint32("handle", uint32(e.Handle)),
		zap.String("family", e.Value.FamilyName()),
		zap.String("style", e.Value.StyleName()))
}

// LoadFont loads a face from raw font data.
func (l *Library) LoadFont(data []byte) (*Face, error) {
	loader, err := l.guard.Handle()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.InvalidData(errors.PhaseLoad, libraryLabel, "empty font data")
	}

	h, err := loader.LoadFont(data)
	if err != nil {
		return nil, errors.New(errors.PhaseLoad, errors.KindInvalidData).
			Resource(libraryLabel).
			Detail("load font (%d bytes)", len(data)).
			Cause(err).
			Build()
	}

	f := newFace(h, l.cfg)
	slot, err := l.faces.Insert(f)
	if err != nil {
		f.Drop()
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindReleased, err, "library closed")
	}
	f.lib = l
	f.slot = slot
	return f, nil
}

// LoadFontFile reads a font file and loads it.
func (l *Library) LoadFontFile(path string) (*Face, error) {
	if err := l.guard.Check(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			nf := errors.NotFound(errors.PhaseLoad, "font file", path)
			nf.Cause = err
			return nil, nf
		}
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidInput, err, "read "+path)
	}
	return l.LoadFont(data)
}

// Faces returns the number of faces loaded and not yet closed.
func (l *Library) Faces() int {
	return l.faces.Len()
}

// Owner returns the identity of the thread that created the library.
func (l *Library) Owner() affinity.ThreadID { return l.guard.Owner() }

// Close releases every open face and the loader.
// Only the owning thread may close a library.
func (l *Library) Close() error {
	return l.guard.Release(func(loader Loader) error {
		if err := l.faces.Close(); err != nil {
			return err
		}
		if c, ok := loader.(io.Closer); ok {
			return c.Close()
		}
		return nil
	})
}
