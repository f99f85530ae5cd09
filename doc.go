// Package fontguard provides thread-affine guards for native resources and a
// font face built on them.
//
// Some handles, such as a loaded font face backed by a C library, must only be
// used from the thread that created them. fontguard records the owning thread
// when a handle is wrapped and checks it on every access, returning a
// structured error instead of letting a second thread corrupt the resource.
//
// # Architecture Overview
//
//	fontguard/
//	├── affinity/          Guard[T], thread identity sources, OS thread pinning
//	├── font/              Library and Face: guarded text support, glyph ids, names
//	├── backend/opentype/  font.Loader on golang.org/x/image/font/sfnt
//	├── resource/          Typed handle table tracking a library's live faces
//	├── errors/            Structured error types for debugging
//	├── config/            YAML and environment configuration for the CLI
//	├── telemetry/         zap logging and Prometheus counters for guard events
//	└── cmd/fontguard/     Command line interface
//
// # Quick Start
//
// Load a font and query it from the goroutine that loaded it:
//
//	lib := font.NewLibrary(opentype.Loader{})
//	defer lib.Close()
//
//	face, err := lib.LoadFont(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ok, err := face.SupportsText("Hello, world", true)
//
// Calling face methods from any other goroutine fails:
//
//	_, err := face.SupportsText("Hello", true)
//	errors.Is(err, errors.ErrThreadAffinity) // true
//
// # Thread Identity
//
// Guards compare identities from an affinity.Source. affinity.Goroutine, the
// default, suits pure Go handles. affinity.OSThread reads the kernel thread id
// and suits cgo handles; the owner must call affinity.Pin before creating the
// guard so the goroutine stays on one thread:
//
//	defer affinity.Pin()()
//	lib := font.NewLibrary(loader, font.WithSource(affinity.OSThread))
//
// # Glyph Sequences
//
// Face.GlyphIDs returns a lazy iter.Seq2. Every step re-checks the owner, so a
// sequence handed to another goroutine yields a thread affinity error instead
// of a glyph id.
//
// # Error Handling
//
// Errors are *errors.Error values carrying a phase and kind:
//
//	var fe *errors.Error
//	if errors.As(err, &fe) {
//	    fmt.Println(fe.Kind, fe.Expected, fe.Actual)
//	}
package fontguard
