// Package font wraps a font-rendering backend whose faces are not safe to use
// from more than one thread.
//
// A Library owns a Loader and hands out Faces. Both are thread-affine: every
// method first checks that the caller is the thread that created the object
// and fails with a thread_affinity error otherwise, without touching the
// backend.
//
//	lib := font.NewLibrary(opentype.Loader{})
//	defer lib.Close()
//
//	face, err := lib.LoadFontFile("DejaVuSans.ttf")
//	if err != nil {
//	    return err
//	}
//
//	ok, err := face.SupportsText("Grüße", true)
//
//	ids, err := face.GlyphIDs("AA")
//	for id, err := range ids {
//	    ...
//	}
//
// Family and style names are decoded once when the face is created. Names
// that are not valid UTF-8 are shown as a quoted byte string and flagged as
// lossy; the raw bytes stay available in Name.Raw.
package font
