// Package sfnt is the table-level codec behind fontops.
//
// A [Font] holds the raw tables of one SFNT font (TrueType or CFF flavored)
// keyed by tag. Loading goes through github.com/go-text/typesetting, which
// reads plain SFNT, WOFF and collection files; WOFF2 files are unpacked here.
// Tables are decoded on demand and written back as raw bytes, so tables the
// package does not understand survive a round trip untouched.
//
// # Accessors
//
// The package reads and writes exactly what the instancing engine needs:
//   - name records ([Font.Name], [Font.SetNames])
//   - fvar axes and named instances ([Font.Axes], [Font.NamedInstances])
//   - style bits of OS/2 fsSelection and head macStyle ([Font.StyleFlag])
//   - OS/2 weight/width classes, post italic angle, head revision
//
// # Instancers
//
// Variation instancing is delegated to a pluggable [Instancer], selected by
// name from a registry:
//
//	sfnt.RegisterInstancer("custom", myInstancer)
//	req.Instancer = "custom"
//	err := font.Instantiate(ctx, req)
//
// Built-in instancers are "native" (pure Go pinning of glyf fonts),
// "fonttools" (the fontTools varLib.instancer subprocess) and "auto", which
// picks fonttools when it is installed and native otherwise.
//
// # Encodings
//
// [Font.Encode] writes SFNT (ttf/otf), WOFF 1.0 (zlib) and WOFF2 (brotli,
// null transforms) data.
package sfnt
