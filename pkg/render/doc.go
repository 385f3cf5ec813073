// Package render holds the output side of hexhalftone.
//
// # Overview
//
// Halftone dots are produced by [halftone.Halftoner] in lattice order and
// handed to a renderer from the [sink] subpackage. Two renderers exist:
//
//   - Raster: fills discs into an RGBA buffer and encodes it as PNG, JPEG,
//     GIF, TIFF or BMP
//   - SVG: emits one circle element per dot inside a fixed document template
//
// Both consume the same [halftone.Dot] stream, so raster and vector output
// agree on dot positions, radii and colors.
//
//	r := sink.New(target, img.Width, img.Height)
//	stats, err := h.Run(ctx, img, r)
//	err = r.Encode(w)
//
// [halftone.Halftoner]: github.com/matzehuels/hexhalftone/pkg/halftone.Halftoner
// [halftone.Dot]: github.com/matzehuels/hexhalftone/pkg/halftone.Dot
// [sink]: github.com/matzehuels/hexhalftone/pkg/render/sink
package render
