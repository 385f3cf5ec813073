// Package sink provides the output renderers for halftone dots.
//
// # Overview
//
// A "sink" accumulates [halftone.Dot] values and finally encodes an artifact.
// Every sink implements [Renderer]:
//
//   - [Raster]: an RGBA canvas initialised to opaque black. Each dot is filled
//     as a disc through golang.org/x/image/vector, so disc edges are
//     anti-aliased but identical for identical input. Encoding is delegated
//     to github.com/disintegration/imaging.
//   - [SVG]: an ordered list of dots written into a fixed SVG 1.1 template with
//     a black background and one circle per dot, ids c0000, c0001, ...
//
// # Choosing a sink
//
// [TargetFromPath] picks the sink from an output file name: ".svg" (any case)
// selects the vector sink, every other extension known to imaging selects the
// raster sink. [TargetFromName] does the same for short format names such as
// "svg" or "png".
//
//	target, err := sink.TargetFromPath("out.svg")
//	r := sink.New(target, width, height)
//	for _, d := range dots {
//	    r.Draw(d)
//	}
//	err = r.Encode(w)
//
// [halftone.Dot]: github.com/matzehuels/hexhalftone/pkg/halftone.Dot
package sink
