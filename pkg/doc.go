// Package pkg provides the libraries behind hexhalftone.
//
// # Overview
//
// Hexhalftone renders an image as a hexagonal lattice of discs. Each disc is
// sized by the brightness of the disc-filtered image at its center and filled
// with either the filtered color or white. The pkg directory is organized as:
//
//  1. [halftone] - Domain logic (kernel, convolution, lattice, radius and color mapping)
//  2. [render] - Output sinks (raster and SVG)
//  3. [codec] - Image decoding and atomic file output
//  4. [pipeline] - Orchestration (decode → halftone → encode) with caching
//  5. [cache] - Artifact cache backends (file, Redis, null)
//
// Supporting packages: [errors] for coded errors, [observability] for
// instrumentation hooks and [buildinfo] for version information.
//
// # Architecture
//
//	Encoded image
//	     ↓
//	[codec] decode (EXIF orientation, alpha over black)
//	     ↓
//	[halftone] disc convolution → value → lattice walk → dots
//	     ↓
//	[render/sink] raster or SVG
//	     ↓
//	PNG/JPEG/GIF/TIFF/BMP/SVG output
//
// # Quick Start
//
//	data, err := codec.ReadFile("photo.jpg")
//	if err != nil {
//	    return err
//	}
//	img, err := codec.Decode(data)
//	if err != nil {
//	    return err
//	}
//	h, err := halftone.New(halftone.WithRadius(12))
//	if err != nil {
//	    return err
//	}
//	r := sink.New(sink.SVGTarget, img.Width, img.Height)
//	if _, err := h.Run(ctx, img, r); err != nil {
//	    return err
//	}
//	return r.Encode(os.Stdout)
//
// [halftone]: github.com/matzehuels/hexhalftone/pkg/halftone
// [render]: github.com/matzehuels/hexhalftone/pkg/render
// [codec]: github.com/matzehuels/hexhalftone/pkg/codec
// [pipeline]: github.com/matzehuels/hexhalftone/pkg/pipeline
// [cache]: github.com/matzehuels/hexhalftone/pkg/cache
// [errors]: github.com/matzehuels/hexhalftone/pkg/errors
// [observability]: github.com/matzehuels/hexhalftone/pkg/observability
// [buildinfo]: github.com/matzehuels/hexhalftone/pkg/buildinfo
package pkg
