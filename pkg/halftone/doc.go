// Package halftone turns a raster image into hexagonally packed dots.
//
// # Overview
//
// The sampling pipeline has five stages, each a small pure function over the
// data model in this package:
//
//  1. [NewDiscKernel] builds a normalized circular averaging kernel.
//  2. [Convolve] low-pass filters the source [Image] with that kernel.
//  3. [Value] reduces the filtered image to a single brightness channel.
//  4. [Grid] walks the hex lattice in row-major order.
//  5. [RadiusMapper] and [ColorSelector] turn each sample into a [Dot].
//
// [Halftoner] ties the stages together and hands every [Dot] to a [Drawer],
// which is implemented by the raster and SVG sinks in
// github.com/matzehuels/hexhalftone/pkg/render/sink.
//
// # Usage
//
//	h, err := halftone.New(
//	    halftone.WithRadius(10),
//	    halftone.WithThreshold(0),
//	    halftone.WithColorMode(true),
//	)
//	if err != nil {
//	    return err
//	}
//	stats, err := h.Run(ctx, img, canvas)
//
// # Geometry
//
// For an outer radius R the lattice rows are ceil(sqrt(3/4)*R) pixels apart and
// columns 3R apart; odd rows shift right by 1.5R. The same row pitch is the
// inner radius used to size dots, so a fully bright sample yields a dot of
// radius inner-1 and neighbouring dots never touch.
package halftone
