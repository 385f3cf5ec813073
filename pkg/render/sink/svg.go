package sink

import (
	"bufio"
	"fmt"
	"image/color"
	"io"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/hexhalftone/pkg/halftone"
)

const (
	svgProlog = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
		`<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN" "http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd">`

	svgOpen = `<svg viewBox="0 0 %d %d" height="%dmm" width="%dmm" xmlns="http://www.w3.org/2000/svg" ` +
		`xmlns:svg="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" version="1.1">`

	svgHead = `<title>Hex Halftone</title>` + "\n" +
		`<g id="docRoot" style="overflow:hidden;">` + "\n" +
		`<rect id="bg" height="100%" width="100%" fill="black"/>`

	svgCircle = `<circle id="c%04d" cx="%d" cy="%d" r="%.2f" stroke="none" fill="%s" />`

	svgClose = "</g>\n</svg>"
)

// SVG collects dots in draw order and writes them as an SVG 1.1 document.
// The document is sized in millimetres equal to the pixel dimensions.
type SVG struct {
	width  int
	height int
	dots   []halftone.Dot
}

// NewSVG returns an empty document for a width x height image.
func NewSVG(width, height int) *SVG {
	return &SVG{width: width, height: height}
}

// Draw appends d. Its id is its position in draw order. A dot without a
// positive radius has no valid circle and is dropped.
func (s *SVG) Draw(d halftone.Dot) {
	if d.Radius <= 0 {
		return
	}
	s.dots = append(s.dots, d)
}

// Count returns the number of dots drawn.
func (s *SVG) Count() int { return len(s.dots) }

// Encode writes the document. Lines are separated by a single newline and
// the closing tag is not followed by one.
func (s *SVG) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(svgProlog)
	bw.WriteByte('\n')
	fmt.Fprintf(bw, svgOpen, s.width, s.height, s.height, s.width)
	bw.WriteByte('\n')
	bw.WriteString(svgHead)
	bw.WriteByte('\n')
	for i, d := range s.dots {
		fmt.Fprintf(bw, svgCircle, i, d.Center.X, d.Center.Y, d.Radius, Fill(d.Color))
		bw.WriteByte('\n')
	}
	bw.WriteString(svgClose)
	return bw.Flush()
}

// Fill formats c as an SVG fill value, "#rrggbb".
func Fill(c color.RGBA) string {
	cf, _ := colorful.MakeColor(c)
	return cf.Hex()
}
