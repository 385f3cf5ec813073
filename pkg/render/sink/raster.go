package sink

import (
	"image"
	"image/color"
	"image/draw"
	"io"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/vector"

	"github.com/matzehuels/hexhalftone/pkg/halftone"
)

// kappa places cubic Bézier control points so four curves approximate a
// circle with a radial error below 0.03%.
const kappa = 0.5522847498307936

// Raster draws dots as filled discs on an opaque black RGBA canvas.
type Raster struct {
	img    *image.RGBA
	format imaging.Format
	rast   *vector.Rasterizer
	count  int
}

// NewRaster returns a black width x height canvas that encodes as format.
func NewRaster(width, height int, format imaging.Format) *Raster {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{A: 0xff}), image.Point{}, draw.Src)
	return &Raster{
		img:    img,
		format: format,
		rast:   vector.NewRasterizer(0, 0),
	}
}

// Draw fills a disc centered on the middle of pixel d.Center.
// Fully covered pixels are overwritten; edge pixels are blended by coverage.
// Dots without a positive radius cover nothing and are not counted.
func (r *Raster) Draw(d halftone.Dot) {
	if d.Radius <= 0 {
		return
	}
	r.count++

	cx := float64(d.Center.X) + 0.5
	cy := float64(d.Center.Y) + 0.5
	box := image.Rect(
		int(math.Floor(cx-d.Radius)), int(math.Floor(cy-d.Radius)),
		int(math.Ceil(cx+d.Radius)), int(math.Ceil(cy+d.Radius)),
	).Intersect(r.img.Bounds())
	if box.Empty() {
		return
	}

	// The rasterizer covers only the clipped bounding box; path coordinates
	// are relative to its top-left corner.
	r.rast.Reset(box.Dx(), box.Dy())
	r.rast.DrawOp = draw.Over
	addCircle(r.rast, float32(cx-float64(box.Min.X)), float32(cy-float64(box.Min.Y)), float32(d.Radius))
	r.rast.Draw(r.img, box, image.NewUniform(d.Color), image.Point{})
}

// addCircle appends a closed circle path built from four cubic curves.
func addCircle(z *vector.Rasterizer, cx, cy, rad float32) {
	k := float32(kappa) * rad
	z.MoveTo(cx+rad, cy)
	z.CubeTo(cx+rad, cy+k, cx+k, cy+rad, cx, cy+rad)
	z.CubeTo(cx-k, cy+rad, cx-rad, cy+k, cx-rad, cy)
	z.CubeTo(cx-rad, cy-k, cx-k, cy-rad, cx, cy-rad)
	z.CubeTo(cx+k, cy-rad, cx+rad, cy-k, cx+rad, cy)
	z.ClosePath()
}

// Count returns the number of dots drawn.
func (r *Raster) Count() int { return r.count }

// Image returns the canvas. It must not be modified while drawing continues.
func (r *Raster) Image() *image.RGBA { return r.img }

// Encode writes the canvas in the configured format.
func (r *Raster) Encode(w io.Writer) error {
	return imaging.Encode(w, r.img, r.format)
}
