package halftone

import (
	"image"
	"iter"
	"math"
)

// InnerRadius returns ceil(sqrt(3/4)*r), the vertical lattice pitch and the
// largest dot radius (plus the one pixel gap) a sample can produce.
func InnerRadius(r int) int {
	return int(math.Ceil(math.Sqrt(3.0/4.0) * float64(r)))
}

// Grid is a hexagonal sampling lattice over a Width x Height image with
// outer radius Radius. The zero value yields no points.
type Grid struct {
	Radius int
	Width  int
	Height int
}

// RowSpacing is the vertical distance between lattice rows.
func (g Grid) RowSpacing() int { return InnerRadius(g.Radius) }

// ColSpacing is the horizontal distance between points in one row.
func (g Grid) ColSpacing() int { return 3 * g.Radius }

// Rows returns floor(Height / RowSpacing).
func (g Grid) Rows() int {
	if g.Radius <= 0 || g.Height <= 0 {
		return 0
	}
	return g.Height / g.RowSpacing()
}

// Cols returns floor(Width / 3R).
func (g Grid) Cols() int {
	if g.Radius <= 0 || g.Width <= 0 {
		return 0
	}
	return g.Width / g.ColSpacing()
}

// Len returns the number of lattice points.
func (g Grid) Len() int { return g.Rows() * g.Cols() }

// Point returns the lattice coordinate for row yy and column xx.
// Odd rows are offset by 1.5R, which turns the square layout into a hex one.
func (g Grid) Point(xx, yy int) image.Point {
	r := float64(g.Radius)
	offset := 0.0
	if yy%2 == 1 {
		offset = 1.5 * r
	}
	return image.Point{
		X: int(math.Floor(float64(3*xx+1)*r + offset)),
		Y: yy * g.RowSpacing(),
	}
}

// Points yields every lattice coordinate row by row, top to bottom and left
// to right. The sequence is lazy and can be ranged over any number of times.
func (g Grid) Points() iter.Seq[image.Point] {
	rows, cols := g.Rows(), g.Cols()
	return func(yield func(image.Point) bool) {
		for yy := 0; yy < rows; yy++ {
			for xx := 0; xx < cols; xx++ {
				if !yield(g.Point(xx, yy)) {
					return
				}
			}
		}
	}
}
