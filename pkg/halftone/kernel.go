package halftone

import (
	"gonum.org/v1/gonum/floats"

	errs "github.com/matzehuels/hexhalftone/pkg/errors"
)

// Kernel is a square grid of non-negative weights with odd side 2r+1.
// Weights are stored row-major; the center cell is (r, r).
type Kernel struct {
	radius  int
	size    int
	weights []float64
}

// NewDiscKernel builds a circular averaging kernel of radius r.
//
// Every cell within Euclidean distance r of the center gets the same weight
// and all other cells are zero, so the kernel averages over a disc rather
// than a square. The weights sum to 1.
func NewDiscKernel(r int) (*Kernel, error) {
	if err := errs.ValidateRadius(r); err != nil {
		return nil, err
	}

	size := 2*r + 1
	weights := make([]float64, size*size)
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				weights[(dy+r)*size+(dx+r)] = 1
			}
		}
	}
	floats.Scale(1/floats.Sum(weights), weights)

	return &Kernel{radius: r, size: size, weights: weights}, nil
}

// Radius returns r for a (2r+1)x(2r+1) kernel.
func (k *Kernel) Radius() int { return k.radius }

// Size returns the side length 2r+1.
func (k *Kernel) Size() int { return k.size }

// At returns the weight at offset (dx, dy) from the center.
// Offsets outside the kernel have weight 0.
func (k *Kernel) At(dx, dy int) float64 {
	if dx < -k.radius || dx > k.radius || dy < -k.radius || dy > k.radius {
		return 0
	}
	return k.weights[(dy+k.radius)*k.size+(dx+k.radius)]
}

// Sum returns the total weight.
func (k *Kernel) Sum() float64 {
	return floats.Sum(k.weights)
}

// Support returns the number of cells with non-zero weight.
func (k *Kernel) Support() int {
	n := 0
	for _, w := range k.weights {
		if w != 0 {
			n++
		}
	}
	return n
}

// run is a horizontal stretch of equal, non-zero weights in one kernel row.
type run struct {
	dy     int
	x0, x1 int // inclusive offsets from the center column
	weight float64
}

// runs splits the kernel into maximal constant-weight horizontal runs.
// A disc kernel compiles to exactly one run per row.
func (k *Kernel) runs() []run {
	var out []run
	for dy := -k.radius; dy <= k.radius; dy++ {
		dx := -k.radius
		for dx <= k.radius {
			w := k.At(dx, dy)
			if w == 0 {
				dx++
				continue
			}
			start := dx
			for dx+1 <= k.radius && k.At(dx+1, dy) == w {
				dx++
			}
			out = append(out, run{dy: dy, x0: start, x1: dx, weight: w})
			dx++
		}
	}
	return out
}
