package halftone

import (
	"context"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Convolve correlates img with k and returns a new image of the same size,
// channel count and channel order.
//
// Pixels outside the image are read with reflect-101 border handling
// (gfedcb|abcdefgh|gfedcba): the edge pixel itself is not repeated. Results
// are rounded to the nearest integer and clamped into 0..255.
//
// The kernel is evaluated as horizontal runs of equal weight over per-row
// prefix sums, which costs O(W*H*r) for a disc kernel instead of O(W*H*r²).
// Rows are split into bands and processed by up to workers goroutines;
// workers <= 0 uses GOMAXPROCS.
func Convolve(ctx context.Context, img *Image, k *Kernel, workers int) (*Image, error) {
	out, err := NewImage(img.Width, img.Height, img.Channels, img.Order)
	if err != nil {
		return nil, err
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > img.Height {
		workers = img.Height
	}
	band := (img.Height + workers - 1) / workers

	runs := k.runs()
	g, ctx := errgroup.WithContext(ctx)
	for y0 := 0; y0 < img.Height; y0 += band {
		y1 := min(y0+band, img.Height)
		g.Go(func() error {
			c := newRowConvolver(img, k.Radius(), runs)
			for y := y0; y < y1; y++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				c.row(out, y)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// rowConvolver holds per-goroutine scratch space for one band of rows.
type rowConvolver struct {
	img    *Image
	radius int
	runs   []run
	// prefix[c*stride+p] is the sum of channel c over padded columns [0, p).
	prefix []float64
	stride int
	acc    []float64
}

func newRowConvolver(img *Image, radius int, runs []run) *rowConvolver {
	stride := img.Width + 2*radius + 1
	return &rowConvolver{
		img:    img,
		radius: radius,
		runs:   runs,
		prefix: make([]float64, stride*img.Channels),
		stride: stride,
		acc:    make([]float64, img.Width*img.Channels),
	}
}

// row computes output row y into out.
func (c *rowConvolver) row(out *Image, y int) {
	img, ch := c.img, c.img.Channels
	clear(c.acc)

	lastDY := math.MinInt
	for _, r := range c.runs {
		if r.dy != lastDY {
			c.loadPrefix(reflect101(y+r.dy, img.Height))
			lastDY = r.dy
		}
		for x := 0; x < img.Width; x++ {
			lo := x + c.radius + r.x0
			hi := x + c.radius + r.x1 + 1
			for k := 0; k < ch; k++ {
				p := c.prefix[k*c.stride:]
				c.acc[x*ch+k] += r.weight * (p[hi] - p[lo])
			}
		}
	}

	base := out.offset(0, y)
	for i, v := range c.acc {
		out.Pix[base+i] = clampSample(v)
	}
}

// loadPrefix fills the prefix sums of source row sy, padded by radius
// columns on each side.
func (c *rowConvolver) loadPrefix(sy int) {
	img, ch := c.img, c.img.Channels
	for k := 0; k < ch; k++ {
		p := c.prefix[k*c.stride : (k+1)*c.stride]
		p[0] = 0
		for px := 0; px < c.stride-1; px++ {
			sx := reflect101(px-c.radius, img.Width)
			p[px+1] = p[px] + float64(img.Pix[img.offset(sx, sy)+k])
		}
	}
}

// reflect101 maps an out-of-range index back into [0, n) by mirroring
// around the edge pixels without repeating them.
func reflect101(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2*n - 2
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - i
	}
	return i
}

// clampSample saturates v to a byte, rounding halves to even.
func clampSample(v float64) uint8 {
	v = math.RoundToEven(v)
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}
