package halftone

import (
	"context"
	"math/rand/v2"
	"testing"
)

// convolveNaive is the direct O(W*H*r²) correlation used as a reference.
func convolveNaive(img *Image, k *Kernel) *Image {
	out, _ := NewImage(img.Width, img.Height, img.Channels, img.Order)
	r := k.Radius()
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			for c := 0; c < img.Channels; c++ {
				sum := 0.0
				for dy := -r; dy <= r; dy++ {
					for dx := -r; dx <= r; dx++ {
						w := k.At(dx, dy)
						if w == 0 {
							continue
						}
						sx := reflect101(x+dx, img.Width)
						sy := reflect101(y+dy, img.Height)
						sum += w * float64(img.At(sx, sy)[c])
					}
				}
				out.Pix[out.offset(x, y)+c] = clampSample(sum)
			}
		}
	}
	return out
}

func randomImage(t *testing.T, w, h, channels int, seed uint64) *Image {
	t.Helper()
	img, err := NewImage(w, h, channels, OrderRGB)
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	for i := range img.Pix {
		img.Pix[i] = uint8(rng.IntN(256))
	}
	return img
}

func TestConvolveMatchesNaive(t *testing.T) {
	tests := []struct {
		name     string
		w, h     int
		channels int
		radius   int
		workers  int
	}{
		{"gray small radius", 23, 17, 1, 1, 1},
		{"gray wide radius", 31, 29, 1, 5, 3},
		{"color", 19, 24, 3, 3, 0},
		{"radius larger than image", 6, 5, 3, 8, 2},
		{"single column", 1, 12, 1, 2, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := randomImage(t, tt.w, tt.h, tt.channels, uint64(tt.w*tt.h+tt.radius))
			k, err := NewDiscKernel(tt.radius)
			if err != nil {
				t.Fatal(err)
			}
			got, err := Convolve(context.Background(), img, k, tt.workers)
			if err != nil {
				t.Fatalf("Convolve() error: %v", err)
			}
			want := convolveNaive(img, k)
			if got.Width != want.Width || got.Height != want.Height || got.Channels != want.Channels {
				t.Fatalf("shape = %dx%dx%d, want %dx%dx%d",
					got.Width, got.Height, got.Channels, want.Width, want.Height, want.Channels)
			}
			for i := range got.Pix {
				d := int(got.Pix[i]) - int(want.Pix[i])
				if d < -1 || d > 1 {
					t.Fatalf("sample %d = %d, want %d (±1)", i, got.Pix[i], want.Pix[i])
				}
			}
		})
	}
}

func TestConvolveUniformIsIdentity(t *testing.T) {
	for _, v := range []uint8{0, 1, 128, 255} {
		img, err := Uniform(40, 30, OrderBGR, v, v/2, 255-v)
		if err != nil {
			t.Fatal(err)
		}
		k, _ := NewDiscKernel(7)
		got, err := Convolve(context.Background(), img, k, 0)
		if err != nil {
			t.Fatal(err)
		}
		if got.Order != OrderBGR {
			t.Errorf("Order = %v, want bgr", got.Order)
		}
		for i := range got.Pix {
			if got.Pix[i] != img.Pix[i] {
				t.Fatalf("v=%d: sample %d = %d, want %d", v, i, got.Pix[i], img.Pix[i])
			}
		}
	}
}

func TestConvolveCancelled(t *testing.T) {
	img := randomImage(t, 50, 50, 1, 1)
	k, _ := NewDiscKernel(3)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Convolve(ctx, img, k, 2); err == nil {
		t.Error("Convolve() with cancelled context should fail")
	}
}

func TestReflect101(t *testing.T) {
	tests := []struct {
		i, n, want int
	}{
		{0, 5, 0},
		{4, 5, 4},
		{-1, 5, 1},
		{-2, 5, 2},
		{5, 5, 3},
		{6, 5, 2},
		{-9, 5, 1},
		{-1, 2, 1},
		{2, 2, 0},
		{3, 2, 1},
		{7, 1, 0},
		{-3, 1, 0},
	}
	for _, tt := range tests {
		if got := reflect101(tt.i, tt.n); got != tt.want {
			t.Errorf("reflect101(%d, %d) = %d, want %d", tt.i, tt.n, got, tt.want)
		}
	}
}

func TestClampSample(t *testing.T) {
	tests := []struct {
		v    float64
		want uint8
	}{
		{0.5, 0},
		{1.5, 2},
		{2.5, 2},
		{3.5, 4},
		{127.49, 127},
		{254.5, 254},
		{-1, 0},
		{-0.5, 0},
		{300, 255},
	}
	for _, tt := range tests {
		if got := clampSample(tt.v); got != tt.want {
			t.Errorf("clampSample(%v) = %d, want %d", tt.v, got, tt.want)
		}
	}
}
