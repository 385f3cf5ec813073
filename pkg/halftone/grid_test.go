package halftone

import (
	"image"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInnerRadius(t *testing.T) {
	tests := []struct{ r, want int }{
		{1, 1},
		{2, 2},
		{3, 3},
		{4, 4},
		{7, 7},
		{10, 9},
		{20, 18},
	}
	for _, tt := range tests {
		if got := InnerRadius(tt.r); got != tt.want {
			t.Errorf("InnerRadius(%d) = %d, want %d", tt.r, got, tt.want)
		}
	}
}

func TestGridCounts(t *testing.T) {
	tests := []struct {
		name       string
		g          Grid
		rows, cols int
	}{
		{"300 square r10", Grid{Radius: 10, Width: 300, Height: 300}, 33, 10},
		{"too narrow", Grid{Radius: 10, Width: 29, Height: 300}, 33, 0},
		{"too short", Grid{Radius: 10, Width: 300, Height: 8}, 0, 10},
		{"r1", Grid{Radius: 1, Width: 7, Height: 4}, 4, 2},
		{"zero value", Grid{}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.g.Rows(); got != tt.rows {
				t.Errorf("Rows() = %d, want %d", got, tt.rows)
			}
			if got := tt.g.Cols(); got != tt.cols {
				t.Errorf("Cols() = %d, want %d", got, tt.cols)
			}
			if got := len(slices.Collect(tt.g.Points())); got != tt.rows*tt.cols {
				t.Errorf("len(Points()) = %d, want %d", got, tt.rows*tt.cols)
			}
		})
	}
}

func TestGridPointsHexOffset(t *testing.T) {
	g := Grid{Radius: 10, Width: 90, Height: 27}
	want := []image.Point{
		{10, 0}, {40, 0}, {70, 0},
		{25, 9}, {55, 9}, {85, 9},
		{10, 18}, {40, 18}, {70, 18},
	}
	got := slices.Collect(g.Points())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Points() mismatch (-want +got):\n%s", diff)
	}
}

func TestGridPointsOddRadiusFloors(t *testing.T) {
	g := Grid{Radius: 3, Width: 18, Height: 6}
	// Odd rows shift by 4.5 which floors to whole pixels.
	want := []image.Point{
		{3, 0}, {12, 0},
		{7, 3}, {16, 3},
	}
	got := slices.Collect(g.Points())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Points() mismatch (-want +got):\n%s", diff)
	}
}

func TestGridPointsInBounds(t *testing.T) {
	for r := 1; r <= 15; r++ {
		for _, size := range [][2]int{{100, 80}, {31, 257}, {3 * r, InnerRadius(r)}} {
			g := Grid{Radius: r, Width: size[0], Height: size[1]}
			for p := range g.Points() {
				if !p.In(image.Rect(0, 0, g.Width, g.Height)) {
					t.Fatalf("r=%d %dx%d: point %v out of bounds", r, g.Width, g.Height, p)
				}
			}
		}
	}
}

func TestGridPointsRestartableAndPure(t *testing.T) {
	g := Grid{Radius: 7, Width: 211, Height: 143}
	first := slices.Collect(g.Points())
	second := slices.Collect(g.Points())
	third := slices.Collect(Grid{Radius: 7, Width: 211, Height: 143}.Points())
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second pass differs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(first, third); diff != "" {
		t.Errorf("equal grid differs (-first +third):\n%s", diff)
	}
	if len(first) != g.Len() {
		t.Errorf("len = %d, want Len() %d", len(first), g.Len())
	}
}

func TestGridPointsRowMajor(t *testing.T) {
	g := Grid{Radius: 4, Width: 120, Height: 60}
	var prev image.Point
	n := 0
	for p := range g.Points() {
		if n > 0 && (p.Y < prev.Y || (p.Y == prev.Y && p.X <= prev.X)) {
			t.Fatalf("point %d %v does not follow %v in row-major order", n, p, prev)
		}
		prev = p
		n++
	}
}

func TestGridPointsEarlyBreak(t *testing.T) {
	g := Grid{Radius: 5, Width: 200, Height: 200}
	n := 0
	for range g.Points() {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Errorf("visited %d points, want 3", n)
	}
}
