package halftone

import (
	"context"
	"image"
	"image/color"
	"io"
	"time"

	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/hexhalftone/pkg/errors"
)

// Defaults for the halftone parameters.
const (
	DefaultRadius    = 10
	DefaultThreshold = 0
	DefaultColorMode = true
)

// Dot is one emitted halftone dot. Radius is always above the threshold.
type Dot struct {
	Center image.Point
	Radius float64
	Color  color.RGBA
}

// Drawer receives dots in canonical row-major order.
type Drawer interface {
	Draw(d Dot)
}

// DrawerFunc adapts a function to the Drawer interface.
type DrawerFunc func(Dot)

// Draw calls f(d).
func (f DrawerFunc) Draw(d Dot) { f(d) }

// Stats summarises one halftone run.
type Stats struct {
	Points           int           // lattice points visited
	Dots             int           // dots handed to the drawer
	SkippedBlack     int           // points with a zero sample
	SkippedThreshold int           // points whose radius was at or below the threshold
	ConvolveTime     time.Duration // time spent in Convolve
	SampleTime       time.Duration // time spent walking the lattice
}

// Option configures a Halftoner.
type Option func(*Halftoner)

// WithRadius sets the outer lattice radius R.
func WithRadius(r int) Option { return func(h *Halftoner) { h.radius = r } }

// WithThreshold sets the largest suppressed dot radius.
func WithThreshold(t int) Option { return func(h *Halftoner) { h.threshold = t } }

// WithColorMode selects sampled colors (true) or plain white dots (false).
func WithColorMode(on bool) Option { return func(h *Halftoner) { h.colorMode = on } }

// WithWorkers bounds the goroutines used by the convolution; 0 means GOMAXPROCS.
func WithWorkers(n int) Option { return func(h *Halftoner) { h.workers = n } }

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option { return func(h *Halftoner) { h.logger = l } }

// Halftoner runs the sampling pipeline with a fixed configuration.
// It holds no per-run state and may be reused.
type Halftoner struct {
	radius    int
	threshold int
	colorMode bool
	workers   int
	logger    *log.Logger
}

// New validates the options. The kernel is built per Run, once the lattice
// is known to be non-empty.
func New(opts ...Option) (*Halftoner, error) {
	h := &Halftoner{
		radius:    DefaultRadius,
		threshold: DefaultThreshold,
		colorMode: DefaultColorMode,
	}
	for _, opt := range opts {
		opt(h)
	}
	if err := errs.ValidateRadius(h.radius); err != nil {
		return nil, err
	}
	if h.workers < 0 {
		return nil, errs.New(errs.ErrCodeInvalidConfig, "workers must not be negative, got %d", h.workers)
	}
	if h.logger == nil {
		h.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return h, nil
}

// Radius returns the configured outer radius.
func (h *Halftoner) Radius() int { return h.radius }

// Threshold returns the configured threshold.
func (h *Halftoner) Threshold() int { return h.threshold }

// ColorMode reports whether dots take the sampled color.
func (h *Halftoner) ColorMode() bool { return h.colorMode }

// Grid returns the sampling lattice for a width x height image.
func (h *Halftoner) Grid(width, height int) Grid {
	return Grid{Radius: h.radius, Width: width, Height: height}
}

// Mapper returns the radius mapper for the configured radius and threshold.
func (h *Halftoner) Mapper() RadiusMapper {
	return RadiusMapper{Inner: InnerRadius(h.radius), Threshold: h.threshold}
}

// Run filters src, walks the lattice and hands every dot to d.
//
// With color mode off a color source is first reduced to luminance, so the
// dot sizes follow perceived brightness; with color mode on they follow the
// value channel of the filtered colors.
func (h *Halftoner) Run(ctx context.Context, src *Image, d Drawer) (Stats, error) {
	var stats Stats

	grid := h.Grid(src.Width, src.Height)
	if grid.Len() == 0 {
		h.logger.Debug("lattice is empty", "width", src.Width, "height", src.Height, "radius", h.radius)
		return stats, ctx.Err()
	}
	kernel, err := NewDiscKernel(h.radius)
	if err != nil {
		return stats, err
	}

	work := src
	if !h.colorMode {
		work = Grayscale(src)
	}

	start := time.Now()
	convolved, err := Convolve(ctx, work, kernel, h.workers)
	if err != nil {
		return stats, err
	}
	stats.ConvolveTime = time.Since(start)
	h.logger.Debug("convolved source",
		"width", src.Width,
		"height", src.Height,
		"channels", work.Channels,
		"kernel", kernel.Size(),
		"support", kernel.Support(),
		"duration", stats.ConvolveTime)

	start = time.Now()
	value := Value(convolved)
	mapper := h.Mapper()
	colors := ColorSelector{ColorMode: h.colorMode}

	for p := range grid.Points() {
		stats.Points++
		v := value.Pix[p.Y*value.Width+p.X]
		if v == 0 {
			stats.SkippedBlack++
			continue
		}
		r, ok := mapper.Map(v)
		if !ok {
			stats.SkippedThreshold++
			continue
		}
		d.Draw(Dot{Center: p, Radius: r, Color: colors.Select(convolved, p.X, p.Y)})
		stats.Dots++
	}
	if err := ctx.Err(); err != nil {
		return stats, err
	}
	stats.SampleTime = time.Since(start)

	h.logger.Debug("sampled lattice",
		"points", stats.Points,
		"dots", stats.Dots,
		"black", stats.SkippedBlack,
		"below_threshold", stats.SkippedThreshold,
		"duration", stats.SampleTime)
	return stats, nil
}
