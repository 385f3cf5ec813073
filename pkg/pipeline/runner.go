package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hexhalftone/pkg/cache"
	"github.com/matzehuels/hexhalftone/pkg/codec"
	errs "github.com/matzehuels/hexhalftone/pkg/errors"
	"github.com/matzehuels/hexhalftone/pkg/halftone"
	"github.com/matzehuels/hexhalftone/pkg/observability"
	"github.com/matzehuels/hexhalftone/pkg/render/sink"
)

const keyTypeArtifact = "artifact"

// Request is one render: an encoded source image, the output format and the
// halftone parameters.
type Request struct {
	Source  []byte
	Format  sink.Target
	Options Options
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Artifact is the encoded output (SVG document or raster file).
	Artifact []byte

	Format sink.Target

	// Width and Height are the source dimensions after EXIF orientation.
	Width  int
	Height int

	// Dots is the number of dots in the artifact.
	Dots int

	// Stats holds timings; it is zero on a cache hit.
	Stats Stats

	// CacheHit reports whether Artifact came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Halftone   halftone.Stats
	DecodeTime time.Duration
	RenderTime time.Duration
	EncodeTime time.Duration
}

// cachedArtifact is the value stored in the cache for one artifact.
type cachedArtifact struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Dots   int    `json:"dots"`
	Data   []byte `json:"data"`
}

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger, so multiple
// goroutines can safely use the same Runner with different requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute validates req, serves it from the cache when possible and otherwise
// decodes, halftones and encodes the source. Fresh artifacts are cached.
func (r *Runner) Execute(ctx context.Context, req Request) (*Result, error) {
	if err := req.Options.Validate(); err != nil {
		return nil, err
	}
	if len(req.Source) == 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "source image is empty")
	}

	key := r.Keyer.ArtifactKey(cache.Hash(req.Source), req.Options.ArtifactKeyOpts(req.Format))
	if res, ok := r.lookup(ctx, key, req.Format); ok {
		r.Logger.Debug("artifact cache hit", "format", req.Format, "bytes", len(res.Artifact))
		return res, nil
	}

	res := &Result{Format: req.Format}

	var img *halftone.Image
	err := runStage(ctx, observability.StageDecode, &res.Stats.DecodeTime, func() error {
		var err error
		img, err = codec.Decode(req.Source)
		return err
	})
	if err != nil {
		return nil, err
	}
	res.Width, res.Height = img.Width, img.Height

	h, err := halftone.New(req.Options.halftoneOptions(r.Logger)...)
	if err != nil {
		return nil, err
	}
	renderer := sink.New(req.Format, img.Width, img.Height)
	err = runStage(ctx, observability.StageHalftone, &res.Stats.RenderTime, func() error {
		stats, err := h.Run(ctx, img, renderer)
		res.Stats.Halftone = stats
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("halftone: %w", err)
	}
	res.Dots = renderer.Count()
	observability.Pipeline().OnDots(ctx, res.Stats.Halftone.Points, res.Dots)

	var buf bytes.Buffer
	err = runStage(ctx, observability.StageEncode, &res.Stats.EncodeTime, func() error {
		if err := renderer.Encode(&buf); err != nil {
			return errs.Wrap(errs.ErrCodeInternal, err, "encode %s", req.Format)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	res.Artifact = buf.Bytes()

	r.Logger.Info("rendered halftone",
		"size", fmt.Sprintf("%dx%d", res.Width, res.Height),
		"format", req.Format,
		"dots", res.Dots,
		"duration", res.Stats.DecodeTime+res.Stats.RenderTime+res.Stats.EncodeTime)

	r.store(ctx, key, res)
	return res, nil
}

// RenderFile renders the image at in and writes the artifact to out. The
// output format follows the extension of out. The output is committed
// atomically, so a failed run leaves no file behind.
func (r *Runner) RenderFile(ctx context.Context, in, out string, opts Options) (*Result, error) {
	format, err := sink.TargetFromPath(out)
	if err != nil {
		return nil, err
	}
	if err := errs.ValidatePath(out); err != nil {
		return nil, err
	}

	source, err := codec.ReadFile(in)
	if err != nil {
		return nil, err
	}

	res, err := r.Execute(ctx, Request{Source: source, Format: format, Options: opts})
	if err != nil {
		return nil, err
	}

	var writeTime time.Duration
	err = runStage(ctx, observability.StageWrite, &writeTime, func() error {
		return codec.WriteFileAtomic(out, res.Artifact, 0o644)
	})
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("wrote artifact", "path", out, "bytes", len(res.Artifact), "duration", writeTime)
	return res, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// lookup returns the cached artifact for key. Cache errors and undecodable
// entries count as misses.
func (r *Runner) lookup(ctx context.Context, key string, format sink.Target) (*Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache lookup failed", "error", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
		return nil, false
	}

	var entry cachedArtifact
	if err := json.Unmarshal(data, &entry); err != nil {
		observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
	return &Result{
		Artifact: entry.Data,
		Format:   format,
		Width:    entry.Width,
		Height:   entry.Height,
		Dots:     entry.Dots,
		CacheHit: true,
	}, true
}

// store caches res under key. Failures are logged and otherwise ignored.
func (r *Runner) store(ctx context.Context, key string, res *Result) {
	data, err := json.Marshal(cachedArtifact{
		Width:  res.Width,
		Height: res.Height,
		Dots:   res.Dots,
		Data:   res.Artifact,
	})
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
		r.Logger.Warn("cache store failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyTypeArtifact, len(data))
}

// runStage times fn and reports it to the pipeline hooks.
func runStage(ctx context.Context, stage string, elapsed *time.Duration, fn func() error) error {
	hooks := observability.Pipeline()
	hooks.OnStageStart(ctx, stage)
	start := time.Now()
	err := fn()
	*elapsed = time.Since(start)
	hooks.OnStageComplete(ctx, stage, *elapsed, err)
	return err
}
