// Package pipeline provides the decode → halftone → encode pipeline shared by
// the CLI and the HTTP server.
//
// By centralizing this logic, both entry points validate options the same
// way, hit the same artifact cache and emit the same observability events.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Request{
//	    Source:  data,
//	    Format:  sink.SVGTarget,
//	    Options: pipeline.DefaultOptions(),
//	})
//	if err != nil {
//	    return err
//	}
//	os.Stdout.Write(result.Artifact)
//
// Or render one file to another, committing the output atomically:
//
//	result, err := runner.RenderFile(ctx, "in.jpg", "out.svg", opts)
package pipeline

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/hexhalftone/pkg/cache"
	errs "github.com/matzehuels/hexhalftone/pkg/errors"
	"github.com/matzehuels/hexhalftone/pkg/halftone"
	"github.com/matzehuels/hexhalftone/pkg/render/sink"
)

// =============================================================================
// Options - Halftone Configuration
// =============================================================================

// Options contains the halftone parameters.
// It decodes from TOML config files and JSON request bodies.
type Options struct {
	// Radius is the outer radius R of a lattice cell in pixels.
	Radius int `toml:"radius" json:"radius"`

	// Threshold suppresses dots whose radius would not exceed it.
	Threshold int `toml:"threshold" json:"threshold"`

	// ColorMode fills dots with the sampled color instead of white.
	ColorMode bool `toml:"color" json:"color"`

	// Workers bounds the convolution goroutines; 0 uses GOMAXPROCS.
	Workers int `toml:"workers" json:"workers,omitempty"`
}

// DefaultOptions returns radius 10, threshold 0 and color mode on.
func DefaultOptions() Options {
	return Options{
		Radius:    halftone.DefaultRadius,
		Threshold: halftone.DefaultThreshold,
		ColorMode: halftone.DefaultColorMode,
	}
}

// Validate checks the options before any work is done.
func (o Options) Validate() error {
	if err := errs.ValidateRadius(o.Radius); err != nil {
		return err
	}
	if o.Workers < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "workers must not be negative, got %d", o.Workers)
	}
	return nil
}

// ArtifactKeyOpts returns the cache key options for rendering to format.
// Workers is left out: it changes speed, not output.
func (o Options) ArtifactKeyOpts(format sink.Target) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Radius:    o.Radius,
		Threshold: o.Threshold,
		ColorMode: o.ColorMode,
		Format:    format.String(),
	}
}

// halftoneOptions converts o into halftone.New options.
func (o Options) halftoneOptions(logger *log.Logger) []halftone.Option {
	return []halftone.Option{
		halftone.WithRadius(o.Radius),
		halftone.WithThreshold(o.Threshold),
		halftone.WithColorMode(o.ColorMode),
		halftone.WithWorkers(o.Workers),
		halftone.WithLogger(logger),
	}
}

// LoadOptions decodes the TOML file at path over DefaultOptions.
//
//	radius = 12
//	threshold = 2
//	color = false
//
// Keys that are not options are rejected so a typo cannot silently fall
// back to a default.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	if err := errs.ValidatePath(path); err != nil {
		return opts, err
	}

	md, err := toml.DecodeFile(path, &opts)
	if errors.Is(err, fs.ErrNotExist) {
		return opts, errs.Wrap(errs.ErrCodeFileNotFound, err, "config %s does not exist", path)
	}
	if err != nil {
		return opts, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse config %s", path)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return opts, errs.New(errs.ErrCodeInvalidConfig, "config %s: unknown keys: %s",
			path, strings.Join(keys, ", "))
	}

	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}
