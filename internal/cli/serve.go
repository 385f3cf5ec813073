package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hexhalftone/internal/server"
	"github.com/matzehuels/hexhalftone/pkg/cache"
	"github.com/matzehuels/hexhalftone/pkg/pipeline"
)

// redisKeyPrefix scopes keys when the cache is a shared Redis database.
const redisKeyPrefix = appName + ":"

// serveFlags holds flag values for the serve command.
type serveFlags struct {
	addr     string
	redisURL string
	config   string
	noCache  bool
	maxBody  int64
	timeout  time.Duration
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var flags serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the halftone pipeline over HTTP",
		Long: `Serve the halftone pipeline over HTTP.

POST an image to /v1/halftone and receive the rendered artifact. Query
parameters radius, threshold, color and format override the defaults
(which come from --config when given).

Artifacts are cached in Redis when --redis-url is set, otherwise in the
local cache directory.`,
		Example: `  hexhalftone serve --addr :8080
  curl --data-binary @photo.jpg 'localhost:8080/v1/halftone?radius=12&format=png' -o out.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&flags.redisURL, "redis-url", "", "Redis URL for a shared artifact cache (redis://host:6379/0)")
	cmd.Flags().StringVar(&flags.config, "config", "", "TOML file with default halftone options")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().Int64Var(&flags.maxBody, "max-body", server.DefaultMaxBodyBytes, "maximum upload size in bytes")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", server.DefaultRequestTimeout, "per-request render timeout")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, flags serveFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	defaults := pipeline.DefaultOptions()
	if flags.config != "" {
		var err error
		if defaults, err = pipeline.LoadOptions(flags.config); err != nil {
			return err
		}
	}

	var (
		store cache.Cache
		keyer cache.Keyer
	)
	switch {
	case flags.noCache:
		store = cache.NewNullCache()
	case flags.redisURL != "":
		rc, err := cache.NewRedisCache(ctx, flags.redisURL)
		if err != nil {
			return err
		}
		store = rc
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), redisKeyPrefix)
		logger.Debug("using redis cache", "prefix", redisKeyPrefix)
	default:
		var err error
		if store, err = newCache(false); err != nil {
			printWarning("Artifact cache unavailable: %v", err)
			store = cache.NewNullCache()
		}
	}

	runner := pipeline.NewRunner(store, keyer, logger)
	defer runner.Close()

	srv := server.New(runner, logger, server.Config{
		Defaults:       defaults,
		MaxBodyBytes:   flags.maxBody,
		RequestTimeout: flags.timeout,
	})
	printInfo("Serving on %s", flags.addr)
	printDetail("radius %d · threshold %d · color %t", defaults.Radius, defaults.Threshold, defaults.ColorMode)
	return srv.ListenAndServe(ctx, flags.addr)
}
