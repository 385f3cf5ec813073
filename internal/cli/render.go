package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/hexhalftone/pkg/pipeline"
)

// renderFlags holds flag values for the render command.
type renderFlags struct {
	input     string
	output    string
	config    string
	radius    int
	threshold int
	color     bool
	workers   int
	noCache   bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render [input]",
		Short: "Render an image as a hexagonal halftone",
		Long: `Render an image as a hexagonal halftone.

The output format follows the extension of --output: .svg writes a vector
document, .png/.jpg/.gif/.tif/.bmp write a raster image of the same size as
the input. Without --output the result is written next to the input as
<name>_halftone.svg.

Options are read from --config (TOML) first; flags given on the command line
override the file.`,
		Example: `  # Vector output with default settings (radius 10, color)
  hexhalftone render -i photo.jpg -o photo.svg

  # Coarser white dots, dropping the smallest ones
  hexhalftone render -i photo.jpg -o photo.png -r 16 -t 2 --color=false`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if flags.input != "" {
					return fmt.Errorf("input given both as argument and --input")
				}
				flags.input = args[0]
			}
			if flags.input == "" {
				return fmt.Errorf("an input image is required (use --input or pass it as an argument)")
			}
			return c.runRender(cmd, flags)
		},
	}

	bindRenderFlags(cmd.Flags(), &flags)

	return cmd
}

// bindRenderFlags registers the render flags on fs.
func bindRenderFlags(fs *pflag.FlagSet, flags *renderFlags) {
	defaults := pipeline.DefaultOptions()
	fs.StringVarP(&flags.input, "input", "i", "", "input image")
	fs.StringVarP(&flags.output, "output", "o", "", "output file (.svg, .png, .jpg, .gif, .tif, .bmp)")
	fs.StringVar(&flags.config, "config", "", "TOML file with radius, threshold, color and workers")
	fs.IntVarP(&flags.radius, "radius", "r", defaults.Radius, "outer lattice radius in pixels")
	fs.IntVarP(&flags.threshold, "threshold", "t", defaults.Threshold, "drop dots whose radius is at most this")
	fs.BoolVar(&flags.color, "color", defaults.ColorMode, "fill dots with the sampled color (false: white on luminance)")
	fs.IntVar(&flags.workers, "workers", 0, "convolution goroutines (0: one per CPU)")
	fs.BoolVar(&flags.noCache, "no-cache", false, "disable the artifact cache")
}

func (c *CLI) runRender(cmd *cobra.Command, flags renderFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	opts, err := resolveOptions(cmd.Flags(), flags)
	if err != nil {
		return err
	}

	output := flags.output
	if output == "" {
		output = defaultOutput(flags.input)
	}

	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	logger.Debug("rendering",
		"input", flags.input,
		"output", output,
		"radius", opts.Radius,
		"threshold", opts.Threshold,
		"color", opts.ColorMode)

	prog := newProgress(logger)
	res, err := runner.RenderFile(ctx, flags.input, output, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d dots", res.Dots))

	printSuccess("Rendered %s", filepath.Base(flags.input))
	printStats(res.Width, res.Height, res.Dots, opts.Radius, opts.Threshold, res.CacheHit)
	printFile(output)
	return nil
}

// resolveOptions loads the config file (if any) over the defaults and then
// applies every flag the user set explicitly.
func resolveOptions(fs *pflag.FlagSet, flags renderFlags) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()
	if flags.config != "" {
		var err error
		if opts, err = pipeline.LoadOptions(flags.config); err != nil {
			return opts, err
		}
	}

	if fs.Changed("radius") {
		opts.Radius = flags.radius
	}
	if fs.Changed("threshold") {
		opts.Threshold = flags.threshold
	}
	if fs.Changed("color") {
		opts.ColorMode = flags.color
	}
	if fs.Changed("workers") {
		opts.Workers = flags.workers
	}
	return opts, opts.Validate()
}

// defaultOutput derives "<dir>/<name>_halftone.svg" from the input path.
func defaultOutput(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + "_halftone.svg"
}
