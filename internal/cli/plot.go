package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/murzabaevb/levelplot/pkg/pipeline"
)

// plotCommand creates the plot command for rendering plots from a data file.
func (c *CLI) plotCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		noCache    bool
		configFile string
		xMin       float64
		xMax       float64
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "plot [file]",
		Short: "Render signal level plots from a data file",
		Long: `Render signal level plots from a data file.

The plot command reads rows (chart, legend, start, stop, level, exclude)
from a CSV, XLSX, JSON, or YAML file, stacks one subplot per chart over a
shared x-axis, separates overlapping segments vertically, and writes the
result as SVG, PNG, PDF, or JSON. The input may be a local path or an
http(s) URL.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Source = args[0]
			opts.Formats = parseFormats(formatsStr)
			if cmd.Flags().Changed("x-min") || cmd.Flags().Changed("x-max") {
				opts.XRange = []float64{xMin, xMax}
			}
			if err := c.applyConfig(&opts, configFile); err != nil {
				return err
			}
			return c.runPlot(cmd.Context(), opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "re-read the input even if cached")
	cmd.Flags().StringVar(&configFile, "config", "", "config file (default: ~/.config/levelplot/config.toml)")
	cmd.Flags().StringVar(&opts.SourceFormat, "input-format", "", "input format override: csv, xlsx, json, yaml")
	cmd.Flags().StringVar(&opts.Sheet, "sheet", "", "xlsx sheet name (default: first sheet)")

	// Layout flags
	cmd.Flags().Float64Var(&xMin, "x-min", 0, "x-axis minimum (default: auto)")
	cmd.Flags().Float64Var(&xMax, "x-max", 0, "x-axis maximum (default: auto)")
	cmd.Flags().Float64Var(&opts.SeparationStep, "separation", 0, "vertical offset between overlapping segments (default: 0.3)")
	cmd.Flags().Float64Var(&opts.CollisionThreshold, "threshold", 0, "level distance below which overlapping segments separate (default: 0.5)")

	// Render flags
	cmd.Flags().StringVar(&opts.Style, "style", "", "visual style: simple (default), dark")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "figure width in pixels (default: 1200)")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "figure height in pixels (default: 1000)")
	cmd.Flags().Float64Var(&opts.LineWidth, "line-width", 0, "segment stroke width (default: 3)")
	cmd.Flags().StringVar(&opts.TitlePrefix, "title-prefix", "", "prefix for chart titles")
	cmd.Flags().StringVar(&opts.XAxisTitle, "x-title", "", "shared x-axis title (default: Frequency)")
	cmd.Flags().StringVar(&opts.YAxisTitle, "y-title", "", "per-chart y-axis title (default: Level)")
	cmd.Flags().Float64Var(&opts.PNGScale, "png-scale", 0, "PNG rasterization scale factor (default: 2)")

	return cmd
}

// applyConfig loads the config file and applies it onto opts.
// An explicit --config path must exist; the default path may be absent.
func (c *CLI) applyConfig(opts *pipeline.Options, configFile string) error {
	path := configFile
	if path == "" {
		var err error
		path, err = configPath()
		if err != nil {
			return nil // no home dir, skip config
		}
	} else if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}
	cfg, err := loadConfig(path)
	if err != nil {
		return err
	}
	cfg.apply(opts)
	return nil
}

// runPlot executes the pipeline and writes the rendered artifacts.
func (c *CLI) runPlot(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	logger := loggerFromContext(ctx)
	opts.Logger = logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Plotting %s...", opts.Source))
	spinner.Start()

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Plot failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Rendered %d charts", result.Stats.ChartCount))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, opts.Source, output)
	if err != nil {
		return err
	}

	printSuccess("Plot complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.ChartCount, result.Stats.RowCount, result.CacheInfo.RenderHit)
	return nil
}

// writeArtifacts writes each rendered format to disk and returns the paths.
// With a single format, output (if set) is used verbatim; otherwise paths
// are derived from the base path plus the format extension.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	if len(formats) == 1 && output != "" {
		if err := os.WriteFile(output, artifacts[formats[0]], 0o644); err != nil {
			return nil, fmt.Errorf("write output %s: %w", output, err)
		}
		return []string{output}, nil
	}

	base := basePath(output, input)
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := base + "." + format
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return nil, fmt.Errorf("write output %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
