package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/murzabaevb/levelplot/pkg/pipeline"
)

// inspectCommand creates the inspect command for examining parsed datasets.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		noCache bool
		refresh bool
		format  string
		sheet   string
	)

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Show the parsed dataset without rendering",
		Long: `Show the parsed dataset without rendering.

The inspect command loads and validates a data file, then prints the
charts, row counts, legend color assignments, and the x-range that a
plot of this file would cover. Useful for checking how a file parses
before rendering it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{
				Source:       args[0],
				SourceFormat: format,
				Sheet:        sheet,
				Refresh:      refresh,
			}
			return c.runInspect(cmd.Context(), opts, noCache)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "re-read the input even if cached")
	cmd.Flags().StringVar(&format, "input-format", "", "input format override: csv, xlsx, json, yaml")
	cmd.Flags().StringVar(&sheet, "sheet", "", "xlsx sheet name (default: first sheet)")

	return cmd
}

// runInspect loads the dataset and prints its structure.
func (c *CLI) runInspect(ctx context.Context, opts pipeline.Options, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	logger := loggerFromContext(ctx)
	opts.Logger = logger

	prog := newProgress(logger)
	ds, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Loaded %d rows", ds.RowCount()))

	xMin, xMax := ds.XExtent()

	fmt.Println(StyleTitle.Render(opts.Source))
	printNewline()
	printKeyValue("Charts", fmt.Sprintf("%d", len(ds.Charts)))
	printKeyValue("Rows", fmt.Sprintf("%d", ds.RowCount()))
	printKeyValue("X extent", fmt.Sprintf("[%g, %g]", xMin, xMax))
	printNewline()

	for _, chart := range ds.Charts {
		printInfo("%s (%d rows)", StyleHighlight.Render(chart.ID), len(chart.Rows))
	}
	printNewline()

	colors := ds.Colors()
	printDetail("Legend colors:")
	for _, legend := range ds.Legends {
		printLegend(legend, colors[legend])
	}
	printNewline()
	printNextStep("Render", "levelplot plot "+opts.Source)

	return nil
}
