// Package cli implements the levelplot command-line interface.
//
// This package provides commands for rendering signal level plots from
// tabular data files, inspecting parsed datasets, serving the render API
// over HTTP, and managing the local cache. The CLI is built using cobra
// and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - plot: Render SVG, PNG, PDF, or JSON plots from a data file
//   - inspect: Show the parsed dataset (charts, rows, legend colors)
//   - serve: Run the HTTP render API
//   - cache: Manage the local render cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/murzabaevb/levelplot/pkg/buildinfo"
	"github.com/murzabaevb/levelplot/pkg/cache"
	"github.com/murzabaevb/levelplot/pkg/fetch"
	"github.com/murzabaevb/levelplot/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "levelplot"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "levelplot",
		Short:        "Levelplot renders signal levels as horizontal line plots",
		Long:         `Levelplot is a CLI tool for plotting interval-style signal data (frequency bands, schedules, level occupancy) as horizontal line segments with automatic overlap separation and stable legend colors.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		// Attach the logger to the context so command bodies can use
		// loggerFromContext without holding a *CLI.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.plotCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		printWarning("Cache directory unavailable, caching disabled")
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/levelplot/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configPath returns the default config file path using XDG standard
// (~/.config/levelplot/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input; URL inputs map to
// a local name derived from the URL path so output never lands outside the
// working directory.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
// This is used when generating multiple files (e.g., bands.svg, bands.png).
func basePath(output, input string) string {
	if output == "" {
		if fetch.IsURL(input) {
			input = remoteBaseName(input)
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// remoteBaseName turns a source URL into a local file name using the last
// segment of the URL path, falling back to "plot" when the URL has no
// usable path.
func remoteBaseName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "plot"
	}
	base := path.Base(u.Path)
	if base == "." || base == "/" || base == "" {
		return "plot"
	}
	return base
}
