package cli

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/murzabaevb/levelplot/pkg/errors"
	"github.com/murzabaevb/levelplot/pkg/pipeline"
)

// Config holds persistent CLI defaults loaded from config.toml.
// All fields are optional; unset fields fall back to pipeline defaults.
//
// Example config (~/.config/levelplot/config.toml):
//
//	style = "dark"
//	width = 1600
//	height = 1200
//	x_axis_title = "Frequency (MHz)"
//	separation_step = 0.25
type Config struct {
	Style              string  `toml:"style"`
	Width              float64 `toml:"width"`
	Height             float64 `toml:"height"`
	LineWidth          float64 `toml:"line_width"`
	TitlePrefix        string  `toml:"title_prefix"`
	XAxisTitle         string  `toml:"x_axis_title"`
	YAxisTitle         string  `toml:"y_axis_title"`
	SeparationStep     float64 `toml:"separation_step"`
	CollisionThreshold float64 `toml:"collision_threshold"`
	PNGScale           float64 `toml:"png_scale"`
}

// loadConfig reads the config file at path. A missing file is not an
// error; it returns an empty config so defaults apply.
func loadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	return cfg, nil
}

// apply copies config values onto options, but only for fields the user
// has not already set via flags. Flags always win over config.
func (cfg Config) apply(opts *pipeline.Options) {
	if opts.Style == "" && cfg.Style != "" {
		opts.Style = cfg.Style
	}
	if opts.Width == 0 && cfg.Width != 0 {
		opts.Width = cfg.Width
	}
	if opts.Height == 0 && cfg.Height != 0 {
		opts.Height = cfg.Height
	}
	if opts.LineWidth == 0 && cfg.LineWidth != 0 {
		opts.LineWidth = cfg.LineWidth
	}
	if opts.TitlePrefix == "" && cfg.TitlePrefix != "" {
		opts.TitlePrefix = cfg.TitlePrefix
	}
	if opts.XAxisTitle == "" && cfg.XAxisTitle != "" {
		opts.XAxisTitle = cfg.XAxisTitle
	}
	if opts.YAxisTitle == "" && cfg.YAxisTitle != "" {
		opts.YAxisTitle = cfg.YAxisTitle
	}
	if opts.SeparationStep == 0 && cfg.SeparationStep != 0 {
		opts.SeparationStep = cfg.SeparationStep
	}
	if opts.CollisionThreshold == 0 && cfg.CollisionThreshold != 0 {
		opts.CollisionThreshold = cfg.CollisionThreshold
	}
	if opts.PNGScale == 0 && cfg.PNGScale != 0 {
		opts.PNGScale = cfg.PNGScale
	}
}
