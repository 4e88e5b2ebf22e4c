// Package pipeline provides the core plotting pipeline for levelplot.
//
// This package implements the complete load → layout → render pipeline that
// can be used by CLI and server components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Parse and validate signal rows from a tabular or structured source
//  2. Layout: Compute segment positions with vertical overlap separation
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Source:  "bands.csv",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Load only
//	ds, err := runner.Load(ctx, opts)
//
//	// Layout with existing dataset
//	l, err := runner.ComputeLayout(ctx, ds, opts)
//
//	// Render with existing layout
//	artifacts, err := runner.Render(ctx, l, opts)
package pipeline

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/murzabaevb/levelplot/pkg/cache"
	"github.com/murzabaevb/levelplot/pkg/errors"
	"github.com/murzabaevb/levelplot/pkg/plot/layout"
	"github.com/murzabaevb/levelplot/pkg/plot/sink"
	"github.com/murzabaevb/levelplot/pkg/plot/styles"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultWidth is the default figure width in pixels.
	DefaultWidth = 1200.0

	// DefaultHeight is the default figure height in pixels.
	DefaultHeight = 1000.0

	// DefaultLineWidth is the default segment stroke width in pixels.
	DefaultLineWidth = 3.0

	// DefaultXAxisTitle is the shared x-axis title.
	DefaultXAxisTitle = "Frequency"

	// DefaultYAxisTitle is the per-chart y-axis title.
	DefaultYAxisTitle = "Level"

	// DefaultStyle is the default visual style.
	DefaultStyle = "simple"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidStyles is the set of supported visual styles.
var ValidStyles = map[string]bool{
	"simple": true,
	"dark":   true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the plotting pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Source       string `json:"source,omitempty"`        // input file path or http(s) URL
	SourceFormat string `json:"source_format,omitempty"` // input format override (csv, xlsx, json, yaml)
	Sheet        string `json:"sheet,omitempty"`         // xlsx sheet name; empty means first
	Raw          []byte `json:"raw,omitempty"`           // raw input bytes (server use; requires SourceFormat)
	Refresh      bool   `json:"refresh,omitempty"`       // bypass the dataset cache

	// Layout options
	XRange             []float64 `json:"x_range,omitempty"` // explicit [min, max]; empty means auto
	SeparationStep     float64   `json:"separation_step,omitempty"`
	CollisionThreshold float64   `json:"collision_threshold,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Style       string   `json:"style,omitempty"`
	Width       float64  `json:"width,omitempty"`
	Height      float64  `json:"height,omitempty"`
	LineWidth   float64  `json:"line_width,omitempty"`
	TitlePrefix string   `json:"title_prefix,omitempty"`
	XAxisTitle  string   `json:"x_axis_title,omitempty"`
	YAxisTitle  string   `json:"y_axis_title,omitempty"`
	PNGScale    float64  `json:"png_scale,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that an output format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid output format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all output formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return errors.New(errors.ErrCodeInvalidStyle,
			"invalid style: %q (must be one of: simple, dark)", style)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for loading.
func (o *Options) ValidateForLoad() error {
	if o.Source == "" && len(o.Raw) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "source path or raw input is required")
	}
	if len(o.Raw) > 0 && o.SourceFormat == "" {
		return errors.New(errors.ErrCodeInvalidInput, "source_format is required with raw input")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.SeparationStep == 0 {
		o.SeparationStep = layout.DefaultSeparationStep
	}
	if o.CollisionThreshold == 0 {
		o.CollisionThreshold = layout.DefaultCollisionThreshold
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if len(o.XRange) == 0 {
		return nil
	}
	if len(o.XRange) != 2 {
		return errors.New(errors.ErrCodeInvalidRange,
			"x_range must have exactly two values, got %d", len(o.XRange))
	}
	return errors.ValidateXRange(o.XRange[0], o.XRange[1])
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.LineWidth == 0 {
		o.LineWidth = DefaultLineWidth
	}
	if o.XAxisTitle == "" {
		o.XAxisTitle = DefaultXAxisTitle
	}
	if o.YAxisTitle == "" {
		o.YAxisTitle = DefaultYAxisTitle
	}
	if o.PNGScale == 0 {
		o.PNGScale = 2.0
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateStyle(o.Style)
}

// LayoutOptions converts the options into layout build options.
func (o *Options) LayoutOptions() []layout.Option {
	opts := []layout.Option{
		layout.WithSeparationStep(o.SeparationStep),
		layout.WithCollisionThreshold(o.CollisionThreshold),
	}
	if len(o.XRange) == 2 {
		opts = append(opts, layout.WithXRange(o.XRange[0], o.XRange[1]))
	}
	return opts
}

// SVGOptions converts the options into SVG render options.
func (o *Options) SVGOptions() []sink.SVGOption {
	return []sink.SVGOption{
		sink.WithStyle(o.RenderStyle()),
		sink.WithSize(o.Width, o.Height),
		sink.WithLineWidth(o.LineWidth),
		sink.WithTitlePrefix(o.TitlePrefix),
		sink.WithAxisTitles(o.XAxisTitle, o.YAxisTitle),
	}
}

// RenderStyle resolves the configured style name.
func (o *Options) RenderStyle() styles.Style {
	if o.Style == "dark" {
		return styles.Dark{}
	}
	return styles.Simple{}
}

// DatasetKeyOpts returns cache key options for dataset loading.
func (o *Options) DatasetKeyOpts() cache.DatasetKeyOpts {
	return cache.DatasetKeyOpts{
		Format: o.SourceFormat,
		Sheet:  o.Sheet,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	opts := cache.LayoutKeyOpts{
		SeparationStep:     o.SeparationStep,
		CollisionThreshold: o.CollisionThreshold,
		XAuto:              len(o.XRange) != 2,
	}
	if len(o.XRange) == 2 {
		opts.XMin, opts.XMax = o.XRange[0], o.XRange[1]
	}
	return opts
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:      format,
		Style:       o.Style,
		Width:       o.Width,
		Height:      o.Height,
		LineWidth:   o.LineWidth,
		TitlePrefix: o.TitlePrefix,
		XAxisTitle:  o.XAxisTitle,
		YAxisTitle:  o.YAxisTitle,
	}
}
