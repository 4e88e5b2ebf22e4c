package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/murzabaevb/levelplot/pkg/cache"
	"github.com/murzabaevb/levelplot/pkg/dataset"
	"github.com/murzabaevb/levelplot/pkg/errors"
	"github.com/murzabaevb/levelplot/pkg/fetch"
	"github.com/murzabaevb/levelplot/pkg/observability"
	"github.com/murzabaevb/levelplot/pkg/plot/layout"
	"github.com/murzabaevb/levelplot/pkg/plot/sink"
	"github.com/murzabaevb/levelplot/pkg/signal"
)

// Result contains the outputs of a pipeline run.
type Result struct {
	// Dataset is the parsed and validated input.
	Dataset *signal.Dataset

	// DatasetHash is the content hash of the dataset.
	DatasetHash string

	// Layout contains the computed segment positions.
	Layout layout.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RowCount   int
	ChartCount int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	DatasetHit bool // Whether the parsed dataset came from cache
	LayoutHit  bool // Whether the layout came from cache
	RenderHit  bool // Whether all artifacts came from cache
}

// Runner encapsulates pipeline execution with caching.
// Both CLI and server can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
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

// Execute runs the complete load → layout → render pipeline with caching.
// Each run gets a short ID carried on its log lines so interleaved runs
// can be told apart.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	runLog := r.Logger.With("run", uuid.NewString()[:8])

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	ds, dsHit, err := r.LoadWithCacheInfo(ctx, &opts)
	if err != nil {
		return nil, err
	}
	result.Dataset = ds
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.RowCount = ds.RowCount()
	result.Stats.ChartCount = len(ds.Charts)
	result.CacheInfo.DatasetHit = dsHit

	// Compute dataset hash for cache keys and API responses
	if dsData, err := json.Marshal(ds); err == nil {
		result.DatasetHash = cache.Hash(dsData)
	}

	runLog.Info("loaded dataset",
		"rows", ds.RowCount(),
		"charts", len(ds.Charts),
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	l, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, ds, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	runLog.Info("computed layout",
		"charts", len(l.Charts),
		"x_range", []float64{l.XMin, l.XMax},
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	runLog.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadWithCacheInfo loads the dataset with caching and returns cache hit info.
// It fills in opts.SourceFormat when the format was detected from the path.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts *Options) (*signal.Dataset, bool, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, false, err
	}
	r.applyLogger(opts)

	raw := opts.Raw
	if len(raw) == 0 {
		if opts.SourceFormat == "" {
			format, err := dataset.DetectFormat(opts.Source)
			if err != nil {
				return nil, false, err
			}
			opts.SourceFormat = string(format)
		}
		if fetch.IsURL(opts.Source) {
			data, hit, err := fetch.New(r.Cache, r.Keyer).Get(ctx, opts.Source, opts.Refresh)
			if err != nil {
				return nil, false, err
			}
			if hit {
				r.Logger.Debug("remote input served from cache", "url", opts.Source)
			}
			raw = data
		} else {
			data, err := os.ReadFile(opts.Source)
			if err != nil {
				if os.IsNotExist(err) {
					return nil, false, errors.Wrap(errors.ErrCodeFileNotFound, err, "input file not found: %s", opts.Source)
				}
				return nil, false, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", opts.Source)
			}
			raw = data
		}
	}

	cacheKey := r.Keyer.DatasetKey(cache.Hash(raw), opts.DatasetKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var ds signal.Dataset
			if err := json.Unmarshal(data, &ds); err == nil {
				observability.Cache().OnCacheHit(ctx, "dataset")
				return &ds, true, nil // Cache hit
			}
		}
		observability.Cache().OnCacheMiss(ctx, "dataset")
	}

	// Parse
	source := opts.Source
	if source == "" {
		source = "(raw)"
	}
	observability.Pipeline().OnLoadStart(ctx, source, opts.SourceFormat)
	start := time.Now()
	ds, err := dataset.ReadSheet(bytes.NewReader(raw), dataset.Format(opts.SourceFormat), opts.Sheet)
	observability.Pipeline().OnLoadComplete(ctx, source, opts.SourceFormat, rowCountOf(ds), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if data, err := json.Marshal(ds); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLDataset)
		observability.Cache().OnCacheSet(ctx, "dataset", len(data))
	}

	return ds, false, nil // Cache miss
}

// Load is a convenience wrapper that calls LoadWithCacheInfo and discards the cache hit info.
func (r *Runner) Load(ctx context.Context, opts Options) (*signal.Dataset, error) {
	ds, _, err := r.LoadWithCacheInfo(ctx, &opts)
	return ds, err
}

// ComputeLayoutWithCacheInfo computes a layout with caching and returns cache hit info.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, ds *signal.Dataset, opts Options) (layout.Layout, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Layout{}, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key
	dsData, _ := json.Marshal(ds)
	cacheKey := r.Keyer.LayoutKey(cache.Hash(dsData), opts.LayoutKeyOpts())

	// Try cache first
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		var cached layout.Layout
		if err := json.Unmarshal(data, &cached); err == nil {
			observability.Cache().OnCacheHit(ctx, "layout")
			return cached, true, nil // Cache hit
		}
		// If deserialization fails, fall through to recompute
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	// Compute layout
	observability.Pipeline().OnLayoutStart(ctx, len(ds.Charts))
	start := time.Now()
	l := layout.Build(ds, opts.LayoutOptions()...)
	observability.Pipeline().OnLayoutComplete(ctx, len(ds.Charts), time.Since(start), nil)

	// Cache the result
	if data, err := json.Marshal(l); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return l, false, nil // Cache miss
}

// ComputeLayout is a convenience wrapper that calls ComputeLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, ds *signal.Dataset, opts Options) (layout.Layout, error) {
	l, _, err := r.ComputeLayoutWithCacheInfo(ctx, ds, opts)
	return l, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from layout data
	layoutData, err := json.Marshal(l)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize layout for cache key")
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		} else {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil // All artifacts from cache
	}

	// Render all formats
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := r.renderFormat(l, format, opts)
		if err != nil {
			observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, false, err
		}
		rendered[format] = data
	}
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// renderFormat renders the layout in a single output format.
func (r *Runner) renderFormat(l layout.Layout, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(l, opts.SVGOptions()...), nil
	case FormatJSON:
		return sink.RenderJSON(l, sink.WithJSONStyle(opts.Style))
	case FormatPNG:
		return sink.RenderPNG(l,
			sink.WithPNGSVGOptions(opts.SVGOptions()...),
			sink.WithScale(opts.PNGScale))
	case FormatPDF:
		return sink.RenderPDF(l, sink.WithPDFSVGOptions(opts.SVGOptions()...))
	default:
		return nil, ValidateFormat(format)
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func rowCountOf(ds *signal.Dataset) int {
	if ds == nil {
		return 0
	}
	return ds.RowCount()
}
