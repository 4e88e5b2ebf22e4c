// Package cache provides pluggable caching for pipeline stages.
//
// The pipeline caches three kinds of values, each with its own TTL:
//
//   - Datasets: parsed and validated input rows
//   - Layouts: computed segment placements
//   - Artifacts: rendered outputs (SVG, PNG, PDF, JSON)
//
// Backends implement the [Cache] interface. [FileCache] serves the CLI,
// [RedisCache] serves the HTTP server, and [NullCache] disables caching.
// Keys are generated through a [Keyer] so CLI and server stay consistent;
// wrap one in [ScopedKeyer] for per-tenant namespaces.
package cache

import (
	"context"
	"fmt"
	"time"
)

// TTLs per cached value kind. Datasets are cheap to re-parse but layouts
// and artifacts are worth keeping longer.
const (
	TTLDataset  = 1 * time.Hour
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache is the storage interface for pipeline caching.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A non-positive TTL means
	// the entry does not expire.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// DatasetKeyOpts are the inputs that change a parsed dataset.
type DatasetKeyOpts struct {
	Format string
	Sheet  string
}

// LayoutKeyOpts are the layout parameters that change segment placement.
type LayoutKeyOpts struct {
	SeparationStep     float64
	CollisionThreshold float64
	XMin               float64
	XMax               float64
	XAuto              bool
}

// ArtifactKeyOpts are the render parameters that change an output artifact.
type ArtifactKeyOpts struct {
	Format      string
	Style       string
	Width       float64
	Height      float64
	LineWidth   float64
	TitlePrefix string
	XAxisTitle  string
	YAxisTitle  string
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// HTTPKey generates a key for HTTP response caching.
	HTTPKey(namespace, key string) string

	// DatasetKey generates a key for a parsed dataset, from the content
	// hash of the raw input.
	DatasetKey(sourceHash string, opts DatasetKeyOpts) string

	// LayoutKey generates a key for a computed layout, from the dataset hash.
	LayoutKey(datasetHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact, from the layout hash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer generates hash-based keys with stage prefixes.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// HTTPKey generates a key for HTTP response caching.
func (k *DefaultKeyer) HTTPKey(namespace, key string) string {
	return fmt.Sprintf("http:%s:%s", namespace, key)
}

// DatasetKey generates a key for dataset caching.
func (k *DefaultKeyer) DatasetKey(sourceHash string, opts DatasetKeyOpts) string {
	return hashKey("dataset", sourceHash, opts)
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(datasetHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", datasetHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
