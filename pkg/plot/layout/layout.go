// Package layout computes the visual layout for a level plot: per-chart
// segment positions with vertical de-overlap, axis extents, and the shared
// x-range across charts.
//
// The only non-trivial step is overlap separation. Rows in one chart whose
// intervals intersect (closed boundaries) at levels closer than a collision
// threshold are grouped into connected clusters; each cluster's rows receive
// evenly spaced vertical offsets symmetric around zero, ranked by source
// order so repeated builds are deterministic.
package layout

import (
	"github.com/murzabaevb/levelplot/pkg/signal"
)

const (
	// DefaultSeparationStep is the vertical spacing between conflicting
	// segments in a cluster.
	DefaultSeparationStep = 0.3

	// DefaultCollisionThreshold is the maximum level difference at which
	// two intersecting intervals are considered visually colliding.
	DefaultCollisionThreshold = 0.5

	// autoMargin is the padding added on each side of the auto-computed
	// x-range, matching one unit of the data's x-axis.
	autoMargin = 1.0

	// yPad is the vertical padding above and below each chart's segments.
	yPad = 0.5
)

// Segment is one positioned horizontal line: a source row plus its
// vertical offset and assigned color.
type Segment struct {
	Legend  string
	Color   string
	Start   float64
	Stop    float64
	Level   float64 // nominal level from the source row
	Offset  float64 // vertical displacement from overlap separation
	Cluster int     // 0-based collision cluster index within the chart
}

// DisplayLevel returns the level the segment is actually drawn at.
func (s Segment) DisplayLevel() float64 { return s.Level + s.Offset }

// MidX returns the horizontal anchor for the segment's label.
func (s Segment) MidX() float64 { return (s.Start + s.Stop) / 2 }

// ChartLayout holds the positioned segments and y-extent of one subplot.
type ChartLayout struct {
	ID       string
	Segments []Segment
	YMin     float64
	YMax     float64
}

// ZeroVisible reports whether the zero reference line falls inside the
// chart's y-extent.
func (c ChartLayout) ZeroVisible() bool { return c.YMin < 0 && c.YMax > 0 }

// Layout is the complete computed layout for a render call.
type Layout struct {
	Charts []ChartLayout
	XMin   float64 // shared x-range across all charts
	XMax   float64
	XAuto  bool // whether the x-range was computed from the data
}

// Option configures Build.
type Option func(*builder)

type builder struct {
	step      float64
	threshold float64
	xrange    *[2]float64
}

// WithSeparationStep sets the vertical spacing between conflicting segments.
// Non-positive values fall back to the default.
func WithSeparationStep(d float64) Option {
	return func(b *builder) {
		if d > 0 {
			b.step = d
		}
	}
}

// WithCollisionThreshold sets the maximum level difference treated as a
// collision. Non-positive values fall back to the default.
func WithCollisionThreshold(c float64) Option {
	return func(b *builder) {
		if c > 0 {
			b.threshold = c
		}
	}
}

// WithXRange fixes the shared x-range instead of deriving it from the data.
func WithXRange(min, max float64) Option {
	return func(b *builder) { b.xrange = &[2]float64{min, max} }
}

// Build computes the layout for a dataset. Legend colors come from the
// dataset's first-appearance color map, so a legend renders identically in
// every chart. Build never mutates the dataset.
func Build(ds *signal.Dataset, opts ...Option) Layout {
	b := builder{
		step:      DefaultSeparationStep,
		threshold: DefaultCollisionThreshold,
	}
	for _, opt := range opts {
		opt(&b)
	}

	colors := ds.Colors()

	l := Layout{Charts: make([]ChartLayout, 0, len(ds.Charts))}
	for _, chart := range ds.Charts {
		l.Charts = append(l.Charts, buildChart(chart, colors, b.step, b.threshold))
	}

	if b.xrange != nil {
		l.XMin, l.XMax = b.xrange[0], b.xrange[1]
	} else {
		min, max := ds.XExtent()
		l.XMin, l.XMax = min-autoMargin, max+autoMargin
		l.XAuto = true
	}
	return l
}

// buildChart positions one chart's rows: cluster conflicting rows, spread
// each cluster symmetrically, and compute the y-extent.
func buildChart(chart signal.Chart, colors signal.ColorMap, step, threshold float64) ChartLayout {
	rows := chart.Rows
	clusters := clusterConflicts(rows, threshold)
	offsets := spreadClusters(clusters, len(rows), step)

	cl := ChartLayout{ID: chart.ID, Segments: make([]Segment, len(rows))}
	for i, r := range rows {
		cl.Segments[i] = Segment{
			Legend:  r.Legend,
			Color:   colors[r.Legend],
			Start:   r.Start,
			Stop:    r.Stop,
			Level:   r.Level,
			Offset:  offsets[i],
			Cluster: clusterIndex(clusters, i),
		}
	}

	cl.YMin, cl.YMax = yExtent(cl.Segments)
	return cl
}

// conflicts reports whether two rows visually collide: closed-boundary
// interval intersection at levels closer than the threshold.
func conflicts(a, b signal.Row, threshold float64) bool {
	if a.Start > b.Stop || b.Start > a.Stop {
		return false
	}
	diff := a.Level - b.Level
	if diff < 0 {
		diff = -diff
	}
	return diff < threshold
}

// clusterConflicts groups row indices into connected components of the
// pairwise conflict relation. Components are ordered by their smallest
// member, and members keep source order.
func clusterConflicts(rows []signal.Row, threshold float64) [][]int {
	n := len(rows)
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}

	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			if rb < ra {
				ra, rb = rb, ra
			}
			parent[rb] = ra
		}
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if conflicts(rows[i], rows[j], threshold) {
				union(i, j)
			}
		}
	}

	// Collect members per root, in source order.
	members := make(map[int][]int, n)
	var roots []int
	for i := 0; i < n; i++ {
		r := find(i)
		if _, ok := members[r]; !ok {
			roots = append(roots, r)
		}
		members[r] = append(members[r], i)
	}

	clusters := make([][]int, 0, len(roots))
	for _, r := range roots {
		clusters = append(clusters, members[r])
	}
	return clusters
}

// spreadClusters assigns each row its vertical offset: rows of a k-member
// cluster get evenly spaced offsets symmetric around zero with the given
// spacing, ranked by source order. Singletons keep offset 0.
func spreadClusters(clusters [][]int, n int, step float64) []float64 {
	offsets := make([]float64, n)
	for _, cluster := range clusters {
		k := len(cluster)
		if k < 2 {
			continue
		}
		center := float64(k-1) / 2
		for rank, idx := range cluster {
			offsets[idx] = (float64(rank) - center) * step
		}
	}
	return offsets
}

// clusterIndex returns the index of the cluster containing row i.
func clusterIndex(clusters [][]int, i int) int {
	for ci, cluster := range clusters {
		for _, idx := range cluster {
			if idx == i {
				return ci
			}
		}
	}
	return 0
}

// yExtent pads the displayed levels by yPad on each side and, when the
// segments span zero, keeps at least yPad of room around the zero line.
func yExtent(segments []Segment) (float64, float64) {
	if len(segments) == 0 {
		return -yPad, yPad
	}
	min, max := segments[0].DisplayLevel(), segments[0].DisplayLevel()
	for _, s := range segments[1:] {
		d := s.DisplayLevel()
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	min -= yPad
	max += yPad
	if min < 0 && max > 0 {
		if min > -yPad {
			min = -yPad
		}
		if max < yPad {
			max = yPad
		}
	}
	return min, max
}
