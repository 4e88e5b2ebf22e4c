package sink

import (
	"encoding/json"

	"github.com/murzabaevb/levelplot/pkg/plot/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	style string
}

// WithJSONStyle records the style name (e.g. "simple", "dark") in the JSON
// output for documentation or round-trip rendering.
func WithJSONStyle(s string) JSONOption { return func(r *jsonRenderer) { r.style = s } }

type jsonOutput struct {
	XMin   float64     `json:"x_min"`
	XMax   float64     `json:"x_max"`
	XAuto  bool        `json:"x_auto"`
	Style  string      `json:"style,omitempty"`
	Charts []jsonChart `json:"charts"`
}

type jsonChart struct {
	ID       string        `json:"id"`
	YMin     float64       `json:"y_min"`
	YMax     float64       `json:"y_max"`
	Segments []jsonSegment `json:"segments"`
}

type jsonSegment struct {
	Legend       string  `json:"legend"`
	Color        string  `json:"color"`
	Start        float64 `json:"start"`
	Stop         float64 `json:"stop"`
	Level        float64 `json:"level"`
	DisplayLevel float64 `json:"display_level"`
	Cluster      int     `json:"cluster,omitempty"`
}

// RenderJSON exports the computed layout as a pretty-printed JSON document.
// The export carries both the input level and the de-overlapped display
// level per segment, so external tools can reproduce the visual exactly or
// recover the raw data.
//
// RenderJSON returns an error only if JSON marshaling fails. It does not
// modify l and is safe to call concurrently.
func RenderJSON(l layout.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		XMin:   l.XMin,
		XMax:   l.XMax,
		XAuto:  l.XAuto,
		Style:  r.style,
		Charts: make([]jsonChart, 0, len(l.Charts)),
	}
	for _, c := range l.Charts {
		jc := jsonChart{
			ID:       c.ID,
			YMin:     c.YMin,
			YMax:     c.YMax,
			Segments: make([]jsonSegment, 0, len(c.Segments)),
		}
		for _, s := range c.Segments {
			jc.Segments = append(jc.Segments, jsonSegment{
				Legend:       s.Legend,
				Color:        s.Color,
				Start:        s.Start,
				Stop:         s.Stop,
				Level:        s.Level,
				DisplayLevel: s.DisplayLevel(),
				Cluster:      s.Cluster,
			})
		}
		out.Charts = append(out.Charts, jc)
	}

	return json.MarshalIndent(out, "", "  ")
}
