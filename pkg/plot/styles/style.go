// Package styles defines the visual appearance of rendered level plots.
//
// A Style turns geometric primitives (segments, labels, lines, text) into
// SVG fragments. The drawing code in the sink package computes pixel
// positions and delegates all appearance decisions here, so any SVG-capable
// theme can be plugged in.
package styles

import "bytes"

// Style defines the visual appearance for level plot rendering.
type Style interface {
	// Name returns the style's identifier ("simple", "dark").
	Name() string
	// Background returns the figure background color.
	Background() string
	// RenderDefs writes SVG <defs> content (filters, patterns, gradients).
	RenderDefs(buf *bytes.Buffer)
	// RenderSegment writes the SVG for a single horizontal signal line.
	RenderSegment(buf *bytes.Buffer, s Segment)
	// RenderLabel writes the SVG for a segment's centered legend label.
	RenderLabel(buf *bytes.Buffer, l Label)
	// RenderLine writes the SVG for a grid, zero-reference, or frame line.
	RenderLine(buf *bytes.Buffer, l Line)
	// RenderText writes the SVG for titles, axis titles, and tick labels.
	RenderText(buf *bytes.Buffer, t Text)
}

// Segment contains the pixel geometry of one horizontal signal line.
type Segment struct {
	Chart  string  // owning chart identifier
	Legend string  // signal name (used for CSS class hooks)
	X1, X2 float64 // horizontal extent in pixels
	Y      float64 // vertical position in pixels
	Color  string  // legend color
	Width  float64 // stroke width in pixels
}

// Label contains the pixel geometry of a segment's legend label.
type Label struct {
	Text     string
	X, Y     float64 // center of the label
	Edge     string  // box edge color (the segment's color)
	FontSize float64
}

// LineKind distinguishes the auxiliary lines a chart draws.
type LineKind int

const (
	// LineGrid is a dashed background grid line.
	LineGrid LineKind = iota
	// LineZero is the zero-reference line drawn when 0 is visible.
	LineZero
	// LineFrame is the solid plot area border.
	LineFrame
)

// Line contains positioning data for an auxiliary line.
type Line struct {
	Kind           LineKind
	X1, Y1, X2, Y2 float64
}

// TextKind distinguishes the text elements of a chart.
type TextKind int

const (
	// TextTitle is a chart title.
	TextTitle TextKind = iota
	// TextAxisTitle is an x- or y-axis title.
	TextAxisTitle
	// TextTick is an axis tick label.
	TextTick
)

// Text contains positioning data for a text element.
type Text struct {
	Kind    TextKind
	Content string
	X, Y    float64
	Size    float64
	Rotated bool // rotated -90° (y-axis titles)
}
