// Package sink provides output format renderers for level plot layouts.
//
// A sink transforms a computed [layout.Layout] into a final output format:
//
//   - SVG: the primary vector output
//   - JSON: layout data export for external tools
//   - PNG: raster output (rsvg-convert, headless-Chrome fallback)
//   - PDF: print-ready output (rsvg-convert)
//
// All renderers take functional options and never mutate the layout.
package sink

import (
	"bytes"
	"fmt"

	"github.com/murzabaevb/levelplot/pkg/plot/layout"
	"github.com/murzabaevb/levelplot/pkg/plot/styles"
)

// Figure geometry in pixels.
const (
	DefaultWidth  = 1200.0
	DefaultHeight = 1000.0

	DefaultLineWidth = 3.0

	marginLeft   = 70.0
	marginRight  = 25.0
	marginTop    = 12.0
	titleHeight  = 30.0
	chartGap     = 14.0
	xAxisHeight  = 58.0
	tickLength   = 5.0
	titleFont    = 14.0
	axisFont     = 12.0
	tickFont     = 10.0
	xTickTarget  = 8
	yTickTarget  = 4
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style       styles.Style
	width       float64
	height      float64
	lineWidth   float64
	titlePrefix string
	xAxisTitle  string
	yAxisTitle  string
}

// WithStyle sets the visual style (default [styles.Simple]).
func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithSize sets the figure size in pixels.
func WithSize(w, h float64) SVGOption {
	return func(r *svgRenderer) {
		if w > 0 {
			r.width = w
		}
		if h > 0 {
			r.height = h
		}
	}
}

// WithLineWidth sets the segment stroke width.
func WithLineWidth(w float64) SVGOption {
	return func(r *svgRenderer) {
		if w > 0 {
			r.lineWidth = w
		}
	}
}

// WithTitlePrefix sets the string prepended to every chart title.
func WithTitlePrefix(p string) SVGOption { return func(r *svgRenderer) { r.titlePrefix = p } }

// WithAxisTitles sets the shared x-axis title and the per-chart y-axis title.
func WithAxisTitles(x, y string) SVGOption {
	return func(r *svgRenderer) { r.xAxisTitle = x; r.yAxisTitle = y }
}

// chartFrame is the pixel-space plot area of one chart band.
type chartFrame struct {
	left, right float64
	top, bottom float64
}

func (f chartFrame) width() float64  { return f.right - f.left }
func (f chartFrame) height() float64 { return f.bottom - f.top }

// RenderSVG renders the layout as a stacked multi-chart SVG document.
// Charts share the x-range computed (or fixed) in the layout; only the
// bottom chart gets x tick labels and the x-axis title.
func RenderSVG(l layout.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{
		style:      styles.Simple{},
		width:      DefaultWidth,
		height:     DefaultHeight,
		lineWidth:  DefaultLineWidth,
		xAxisTitle: "Frequency",
		yAxisTitle: "Level",
	}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		r.width, r.height, r.width, r.height)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
		r.width, r.height, r.style.Background())
	r.style.RenderDefs(&buf)

	n := len(l.Charts)
	if n > 0 {
		bandHeight := (r.height - marginTop - xAxisHeight) / float64(n)
		for i, chart := range l.Charts {
			frame := chartFrame{
				left:   marginLeft,
				right:  r.width - marginRight,
				top:    marginTop + float64(i)*bandHeight + titleHeight,
				bottom: marginTop + float64(i+1)*bandHeight - chartGap,
			}
			r.renderChart(&buf, l, chart, frame, i == n-1)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// renderChart draws one chart band: title, grid, zero line, frame,
// segments, labels, and axis ticks.
func (r *svgRenderer) renderChart(buf *bytes.Buffer, l layout.Layout, chart layout.ChartLayout, f chartFrame, bottommost bool) {
	xScale := func(x float64) float64 {
		return f.left + (x-l.XMin)/(l.XMax-l.XMin)*f.width()
	}
	yScale := func(y float64) float64 {
		return f.bottom - (y-chart.YMin)/(chart.YMax-chart.YMin)*f.height()
	}

	// Title above the plot area
	r.style.RenderText(buf, styles.Text{
		Kind:    styles.TextTitle,
		Content: r.titlePrefix + chart.ID,
		X:       (f.left + f.right) / 2,
		Y:       f.top - titleHeight/2,
		Size:    titleFont,
	})

	// Dashed grid on both axes
	xTicks := niceTicks(l.XMin, l.XMax, xTickTarget)
	yTicks := niceTicks(chart.YMin, chart.YMax, yTickTarget)
	for _, x := range xTicks {
		px := xScale(x)
		r.style.RenderLine(buf, styles.Line{Kind: styles.LineGrid, X1: px, Y1: f.top, X2: px, Y2: f.bottom})
	}
	for _, y := range yTicks {
		py := yScale(y)
		r.style.RenderLine(buf, styles.Line{Kind: styles.LineGrid, X1: f.left, Y1: py, X2: f.right, Y2: py})
	}

	// Zero reference line when 0 is inside the y-extent
	if chart.ZeroVisible() {
		py := yScale(0)
		r.style.RenderLine(buf, styles.Line{Kind: styles.LineZero, X1: f.left, Y1: py, X2: f.right, Y2: py})
	}

	// Plot area frame
	r.style.RenderLine(buf, styles.Line{Kind: styles.LineFrame, X1: f.left, Y1: f.top, X2: f.left, Y2: f.bottom})
	r.style.RenderLine(buf, styles.Line{Kind: styles.LineFrame, X1: f.left, Y1: f.bottom, X2: f.right, Y2: f.bottom})

	// Segments, clipped to the shared x-range
	type placedLabel struct {
		seg  layout.Segment
		x1px float64
		x2px float64
	}
	var visible []placedLabel
	for _, s := range chart.Segments {
		if s.Stop < l.XMin || s.Start > l.XMax {
			continue
		}
		start, stop := s.Start, s.Stop
		if start < l.XMin {
			start = l.XMin
		}
		if stop > l.XMax {
			stop = l.XMax
		}
		x1, x2 := xScale(start), xScale(stop)
		r.style.RenderSegment(buf, styles.Segment{
			Chart:  chart.ID,
			Legend: s.Legend,
			X1:     x1,
			X2:     x2,
			Y:      yScale(s.DisplayLevel()),
			Color:  s.Color,
			Width:  r.lineWidth,
		})
		visible = append(visible, placedLabel{seg: s, x1px: x1, x2px: x2})
	}

	// Labels drawn after all segments so boxes sit on top
	for _, p := range visible {
		segWidth := p.x2px - p.x1px
		size := styles.LabelFontSize(p.seg.Legend, segWidth)
		r.style.RenderLabel(buf, styles.Label{
			Text:     styles.TruncateLabel(p.seg.Legend, segWidth+size*4, size),
			X:        (p.x1px + p.x2px) / 2,
			Y:        yScale(p.seg.DisplayLevel()),
			Edge:     p.seg.Color,
			FontSize: size,
		})
	}

	// Y tick labels on every chart
	for _, y := range yTicks {
		py := yScale(y)
		r.style.RenderLine(buf, styles.Line{Kind: styles.LineFrame, X1: f.left - tickLength, Y1: py, X2: f.left, Y2: py})
		r.style.RenderText(buf, styles.Text{
			Kind:    styles.TextTick,
			Content: formatTick(y),
			X:       f.left - tickLength - 14,
			Y:       py,
			Size:    tickFont,
		})
	}

	// Y-axis title, rotated, per chart
	r.style.RenderText(buf, styles.Text{
		Kind:    styles.TextAxisTitle,
		Content: r.yAxisTitle,
		X:       f.left - 48,
		Y:       (f.top + f.bottom) / 2,
		Size:    axisFont,
		Rotated: true,
	})

	// X tick labels and axis title only on the bottom chart
	if bottommost {
		for _, x := range xTicks {
			px := xScale(x)
			r.style.RenderLine(buf, styles.Line{Kind: styles.LineFrame, X1: px, Y1: f.bottom, X2: px, Y2: f.bottom + tickLength})
			r.style.RenderText(buf, styles.Text{
				Kind:    styles.TextTick,
				Content: formatTick(x),
				X:       px,
				Y:       f.bottom + tickLength + 10,
				Size:    tickFont,
			})
		}
		r.style.RenderText(buf, styles.Text{
			Kind:    styles.TextAxisTitle,
			Content: r.xAxisTitle,
			X:       (f.left + f.right) / 2,
			Y:       f.bottom + xAxisHeight - 18,
			Size:    axisFont,
		})
	}
}
