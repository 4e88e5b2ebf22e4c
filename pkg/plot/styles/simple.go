package styles

import (
	"bytes"
	"fmt"
)

// Simple is a clean, matplotlib-like style: white background, dark text,
// light dashed grid, and white label boxes stroked in the segment color.
type Simple struct{}

// Name returns "simple".
func (Simple) Name() string { return "simple" }

// Background returns the figure background color.
func (Simple) Background() string { return "white" }

// RenderDefs writes nothing; the simple style needs no defs.
func (Simple) RenderDefs(buf *bytes.Buffer) {}

// RenderSegment draws a thick horizontal line with slight transparency.
func (Simple) RenderSegment(buf *bytes.Buffer, s Segment) {
	fmt.Fprintf(buf,
		`  <line class="segment" data-chart="%s" data-legend="%s" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f" stroke-linecap="round" opacity="0.8"/>`+"\n",
		EscapeXML(s.Chart), EscapeXML(s.Legend), s.X1, s.Y, s.X2, s.Y, s.Color, s.Width)
}

// RenderLabel draws the legend text centered on the segment inside a
// rounded white box stroked in the segment's color.
func (s Simple) RenderLabel(buf *bytes.Buffer, l Label) {
	renderBoxedLabel(buf, l, "white", "#333")
}

// RenderLine draws grid, zero, and frame lines.
func (Simple) RenderLine(buf *bytes.Buffer, l Line) {
	switch l.Kind {
	case LineGrid:
		fmt.Fprintf(buf,
			`  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#cccccc" stroke-width="0.8" stroke-dasharray="4,4" opacity="0.6"/>`+"\n",
			l.X1, l.Y1, l.X2, l.Y2)
	case LineZero:
		fmt.Fprintf(buf,
			`  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#888888" stroke-width="1.2"/>`+"\n",
			l.X1, l.Y1, l.X2, l.Y2)
	case LineFrame:
		fmt.Fprintf(buf,
			`  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#333333" stroke-width="1"/>`+"\n",
			l.X1, l.Y1, l.X2, l.Y2)
	}
}

// RenderText draws titles, axis titles, and tick labels.
func (Simple) RenderText(buf *bytes.Buffer, t Text) {
	renderText(buf, t, "#333333")
}

// renderBoxedLabel is shared by Simple and Dark: a rounded rectangle sized
// from the text, stroked in the segment color, with centered bold text.
func renderBoxedLabel(buf *bytes.Buffer, l Label, fill, textColor string) {
	w := ApproxTextWidth(l.Text, l.FontSize) + l.FontSize*0.8
	h := l.FontSize * 1.5
	fmt.Fprintf(buf,
		`  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.2f" ry="%.2f" fill="%s" stroke="%s" stroke-width="0.5" opacity="0.8"/>`+"\n",
		l.X-w/2, l.Y-h/2, w, h, h/4, h/4, fill, l.Edge)
	fmt.Fprintf(buf,
		`  <text x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="central" font-family="Helvetica,Arial,sans-serif" font-size="%.1f" font-weight="bold" fill="%s">%s</text>`+"\n",
		l.X, l.Y, l.FontSize, textColor, EscapeXML(l.Text))
}

// renderText is shared by Simple and Dark.
func renderText(buf *bytes.Buffer, t Text, color string) {
	weight := "normal"
	if t.Kind == TextTitle {
		weight = "bold"
	}
	var transform string
	if t.Rotated {
		transform = fmt.Sprintf(` transform="rotate(-90 %.2f %.2f)"`, t.X, t.Y)
	}
	fmt.Fprintf(buf,
		`  <text x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="central" font-family="Helvetica,Arial,sans-serif" font-size="%.1f" font-weight="%s" fill="%s"%s>%s</text>`+"\n",
		t.X, t.Y, t.Size, weight, color, transform, EscapeXML(t.Content))
}
