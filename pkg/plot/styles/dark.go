package styles

import (
	"bytes"
	"fmt"
)

// Dark renders on a dark background with muted grid lines. Segment colors
// come from the shared palette and read well on both themes.
type Dark struct{}

func (Dark) Name() string       { return "dark" }
func (Dark) Background() string { return "#1e1e1e" }

func (Dark) RenderDefs(buf *bytes.Buffer) {}

func (Dark) RenderSegment(buf *bytes.Buffer, s Segment) {
	fmt.Fprintf(buf,
		`  <line class="segment" data-chart="%s" data-legend="%s" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f" stroke-linecap="round" opacity="0.9"/>`+"\n",
		EscapeXML(s.Chart), EscapeXML(s.Legend), s.X1, s.Y, s.X2, s.Y, s.Color, s.Width)
}

func (Dark) RenderLabel(buf *bytes.Buffer, l Label) {
	renderBoxedLabel(buf, l, "#2a2a2a", "#e0e0e0")
}

func (Dark) RenderLine(buf *bytes.Buffer, l Line) {
	switch l.Kind {
	case LineGrid:
		fmt.Fprintf(buf,
			`  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#444444" stroke-width="0.8" stroke-dasharray="4,4" opacity="0.7"/>`+"\n",
			l.X1, l.Y1, l.X2, l.Y2)
	case LineZero:
		fmt.Fprintf(buf,
			`  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#999999" stroke-width="1.2"/>`+"\n",
			l.X1, l.Y1, l.X2, l.Y2)
	case LineFrame:
		fmt.Fprintf(buf,
			`  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#aaaaaa" stroke-width="1"/>`+"\n",
			l.X1, l.Y1, l.X2, l.Y2)
	}
}

func (Dark) RenderText(buf *bytes.Buffer, t Text) {
	renderText(buf, t, "#e0e0e0")
}
