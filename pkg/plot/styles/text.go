package styles

import (
	"bytes"
	"encoding/xml"
)

const (
	fontCharWidth = 0.55
	fontSizeMin   = 7.0
	fontSizeMax   = 14.0
	// labelWidthRatio is the share of the segment's pixel width a label
	// may occupy before the font shrinks.
	labelWidthRatio = 0.9
)

// LabelFontSize picks a font size for a legend label so it fits within the
// segment's pixel width, clamped to a readable range. Short segments get
// the minimum size rather than vanishing text.
func LabelFontSize(text string, segmentWidth float64) float64 {
	n := max(1, len(text))
	byWidth := (segmentWidth * labelWidthRatio) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, byWidth))
}

// ApproxTextWidth estimates the rendered width of text at the given font
// size, using an average character width ratio.
func ApproxTextWidth(text string, fontSize float64) float64 {
	return float64(len(text)) * fontSize * fontCharWidth
}

// TruncateLabel shortens a label so it fits the available pixel width at
// the given font size, appending ".." when truncated. At least three
// characters are always kept.
func TruncateLabel(text string, availWidth, fontSize float64) string {
	charWidth := fontSize * fontCharWidth
	maxChars := int(availWidth / charWidth)
	if maxChars < 3 {
		maxChars = 3
	}
	if len(text) <= maxChars {
		return text
	}
	return text[:maxChars-2] + ".."
}

// EscapeXML escapes a string for embedding in SVG text or attributes.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
