package signal

// Palette is the fixed cyclic color palette used for legend assignment.
// These are the ten Tableau colors, in their canonical order.
var Palette = []string{
	"#1f77b4", // blue
	"#ff7f0e", // orange
	"#2ca02c", // green
	"#d62728", // red
	"#9467bd", // purple
	"#8c564b", // brown
	"#e377c2", // pink
	"#7f7f7f", // gray
	"#bcbd22", // olive
	"#17becf", // cyan
}

// ColorMap maps a legend name to its assigned color.
type ColorMap map[string]string

// AssignColors assigns each legend a palette color by position, cycling
// when there are more legends than colors. The input order is the
// first-appearance order across the whole dataset, which guarantees the
// same legend gets the same color in every chart of a render.
func AssignColors(legends []string) ColorMap {
	m := make(ColorMap, len(legends))
	for _, legend := range legends {
		if _, ok := m[legend]; ok {
			continue
		}
		m[legend] = Palette[len(m)%len(Palette)]
	}
	return m
}
