package measure

import (
	"github.com/malonaz/badges/go/badges/textmetrics"
)

// Precalculated measures text with a textmetrics.Table.
type Precalculated struct {
	table *textmetrics.Table
}

// NewPrecalculated returns a measurer backed by table.
func NewPrecalculated(table *textmetrics.Table) *Precalculated {
	return &Precalculated{table: table}
}

// TextWidth sums per-character widths and subtracts the kerning of each adjacent pair.
func (m *Precalculated) TextWidth(text string) float64 {
	runes := []rune(text)
	width := 0.0
	for i, r := range runes {
		width += m.table.CharWidth(r)
		if i+1 < len(runes) {
			width -= m.table.Kerning(r, runes[i+1])
		}
	}
	return width
}

var _ Measurer = (*Precalculated)(nil)
