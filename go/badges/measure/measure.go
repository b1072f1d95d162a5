// Package measure computes the pixel width of text rendered in DejaVu Sans 110pt.
package measure

import (
	"fmt"

	"github.com/malonaz/badges/go/badges/textmetrics"
)

// Measurer returns the width, in pixels, of a string in DejaVu Sans 110pt.
type Measurer interface {
	TextWidth(text string) float64
}

// Opts selects a Measurer.
type Opts struct {
	FontPath    string `long:"font-path" env:"FONT_PATH" description:"Measure text with this DejaVu Sans TTF instead of the precalculated table"`
	MetricsFile string `long:"metrics-file" env:"METRICS_FILE" description:"Precalculated metrics table (JSON, optionally .gz) to use instead of the default one"`
}

// New returns the measurer configured by opts. A nil opts selects the default table.
func New(opts *Opts) (Measurer, error) {
	switch {
	case opts != nil && opts.FontPath != "":
		measurer, err := NewFontFromFile(opts.FontPath)
		if err != nil {
			return nil, err
		}
		return measurer, nil
	case opts != nil && opts.MetricsFile != "":
		table, err := textmetrics.LoadFile(opts.MetricsFile)
		if err != nil {
			return nil, fmt.Errorf("loading metrics file: %w", err)
		}
		return NewPrecalculated(table), nil
	default:
		measurer, err := Default()
		if err != nil {
			return nil, err
		}
		return measurer, nil
	}
}

// Default returns a Precalculated measurer over the default table.
func Default() (*Precalculated, error) {
	table, err := textmetrics.Default()
	if err != nil {
		return nil, err
	}
	return NewPrecalculated(table), nil
}
