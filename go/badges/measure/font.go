package measure

import (
	"fmt"
	"os"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

const (
	// FontSize is the point size every width is expressed in.
	FontSize = 110
	fontDPI  = 72
)

// Font measures text by laying it out with a TrueType font.
// Use it when the precalculated table does not cover the text's script.
type Font struct {
	// Faces cache glyph metrics and are not safe for concurrent use.
	mutex sync.Mutex
	face  font.Face
	font  *truetype.Font
}

// NewFont parses ttf (DejaVu Sans is expected) and returns a measurer.
func NewFont(ttf []byte) (*Font, error) {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	face := truetype.NewFace(f, &truetype.Options{
		Size:    FontSize,
		DPI:     fontDPI,
		Hinting: font.HintingNone,
	})
	return &Font{face: face, font: f}, nil
}

// NewFontFromFile reads a TTF file and returns a measurer.
func NewFontFromFile(path string) (*Font, error) {
	ttf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading font: %w", err)
	}
	return NewFont(ttf)
}

// TextWidth returns the advance width of text, kerning included.
func (m *Font) TextWidth(text string) float64 {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	advance := font.MeasureString(m.face, text)
	return float64(advance) / 64
}

// Supports reports whether the font has a glyph for r.
func (m *Font) Supports(r rune) bool {
	return m.font.Index(r) != 0
}

var _ Measurer = (*Font)(nil)
