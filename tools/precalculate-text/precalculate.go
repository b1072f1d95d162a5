package main

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/malonaz/badges/go/badges/textmetrics"
)

// Kerning adjustments at or below this magnitude are measurement noise.
const kerningThreshold = 0.05

var charmapsByName = map[string]*charmap.Charmap{
	"cp437":      charmap.CodePage437,
	"cp850":      charmap.CodePage850,
	"cp866":      charmap.CodePage866,
	"cp1250":     charmap.Windows1250,
	"cp1251":     charmap.Windows1251,
	"cp1252":     charmap.Windows1252,
	"cp1253":     charmap.Windows1253,
	"cp1254":     charmap.Windows1254,
	"cp1255":     charmap.Windows1255,
	"cp1256":     charmap.Windows1256,
	"cp1257":     charmap.Windows1257,
	"cp1258":     charmap.Windows1258,
	"iso-8859-1": charmap.ISO8859_1,
	"iso-8859-2": charmap.ISO8859_2,
	"iso-8859-5": charmap.ISO8859_5,
	"iso-8859-7": charmap.ISO8859_7,
	"koi8-r":     charmap.KOI8R,
}

type fontMeasurer interface {
	TextWidth(text string) float64
	Supports(r rune) bool
}

func lookupCharmaps(names []string) ([]*charmap.Charmap, error) {
	charmaps := make([]*charmap.Charmap, 0, len(names))
	for _, name := range names {
		c, ok := charmapsByName[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("unknown encoding %q", name)
		}
		charmaps = append(charmaps, c)
	}
	return charmaps, nil
}

// supportedCharacters returns the printable BMP characters the font has a glyph for.
func supportedCharacters(font fontMeasurer) []rune {
	var characters []rune
	for r := rune(0x20); r <= 0xFFFF; r++ {
		if !utf8.ValidRune(r) || r == 0x7F {
			continue
		}
		if font.Supports(r) {
			characters = append(characters, r)
		}
	}
	return characters
}

// encodableCharacters returns the characters at least one charmap can encode.
func encodableCharacters(characters []rune, charmaps []*charmap.Charmap) []rune {
	var encodable []rune
	for _, r := range characters {
		for _, c := range charmaps {
			if _, ok := c.EncodeRune(r); ok {
				encodable = append(encodable, r)
				break
			}
		}
	}
	return encodable
}

// buildTable measures characters one by one, and every ordered pair of
// distinct kerning characters.
func buildTable(font fontMeasurer, characters, kerningCharacters []rune) (*textmetrics.Table, error) {
	if len(characters) == 0 {
		return nil, errors.New("the font supports no characters")
	}
	widths := make(map[rune]float64, len(characters))
	total := 0.0
	for _, r := range characters {
		widths[r] = font.TextWidth(string(r))
		total += widths[r]
	}

	kerning := map[textmetrics.Pair]float64{}
	for _, a := range kerningCharacters {
		for _, b := range kerningCharacters {
			if a == b {
				continue
			}
			adjustment := widths[a] + widths[b] - font.TextWidth(string([]rune{a, b}))
			if math.Abs(adjustment) > kerningThreshold {
				kerning[textmetrics.Pair{a, b}] = math.Round(adjustment*1000) / 1000
			}
		}
	}
	return textmetrics.NewTable(total/float64(len(characters)), widths, kerning, kerningCharacters)
}
