// Package textmetrics holds precalculated character widths and kerning pairs
// for DejaVu Sans rendered at 110pt.
package textmetrics

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/klauspost/compress/gzip"
)

var (
	// ErrResource is the parent of every error returned while loading a table.
	ErrResource = errors.New("metrics table")
	// ErrFormat is returned when a table document is malformed or misses a required field.
	ErrFormat = fmt.Errorf("%w: malformed", ErrResource)
	// ErrResourceMissing is returned when no default table resource is available.
	ErrResourceMissing = fmt.Errorf("%w: resource missing", ErrResource)
)

// Pair is an ordered pair of adjacent codepoints.
type Pair [2]rune

// Table is an immutable set of text metrics. Widths are expressed in pixels at
// 110pt, i.e. ten times the badge display unit.
type Table struct {
	defaultCharWidth float64
	charWidths       map[rune]float64
	kernPairs        map[Pair]float64
	kernAlphabet     map[rune]struct{}
}

// NewTable returns a table. kernAlphabet may be nil, in which case it is derived from kernPairs.
func NewTable(defaultCharWidth float64, charWidths map[rune]float64, kernPairs map[Pair]float64, kernAlphabet []rune) (*Table, error) {
	table := &Table{
		defaultCharWidth: defaultCharWidth,
		charWidths:       make(map[rune]float64, len(charWidths)),
		kernPairs:        make(map[Pair]float64, len(kernPairs)),
		kernAlphabet:     map[rune]struct{}{},
	}
	for r, width := range charWidths {
		table.charWidths[r] = width
	}
	for _, r := range kernAlphabet {
		table.kernAlphabet[r] = struct{}{}
	}
	for pair, kern := range kernPairs {
		for _, r := range pair {
			if kernAlphabet == nil {
				table.kernAlphabet[r] = struct{}{}
				continue
			}
			if _, ok := table.kernAlphabet[r]; !ok {
				return nil, fmt.Errorf("%w: kerning pair %q uses %q which is not a kerning character", ErrFormat, string(pair[:]), r)
			}
		}
		table.kernPairs[pair] = kern
	}
	return table, nil
}

// DefaultCharWidth returns the width used for characters absent from the table.
func (t *Table) DefaultCharWidth() float64 { return t.defaultCharWidth }

// CharWidth returns the width of r, falling back to the default width.
func (t *Table) CharWidth(r rune) float64 {
	if width, ok := t.charWidths[r]; ok {
		return width
	}
	return t.defaultCharWidth
}

// Kerning returns the amount to subtract when b directly follows a.
// Pairs absent from the table have no kerning.
func (t *Table) Kerning(a, b rune) float64 {
	return t.kernPairs[Pair{a, b}]
}

// HasKerning reports whether r belongs to the kerning alphabet.
func (t *Table) HasKerning(r rune) bool {
	_, ok := t.kernAlphabet[r]
	return ok
}

// Len returns the number of characters with an explicit width.
func (t *Table) Len() int { return len(t.charWidths) }

// document is the on-disk JSON representation.
type document struct {
	MeanCharacterLength *float64           `json:"mean-character-length"`
	CharacterLengths    map[string]float64 `json:"character-lengths"`
	KerningCharacters   *string            `json:"kerning-characters,omitempty"`
	KerningPairs        map[string]float64 `json:"kerning-pairs"`
}

// Load decodes an uncompressed JSON table.
func Load(r io.Reader) (*Table, error) {
	doc := &document{}
	if err := json.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("%w: decoding json: %v", ErrFormat, err)
	}
	switch {
	case doc.MeanCharacterLength == nil:
		return nil, fmt.Errorf("%w: missing %q", ErrFormat, "mean-character-length")
	case doc.CharacterLengths == nil:
		return nil, fmt.Errorf("%w: missing %q", ErrFormat, "character-lengths")
	case doc.KerningPairs == nil:
		return nil, fmt.Errorf("%w: missing %q", ErrFormat, "kerning-pairs")
	}

	charWidths := make(map[rune]float64, len(doc.CharacterLengths))
	for key, width := range doc.CharacterLengths {
		if utf8.RuneCountInString(key) != 1 {
			return nil, fmt.Errorf("%w: character-lengths key %q is not a single character", ErrFormat, key)
		}
		r, _ := utf8.DecodeRuneInString(key)
		charWidths[r] = width
	}
	kernPairs := make(map[Pair]float64, len(doc.KerningPairs))
	for key, kern := range doc.KerningPairs {
		runes := []rune(key)
		if len(runes) != 2 {
			return nil, fmt.Errorf("%w: kerning-pairs key %q is not a pair of characters", ErrFormat, key)
		}
		kernPairs[Pair{runes[0], runes[1]}] = kern
	}
	var kernAlphabet []rune
	if doc.KerningCharacters != nil {
		kernAlphabet = []rune(*doc.KerningCharacters)
	}
	return NewTable(*doc.MeanCharacterLength, charWidths, kernPairs, kernAlphabet)
}

// LoadCompressed decodes a gzip-compressed JSON table.
func LoadCompressed(r io.Reader) (*Table, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: opening gzip stream: %v", ErrFormat, err)
	}
	defer gzipReader.Close()
	return Load(gzipReader)
}

// LoadFile loads a table from disk. Files ending in ".gz" are decompressed.
func LoadFile(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening metrics table: %w", err)
	}
	defer file.Close()
	if strings.HasSuffix(path, ".gz") {
		return LoadCompressed(file)
	}
	return Load(file)
}

// Write encodes t as JSON. Map keys are sorted by encoding/json, so output is stable.
func (t *Table) Write(w io.Writer) error {
	doc := &document{
		MeanCharacterLength: &t.defaultCharWidth,
		CharacterLengths:    make(map[string]float64, len(t.charWidths)),
		KerningPairs:        make(map[string]float64, len(t.kernPairs)),
	}
	for r, width := range t.charWidths {
		doc.CharacterLengths[string(r)] = width
	}
	for pair, kern := range t.kernPairs {
		doc.KerningPairs[string(pair[:])] = kern
	}
	alphabet := make([]rune, 0, len(t.kernAlphabet))
	for r := range t.kernAlphabet {
		alphabet = append(alphabet, r)
	}
	slices.Sort(alphabet)
	kerningCharacters := string(alphabet)
	doc.KerningCharacters = &kerningCharacters

	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	return encoder.Encode(doc)
}
