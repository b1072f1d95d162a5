// Package trend renders a sample sequence as a smoothed sparkline image.
package trend

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/malonaz/badges/go/badges/palette"
)

const (
	// Width and Height are the sparkline viewport dimensions.
	Width  = 110
	Height = 13

	xOffset = 7
	yOffset = 1
	margin  = 2
	degree  = 15
)

// ErrNoSamples is returned when there is nothing to plot.
var ErrNoSamples = errors.New("trend: no samples")

// Point is a position in the sparkline viewport with y pointing up.
type Point struct {
	X, Y float64
}

// Fit expands samples over the viewport width, fits a degree 15 polynomial
// through them and evaluates the curve on a Width point grid spanning the
// drawable part of the viewport, scaled to the viewport height.
func Fit(samples []int) ([]Point, error) {
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}

	factor := max(1, (Width+len(samples)-1)/len(samples))
	y := expand(samples, factor)
	t := make([]float64, len(y))
	for i := range t {
		t[i] = rescale(i, len(y))
	}
	coefficients := polyfit(t, y, min(degree, len(y)-1))

	fitted := make([]float64, Width)
	maxMagnitude := 0.0
	for i := range fitted {
		fitted[i] = polyval(coefficients, rescale(i, Width))
		maxMagnitude = math.Max(maxMagnitude, math.Abs(fitted[i]))
	}

	points := make([]Point, len(fitted))
	for i, value := range fitted {
		// A flat zero curve stays at zero amplitude.
		if maxMagnitude != 0 {
			value = value / maxMagnitude * (Height - margin)
		}
		points[i] = Point{X: float64(i*(Width-xOffset)) / float64(Width-1), Y: value}
	}
	return points, nil
}

// expand repeats each sample factor times.
func expand(samples []int, factor int) []float64 {
	expanded := make([]float64, 0, len(samples)*factor)
	for _, sample := range samples {
		for range factor {
			expanded = append(expanded, float64(sample))
		}
	}
	return expanded
}

// rescale maps grid position i of n onto [-1, 1].
func rescale(i, n int) float64 {
	if n == 1 {
		return 0
	}
	return 2*float64(i)/float64(n-1) - 1
}

// PathData returns SVG path data for points in a viewport whose y axis points down.
func PathData(points []Point) string {
	var builder strings.Builder
	for i, point := range points {
		if i == 0 {
			builder.WriteString("M")
		} else {
			builder.WriteString(" L")
		}
		builder.WriteString(formatCoordinate(xOffset + point.X))
		builder.WriteString(",")
		builder.WriteString(formatCoordinate(-point.Y))
	}
	return builder.String()
}

// Render returns the sparkline of samples as a base64 SVG data URI.
func Render(samples []int, strokeColor string, strokeWidth int) (string, error) {
	points, err := Fit(samples)
	if err != nil {
		return "", err
	}

	buffer := &bytes.Buffer{}
	canvas := svg.New(buffer)
	canvas.Startview(Width, Height, 0, yOffset-Height, Width, Height)
	canvas.Path(PathData(points), fmt.Sprintf(
		`fill="transparent" stroke="%s" stroke-width="%d" stroke-linejoin="round"`,
		html.EscapeString(palette.Resolve(strokeColor)), strokeWidth,
	))
	canvas.End()
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(buffer.Bytes()), nil
}

// formatCoordinate rounds to 3 decimals so output does not depend on the last bits of the fit.
func formatCoordinate(value float64) string {
	rounded := math.Round(value*1000) / 1000
	if rounded == 0 {
		rounded = 0 // drops the sign of negative zero
	}
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}
