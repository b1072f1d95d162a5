package trend

import (
	"encoding/base64"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPolyfitRecoversPolynomial(t *testing.T) {
	want := []float64{1, -2, 0.5, 3}
	var xs, ys []float64
	for i := range 20 {
		x := rescale(i, 20)
		xs = append(xs, x)
		ys = append(ys, polyval(want, x))
	}
	got := polyfit(xs, ys, 3)
	require.Len(t, got, 4)
	for i := range want {
		require.InDelta(t, want[i], got[i], 1e-9)
	}
}

func TestFitAllZeros(t *testing.T) {
	points, err := Fit([]int{0, 0, 0, 0, 0})
	require.NoError(t, err)
	require.Len(t, points, Width)
	for _, point := range points {
		require.False(t, math.IsNaN(point.Y))
		require.Zero(t, point.Y)
	}
	require.NotContains(t, PathData(points), "NaN")
}

func TestFitScalesToViewport(t *testing.T) {
	points, err := Fit([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11})
	require.NoError(t, err)
	require.Len(t, points, Width)

	maxMagnitude := 0.0
	for _, point := range points {
		maxMagnitude = math.Max(maxMagnitude, math.Abs(point.Y))
	}
	require.InDelta(t, Height-margin, maxMagnitude, 1e-9)
	require.Greater(t, points[len(points)-1].Y, points[0].Y)
}

func TestFitConstant(t *testing.T) {
	points, err := Fit([]int{4, 4, 4})
	require.NoError(t, err)
	for _, point := range points {
		require.InDelta(t, Height-margin, point.Y, 1e-6)
	}
}

func TestFitStaysInViewport(t *testing.T) {
	for _, n := range []int{1, 2, 30, 109, 110, 111, 300} {
		samples := make([]int, n)
		for i := range samples {
			samples[i] = i % 7
		}
		points, err := Fit(samples)
		require.NoError(t, err)
		require.Len(t, points, Width, "%d samples", n)
		require.Zero(t, points[0].X)
		last := points[len(points)-1]
		require.LessOrEqual(t, xOffset+last.X, float64(Width), "%d samples", n)
		require.InDelta(t, Width, xOffset+last.X, 1e-9, "%d samples must span the viewport", n)
		for _, point := range points {
			require.LessOrEqual(t, math.Abs(point.Y), float64(Height-margin)+1e-9)
		}
	}
}

func TestFitNoSamples(t *testing.T) {
	_, err := Fit(nil)
	require.ErrorIs(t, err, ErrNoSamples)
	_, err = Render([]int{}, "red", 1)
	require.ErrorIs(t, err, ErrNoSamples)
}

func TestPathData(t *testing.T) {
	points := []Point{{X: 0, Y: 0}, {X: 1, Y: 2.5}, {X: 2, Y: -1.23456}}
	require.Equal(t, "M7,0 L8,-2.5 L9,1.235", PathData(points))
}

func TestRender(t *testing.T) {
	samples := []int{3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5}
	uri, err := Render(samples, "brightgreen", 2)
	require.NoError(t, err)

	const prefix = "data:image/svg+xml;base64,"
	require.True(t, strings.HasPrefix(uri, prefix))
	document, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	require.NoError(t, err)
	require.Contains(t, string(document), `viewBox="0 -12 110 13"`)
	require.Contains(t, string(document), `stroke="#4c1"`)
	require.Contains(t, string(document), `stroke-width="2"`)
	require.Contains(t, string(document), `d="M7,`)

	again, err := Render(samples, "brightgreen", 2)
	require.NoError(t, err)
	require.Equal(t, uri, again)
}
