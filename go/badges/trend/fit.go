package trend

import (
	"math"
)

// polyfit returns the least-squares polynomial coefficients (lowest order first)
// of the given degree through (t[i], y[i]).
//
// The system is solved with Householder QR rather than normal equations: the
// operations run in a fixed order, so the same input yields the same coefficients.
func polyfit(t, y []float64, degree int) []float64 {
	rows, cols := len(t), degree+1

	a := make([][]float64, rows)
	for i := range a {
		a[i] = make([]float64, cols)
		power := 1.0
		for j := range cols {
			a[i][j] = power
			power *= t[i]
		}
	}
	b := make([]float64, rows)
	copy(b, y)

	v := make([]float64, rows)
	for k := range cols {
		norm := 0.0
		for i := k; i < rows; i++ {
			norm += a[i][k] * a[i][k]
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			continue
		}
		alpha := -norm
		if a[k][k] < 0 {
			alpha = norm
		}

		vNorm := 0.0
		for i := k; i < rows; i++ {
			v[i] = a[i][k]
			if i == k {
				v[i] -= alpha
			}
			vNorm += v[i] * v[i]
		}
		if vNorm == 0 {
			continue
		}

		for j := k; j < cols; j++ {
			dot := 0.0
			for i := k; i < rows; i++ {
				dot += v[i] * a[i][j]
			}
			scale := 2 * dot / vNorm
			for i := k; i < rows; i++ {
				a[i][j] -= scale * v[i]
			}
		}
		dot := 0.0
		for i := k; i < rows; i++ {
			dot += v[i] * b[i]
		}
		scale := 2 * dot / vNorm
		for i := k; i < rows; i++ {
			b[i] -= scale * v[i]
		}
	}

	// Back substitution on the upper triangle. Columns with a negligible pivot
	// are rank deficient and get a zero coefficient.
	maxPivot := 0.0
	for k := range cols {
		maxPivot = math.Max(maxPivot, math.Abs(a[k][k]))
	}
	tolerance := maxPivot * float64(rows) * 1e-15
	coefficients := make([]float64, cols)
	for k := cols - 1; k >= 0; k-- {
		if math.Abs(a[k][k]) <= tolerance {
			continue
		}
		sum := b[k]
		for j := k + 1; j < cols; j++ {
			sum -= a[k][j] * coefficients[j]
		}
		coefficients[k] = sum / a[k][k]
	}
	return coefficients
}

// polyval evaluates coefficients (lowest order first) at t with Horner's method.
func polyval(coefficients []float64, t float64) float64 {
	value := 0.0
	for i := len(coefficients) - 1; i >= 0; i-- {
		value = value*t + coefficients[i]
	}
	return value
}
