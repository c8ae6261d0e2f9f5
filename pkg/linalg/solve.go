// Package linalg contains the small dense solvers used by the profit forecaster.
package linalg

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrSingularMatrix    = errors.New("singular_matrix")
	ErrDimensionMismatch = errors.New("dimension_mismatch")
)

// pivotTolerance is relative to the largest magnitude in the input matrix.
const pivotTolerance = 1e-12

// SolveLinearSystem solves matrix·x = vector for a square matrix using Gaussian
// elimination with partial pivoting. The inputs are left untouched.
func SolveLinearSystem(matrix [][]float64, vector []float64) ([]float64, error) {
	n := len(matrix)
	if n == 0 || len(vector) != n {
		return nil, fmt.Errorf("%w: %d rows, %d values", ErrDimensionMismatch, n, len(vector))
	}

	// augmented copy [A | b]
	a := make([][]float64, n)
	scale := 0.0
	for i, row := range matrix {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d columns", ErrDimensionMismatch, i, len(row))
		}
		a[i] = make([]float64, n+1)
		copy(a[i], row)
		a[i][n] = vector[i]
		for _, v := range row {
			scale = math.Max(scale, math.Abs(v))
		}
	}
	if scale == 0 {
		return nil, ErrSingularMatrix
	}
	eps := pivotTolerance * scale

	for col := 0; col < n; col++ {
		pivot := col
		for row := col + 1; row < n; row++ {
			if math.Abs(a[row][col]) > math.Abs(a[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(a[pivot][col]) <= eps {
			return nil, ErrSingularMatrix
		}
		a[col], a[pivot] = a[pivot], a[col]

		for row := col + 1; row < n; row++ {
			factor := a[row][col] / a[col][col]
			if factor == 0 {
				continue
			}
			for k := col; k <= n; k++ {
				a[row][k] -= factor * a[col][k]
			}
		}
	}

	x := make([]float64, n)
	for row := n - 1; row >= 0; row-- {
		sum := a[row][n]
		for k := row + 1; k < n; k++ {
			sum -= a[row][k] * x[k]
		}
		x[row] = sum / a[row][row]
	}
	return x, nil
}
