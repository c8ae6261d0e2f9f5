package linalg

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidDegree = errors.New("invalid_degree")

// NormalEquations builds M[a][b] = Σ x^(a+b) and V[a] = Σ y·x^a for a least-squares
// polynomial fit of the given degree.
func NormalEquations(xs, ys []float64, degree int) ([][]float64, []float64, error) {
	if degree < 0 {
		return nil, nil, ErrInvalidDegree
	}
	if len(xs) != len(ys) {
		return nil, nil, fmt.Errorf("%w: %d x values, %d y values", ErrDimensionMismatch, len(xs), len(ys))
	}

	size := degree + 1
	powerSums := make([]float64, 2*degree+1)
	vector := make([]float64, size)
	for i, x := range xs {
		p := 1.0
		for k := range powerSums {
			powerSums[k] += p
			if k < size {
				vector[k] += ys[i] * p
			}
			p *= x
		}
	}

	matrix := make([][]float64, size)
	for a := range matrix {
		matrix[a] = make([]float64, size)
		for b := range matrix[a] {
			matrix[a][b] = powerSums[a+b]
		}
	}
	return matrix, vector, nil
}

// PolyFit returns coefficients c0..c_degree of the least-squares polynomial through (xs, ys).
// Ill-conditioning grows quickly with the degree; callers stay at low degrees.
func PolyFit(xs, ys []float64, degree int) ([]float64, error) {
	matrix, vector, err := NormalEquations(xs, ys, degree)
	if err != nil {
		return nil, err
	}
	return SolveLinearSystem(matrix, vector)
}

// Evaluate computes c0 + c1·x + c2·x² + ... with Horner's rule.
func Evaluate(coefficients []float64, x float64) float64 {
	result := 0.0
	for i := len(coefficients) - 1; i >= 0; i-- {
		result = result*x + coefficients[i]
	}
	return result
}

// IsFinite reports whether every coefficient is a finite number.
func IsFinite(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
