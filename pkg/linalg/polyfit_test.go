package linalg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samples(n int, f func(x float64) float64) ([]float64, []float64) {
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i + 1)
		ys[i] = f(xs[i])
	}
	return xs, ys
}

func TestPolyFitRecoversLinearData(t *testing.T) {
	a, b := 1250.75, -42.5
	xs, ys := samples(24, func(x float64) float64 { return a + b*x })

	coefficients, err := PolyFit(xs, ys, 2)
	require.NoError(t, err)
	require.Len(t, coefficients, 3)
	assert.InDelta(t, a, coefficients[0], 1e-6)
	assert.InDelta(t, b, coefficients[1], 1e-6)
	assert.InDelta(t, 0, coefficients[2], 1e-6)
}

func TestPolyFitRecoversQuadratic(t *testing.T) {
	xs, ys := samples(24, func(x float64) float64 { return 300 - 12*x + 0.5*x*x })

	coefficients, err := PolyFit(xs, ys, 2)
	require.NoError(t, err)
	assert.InDelta(t, 300, coefficients[0], 1e-6)
	assert.InDelta(t, -12, coefficients[1], 1e-6)
	assert.InDelta(t, 0.5, coefficients[2], 1e-6)
	assert.InDelta(t, 300, Evaluate(coefficients, 0), 1e-6)
}

func TestPolyFitConstantData(t *testing.T) {
	xs, ys := samples(24, func(float64) float64 { return 500 })

	coefficients, err := PolyFit(xs, ys, 2)
	require.NoError(t, err)
	assert.InDelta(t, 500, Evaluate(coefficients, 0), 1e-6)
}

func TestPolyFitTooFewPointsIsSingular(t *testing.T) {
	coefficients, err := PolyFit([]float64{3, 7}, []float64{10, 20}, 2)
	assert.ErrorIs(t, err, ErrSingularMatrix)
	assert.Nil(t, coefficients)

	_, err = PolyFit(nil, nil, 2)
	assert.ErrorIs(t, err, ErrSingularMatrix)
}

func TestNormalEquationsShape(t *testing.T) {
	matrix, vector, err := NormalEquations([]float64{1, 2, 3}, []float64{1, 1, 1}, 2)
	require.NoError(t, err)

	assert.Equal(t, [][]float64{
		{3, 6, 14},
		{6, 14, 36},
		{14, 36, 98},
	}, matrix)
	assert.Equal(t, []float64{3, 6, 14}, vector)
}

func TestNormalEquationsRejectsBadInput(t *testing.T) {
	_, _, err := NormalEquations([]float64{1}, []float64{1, 2}, 2)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, _, err = NormalEquations(nil, nil, -1)
	assert.ErrorIs(t, err, ErrInvalidDegree)
}

func TestEvaluate(t *testing.T) {
	assert.Equal(t, 0.0, Evaluate(nil, 5))
	assert.Equal(t, 20.0, Evaluate([]float64{2, 3, 1}, 3))
}
