package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp01(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.42, 0.42},
		{1, 1},
		{1.7, 1},
		{math.NaN(), 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Clamp01(tt.in))
	}
}

func TestMeanAndMedian(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.InDelta(t, 0.5, Mean([]float64{0.2, 0.8}), 1e-12)

	assert.Equal(t, 0.0, Median(nil))
	assert.InDelta(t, 0.4, Median([]float64{0.9, 0.1, 0.4}), 1e-12)
	assert.InDelta(t, 0.5, Median([]float64{0.9, 0.1, 0.4, 0.6}), 1e-12)
}

func TestMedian_DoesNotReorderInput(t *testing.T) {
	values := []float64{0.9, 0.1, 0.4}
	Median(values)
	assert.Equal(t, []float64{0.9, 0.1, 0.4}, values)
}

func TestGeometricMean_FloorsZeros(t *testing.T) {
	assert.Equal(t, 0.0, GeometricMean(nil, 1e-6))
	assert.InDelta(t, 0.5, GeometricMean([]float64{0.25, 1.0}, 1e-6), 1e-12)

	withZero := GeometricMean([]float64{0, 1, 1}, 1e-6)
	assert.Greater(t, withZero, 0.0)
	assert.InDelta(t, 0.01, withZero, 1e-9)
}

func TestNoisyOR(t *testing.T) {
	assert.Equal(t, 0.0, NoisyOR(nil))
	assert.InDelta(t, 0.5, NoisyOR([]float64{0.5}), 1e-12)
	assert.InDelta(t, 0.75, NoisyOR([]float64{0.5, 0.5}), 1e-12)
	assert.Equal(t, 1.0, NoisyOR([]float64{0.3, 1.0}))

	// Adding a positive weight never lowers the result
	base := NoisyOR([]float64{0.2, 0.3})
	assert.GreaterOrEqual(t, NoisyOR([]float64{0.2, 0.3, 0.05}), base)
}

func TestBand(t *testing.T) {
	tests := []struct {
		score float64
		want  int
	}{
		{-1, 0},
		{0, 0},
		{0.09, 0},
		{0.1, 1},
		{0.5, 3},
		{0.69, 3},
		{0.72, 4},
		{0.95, 5},
		{2, 5},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Band(tt.score), "score %v", tt.score)
	}

	prev := 0
	for s := 0.0; s <= 1.0; s += 0.01 {
		b := Band(s)
		assert.GreaterOrEqual(t, b, prev)
		prev = b
	}
}
