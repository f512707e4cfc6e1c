package util

import (
	"math"
	"sort"
)

// Clamp01 limits x to [0,1]. NaN maps to 0.
func Clamp01(x float64) float64 {
	return Clamp(x, 0, 1)
}

// Clamp limits x to [lo,hi]. NaN maps to lo.
func Clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) || x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Mean returns the arithmetic mean, or 0 for no values
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Median returns the median, averaging the middle pair for even counts.
// The input is not modified.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// GeometricMean returns the geometric mean with each term floored at floor,
// so a single zero does not collapse the result
func GeometricMean(values []float64, floor float64) float64 {
	if len(values) == 0 {
		return 0
	}
	logSum := 0.0
	for _, v := range values {
		logSum += math.Log(math.Max(v, floor))
	}
	return math.Exp(logSum / float64(len(values)))
}

// NoisyOR combines weights as 1 - Π(1-w). Repeated weights saturate instead of stacking.
func NoisyOR(weights []float64) float64 {
	complement := 1.0
	for _, w := range weights {
		complement *= 1 - Clamp01(w)
	}
	return Clamp01(1 - complement)
}

// Band maps a score to the 0-5 presentation band: round(clamp01(score)*5)
func Band(score float64) int {
	b := int(math.Round(Clamp01(score) * 5))
	if b < 0 {
		return 0
	}
	if b > 5 {
		return 5
	}
	return b
}
