// Package stats holds the small distribution measures used by chart analysis.
package stats

import (
	"math"
)

// Sum returns the total of values.
func Sum(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum
}

// ShannonEntropy calculates the Shannon entropy in bits of a distribution given
// as frequency counts or probabilities. Non-positive entries are ignored.
func ShannonEntropy(values []float64) float64 {
	sum := Sum(values)
	if sum <= 0 {
		return 0
	}

	var entropy float64
	for _, v := range values {
		if v > 0 {
			p := v / sum
			entropy -= p * math.Log2(p)
		}
	}
	return entropy
}

// NormalizedEntropy scales ShannonEntropy into [0, 1] by log2 of the number of
// categories: 1 means evenly spread, 0 means everything in one category.
func NormalizedEntropy(values []float64) float64 {
	if len(values) <= 1 {
		return 0
	}
	return ShannonEntropy(values) / math.Log2(float64(len(values)))
}

// ArgMax returns the index of the largest value, the first one on ties, or -1 for
// an empty slice.
func ArgMax(values []float64) int {
	best := -1
	for i, v := range values {
		if best < 0 || v > values[best] {
			best = i
		}
	}
	return best
}
