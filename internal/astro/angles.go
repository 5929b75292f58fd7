package astro

import (
	"math"

	"github.com/golang/geo/s1"
)

// NormalizeDegrees maps any finite angle in degrees onto [0, 360).
func NormalizeDegrees(x float64) float64 {
	n := math.Mod(math.Mod(x, 360)+360, 360)
	// -1e-15 + 360 rounds to exactly 360
	if n >= 360 {
		return 0
	}
	return n
}

// AngularDifference returns the signed shortest arc from one longitude to another.
// Result is in range (-180, 180]; positive means "to" lies ahead (eastward) of "from".
func AngularDifference(from, to float64) float64 {
	diff := NormalizeDegrees(to - from)
	if diff > 180 {
		diff -= 360
	}
	return diff
}

// Separation returns the unsigned shortest arc between two longitudes, in [0, 180].
func Separation(a, b float64) float64 {
	return math.Abs(AngularDifference(a, b))
}

// ArcForward returns the eastward arc length from start to end, in [0, 360).
func ArcForward(start, end float64) float64 {
	return NormalizeDegrees(end - start)
}

func radians(deg float64) float64 {
	return (s1.Angle(deg) * s1.Degree).Radians()
}

func degrees(rad float64) float64 {
	return s1.Angle(rad).Degrees()
}
