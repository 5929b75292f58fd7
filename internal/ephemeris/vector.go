package ephemeris

import "math"

// vec3 is a heliocentric or geocentric position in AU, ecliptic frame.
type vec3 struct {
	X, Y, Z float64
}

func (v vec3) sub(u vec3) vec3 {
	return vec3{X: v.X - u.X, Y: v.Y - u.Y, Z: v.Z - u.Z}
}

func (v vec3) norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// longitude returns the ecliptic longitude of the vector in degrees, in [0, 360).
func (v vec3) longitude() float64 {
	return normalize(math.Atan2(v.Y, v.X) * 180 / math.Pi)
}

// fromSpherical builds a vector from longitude and latitude in radians and radius in AU.
func fromSpherical(l, b, r float64) vec3 {
	sinL, cosL := math.Sincos(l)
	sinB, cosB := math.Sincos(b)
	return vec3{
		X: r * cosB * cosL,
		Y: r * cosB * sinL,
		Z: r * sinB,
	}
}

func normalize(deg float64) float64 {
	n := math.Mod(math.Mod(deg, 360)+360, 360)
	if n >= 360 {
		return 0
	}
	return n
}
