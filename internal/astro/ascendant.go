package astro

import (
	"math"
)

// Obliquity is the fixed obliquity of the ecliptic used by the ascendant formula, in degrees.
const Obliquity = 23.4393

// Angles holds the two chart angles derived from local sidereal time.
type Angles struct {
	LST       float64 // local sidereal time, hours in [0, 24)
	RAMC      float64 // right ascension of the meridian, degrees in [0, 360)
	Ascendant float64 // degrees in [0, 360)
	Midheaven float64 // degrees in [0, 360)
}

// LocalSiderealTime converts Greenwich sidereal time (hours) to local sidereal time
// for an east-positive longitude in degrees. Result is in [0, 24).
func LocalSiderealTime(gstHours, longitude float64) float64 {
	lst := math.Mod(gstHours+longitude/15, 24)
	if lst < 0 {
		lst += 24
	}
	if lst >= 24 {
		return 0
	}
	return lst
}

// RAMC returns the right ascension of the meridian in degrees for a local sidereal time in hours.
func RAMC(lstHours float64) float64 {
	return NormalizeDegrees(lstHours * 15)
}

// Midheaven returns the midheaven longitude for the given RAMC.
//
// RAMC is taken as the ecliptic longitude of the MC directly, without rotating
// right ascension through the obliquity. The error peaks near 2.5° around the solstitial points.
func Midheaven(ramc float64) float64 {
	return NormalizeDegrees(ramc)
}

// Ascendant returns the ecliptic longitude rising on the eastern horizon for the
// given RAMC and geographic latitude, both in degrees.
//
//	ASC = atan2(cos RAMC, -(sin RAMC cos φ + tan ε sin φ))
//
// The formula degenerates near the poles, where the ecliptic can coincide with the horizon.
func Ascendant(ramc, latitude float64) float64 {
	r := radians(ramc)
	phi := radians(latitude)
	eps := radians(Obliquity)

	y := math.Cos(r)
	x := -(math.Sin(r)*math.Cos(phi) + math.Tan(eps)*math.Sin(phi))
	return NormalizeDegrees(degrees(math.Atan2(y, x)))
}

// ComputeAngles derives LST, RAMC, ascendant and midheaven from Greenwich sidereal
// time and the observer's coordinates.
func ComputeAngles(gstHours, latitude, longitude float64) Angles {
	lst := LocalSiderealTime(gstHours, longitude)
	ramc := RAMC(lst)
	return Angles{
		LST:       lst,
		RAMC:      ramc,
		Ascendant: Ascendant(ramc, latitude),
		Midheaven: Midheaven(ramc),
	}
}
