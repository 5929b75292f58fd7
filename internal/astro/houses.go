package astro

// HouseCount is the number of houses in a chart.
const HouseCount = 12

// HouseSystemTrisection names the quadrant system produced by Cusps.
const HouseSystemTrisection = "placidus-trisection"

// HouseCusps holds the twelve cusp longitudes; index i is the cusp of house i+1.
// Index 0 is the ascendant and index 9 the midheaven. The sequence is not monotone
// as a flat array: it wraps through 0° somewhere, so consumers must handle wraparound.
type HouseCusps [HouseCount]float64

// Cusps divides the ecliptic into twelve houses from the ascendant and midheaven.
//
// The angular cusps are exact (1 = ASC, 4 = IC, 7 = DSC, 10 = MC). Each quadrant between
// them is split into three equal arcs, which approximates Placidus without solving
// semi-arcs.
func Cusps(asc, mc float64) HouseCusps {
	var h HouseCusps

	asc = NormalizeDegrees(asc)
	mc = NormalizeDegrees(mc)
	dsc := NormalizeDegrees(asc + 180)
	ic := NormalizeDegrees(mc + 180)

	h[0] = asc
	h[3] = ic
	h[6] = dsc
	h[9] = mc

	trisect(&h, asc, mc, 1, 2)
	trisect(&h, mc, dsc, 10, 11)
	trisect(&h, dsc, ic, 7, 8)
	trisect(&h, ic, asc, 4, 5)

	return h
}

// trisect writes the two intermediate cusps of the quadrant start→end into h[i1] and h[i2].
func trisect(h *HouseCusps, start, end float64, i1, i2 int) {
	delta := ArcForward(start, end) / 3
	h[i1] = NormalizeDegrees(start + delta)
	h[i2] = NormalizeDegrees(start + 2*delta)
}

// FindHouse returns the house (1..12) containing the longitude. Each house is the
// half-open arc [cusp, next cusp). ok is false when no arc matched and house 1 was
// returned as a fallback; that only happens for a malformed cusp sequence.
func FindHouse(longitude float64, cusps HouseCusps) (house int, ok bool) {
	lon := NormalizeDegrees(longitude)

	for i := 0; i < HouseCount; i++ {
		cur := cusps[i]
		next := cusps[(i+1)%HouseCount]

		if next > cur {
			if lon >= cur && lon < next {
				return i + 1, true
			}
		} else {
			// arc wraps through 0°
			if lon >= cur || lon < next {
				return i + 1, true
			}
		}
	}

	return 1, false
}

// Shift rotates every cusp by offset degrees.
func (h HouseCusps) Shift(offset float64) HouseCusps {
	var out HouseCusps
	for i, c := range h {
		out[i] = NormalizeDegrees(c + offset)
	}
	return out
}

// Ascendant returns the cusp of the first house.
func (h HouseCusps) Ascendant() float64 { return h[0] }

// Midheaven returns the cusp of the tenth house.
func (h HouseCusps) Midheaven() float64 { return h[9] }
