package astro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCuspsAngularHouses(t *testing.T) {
	h := Cusps(100, 10)

	assert.InDelta(t, 100.0, h[0], 1e-9)
	assert.InDelta(t, 190.0, h[3], 1e-9)
	assert.InDelta(t, 280.0, h[6], 1e-9)
	assert.InDelta(t, 10.0, h[9], 1e-9)
	assert.Equal(t, h[0], h.Ascendant())
	assert.Equal(t, h[9], h.Midheaven())
}

func TestCuspsTrisection(t *testing.T) {
	h := Cusps(100, 10)

	// asc -> mc: forward arc 270, step 90
	assert.InDelta(t, 190.0, h[1], 1e-9)
	assert.InDelta(t, 280.0, h[2], 1e-9)
	// mc -> dsc: 10 -> 280, step 90
	assert.InDelta(t, 100.0, h[10], 1e-9)
	assert.InDelta(t, 190.0, h[11], 1e-9)
	// dsc -> ic: 280 -> 190, step 90
	assert.InDelta(t, 10.0, h[7], 1e-9)
	assert.InDelta(t, 100.0, h[8], 1e-9)
	// ic -> asc: 190 -> 100, step 90
	assert.InDelta(t, 280.0, h[4], 1e-9)
	assert.InDelta(t, 10.0, h[5], 1e-9)

	for _, c := range h {
		assert.GreaterOrEqual(t, c, 0.0)
		assert.Less(t, c, 360.0)
	}
}

func TestFindHouseBoundaryBelongsToStartingHouse(t *testing.T) {
	h := HouseCusps{10, 40, 67, 95, 120, 150, 190, 220, 247, 275, 300, 330}

	house, ok := FindHouse(67.0, h)
	require.True(t, ok)
	assert.Equal(t, 3, house)

	house, _ = FindHouse(66.999, h)
	assert.Equal(t, 2, house)

	house, _ = FindHouse(10.0, h)
	assert.Equal(t, 1, house)
}

func TestFindHouseWraparound(t *testing.T) {
	h := HouseCusps{10, 40, 67, 95, 120, 150, 190, 220, 247, 275, 300, 330}

	for _, lon := range []float64{330, 345, 359.9, 0, 5, 9.999} {
		house, ok := FindHouse(lon, h)
		require.True(t, ok)
		assert.Equal(t, 12, house, "lon=%v", lon)
	}

	house, _ := FindHouse(-5, h)
	assert.Equal(t, 12, house)
	house, _ = FindHouse(370, h)
	assert.Equal(t, 1, house)
}

func TestFindHouseCoversCircle(t *testing.T) {
	cuspSets := []HouseCusps{
		Cusps(100, 10),
		Cusps(345, 255),
		Cusps(12.3, 280.9),
		Cusps(Ascendant(RAMC(17.2), 28.6139), Midheaven(RAMC(17.2))),
		Cusps(Ascendant(RAMC(3.1), -41), Midheaven(RAMC(3.1))),
	}

	for _, h := range cuspSets {
		for i := 0; i < 3600; i++ {
			lon := float64(i) / 10
			house, ok := FindHouse(lon, h)
			require.True(t, ok, "no house for %v in %v", lon, h)
			require.GreaterOrEqual(t, house, 1)
			require.LessOrEqual(t, house, 12)

			cur := h[house-1]
			next := h[house%HouseCount]
			if next > cur {
				assert.True(t, lon >= cur && lon < next, "lon=%v house=%d", lon, house)
			} else {
				assert.True(t, lon >= cur || lon < next, "lon=%v house=%d", lon, house)
			}
		}
	}
}

func TestHouseCuspsShift(t *testing.T) {
	h := Cusps(100, 10)
	shifted := h.Shift(-23.85)
	for i := range h {
		assert.InDelta(t, NormalizeDegrees(h[i]-23.85), shifted[i], 1e-9)
	}

	// membership is preserved when planet and cusps rotate together
	for lon := 0.0; lon < 360; lon += 7.7 {
		a, _ := FindHouse(lon, h)
		b, _ := FindHouse(lon-23.85, shifted)
		assert.Equal(t, a, b, "lon=%v", lon)
	}
}
