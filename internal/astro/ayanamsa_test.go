package astro

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseZodiac(t *testing.T) {
	for _, in := range []string{"", "tropical", "Western"} {
		z, err := ParseZodiac(in)
		require.NoError(t, err)
		assert.Equal(t, Tropical, z)
	}
	for _, in := range []string{"sidereal", "VEDIC"} {
		z, err := ParseZodiac(in)
		require.NoError(t, err)
		assert.Equal(t, Sidereal, z)
	}
	_, err := ParseZodiac("draconic")
	assert.Error(t, err)
}

func TestLahiriAyanamsa(t *testing.T) {
	assert.InDelta(t, 23.853, LahiriAyanamsa(j2000), 1e-9)

	at1990 := LahiriAyanamsa(time.Date(1990, 6, 15, 12, 0, 0, 0, time.UTC))
	assert.InDelta(t, 23.72, at1990, 0.01)
}

func TestZodiacOffset(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0.0, Tropical.Offset(now))
	assert.InDelta(t, -LahiriAyanamsa(now), Sidereal.Offset(now), 1e-12)
}
