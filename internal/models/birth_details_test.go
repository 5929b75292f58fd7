package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDetails() BirthDetails {
	return BirthDetails{Year: 1990, Month: 6, Day: 15, Hour: 12, Minute: 0, Latitude: 28.6139, Longitude: 77.2090}
}

func TestBirthDetailsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BirthDetails)
		want   []string
	}{
		{name: "valid", mutate: func(*BirthDetails) {}},
		{name: "lower year bound", mutate: func(d *BirthDetails) { d.Year = 1900 }},
		{name: "upper year bound", mutate: func(d *BirthDetails) { d.Year = 2100 }},
		{name: "poles and antimeridian", mutate: func(d *BirthDetails) { d.Latitude, d.Longitude = -90, 180 }},
		{
			name:   "year too early",
			mutate: func(d *BirthDetails) { d.Year = 1500 },
			want:   []string{"Year must be between 1900 and 2100"},
		},
		{
			name:   "month zero",
			mutate: func(d *BirthDetails) { d.Month = 0 },
			want:   []string{"Month must be between 1 and 12"},
		},
		{
			name:   "minute sixty",
			mutate: func(d *BirthDetails) { d.Minute = 60 },
			want:   []string{"Minute must be between 0 and 59"},
		},
		{
			name: "several fields in field order",
			mutate: func(d *BirthDetails) {
				d.Hour = 24
				d.Latitude = 91
				d.Day = 32
			},
			want: []string{
				"Day must be between 1 and 31",
				"Hour must be between 0 and 23",
				"Latitude must be between -90 and 90",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDetails()
			tt.mutate(&d)

			err := d.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				assert.Empty(t, d.Problems())
				return
			}

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.want, verr.Messages)
			assert.Contains(t, err.Error(), tt.want[0])
		})
	}
}

func TestBirthDetailsValidateCalendar(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BirthDetails)
		want   []string
	}{
		{name: "valid", mutate: func(*BirthDetails) {}},
		{
			name:   "coordinates not yet known",
			mutate: func(d *BirthDetails) { d.Latitude, d.Longitude = 0, 0 },
		},
		{
			name:   "coordinates are ignored",
			mutate: func(d *BirthDetails) { d.Latitude, d.Longitude = 91, 500 },
		},
		{
			name:   "year too early",
			mutate: func(d *BirthDetails) { d.Year, d.Latitude = 1500, 91 },
			want:   []string{"Year must be between 1900 and 2100"},
		},
		{
			name: "date and time in field order",
			mutate: func(d *BirthDetails) {
				d.Minute = 75
				d.Month = 13
			},
			want: []string{
				"Month must be between 1 and 12",
				"Minute must be between 0 and 59",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDetails()
			tt.mutate(&d)

			err := d.ValidateCalendar()
			if tt.want == nil {
				assert.NoError(t, err)
				assert.Empty(t, d.CalendarProblems())
				return
			}

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.want, verr.Messages)
		})
	}
}

func TestBirthDetailsInstant(t *testing.T) {
	d := validDetails()

	got, err := d.Instant(nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(1990, 6, 15, 12, 0, 0, 0, time.UTC), got)

	ist := time.FixedZone("IST", 5*3600+30*60)
	got, err = d.Instant(ist)
	require.NoError(t, err)
	assert.Equal(t, time.Date(1990, 6, 15, 6, 30, 0, 0, time.UTC), got)
	assert.Equal(t, time.UTC, got.Location())

	d.Day = 31
	_, err = d.Instant(nil)
	assert.Error(t, err, "31 June does not exist")

	d.Month, d.Day = 2, 29
	d.Year = 2000
	_, err = d.Instant(nil)
	assert.NoError(t, err, "2000 is a leap year")
}

func TestParseDateAndClock(t *testing.T) {
	y, m, d, err := ParseDate(" 1990-06-15 ")
	require.NoError(t, err)
	assert.Equal(t, []int{1990, 6, 15}, []int{y, m, d})

	_, _, _, err = ParseDate("15/06/1990")
	assert.Error(t, err)

	h, min, err := ParseClock("07:45")
	require.NoError(t, err)
	assert.Equal(t, 7, h)
	assert.Equal(t, 45, min)

	_, _, err = ParseClock("25:00")
	assert.Error(t, err)
}

func TestChartRequestDetails(t *testing.T) {
	t.Run("form fields", func(t *testing.T) {
		req := ChartRequest{BirthDate: "1990-06-15", BirthTime: "12:30", BirthPlace: "New Delhi"}
		d, err := req.Details()
		require.NoError(t, err)
		assert.Equal(t, BirthDetails{Year: 1990, Month: 6, Day: 15, Hour: 12, Minute: 30}, d)
	})

	t.Run("structured birth", func(t *testing.T) {
		b := validDetails()
		d, err := ChartRequest{Birth: &b}.Details()
		require.NoError(t, err)
		assert.Equal(t, b, d)
	})

	t.Run("form date overrides structured date", func(t *testing.T) {
		b := validDetails()
		d, err := ChartRequest{Birth: &b, BirthDate: "2001-01-02"}.Details()
		require.NoError(t, err)
		assert.Equal(t, 2001, d.Year)
		assert.Equal(t, b.Latitude, d.Latitude)
	})

	t.Run("missing date", func(t *testing.T) {
		_, err := ChartRequest{BirthPlace: "Paris"}.Details()
		assert.Error(t, err)
	})

	t.Run("missing place", func(t *testing.T) {
		_, err := ChartRequest{BirthDate: "1990-06-15"}.Details()
		assert.Error(t, err)
	})

	t.Run("bad time", func(t *testing.T) {
		_, err := ChartRequest{BirthDate: "1990-06-15", BirthTime: "noon", BirthPlace: "Paris"}.Details()
		assert.Error(t, err)
	})
}
