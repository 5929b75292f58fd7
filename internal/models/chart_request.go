package models

import (
	"fmt"
	"strings"
)

// ChartRequest is the body of POST /api/v1/charts.
//
// Birth data comes either as a full BirthDetails object or as the form fields
// birthDate/birthTime. The location comes from birth.latitude/longitude unless
// birthPlace is set, in which case it is geocoded.
type ChartRequest struct {
	Birth      *BirthDetails `json:"birth,omitempty"`
	BirthDate  string        `json:"birthDate,omitempty"` // YYYY-MM-DD
	BirthTime  string        `json:"birthTime,omitempty"` // HH:MM
	BirthPlace string        `json:"birthPlace,omitempty"`
	SystemType string        `json:"systemType,omitempty"` // tropical|western|sidereal|vedic
	Timezone   string        `json:"timezone,omitempty"`   // IANA zone of the civil birth time
	Question   string        `json:"question,omitempty"`
}

// Details merges the request's birth fields into BirthDetails. Coordinates are left
// at zero when only a place name was given.
func (r ChartRequest) Details() (BirthDetails, error) {
	var d BirthDetails
	if r.Birth != nil {
		d = *r.Birth
	}

	if strings.TrimSpace(r.BirthDate) != "" {
		y, m, day, err := ParseDate(r.BirthDate)
		if err != nil {
			return d, err
		}
		d.Year, d.Month, d.Day = y, m, day
	}
	if strings.TrimSpace(r.BirthTime) != "" {
		h, minute, err := ParseClock(r.BirthTime)
		if err != nil {
			return d, err
		}
		d.Hour, d.Minute = h, minute
	}

	if r.Birth == nil && strings.TrimSpace(r.BirthDate) == "" {
		return d, fmt.Errorf("either birth or birthDate is required")
	}
	if r.Birth == nil && strings.TrimSpace(r.BirthPlace) == "" {
		return d, fmt.Errorf("birthPlace is required when birth coordinates are not given")
	}
	return d, nil
}
