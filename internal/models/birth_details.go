package models

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// BirthDetails is the calendar date, civil clock time and location of a birth.
type BirthDetails struct {
	Year      int     `json:"year" validate:"between=1900:2100"`
	Month     int     `json:"month" validate:"between=1:12"`
	Day       int     `json:"day" validate:"between=1:31"`
	Hour      int     `json:"hour" validate:"between=0:23"`
	Minute    int     `json:"minute" validate:"between=0:59"`
	Latitude  float64 `json:"latitude" validate:"between=-90:90"`
	Longitude float64 `json:"longitude" validate:"between=-180:180"`
}

// ValidationError lists every out-of-range input field.
type ValidationError struct {
	Messages []string `json:"errors"`
}

func (e *ValidationError) Error() string {
	return "invalid birth details: " + strings.Join(e.Messages, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("between", validateBetween); err != nil {
		panic(fmt.Sprintf("failed to register between validation: %v", err))
	}
	return v
}

// validateBetween checks "between=lo:hi", inclusive, for integer and float fields.
func validateBetween(fl validator.FieldLevel) bool {
	lo, hi, err := parseBounds(fl.Param())
	if err != nil {
		return false
	}

	var v float64
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v = float64(fl.Field().Int())
	case reflect.Float32, reflect.Float64:
		v = fl.Field().Float()
	default:
		return false
	}
	return v >= lo && v <= hi
}

func parseBounds(param string) (float64, float64, error) {
	parts := strings.SplitN(param, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("bad bounds %q", param)
	}
	lo, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, err
	}
	hi, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, 0, err
	}
	return lo, hi, nil
}

// calendarFields are the fields that do not depend on where the birth took place.
var calendarFields = []string{"Year", "Month", "Day", "Hour", "Minute"}

// Problems returns one human-readable message per out-of-range field, in field order.
// An empty result means the details are valid.
func (b BirthDetails) Problems() []string {
	return problems(validate.Struct(b))
}

// CalendarProblems is Problems restricted to the date and time fields, so a request
// can be rejected before its coordinates are known.
func (b BirthDetails) CalendarProblems() []string {
	return problems(validate.StructPartial(b, calendarFields...))
}

func problems(err error) []string {
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, formatFieldError(fe))
	}
	return messages
}

func formatFieldError(fe validator.FieldError) string {
	if fe.Tag() == "between" {
		if parts := strings.SplitN(fe.Param(), ":", 2); len(parts) == 2 {
			return fmt.Sprintf("%s must be between %s and %s", fe.Field(), parts[0], parts[1])
		}
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

// Validate returns a *ValidationError when any field is out of range.
func (b BirthDetails) Validate() error {
	if msgs := b.Problems(); len(msgs) > 0 {
		return &ValidationError{Messages: msgs}
	}
	return nil
}

// ValidateCalendar returns a *ValidationError when a date or time field is out of range.
// Latitude and longitude are not checked.
func (b BirthDetails) ValidateCalendar() error {
	if msgs := b.CalendarProblems(); len(msgs) > 0 {
		return &ValidationError{Messages: msgs}
	}
	return nil
}

// Instant returns the moment described by the calendar fields, read as wall-clock time
// in loc. A nil loc reads the fields as UTC directly, with no zone conversion.
// Dates that do not exist on the calendar (e.g. 31 June) are rejected.
func (b BirthDetails) Instant(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	t := time.Date(b.Year, time.Month(b.Month), b.Day, b.Hour, b.Minute, 0, 0, loc)
	if t.Year() != b.Year || int(t.Month()) != b.Month || t.Day() != b.Day {
		return time.Time{}, fmt.Errorf("%04d-%02d-%02d is not a calendar date", b.Year, b.Month, b.Day)
	}
	return t.UTC(), nil
}

// ParseDate parses a "YYYY-MM-DD" birth date.
func ParseDate(s string) (year, month, day int, err error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return 0, 0, 0, fmt.Errorf("birth date must be YYYY-MM-DD: %w", err)
	}
	return t.Year(), int(t.Month()), t.Day(), nil
}

// ParseClock parses an "HH:MM" birth time on the 24-hour clock.
func ParseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, 0, fmt.Errorf("birth time must be HH:MM: %w", err)
	}
	return t.Hour(), t.Minute(), nil
}
