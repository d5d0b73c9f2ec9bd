// Package timeutil converts instants between IANA time zones and UTC and
// measures day gaps between instants.
package timeutil

import (
	"errors"
	"math"
	"strings"
	"time"
	_ "time/tzdata"

	"kam-api/apperrors"
)

// MillisPerDay is the divisor used for every day-gap computation.
const MillisPerDay = 1000 * 60 * 60 * 24

var ErrInvalidTimezone = errors.New("invalid timezone")

// LoadLocation resolves an IANA zone name. The empty name and "Local" are
// rejected: callers must name a zone explicitly.
func LoadLocation(name string) (*time.Location, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || trimmed == "Local" {
		return nil, apperrors.ValidationWrap(ErrInvalidTimezone, "invalid timezone %q", name)
	}
	loc, err := time.LoadLocation(trimmed)
	if err != nil {
		return nil, apperrors.ValidationWrap(ErrInvalidTimezone, "invalid timezone %q", name)
	}
	return loc, nil
}

// ValidTimezone reports whether name is a loadable IANA zone.
func ValidTimezone(name string) bool {
	_, err := LoadLocation(name)
	return err == nil
}

func ToUTC(t time.Time) time.Time {
	return t.UTC()
}

// FromUTC expresses t in the given zone.
func FromUTC(t time.Time, timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(loc), nil
}

// StartOfDay returns midnight of t's calendar date as observed in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// StartOfDayUTC returns local midnight of timezone on the local date of
// referenceNow, as a UTC instant.
func StartOfDayUTC(timezone string, referenceNow time.Time) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, err
	}
	return StartOfDay(referenceNow, loc).UTC(), nil
}

// DaysBetween is (to - from) at millisecond precision, in days.
func DaysBetween(from, to time.Time) float64 {
	return float64(to.Sub(from).Milliseconds()) / MillisPerDay
}

// RoundDays rounds to the nearest whole day; halves round up (4.5 -> 5).
func RoundDays(days float64) int {
	return int(math.Floor(days + 0.5))
}
