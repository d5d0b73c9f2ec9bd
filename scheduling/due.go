// Package scheduling decides which restaurants are due for an outreach call.
package scheduling

import (
	"sort"
	"time"

	"kam-api/models"
	"kam-api/timeutil"
)

// NextCallDate is last_call_date + call_frequency days, in UTC.
// Nil when the restaurant has never been called.
func NextCallDate(r models.Restaurant) *time.Time {
	if r.LastCallDate == nil {
		return nil
	}
	next := r.LastCallDate.UTC().AddDate(0, 0, r.CallFrequency)
	return &next
}

// IsDue reports whether r must be called at referenceNow. The boundary is
// inclusive: a restaurant whose cadence elapses exactly at referenceNow is due.
func IsDue(r models.Restaurant, referenceNow time.Time) bool {
	next := NextCallDate(r)
	if next == nil {
		return true
	}
	return !next.After(referenceNow.UTC())
}

// DueForCall filters restaurants down to the due set, ordered by ascending id.
// The input slice is not modified.
func DueForCall(restaurants []models.Restaurant, referenceNow time.Time) []models.Restaurant {
	due := make([]models.Restaurant, 0, len(restaurants))
	for _, r := range restaurants {
		if IsDue(r, referenceNow) {
			due = append(due, r)
		}
	}
	sort.SliceStable(due, func(i, j int) bool { return due[i].ID < due[j].ID })
	return due
}

// ReferenceNow is the instant due-ness is evaluated against: UTC midnight of
// now when timezone is empty, otherwise local midnight of timezone expressed
// in UTC. An unknown timezone is an error, never a silent UTC fallback.
func ReferenceNow(now time.Time, timezone string) (time.Time, error) {
	if timezone == "" {
		return timeutil.StartOfDay(now, time.UTC), nil
	}
	return timeutil.StartOfDayUTC(timezone, now)
}
