// Package timezone resolves calendar dates in the school's local zone.
package timezone

import (
	"fmt"
	"time"

	"github.com/stemsi/tutorhub-backend/internal/model"
)

// Load returns the named IANA location. An empty name means UTC.
func Load(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", name, err)
	}
	return loc, nil
}

// Today returns the current calendar date in loc as midnight UTC.
func Today(loc *time.Location) time.Time {
	return DateOf(time.Now(), loc)
}

// DateOf returns the calendar date of t as seen in loc, as midnight UTC.
func DateOf(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(model.DateLayout, s)
}

// ParseDateOr parses s, falling back to today in loc when s is empty.
func ParseDateOr(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return Today(loc), nil
	}
	return ParseDate(s)
}

// At combines a calendar date with an "HH:MM" wall time in loc.
func At(date time.Time, hhmm string, loc *time.Location) (time.Time, error) {
	clock, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", hhmm, err)
	}
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, loc), nil
}
