// Package timeutil holds the pure calendar helpers the planner core is built
// on: projecting a stored wall-clock time of day onto a concrete date, and
// computing the canonical Sunday-aligned start of a week.
package timeutil

import (
	"math"
	"time"
)

// OnDate maps the hour/minute portion of clock onto the calendar day of date,
// in date's location. Seconds and finer are dropped.
func OnDate(clock time.Time, date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, date.Location())
}

// Midnight returns the start of date's calendar day.
func Midnight(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, date.Location())
}

// WeekStart returns midnight of the Sunday on or before date. Day index 0 of
// a planner week always corresponds to this instant.
func WeekStart(date time.Time) time.Time {
	return Midnight(date).AddDate(0, 0, -int(date.Weekday()))
}

// SameDay reports whether a and b fall on the same calendar day in a's
// location.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}

// DaysBetween returns the number of calendar days from a's day to b's day;
// positive when b is later. Rounding absorbs DST-shortened or -lengthened
// days.
func DaysBetween(a, b time.Time) int {
	return int(math.Round(Midnight(b).Sub(Midnight(a.In(b.Location()))).Hours() / 24))
}
