package week

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	day = 24 * time.Hour

	// DateLayout is the date format used by both external providers.
	DateLayout = "2006-01-02"

	// weekdays are anchored at 05:00 so that a DST switch never moves them to another calendar day
	weekDayHour = 5
)

// AddDaysToDate adds n*24h to t. Negative n subtracts days. Wall-clock hours
// are not preserved across DST transitions.
func AddDaysToDate(t time.Time, n int) time.Time {
	return t.Add(time.Duration(n) * day)
}

// ConvertToUTCMidnight makes dates comparable regardless of their time and zone.
func ConvertToUTCMidnight(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// CalendarDate returns the calendar day of t, read in t's own location, as UTC midnight.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// UTCMidnightDateFromString parses the date part (before the first space) of
// strings like "2024-03-04 00:00:00" as UTC midnight.
func UTCMidnightDateFromString(s string) (time.Time, error) {
	datePart, _, _ := strings.Cut(s, " ")
	t, err := time.ParseInLocation(DateLayout, datePart, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// GetDatesBetween returns every day from start to end (inclusive) as UTC midnight.
func GetDatesBetween(start, end time.Time) []time.Time {
	var dates []time.Time
	for current := start; !current.After(end); current = AddDaysToDate(current, 1) {
		dates = append(dates, ConvertToUTCMidnight(current))
	}
	return dates
}

// SameDay reports whether a and b carry the same calendar date, each read in its own location.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// GetWeekDaysFor returns Monday to Friday of the ISO week containing t, each at 05:00 in t's location.
func GetWeekDaysFor(t time.Time) [5]time.Time {
	dayNumber := int(t.Weekday())
	if dayNumber == 0 {
		dayNumber = 7
	}
	y, m, d := t.Date()
	var days [5]time.Time
	for i := range days {
		days[i] = time.Date(y, m, d-(dayNumber-1)+i, weekDayHour, 0, 0, 0, t.Location())
	}
	return days
}

// GetDayNumberFor returns the ISO day index, Monday=0 .. Sunday=6.
func GetDayNumberFor(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// GetWeekNumberFor returns the ISO-8601 week number of t. The Thursday of t's
// week decides the year; weeks are counted from that year's first Thursday.
func GetWeekNumberFor(t time.Time) int {
	_, weekNumber := nearestThursdayWeek(t)
	return weekNumber
}

func nearestThursdayWeek(t time.Time) (int, int) {
	y, m, d := t.Date()
	thursday := time.Date(y, m, d-GetDayNumberFor(t)+3, 0, 0, 0, 0, time.UTC)

	firstThursday := time.Date(thursday.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	if firstThursday.Weekday() != time.Thursday {
		offset := (int(time.Thursday) - int(firstThursday.Weekday()) + 7) % 7
		firstThursday = time.Date(thursday.Year(), time.January, 1+offset, 0, 0, 0, 0, time.UTC)
	}
	weeks := math.Ceil(float64(thursday.Sub(firstThursday)) / float64(7*day))
	return thursday.Year(), 1 + int(weeks)
}
