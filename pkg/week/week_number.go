package week

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type WeekNumber struct {
	Week int
	Year int
}

// WeekNumberFor returns the ISO week and ISO year containing t.
func WeekNumberFor(t time.Time) WeekNumber {
	year, week := nearestThursdayWeek(t)
	return WeekNumber{Year: year, Week: week}
}

// WeekNumberFromString converts ISO week format ISO 8601 e.g. "2025-W03" to WeekNumber
func WeekNumberFromString(isoWeekString string) (WeekNumber, error) {
	yearPart, weekPart, found := strings.Cut(isoWeekString, "-W")
	if !found {
		return WeekNumber{}, fmt.Errorf("invalid ISO week format: %s", isoWeekString)
	}
	year, err := strconv.Atoi(yearPart)
	if err != nil {
		return WeekNumber{}, fmt.Errorf("invalid year: %w", err)
	}
	week, err := strconv.Atoi(weekPart)
	if err != nil {
		return WeekNumber{}, fmt.Errorf("invalid week: %w", err)
	}
	if week < 1 || week > 53 {
		return WeekNumber{}, fmt.Errorf("invalid week: %d", week)
	}
	return WeekNumber{Year: year, Week: week}, nil
}

// Monday returns the Monday of the week at 05:00 in loc.
func (w WeekNumber) Monday(loc *time.Location) time.Time {
	// January 4th always lies in ISO week 1
	jan4 := time.Date(w.Year, time.January, 4, weekDayHour, 0, 0, 0, loc)
	firstMonday := GetWeekDaysFor(jan4)[0]
	return time.Date(firstMonday.Year(), firstMonday.Month(), firstMonday.Day()+7*(w.Week-1), weekDayHour, 0, 0, 0, loc)
}

// Equal returns true when both the year and week match.
func (w WeekNumber) Equal(other WeekNumber) bool {
	return w.Year == other.Year && w.Week == other.Week
}

// Before reports whether w refers to a week that occurs before other.
func (w WeekNumber) Before(other WeekNumber) bool {
	if w.Year != other.Year {
		return w.Year < other.Year
	}
	return w.Week < other.Week
}

// After reports whether w refers to a week that occurs after other.
func (w WeekNumber) After(other WeekNumber) bool {
	if w.Year != other.Year {
		return w.Year > other.Year
	}
	return w.Week > other.Week
}

// String returns the ISO week format ISO 8601 e.g. "2025-W03"
func (w WeekNumber) String() string {
	return fmt.Sprintf("%04d-W%02d", w.Year, w.Week)
}
