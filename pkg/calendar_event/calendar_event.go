package calendar_event

import (
	"time"

	"github.com/trackyourtime/tracky/pkg/troi"
	"github.com/trackyourtime/tracky/pkg/week"
)

type Type string

const (
	TypeHoliday  Type = "Holiday"
	TypeAbsence  Type = "Absence"
	TypeTraining Type = "Training"
	TypeGeneral  Type = "General"
	TypeOther    Type = "Other"
)

// TypeFromTroi maps a Troi calendar event type code.
func TypeFromTroi(code string) Type {
	switch code {
	case troi.EventTypeHoliday:
		return TypeHoliday
	case troi.EventTypeAbsence:
		return TypeAbsence
	case troi.EventTypeTraining:
		return TypeTraining
	case troi.EventTypeGeneral:
		return TypeGeneral
	default:
		return TypeOther
	}
}

// CalendarEvent covers the calendar days from Start to End, both inclusive.
type CalendarEvent struct {
	ID      string
	Start   time.Time
	End     time.Time
	Subject string
	Type    Type
}

// TransformedCalendarEvent is the occurrence of an event on a single day.
type TransformedCalendarEvent struct {
	ID      string    `json:"id"`
	Date    time.Time `json:"date"`
	Type    Type      `json:"type"`
	Subject string    `json:"subject"`
}

// Window bounds the expansion of multi-day events. Both ends are UTC midnights.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow returns the window reaching days before and after reference.
func NewWindow(reference time.Time, days int) Window {
	return Window{
		Start: week.ConvertToUTCMidnight(week.AddDaysToDate(reference, -days)),
		End:   week.ConvertToUTCMidnight(week.AddDaysToDate(reference, days)),
	}
}

// TransformCalendarEvent expands event into one occurrence per covered day inside window.
// An event without end covers its start day only.
func TransformCalendarEvent(event CalendarEvent, window Window) []TransformedCalendarEvent {
	start := week.ConvertToUTCMidnight(event.Start)
	end := start
	if !event.End.IsZero() {
		end = week.ConvertToUTCMidnight(event.End)
	}
	if start.Before(window.Start) {
		start = window.Start
	}
	if end.After(window.End) {
		end = window.End
	}

	dates := week.GetDatesBetween(start, end)
	occurrences := make([]TransformedCalendarEvent, 0, len(dates))
	for _, date := range dates {
		occurrences = append(occurrences, TransformedCalendarEvent{
			ID:      event.ID + "-" + date.Format(week.DateLayout),
			Date:    date,
			Type:    event.Type,
			Subject: event.Subject,
		})
	}
	return occurrences
}

// FindEventsOfDate returns the occurrences on the same calendar day as date.
func FindEventsOfDate(events []TransformedCalendarEvent, date time.Time) []TransformedCalendarEvent {
	var found []TransformedCalendarEvent
	for _, event := range events {
		if week.SameDay(event.Date, date) {
			found = append(found, event)
		}
	}
	return found
}

// HasHoliday reports whether any of events is a holiday.
func HasHoliday(events []TransformedCalendarEvent) bool {
	for _, event := range events {
		if event.Type == TypeHoliday {
			return true
		}
	}
	return false
}
