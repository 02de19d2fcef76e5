package calendar_event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewWindow(t *testing.T) {
	reference := time.Date(2024, 3, 6, 14, 30, 0, 0, time.UTC)

	window := NewWindow(reference, 366)

	assert.Equal(t, date(2023, 3, 6), window.Start)
	assert.Equal(t, date(2025, 3, 7), window.End)
}

func TestTransformCalendarEvent(t *testing.T) {
	window := Window{Start: date(2024, 1, 1), End: date(2024, 12, 31)}

	t.Run("multi-day event", func(t *testing.T) {
		event := CalendarEvent{ID: "e1", Start: date(2024, 3, 4), End: date(2024, 3, 6), Subject: "Vacation", Type: TypeAbsence}

		occurrences := TransformCalendarEvent(event, window)

		require.Len(t, occurrences, 3)
		for i, occurrence := range occurrences {
			assert.Equal(t, date(2024, 3, 4+i), occurrence.Date)
			assert.Equal(t, TypeAbsence, occurrence.Type)
			assert.Equal(t, "Vacation", occurrence.Subject)
		}
		assert.Equal(t, "e1-2024-03-04", occurrences[0].ID)
	})

	t.Run("single day without end", func(t *testing.T) {
		event := CalendarEvent{ID: "e2", Start: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC), Type: TypeHoliday}

		occurrences := TransformCalendarEvent(event, window)

		require.Len(t, occurrences, 1)
		assert.Equal(t, date(2024, 5, 1), occurrences[0].Date)
	})

	t.Run("clamped to window", func(t *testing.T) {
		event := CalendarEvent{ID: "e3", Start: date(2023, 12, 30), End: date(2024, 1, 2)}
		occurrences := TransformCalendarEvent(event, window)
		require.Len(t, occurrences, 2)
		assert.Equal(t, date(2024, 1, 1), occurrences[0].Date)

		event = CalendarEvent{ID: "e4", Start: date(2024, 12, 30), End: date(2025, 1, 3)}
		occurrences = TransformCalendarEvent(event, window)
		require.Len(t, occurrences, 2)
		assert.Equal(t, date(2024, 12, 31), occurrences[1].Date)
	})

	t.Run("outside window", func(t *testing.T) {
		event := CalendarEvent{ID: "e5", Start: date(2026, 1, 1), End: date(2026, 1, 2)}
		assert.Empty(t, TransformCalendarEvent(event, window))
	})
}

func TestFindEventsOfDate(t *testing.T) {
	events := []TransformedCalendarEvent{
		{ID: "a", Date: date(2024, 3, 4), Type: TypeHoliday},
		{ID: "b", Date: date(2024, 3, 5), Type: TypeTraining},
		{ID: "c", Date: date(2024, 3, 4), Type: TypeGeneral},
	}
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	found := FindEventsOfDate(events, time.Date(2024, 3, 4, 5, 0, 0, 0, berlin))

	require.Len(t, found, 2)
	assert.Equal(t, "a", found[0].ID)
	assert.Equal(t, "c", found[1].ID)
	assert.True(t, HasHoliday(found))
	assert.False(t, HasHoliday(FindEventsOfDate(events, date(2024, 3, 5))))
	assert.Empty(t, FindEventsOfDate(events, date(2024, 3, 6)))
}

func TestTypeFromTroi(t *testing.T) {
	assert.Equal(t, TypeHoliday, TypeFromTroi("H"))
	assert.Equal(t, TypeAbsence, TypeFromTroi("P"))
	assert.Equal(t, TypeTraining, TypeFromTroi("T"))
	assert.Equal(t, TypeGeneral, TypeFromTroi("G"))
	assert.Equal(t, TypeOther, TypeFromTroi("X"))
}
