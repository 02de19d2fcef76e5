package overview

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/trackyourtime/tracky/pkg/attendance"
	"github.com/trackyourtime/tracky/pkg/calendar_event"
	"github.com/trackyourtime/tracky/pkg/project_time"
	"github.com/trackyourtime/tracky/pkg/timeconv"
	"github.com/trackyourtime/tracky/pkg/troi"
	"github.com/trackyourtime/tracky/pkg/week"
)

// Data is everything the time tracking page needs, loaded in one go.
type Data struct {
	CalendarEvents       []calendar_event.TransformedCalendarEvent
	CalculationPositions []troi.CalculationPosition
	ProjectTimes         []project_time.ProjectTime
	Attendances          []attendance.Attendance
}

type Day struct {
	Date         time.Time
	DayNumber    int
	Hours        decimal.Decimal
	ProjectTimes []project_time.ProjectTime
	Events       []calendar_event.TransformedCalendarEvent
	Attendance   *attendance.Attendance
	// Bookable is false on holidays, project hours can't be booked then.
	Bookable bool
}

// HoursDisplay formats the booked hours as "H:MM", or "0" when nothing is booked.
func (d Day) HoursDisplay() string {
	return timeconv.ConvertFloatTimeToHHMM(d.Hours.InexactFloat64())
}

type Week struct {
	Number week.WeekNumber
	Days   [5]Day
}

func (w Week) TotalHours() decimal.Decimal {
	total := decimal.Zero
	for _, day := range w.Days {
		total = total.Add(day.Hours)
	}
	return total
}

func (w Week) WorkedMinutes() int {
	total := 0
	for _, day := range w.Days {
		if day.Attendance != nil {
			total += day.Attendance.WorkedMinutes()
		}
	}
	return total
}

// BuildWeek arranges data into the business week containing date.
func BuildWeek(date time.Time, data Data) Week {
	w := Week{Number: week.WeekNumberFor(date)}
	for i, weekday := range week.GetWeekDaysFor(date) {
		projectTimes := project_time.FindProjectTimesOfDate(data.ProjectTimes, weekday)
		events := calendar_event.FindEventsOfDate(data.CalendarEvents, weekday)

		hours := decimal.Zero
		for _, projectTime := range projectTimes {
			hours = hours.Add(decimal.NewFromFloat(projectTime.Hours))
		}

		day := Day{
			Date:         weekday,
			DayNumber:    week.GetDayNumberFor(weekday),
			Hours:        hours,
			ProjectTimes: projectTimes,
			Events:       events,
			Bookable:     !calendar_event.HasHoliday(events),
		}
		if a, ok := attendance.FindAttendanceOfDate(data.Attendances, weekday.Format(week.DateLayout)); ok {
			day.Attendance = &a
		}
		w.Days[i] = day
	}
	return w
}
