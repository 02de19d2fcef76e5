package attendance

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/trackyourtime/tracky/internal/validation"
	"github.com/trackyourtime/tracky/pkg/timeconv"
	"github.com/trackyourtime/tracky/pkg/week"
)

const (
	msgInvalidDate    = "Invalid date."
	msgInvalidBreak   = "Break must be a whole number of minutes."
	msgEndBeforeStart = "End time must be after start time."
	msgBreakTooLong   = "Break must be shorter than the working time."
)

// WorkTimeSubmission is the work time form as submitted by the browser.
type WorkTimeSubmission struct {
	Date      string
	StartTime string
	EndTime   string
	Break     string
}

func WorkTimeSubmissionFromForm(form url.Values) WorkTimeSubmission {
	return WorkTimeSubmission{
		Date:      form.Get("date"),
		StartTime: form.Get("startTime"),
		EndTime:   form.Get("endTime"),
		Break:     form.Get("breakTime"),
	}
}

// WorkTime is a validated work time form.
type WorkTime struct {
	Date         time.Time
	Start        timeconv.Time
	End          timeconv.Time
	BreakMinutes int
}

// ParseWorkTimeForm validates raw and returns a *validation.Error listing every rejected field.
func ParseWorkTimeForm(raw WorkTimeSubmission) (WorkTime, error) {
	c := validation.NewCollector()
	form := WorkTime{
		Date:         validation.Field(c, "date", raw.Date, parseDate),
		Start:        validation.Field(c, "startTime", raw.StartTime, parseTime),
		End:          validation.Field(c, "endTime", raw.EndTime, parseTime),
		BreakMinutes: validation.Field(c, "breakTime", raw.Break, parseBreak),
	}
	if err := c.Err(); err != nil {
		return WorkTime{}, err
	}

	span := timeconv.TimeToMinutes(form.End) - timeconv.TimeToMinutes(form.Start)
	if span <= 0 {
		c.Add("endTime", msgEndBeforeStart)
	} else if form.BreakMinutes >= span {
		c.Add("breakTime", msgBreakTooLong)
	}
	if err := c.Err(); err != nil {
		return WorkTime{}, err
	}
	return form, nil
}

// Spans splits the work time into work and break spans. The break is placed
// in the middle of the working time.
func (w WorkTime) Spans() []Span {
	if w.BreakMinutes == 0 {
		return []Span{{Start: w.Start, End: w.End, Kind: KindWork}}
	}
	worked := timeconv.TimeToMinutes(w.End) - timeconv.TimeToMinutes(w.Start) - w.BreakMinutes
	breakStart := timeconv.AddMinutesToTime(w.Start, worked/2)
	breakEnd := timeconv.AddMinutesToTime(breakStart, w.BreakMinutes)
	return []Span{
		{Start: w.Start, End: breakStart, Kind: KindWork},
		{Start: breakStart, End: breakEnd, Kind: KindBreak},
		{Start: breakEnd, End: w.End, Kind: KindWork},
	}
}

func parseDate(raw string) (time.Time, string) {
	date, err := time.Parse(week.DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, msgInvalidDate
	}
	return date, ""
}

func parseTime(raw string) (timeconv.Time, string) {
	t, err := timeconv.ParseTime(strings.TrimSpace(raw))
	if err != nil {
		return "", timeconv.InvalidTimeMessage
	}
	return t, ""
}

func parseBreak(raw string) (int, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ""
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes < 0 {
		return 0, msgInvalidBreak
	}
	return minutes, ""
}
