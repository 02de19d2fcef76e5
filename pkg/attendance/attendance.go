package attendance

import (
	"github.com/trackyourtime/tracky/pkg/personio"
	"github.com/trackyourtime/tracky/pkg/timeconv"
)

const (
	KindWork  = personio.PeriodWork
	KindBreak = personio.PeriodBreak
)

// Span is one continuous period of work or break within a day. End is empty
// while the span is still running.
type Span struct {
	ID    string        `json:"id"`
	Start timeconv.Time `json:"start"`
	End   timeconv.Time `json:"end,omitempty"`
	Kind  string        `json:"kind"`
}

func (s Span) Minutes() int {
	if s.End == "" {
		return 0
	}
	minutes := timeconv.TimeToMinutes(s.End) - timeconv.TimeToMinutes(s.Start)
	if minutes < 0 {
		return 0
	}
	return minutes
}

// Attendance is the attendance of one day. Date is formatted "2006-01-02".
type Attendance struct {
	Date  string `json:"date"`
	Spans []Span `json:"spans"`
}

// Start returns the earliest span start, or "" without spans.
func (a Attendance) Start() timeconv.Time {
	var start timeconv.Time
	for _, span := range a.Spans {
		if start == "" || timeconv.TimeToMinutes(span.Start) < timeconv.TimeToMinutes(start) {
			start = span.Start
		}
	}
	return start
}

// End returns the latest span end, or "" when no span has ended yet.
func (a Attendance) End() timeconv.Time {
	var end timeconv.Time
	for _, span := range a.Spans {
		if span.End == "" {
			continue
		}
		if end == "" || timeconv.TimeToMinutes(span.End) > timeconv.TimeToMinutes(end) {
			end = span.End
		}
	}
	return end
}

func (a Attendance) WorkedMinutes() int {
	return a.minutesOf(KindWork)
}

func (a Attendance) BreakMinutes() int {
	return a.minutesOf(KindBreak)
}

func (a Attendance) minutesOf(kind string) int {
	total := 0
	for _, span := range a.Spans {
		if span.Kind == kind {
			total += span.Minutes()
		}
	}
	return total
}

// FromPeriods converts raw attendance periods into one Attendance per period.
// Periods with malformed times are dropped.
func FromPeriods(periods []personio.AttendancePeriod) []Attendance {
	attendances := make([]Attendance, 0, len(periods))
	for _, period := range periods {
		start, err := timeconv.ParseTime(period.Start)
		if err != nil {
			continue
		}
		span := Span{ID: period.ID, Start: start, Kind: period.Type}
		if period.End != "" {
			end, err := timeconv.ParseTime(period.End)
			if err != nil {
				continue
			}
			span.End = end
		}
		attendances = append(attendances, Attendance{Date: period.Date, Spans: []Span{span}})
	}
	return attendances
}

// MergeAttendancesForDays combines records sharing a date into a single record
// holding all of their spans. Days keep the order in which they first appear,
// spans keep their input order.
func MergeAttendancesForDays(records []Attendance) []Attendance {
	merged := make([]Attendance, 0, len(records))
	index := make(map[string]int, len(records))
	for _, record := range records {
		i, ok := index[record.Date]
		if !ok {
			index[record.Date] = len(merged)
			merged = append(merged, Attendance{
				Date:  record.Date,
				Spans: append([]Span(nil), record.Spans...),
			})
			continue
		}
		merged[i].Spans = append(merged[i].Spans, record.Spans...)
	}
	return merged
}

// FindAttendanceOfDate returns the record dated date ("2006-01-02").
func FindAttendanceOfDate(attendances []Attendance, date string) (Attendance, bool) {
	for _, attendance := range attendances {
		if attendance.Date == date {
			return attendance, true
		}
	}
	return Attendance{}, false
}
