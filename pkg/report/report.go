package report

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/trackyourtime/tracky/pkg/overview"
	"github.com/trackyourtime/tracky/pkg/troi"
	"github.com/trackyourtime/tracky/pkg/week"
)

// Report is a flat listing of one business week's bookings.
type Report struct {
	Week     week.WeekNumber
	Username string
	Rows     []Row
	Days     []DaySummary
	Total    decimal.Decimal
}

type Row struct {
	Date        time.Time
	Position    string
	Description string
	Hours       decimal.Decimal
	Billable    bool
}

type DaySummary struct {
	Date          time.Time
	Hours         decimal.Decimal
	WorkedMinutes int
	Holiday       bool
}

// Renderer turns a report into a downloadable document.
type Renderer interface {
	Render(report Report) ([]byte, error)
	ContentType() string
	Extension() string
}

// Build flattens wk into report rows. Unknown positions are shown by their id.
func Build(wk overview.Week, positions []troi.CalculationPosition, username string) Report {
	names := make(map[int]string, len(positions))
	for _, position := range positions {
		names[position.ID] = position.Name
	}

	report := Report{Week: wk.Number, Username: username, Total: wk.TotalHours()}
	for _, day := range wk.Days {
		summary := DaySummary{Date: day.Date, Hours: day.Hours, Holiday: !day.Bookable}
		if day.Attendance != nil {
			summary.WorkedMinutes = day.Attendance.WorkedMinutes()
		}
		report.Days = append(report.Days, summary)

		for _, projectTime := range day.ProjectTimes {
			name, ok := names[projectTime.CalculationPositionID]
			if !ok {
				name = fmt.Sprintf("#%d", projectTime.CalculationPositionID)
			}
			report.Rows = append(report.Rows, Row{
				Date:        day.Date,
				Position:    name,
				Description: projectTime.Description,
				Hours:       decimal.NewFromFloat(projectTime.Hours),
				Billable:    projectTime.IsBillable,
			})
		}
	}
	return report
}

func (r Report) Filename(extension string) string {
	return fmt.Sprintf("tracky-%s.%s", r.Week.String(), extension)
}
