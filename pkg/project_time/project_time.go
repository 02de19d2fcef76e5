package project_time

import (
	"errors"
	"time"

	"github.com/trackyourtime/tracky/pkg/troi"
	"github.com/trackyourtime/tracky/pkg/week"
)

var (
	ErrProjectTimeNotFound = errors.New("project time not found")
	ErrInvoiced            = errors.New("invoiced project times cannot be modified")
)

// ProjectTime is a booking of fractional hours on a calculation position.
type ProjectTime struct {
	ID                    int
	CalculationPositionID int
	Date                  time.Time // UTC midnight
	Hours                 float64
	Description           string
	IsBillable            bool
	IsInvoiced            bool
}

func fromTroi(projectTime troi.ProjectTime) (ProjectTime, error) {
	date, err := week.UTCMidnightDateFromString(projectTime.Date)
	if err != nil {
		return ProjectTime{}, err
	}
	return ProjectTime{
		ID:                    projectTime.ID,
		CalculationPositionID: projectTime.CalculationPositionID,
		Date:                  date,
		Hours:                 projectTime.Hours,
		Description:           projectTime.Description,
		IsBillable:            projectTime.IsBillable,
		IsInvoiced:            projectTime.IsInvoiced,
	}, nil
}

func (f SaveFormData) toTroi(id int) troi.ProjectTime {
	return troi.ProjectTime{
		ID:                    id,
		CalculationPositionID: f.CalculationPositionID,
		Date:                  f.Date.Format(week.DateLayout),
		Hours:                 f.Hours,
		Description:           f.Description,
		IsBillable:            f.IsBillable,
		IsInvoiced:            f.IsInvoiced,
	}
}

// FindProjectTimesOfDate returns the bookings on the same calendar day as date.
func FindProjectTimesOfDate(projectTimes []ProjectTime, date time.Time) []ProjectTime {
	var found []ProjectTime
	for _, projectTime := range projectTimes {
		if week.SameDay(projectTime.Date, date) {
			found = append(found, projectTime)
		}
	}
	return found
}
