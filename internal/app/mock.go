package app

import (
	"github.com/trackyourtime/tracky/internal/utils"
	"github.com/trackyourtime/tracky/pkg/personio"
	"github.com/trackyourtime/tracky/pkg/troi"
	"github.com/trackyourtime/tracky/pkg/week"
)

const (
	MockUsername = "demo"
	MockPassword = "demo"
)

// NewMockProviders returns in-memory providers with a demo user and a few
// bookings in the current week, for running without access to Troi and Personio.
func NewMockProviders(emailDomain string, clock utils.Clock) (*troi.ClientStub, *personio.ClientStub) {
	days := week.GetWeekDaysFor(clock.Now())
	monday := days[0].Format(week.DateLayout)
	tuesday := days[1].Format(week.DateLayout)
	friday := days[4].Format(week.DateLayout)

	troiStub := troi.NewClientStub()
	troiStub.AddUser(MockUsername, MockPassword)
	troiStub.SetCalculationPositions([]troi.CalculationPosition{
		{ID: 1, Name: "Internal", SubprojectID: 10},
		{ID: 2, Name: "Customer project", SubprojectID: 20},
	})
	troiStub.AddProjectTime(troi.ProjectTime{CalculationPositionID: 1, Date: monday, Hours: 1.5, Description: "Planning"})
	troiStub.AddProjectTime(troi.ProjectTime{CalculationPositionID: 2, Date: monday, Hours: 6, Description: "Development", IsBillable: true})
	troiStub.AddProjectTime(troi.ProjectTime{CalculationPositionID: 2, Date: tuesday, Hours: 4, Description: "Invoiced work", IsBillable: true, IsInvoiced: true})
	troiStub.SetCalendarEvents([]troi.CalendarEvent{
		{ID: "1", Start: friday + " 00:00:00", End: friday + " 00:00:00", Subject: "Team day", Type: troi.EventTypeGeneral},
	})

	personioStub := personio.NewClientStub()
	personioStub.AddEmployee(personio.Employee{
		ID:           "1",
		Email:        MockUsername + "@" + emailDomain,
		FirstName:    "Demo",
		LastName:     "User",
		WorkingHours: 40,
	})
	personioStub.AddAttendance(personio.AttendancePeriod{PersonID: "1", Type: personio.PeriodWork, Date: monday, Start: "09:00", End: "12:30"})
	personioStub.AddAttendance(personio.AttendancePeriod{PersonID: "1", Type: personio.PeriodBreak, Date: monday, Start: "12:30", End: "13:00"})
	personioStub.AddAttendance(personio.AttendancePeriod{PersonID: "1", Type: personio.PeriodWork, Date: monday, Start: "13:00", End: "17:30"})

	return troiStub, personioStub
}
