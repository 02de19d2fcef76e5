package troi

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("troi resource not found")
)

// Calendar event type codes used by Troi.
const (
	EventTypeHoliday  = "H"
	EventTypeAbsence  = "P"
	EventTypeTraining = "T"
	EventTypeGeneral  = "G"
)

type Credentials struct {
	Username string
	Password string
}

// Account identifies the Troi client (company) and employee of a logged in user.
type Account struct {
	Credentials
	ClientID   int
	EmployeeID int
}

type CalculationPosition struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	SubprojectID int    `json:"subprojectId"`
}

// ProjectTime is a booking of hours on a calculation position. Hours are
// fractional: 8.25 means eight hours and fifteen minutes.
type ProjectTime struct {
	ID                    int
	CalculationPositionID int
	Date                  string
	Hours                 float64
	Description           string
	IsBillable            bool
	IsInvoiced            bool
}

type CalendarEvent struct {
	ID      string
	Start   string // "2006-01-02 15:04:05"
	End     string
	Subject string
	Type    string
}

type Client interface {
	Authenticate(ctx context.Context, creds Credentials) (Account, error)
	GetCalculationPositions(ctx context.Context, account Account) ([]CalculationPosition, error)
	GetProjectTimes(ctx context.Context, account Account, from, to time.Time) ([]ProjectTime, error)
	GetProjectTime(ctx context.Context, account Account, id int) (ProjectTime, error)
	CreateProjectTime(ctx context.Context, account Account, projectTime ProjectTime) (ProjectTime, error)
	UpdateProjectTime(ctx context.Context, account Account, projectTime ProjectTime) (ProjectTime, error)
	DeleteProjectTime(ctx context.Context, account Account, id int) error
	GetCalendarEvents(ctx context.Context, account Account, from, to time.Time) ([]CalendarEvent, error)
}
