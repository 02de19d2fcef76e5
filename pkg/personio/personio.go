package personio

import (
	"context"
	"errors"
)

var (
	ErrEmployeeNotFound = errors.New("Personio employee not found")
	ErrNotFound         = errors.New("personio resource not found")
)

// Attendance period kinds.
const (
	PeriodWork  = "WORK"
	PeriodBreak = "BREAK"
)

type Employee struct {
	ID           string
	Email        string
	FirstName    string
	LastName     string
	WorkingHours float64 // per week
}

// AttendancePeriod is one raw attendance entry. Several periods usually share a date.
type AttendancePeriod struct {
	ID       string
	PersonID string
	Type     string
	Date     string // "2006-01-02"
	Start    string // "15:04"
	End      string // "15:04", empty while the period is still open
	Comment  string
}

type Client interface {
	FindEmployee(ctx context.Context, email string) (Employee, error)
	GetAttendances(ctx context.Context, personID string, from, to string) ([]AttendancePeriod, error)
	CreateAttendance(ctx context.Context, period AttendancePeriod) (AttendancePeriod, error)
	DeleteAttendance(ctx context.Context, id string) error
}
