package event_bus

const (
	ProjectTimeSavedType   EventType = "project_time.saved"
	ProjectTimeDeletedType EventType = "project_time.deleted"
	AttendanceSavedType    EventType = "attendance.saved"
)

type ProjectTimeSaved struct {
	Id                    int
	CalculationPositionId int
	Date                  string
	Hours                 float64
	// Created is false when an existing booking was updated.
	Created bool
}

type ProjectTimeDeleted struct {
	Id    int
	Date  string
	Hours float64
}

type AttendanceSaved struct {
	Date          string
	Periods       int
	WorkedMinutes int
	BreakMinutes  int
}
