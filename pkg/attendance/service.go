package attendance

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/trackyourtime/tracky/internal/event_bus"
	"github.com/trackyourtime/tracky/pkg/personio"
	"github.com/trackyourtime/tracky/pkg/session"
	"github.com/trackyourtime/tracky/pkg/week"
)

type Service interface {
	// GetAttendances returns one merged record per day between from and to.
	GetAttendances(ctx context.Context, from, to time.Time) ([]Attendance, error)
	// SaveWorkTime replaces the attendance of the form's day.
	SaveWorkTime(ctx context.Context, workTime WorkTime) (Attendance, error)
	DeletePeriod(ctx context.Context, id string) error
}

type ServiceImpl struct {
	client   personio.Client
	eventBus *event_bus.EventBus
}

func NewService(client personio.Client, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{client: client, eventBus: eventBus}
}

func (s *ServiceImpl) GetAttendances(ctx context.Context, from, to time.Time) ([]Attendance, error) {
	personID, err := currentPersonID(ctx)
	if err != nil {
		return nil, err
	}
	periods, err := s.client.GetAttendances(ctx, personID, from.Format(week.DateLayout), to.Format(week.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to get attendances: %w", err)
	}
	return MergeAttendancesForDays(FromPeriods(periods)), nil
}

func (s *ServiceImpl) SaveWorkTime(ctx context.Context, workTime WorkTime) (Attendance, error) {
	personID, err := currentPersonID(ctx)
	if err != nil {
		return Attendance{}, err
	}
	date := workTime.Date.Format(week.DateLayout)

	existing, err := s.client.GetAttendances(ctx, personID, date, date)
	if err != nil {
		return Attendance{}, fmt.Errorf("failed to get attendances of %s: %w", date, err)
	}
	for _, period := range existing {
		if err := s.client.DeleteAttendance(ctx, period.ID); err != nil {
			return Attendance{}, fmt.Errorf("failed to replace attendance %s: %w", period.ID, err)
		}
	}

	saved := Attendance{Date: date}
	for _, span := range workTime.Spans() {
		created, err := s.client.CreateAttendance(ctx, personio.AttendancePeriod{
			PersonID: personID,
			Type:     span.Kind,
			Date:     date,
			Start:    span.Start.String(),
			End:      span.End.String(),
		})
		if err != nil {
			return Attendance{}, fmt.Errorf("failed to create attendance period: %w", err)
		}
		span.ID = created.ID
		saved.Spans = append(saved.Spans, span)
	}

	err = s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.AttendanceSavedType, event_bus.AttendanceSaved{
		Date:          date,
		Periods:       len(saved.Spans),
		WorkedMinutes: saved.WorkedMinutes(),
		BreakMinutes:  saved.BreakMinutes(),
	}))
	if err != nil {
		log.Errorf("failed to publish attendance saved event: %v", err)
	}
	return saved, nil
}

func (s *ServiceImpl) DeletePeriod(ctx context.Context, id string) error {
	if _, err := currentPersonID(ctx); err != nil {
		return err
	}
	if err := s.client.DeleteAttendance(ctx, id); err != nil {
		return fmt.Errorf("failed to delete attendance period: %w", err)
	}
	return nil
}

func currentPersonID(ctx context.Context) (string, error) {
	data, err := session.Current(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get current session: %w", err)
	}
	return data.PersonioEmployee.ID, nil
}
