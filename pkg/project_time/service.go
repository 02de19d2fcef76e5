package project_time

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/trackyourtime/tracky/internal/event_bus"
	"github.com/trackyourtime/tracky/pkg/session"
	"github.com/trackyourtime/tracky/pkg/troi"
	"github.com/trackyourtime/tracky/pkg/week"
)

type Service interface {
	GetCalculationPositions(ctx context.Context) ([]troi.CalculationPosition, error)
	GetProjectTimes(ctx context.Context, from, to time.Time) ([]ProjectTime, error)
	Create(ctx context.Context, form SaveFormData) (ProjectTime, error)
	// Update replaces booking id with form. Invoiced bookings are rejected with ErrInvoiced.
	Update(ctx context.Context, id int, form SaveFormData) (ProjectTime, error)
	// Delete removes booking id. Invoiced bookings are rejected with ErrInvoiced.
	Delete(ctx context.Context, id int) error
}

type ServiceImpl struct {
	client   troi.Client
	eventBus *event_bus.EventBus
}

func NewService(client troi.Client, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{client: client, eventBus: eventBus}
}

func (s *ServiceImpl) GetCalculationPositions(ctx context.Context) ([]troi.CalculationPosition, error) {
	account, err := currentAccount(ctx)
	if err != nil {
		return nil, err
	}
	positions, err := s.client.GetCalculationPositions(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to get calculation positions: %w", err)
	}
	return positions, nil
}

func (s *ServiceImpl) GetProjectTimes(ctx context.Context, from, to time.Time) ([]ProjectTime, error) {
	account, err := currentAccount(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := s.client.GetProjectTimes(ctx, account, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get project times: %w", err)
	}

	projectTimes := make([]ProjectTime, 0, len(raw))
	for _, r := range raw {
		projectTime, err := fromTroi(r)
		if err != nil {
			log.Warnf("skipping project time %d: %v", r.ID, err)
			continue
		}
		projectTimes = append(projectTimes, projectTime)
	}
	return projectTimes, nil
}

func (s *ServiceImpl) Create(ctx context.Context, form SaveFormData) (ProjectTime, error) {
	account, err := currentAccount(ctx)
	if err != nil {
		return ProjectTime{}, err
	}
	created, err := s.client.CreateProjectTime(ctx, account, form.toTroi(0))
	if err != nil {
		return ProjectTime{}, fmt.Errorf("failed to create project time: %w", err)
	}
	projectTime, err := fromTroi(created)
	if err != nil {
		return ProjectTime{}, fmt.Errorf("troi returned an invalid project time: %w", err)
	}
	s.publishSaved(ctx, projectTime, true)
	return projectTime, nil
}

func (s *ServiceImpl) Update(ctx context.Context, id int, form SaveFormData) (ProjectTime, error) {
	account, err := currentAccount(ctx)
	if err != nil {
		return ProjectTime{}, err
	}
	if _, err := s.getModifiable(ctx, account, id); err != nil {
		return ProjectTime{}, err
	}

	updated, err := s.client.UpdateProjectTime(ctx, account, form.toTroi(id))
	if err != nil {
		return ProjectTime{}, fmt.Errorf("failed to update project time %d: %w", id, err)
	}
	projectTime, err := fromTroi(updated)
	if err != nil {
		return ProjectTime{}, fmt.Errorf("troi returned an invalid project time: %w", err)
	}
	s.publishSaved(ctx, projectTime, false)
	return projectTime, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) error {
	account, err := currentAccount(ctx)
	if err != nil {
		return err
	}
	existing, err := s.getModifiable(ctx, account, id)
	if err != nil {
		return err
	}
	if err := s.client.DeleteProjectTime(ctx, account, id); err != nil {
		if errors.Is(err, troi.ErrNotFound) {
			return ErrProjectTimeNotFound
		}
		return fmt.Errorf("failed to delete project time %d: %w", id, err)
	}

	err = s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.ProjectTimeDeletedType, event_bus.ProjectTimeDeleted{
		Id:    id,
		Date:  existing.Date,
		Hours: existing.Hours,
	}))
	if err != nil {
		log.Errorf("failed to publish project time deleted event: %v", err)
	}
	return nil
}

func (s *ServiceImpl) getModifiable(ctx context.Context, account troi.Account, id int) (troi.ProjectTime, error) {
	existing, err := s.client.GetProjectTime(ctx, account, id)
	if err != nil {
		if errors.Is(err, troi.ErrNotFound) {
			return troi.ProjectTime{}, ErrProjectTimeNotFound
		}
		return troi.ProjectTime{}, fmt.Errorf("failed to get project time %d: %w", id, err)
	}
	if existing.IsInvoiced {
		log.Debugf("rejecting change of invoiced project time %d", id)
		return troi.ProjectTime{}, ErrInvoiced
	}
	return existing, nil
}

func (s *ServiceImpl) publishSaved(ctx context.Context, projectTime ProjectTime, created bool) {
	err := s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.ProjectTimeSavedType, event_bus.ProjectTimeSaved{
		Id:                    projectTime.ID,
		CalculationPositionId: projectTime.CalculationPositionID,
		Date:                  projectTime.Date.Format(week.DateLayout),
		Hours:                 projectTime.Hours,
		Created:               created,
	}))
	if err != nil {
		log.Errorf("failed to publish project time saved event: %v", err)
	}
}

func currentAccount(ctx context.Context) (troi.Account, error) {
	data, err := session.Current(ctx)
	if err != nil {
		return troi.Account{}, fmt.Errorf("failed to get current session: %w", err)
	}
	return data.TroiAccount(), nil
}
