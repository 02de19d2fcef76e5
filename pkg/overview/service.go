package overview

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/trackyourtime/tracky/internal/utils"
	"github.com/trackyourtime/tracky/pkg/attendance"
	"github.com/trackyourtime/tracky/pkg/calendar_event"
	"github.com/trackyourtime/tracky/pkg/project_time"
	"github.com/trackyourtime/tracky/pkg/week"
	"golang.org/x/sync/errgroup"
)

var ErrWeekOutsideWindow = errors.New("week is outside the calendar window")

type Service struct {
	calendar     *calendar_event.Service
	projectTimes project_time.Service
	attendances  attendance.Service
	clock        utils.Clock
}

func NewService(
	calendar *calendar_event.Service,
	projectTimes project_time.Service,
	attendances attendance.Service,
	clock utils.Clock,
) *Service {
	return &Service{
		calendar:     calendar,
		projectTimes: projectTimes,
		attendances:  attendances,
		clock:        clock,
	}
}

func (s *Service) Today() time.Time {
	return s.clock.Now()
}

// Load fetches events, positions, bookings and attendances of the whole
// calendar window concurrently. The first failure cancels the others.
func (s *Service) Load(ctx context.Context) (Data, error) {
	window := s.calendar.Window()
	return s.load(ctx, window.Start, window.End, true)
}

// Week loads the business week containing the calendar day of date.
// Weeks not overlapping the calendar window fail with ErrWeekOutsideWindow.
func (s *Service) Week(ctx context.Context, date time.Time) (Week, error) {
	date = week.CalendarDate(date)
	if err := s.checkWindow(week.WeekNumberFor(date)); err != nil {
		return Week{}, err
	}
	days := week.GetWeekDaysFor(date)
	data, err := s.load(ctx, week.CalendarDate(days[0]), week.CalendarDate(days[4]), false)
	if err != nil {
		return Week{}, err
	}
	return BuildWeek(date, data), nil
}

func (s *Service) checkWindow(requested week.WeekNumber) error {
	window := s.calendar.Window()
	first := week.WeekNumberFor(window.Start)
	last := week.WeekNumberFor(window.End)
	if requested.Before(first) || requested.After(last) {
		return fmt.Errorf("%w: %s is not between %s and %s", ErrWeekOutsideWindow, requested, first, last)
	}
	return nil
}

func (s *Service) load(ctx context.Context, from, to time.Time, withPositions bool) (Data, error) {
	start := time.Now()
	var data Data

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		events, err := s.calendar.GetEventsBetween(gctx, from, to)
		if err != nil {
			return fmt.Errorf("failed to load calendar events: %w", err)
		}
		data.CalendarEvents = events
		return nil
	})
	if withPositions {
		g.Go(func() error {
			positions, err := s.projectTimes.GetCalculationPositions(gctx)
			if err != nil {
				return fmt.Errorf("failed to load calculation positions: %w", err)
			}
			data.CalculationPositions = positions
			return nil
		})
	}
	g.Go(func() error {
		projectTimes, err := s.projectTimes.GetProjectTimes(gctx, from, to)
		if err != nil {
			return fmt.Errorf("failed to load project times: %w", err)
		}
		data.ProjectTimes = projectTimes
		return nil
	})
	g.Go(func() error {
		attendances, err := s.attendances.GetAttendances(gctx, from, to)
		if err != nil {
			return fmt.Errorf("failed to load attendances: %w", err)
		}
		data.Attendances = attendances
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Errorf("overview load failed: %v", err)
		return Data{}, err
	}
	log.Debugf("overview loaded in %s", time.Since(start))
	return data, nil
}
