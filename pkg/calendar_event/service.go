package calendar_event

import (
	"context"
	"fmt"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/trackyourtime/tracky/pkg/week"
	"golang.org/x/sync/errgroup"
)

type Service struct {
	window  Window
	sources []Source
}

func NewService(window Window, sources ...Source) *Service {
	return &Service{window: window, sources: sources}
}

func (s *Service) Window() Window {
	return s.window
}

// GetEvents loads the events of all sources inside the window and expands
// them into daily occurrences ordered by date. Any failing source fails the call.
func (s *Service) GetEvents(ctx context.Context) ([]TransformedCalendarEvent, error) {
	return s.GetEventsBetween(ctx, s.window.Start, s.window.End)
}

// GetEventsBetween is GetEvents limited to the days from..to, clamped to the window.
func (s *Service) GetEventsBetween(ctx context.Context, from, to time.Time) ([]TransformedCalendarEvent, error) {
	bounds := Window{Start: week.ConvertToUTCMidnight(from), End: week.ConvertToUTCMidnight(to)}
	if bounds.Start.Before(s.window.Start) {
		bounds.Start = s.window.Start
	}
	if bounds.End.After(s.window.End) {
		bounds.End = s.window.End
	}
	if bounds.Start.After(bounds.End) {
		return nil, nil
	}

	results := make([][]CalendarEvent, len(s.sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, source := range s.sources {
		g.Go(func() error {
			events, err := source.GetEvents(gctx, bounds.Start, bounds.End)
			if err != nil {
				return fmt.Errorf("calendar source %s: %w", source.Name(), err)
			}
			log.Tracef("calendar source %s returned %d events", source.Name(), len(events))
			results[i] = events
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var transformed []TransformedCalendarEvent
	for _, events := range results {
		for _, event := range events {
			transformed = append(transformed, TransformCalendarEvent(event, bounds)...)
		}
	}
	sort.SliceStable(transformed, func(i, j int) bool {
		return transformed[i].Date.Before(transformed[j].Date)
	})
	return transformed, nil
}
