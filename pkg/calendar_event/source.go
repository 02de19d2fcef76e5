package calendar_event

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/trackyourtime/tracky/pkg/session"
	"github.com/trackyourtime/tracky/pkg/troi"
	"github.com/trackyourtime/tracky/pkg/week"
)

// Source provides the calendar events between from and to.
type Source interface {
	Name() string
	GetEvents(ctx context.Context, from, to time.Time) ([]CalendarEvent, error)
}

// TroiSource reads the holidays and absences of the logged in user from Troi.
type TroiSource struct {
	client troi.Client
}

func NewTroiSource(client troi.Client) *TroiSource {
	return &TroiSource{client: client}
}

func (s *TroiSource) Name() string {
	return "troi"
}

func (s *TroiSource) GetEvents(ctx context.Context, from, to time.Time) ([]CalendarEvent, error) {
	data, err := session.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current session: %w", err)
	}
	raw, err := s.client.GetCalendarEvents(ctx, data.TroiAccount(), from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get troi calendar events: %w", err)
	}

	events := make([]CalendarEvent, 0, len(raw))
	for _, r := range raw {
		start, err := week.UTCMidnightDateFromString(r.Start)
		if err != nil {
			log.Warnf("skipping troi calendar event %s: %v", r.ID, err)
			continue
		}
		event := CalendarEvent{
			ID:      r.ID,
			Start:   start,
			Subject: r.Subject,
			Type:    TypeFromTroi(r.Type),
		}
		if r.End != "" {
			end, err := week.UTCMidnightDateFromString(r.End)
			if err != nil {
				log.Warnf("skipping troi calendar event %s: %v", r.ID, err)
				continue
			}
			event.End = end
		}
		events = append(events, event)
	}
	return events, nil
}
