package google

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/trackyourtime/tracky/internal/metrics"
	"github.com/trackyourtime/tracky/pkg/calendar_event"
	"github.com/trackyourtime/tracky/pkg/week"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const provider = "google"

// HolidayCalendar reads public holidays from a public Google calendar, such as
// "de.german#holiday@group.v.calendar.google.com".
type HolidayCalendar struct {
	service    *gcal.Service
	calendarId string
}

// NewHolidayCalendar authenticates with an API key. Extra options are applied after it.
func NewHolidayCalendar(ctx context.Context, apiKey, calendarId string, opts ...option.ClientOption) (*HolidayCalendar, error) {
	options := append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	service, err := gcal.NewService(ctx, options...)
	if err != nil {
		err := fmt.Errorf("unable to create Calendar client: %w", err)
		log.Error(err)
		return nil, err
	}
	return &HolidayCalendar{service: service, calendarId: calendarId}, nil
}

func (c *HolidayCalendar) Name() string {
	return provider
}

func (c *HolidayCalendar) GetEvents(ctx context.Context, from time.Time, to time.Time) (events []calendar_event.CalendarEvent, err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveExternalRequest(provider, "list_holidays", err, time.Since(start))
	}()

	err = c.service.Events.List(c.calendarId).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Pages(ctx, func(page *gcal.Events) error {
			for _, item := range page.Items {
				event, ok := toCalendarEvent(item)
				if !ok {
					log.Warnf("ignoring google calendar event without date: %s", item.Summary)
					continue
				}
				events = append(events, event)
			}
			return nil
		})
	if err != nil {
		err = fmt.Errorf("unable to retrieve events from Google Calendar: %w", err)
		log.Error(err)
		return nil, err
	}
	return events, nil
}

// toCalendarEvent converts an all-day event. Google's end date is exclusive.
func toCalendarEvent(item *gcal.Event) (calendar_event.CalendarEvent, bool) {
	if item.Start == nil || item.Start.Date == "" {
		return calendar_event.CalendarEvent{}, false
	}
	startDate, err := week.UTCMidnightDateFromString(item.Start.Date)
	if err != nil {
		return calendar_event.CalendarEvent{}, false
	}
	endDate := startDate
	if item.End != nil && item.End.Date != "" {
		if exclusiveEnd, err := week.UTCMidnightDateFromString(item.End.Date); err == nil && exclusiveEnd.After(startDate) {
			endDate = week.AddDaysToDate(exclusiveEnd, -1)
		}
	}
	return calendar_event.CalendarEvent{
		ID:      item.Id,
		Start:   startDate,
		End:     endDate,
		Subject: item.Summary,
		Type:    calendar_event.TypeHoliday,
	}, true
}
