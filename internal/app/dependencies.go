package app

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/trackyourtime/tracky/internal/audit"
	"github.com/trackyourtime/tracky/internal/config"
	"github.com/trackyourtime/tracky/internal/event_bus"
	"github.com/trackyourtime/tracky/internal/metrics"
	"github.com/trackyourtime/tracky/internal/utils"
	"github.com/trackyourtime/tracky/pkg/attendance"
	"github.com/trackyourtime/tracky/pkg/calendar_event"
	"github.com/trackyourtime/tracky/pkg/google"
	"github.com/trackyourtime/tracky/pkg/overview"
	"github.com/trackyourtime/tracky/pkg/personio"
	"github.com/trackyourtime/tracky/pkg/project_time"
	"github.com/trackyourtime/tracky/pkg/report"
	"github.com/trackyourtime/tracky/pkg/session"
	"github.com/trackyourtime/tracky/pkg/troi"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus

	TroiClient     troi.Client
	PersonioClient personio.Client

	SessionStore   *session.Store
	SessionHandler *session.Handler

	ProjectTimeService *project_time.ServiceImpl
	ProjectTimeHandler *project_time.Handler

	AttendanceService *attendance.ServiceImpl
	AttendanceHandler *attendance.Handler

	CalendarEventService *calendar_event.Service
	CalendarEventHandler *calendar_event.Handler

	OverviewService *overview.Service
	OverviewHandler *overview.Handler

	ReportHandler *report.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(ctx context.Context, cfg config.Application, clock utils.Clock) (*Dependencies, error) {
	metrics.Init()

	deps := &Dependencies{Clock: clock}

	deps.EventBus = event_bus.NewEventBus()
	audit.Subscribe(deps.EventBus)

	if cfg.Mock {
		troiStub, personioStub := NewMockProviders(cfg.Personio.EmailDomain, clock)
		deps.TroiClient = troiStub
		deps.PersonioClient = personioStub
	} else {
		deps.TroiClient = troi.NewClient(cfg.Troi.BaseURL, nil)
		deps.PersonioClient = personio.NewClient(ctx, cfg.Personio.BaseURL, cfg.Personio.TokenURL,
			cfg.Personio.ClientId, cfg.Personio.ClientSecret)
	}

	deps.SessionStore = session.NewStore(cfg.Session.Secret, cfg.Session.MaxAgeDays, cfg.Session.Secure)
	deps.SessionHandler = session.NewHandler(deps.SessionStore, deps.TroiClient, deps.PersonioClient, cfg.Personio.EmailDomain)

	deps.ProjectTimeService = project_time.NewService(deps.TroiClient, deps.EventBus)
	deps.ProjectTimeHandler = project_time.NewHandler(deps.ProjectTimeService)

	deps.AttendanceService = attendance.NewService(deps.PersonioClient, deps.EventBus)
	deps.AttendanceHandler = attendance.NewHandler(deps.AttendanceService)

	sources := []calendar_event.Source{calendar_event.NewTroiSource(deps.TroiClient)}
	if cfg.Google.Enabled() {
		holidays, err := google.NewHolidayCalendar(ctx, cfg.Google.ApiKey, cfg.Google.CalendarId)
		if err != nil {
			return nil, err
		}
		sources = append(sources, holidays)
		log.Infof("Holiday calendar %s enabled", cfg.Google.CalendarId)
	}
	window := calendar_event.NewWindow(clock.Now(), cfg.Calendar.WindowDays)
	deps.CalendarEventService = calendar_event.NewService(window, sources...)
	deps.CalendarEventHandler = calendar_event.NewHandler(deps.CalendarEventService)

	deps.OverviewService = overview.NewService(deps.CalendarEventService, deps.ProjectTimeService, deps.AttendanceService, clock)
	deps.OverviewHandler = overview.NewHandler(deps.OverviewService)

	deps.ReportHandler = report.NewHandler(deps.OverviewService, deps.ProjectTimeService,
		report.NewCsvRenderer(), report.NewPdfRenderer())

	return deps, nil
}
