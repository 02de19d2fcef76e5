package overview

import (
	"errors"
	"net/http"
	"time"

	"github.com/trackyourtime/tracky/internal/rest"
	"github.com/trackyourtime/tracky/pkg/attendance"
	"github.com/trackyourtime/tracky/pkg/calendar_event"
	"github.com/trackyourtime/tracky/pkg/project_time"
	"github.com/trackyourtime/tracky/pkg/session"
	"github.com/trackyourtime/tracky/pkg/timeconv"
	"github.com/trackyourtime/tracky/pkg/troi"
	"github.com/trackyourtime/tracky/pkg/week"
)

type Handler struct {
	service *Service
}

type OverviewDTO struct {
	Username             string                                    `json:"username"`
	WorkingHours         float64                                   `json:"workingHours"`
	CalculationPositions []troi.CalculationPosition                `json:"calculationPositions"`
	CalendarEvents       []calendar_event.TransformedCalendarEvent `json:"calendarEvents"`
	ProjectTimes         []project_time.ProjectTimeDTO             `json:"projectTimes"`
	Attendances          []attendance.AttendanceDTO                `json:"attendances"`
}

type DayDTO struct {
	Date         string                                    `json:"date"`
	DayNumber    int                                       `json:"dayNumber"`
	Hours        string                                    `json:"hours"`
	HoursDisplay string                                    `json:"hoursDisplay"`
	Bookable     bool                                      `json:"bookable"`
	ProjectTimes []project_time.ProjectTimeDTO             `json:"projectTimes"`
	Events       []calendar_event.TransformedCalendarEvent `json:"events"`
	Attendance   *attendance.AttendanceDTO                 `json:"attendance"`
}

type WeekDTO struct {
	Week          string   `json:"week"`
	TotalHours    string   `json:"totalHours"`
	TotalDisplay  string   `json:"totalDisplay"`
	WorkedMinutes int      `json:"workedMinutes"`
	Days          []DayDTO `json:"days"`
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.Load(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	user, err := session.Current(r.Context())
	if err != nil {
		rest.WriteError(w, http.StatusUnauthorized, "Invalid session", "")
		return
	}

	dto := OverviewDTO{
		Username:             user.Username,
		WorkingHours:         user.PersonioEmployee.WorkingHours,
		CalculationPositions: data.CalculationPositions,
		CalendarEvents:       data.CalendarEvents,
		ProjectTimes:         make([]project_time.ProjectTimeDTO, 0, len(data.ProjectTimes)),
		Attendances:          make([]attendance.AttendanceDTO, 0, len(data.Attendances)),
	}
	if dto.CalculationPositions == nil {
		dto.CalculationPositions = []troi.CalculationPosition{}
	}
	if dto.CalendarEvents == nil {
		dto.CalendarEvents = []calendar_event.TransformedCalendarEvent{}
	}
	for _, projectTime := range data.ProjectTimes {
		dto.ProjectTimes = append(dto.ProjectTimes, project_time.ToDTO(projectTime))
	}
	for _, a := range data.Attendances {
		dto.Attendances = append(dto.Attendances, attendance.ToDTO(a))
	}
	rest.WriteJSON(w, http.StatusOK, dto)
}

// GetWeek returns the business week of the date query parameter, or of today when absent.
func (h *Handler) GetWeek(w http.ResponseWriter, r *http.Request) {
	date, ok := DateParam(w, r, h.service.Today())
	if !ok {
		return
	}
	wk, err := h.service.Week(r.Context(), date)
	if err != nil {
		WriteWeekError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ToWeekDTO(wk))
}

// WriteWeekError maps a failed Service.Week to a response.
func WriteWeekError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrWeekOutsideWindow) {
		rest.WriteError(w, http.StatusBadRequest, "Week outside of the calendar", err.Error())
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

// DateParam reads the optional week ("2024-W10") or date ("2024-03-06") query
// parameter, in that order, and writes a 400 when it is malformed.
func DateParam(w http.ResponseWriter, r *http.Request, fallback time.Time) (time.Time, bool) {
	if raw := r.URL.Query().Get("week"); raw != "" {
		number, err := week.WeekNumberFromString(raw)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid week format", "'week' must be in YYYY-Www format")
			return time.Time{}, false
		}
		return number.Monday(time.UTC), true
	}
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return fallback, true
	}
	date, err := time.Parse(week.DateLayout, raw)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid date format", "'date' must be in YYYY-MM-DD format")
		return time.Time{}, false
	}
	return date, true
}

func ToWeekDTO(wk Week) WeekDTO {
	total := wk.TotalHours()
	dto := WeekDTO{
		Week:          wk.Number.String(),
		TotalHours:    total.StringFixed(2),
		TotalDisplay:  timeconv.ConvertFloatTimeToHHMM(total.InexactFloat64()),
		WorkedMinutes: wk.WorkedMinutes(),
		Days:          make([]DayDTO, 0, len(wk.Days)),
	}
	for _, day := range wk.Days {
		dayDTO := DayDTO{
			Date:         day.Date.Format(week.DateLayout),
			DayNumber:    day.DayNumber,
			Hours:        day.Hours.StringFixed(2),
			HoursDisplay: day.HoursDisplay(),
			Bookable:     day.Bookable,
			ProjectTimes: make([]project_time.ProjectTimeDTO, 0, len(day.ProjectTimes)),
			Events:       day.Events,
		}
		if dayDTO.Events == nil {
			dayDTO.Events = []calendar_event.TransformedCalendarEvent{}
		}
		for _, projectTime := range day.ProjectTimes {
			dayDTO.ProjectTimes = append(dayDTO.ProjectTimes, project_time.ToDTO(projectTime))
		}
		if day.Attendance != nil {
			a := attendance.ToDTO(*day.Attendance)
			dayDTO.Attendance = &a
		}
		dto.Days = append(dto.Days, dayDTO)
	}
	return dto
}
