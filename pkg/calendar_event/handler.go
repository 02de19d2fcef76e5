package calendar_event

import (
	"net/http"
	"time"

	"github.com/trackyourtime/tracky/internal/rest"
	"github.com/trackyourtime/tracky/pkg/week"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetEvents returns all occurrences in the window, or those of the day given by the date query parameter.
func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	var date time.Time
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse(week.DateLayout, raw)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid date format", "'date' must be in YYYY-MM-DD format")
			return
		}
		date = parsed
	}

	events, err := h.service.GetEvents(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !date.IsZero() {
		events = FindEventsOfDate(events, date)
	}
	if events == nil {
		events = []TransformedCalendarEvent{}
	}
	rest.WriteJSON(w, http.StatusOK, events)
}
