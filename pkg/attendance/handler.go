package attendance

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/trackyourtime/tracky/internal/metrics"
	"github.com/trackyourtime/tracky/internal/rest"
	"github.com/trackyourtime/tracky/internal/validation"
	"github.com/trackyourtime/tracky/pkg/personio"
	"github.com/trackyourtime/tracky/pkg/timeconv"
	"github.com/trackyourtime/tracky/pkg/week"
)

type Handler struct {
	service Service
}

type AttendanceDTO struct {
	Date          string `json:"date"`
	Start         string `json:"start"`
	End           string `json:"end"`
	WorkedMinutes int    `json:"workedMinutes"`
	BreakMinutes  int    `json:"breakMinutes"`
	WorkedHours   string `json:"workedHours"`
	Spans         []Span `json:"spans"`
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetAttendances(w http.ResponseWriter, r *http.Request) {
	from, err := time.Parse(week.DateLayout, r.URL.Query().Get("from"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid from (date) format", "'from' must be in YYYY-MM-DD format")
		return
	}
	to, err := time.Parse(week.DateLayout, r.URL.Query().Get("to"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid to (date) format", "'to' must be in YYYY-MM-DD format")
		return
	}

	attendances, err := h.service.GetAttendances(r.Context(), from, to)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]AttendanceDTO, 0, len(attendances))
	for _, attendance := range attendances {
		dtos = append(dtos, ToDTO(attendance))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func (h *Handler) SaveWorkTime(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid form", err.Error())
		return
	}
	workTime, err := ParseWorkTimeForm(WorkTimeSubmissionFromForm(r.PostForm))
	if err != nil {
		var validationErr *validation.Error
		if errors.As(err, &validationErr) {
			for field := range validationErr.Fields {
				metrics.IncValidationFailure(field)
			}
			rest.WriteJSON(w, http.StatusUnprocessableEntity, rest.ValidationErrorResponse{
				Error:  "Invalid work time",
				Fields: validationErr.Fields,
			})
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	saved, err := h.service.SaveWorkTime(r.Context(), workTime)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	log.Debugf("work time saved for %s", saved.Date)
	rest.WriteJSON(w, http.StatusCreated, ToDTO(saved))
}

func (h *Handler) DeletePeriod(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.service.DeletePeriod(r.Context(), id); err != nil {
		if errors.Is(err, personio.ErrNotFound) {
			rest.WriteError(w, http.StatusNotFound, "Attendance not found", "")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func ToDTO(attendance Attendance) AttendanceDTO {
	spans := attendance.Spans
	if spans == nil {
		spans = []Span{}
	}
	return AttendanceDTO{
		Date:          attendance.Date,
		Start:         attendance.Start().String(),
		End:           attendance.End().String(),
		WorkedMinutes: attendance.WorkedMinutes(),
		BreakMinutes:  attendance.BreakMinutes(),
		WorkedHours:   timeconv.ConvertFloatTimeToHHMM(float64(attendance.WorkedMinutes()) / 60),
		Spans:         spans,
	}
}
