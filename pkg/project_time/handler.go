package project_time

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/trackyourtime/tracky/internal/metrics"
	"github.com/trackyourtime/tracky/internal/rest"
	"github.com/trackyourtime/tracky/pkg/timeconv"
	"github.com/trackyourtime/tracky/pkg/troi"
	"github.com/trackyourtime/tracky/pkg/week"
)

type Handler struct {
	service Service
}

type ProjectTimeDTO struct {
	ID                    int     `json:"id"`
	CalculationPositionID int     `json:"calculationPositionId"`
	Date                  string  `json:"date"`
	Hours                 float64 `json:"hours"`
	HoursDisplay          string  `json:"hoursDisplay"`
	Description           string  `json:"description"`
	IsBillable            bool    `json:"isBillable"`
	IsInvoiced            bool    `json:"isInvoiced"`
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetCalculationPositions(w http.ResponseWriter, r *http.Request) {
	positions, err := h.service.GetCalculationPositions(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if positions == nil {
		positions = []troi.CalculationPosition{}
	}
	rest.WriteJSON(w, http.StatusOK, positions)
}

func (h *Handler) GetProjectTimes(w http.ResponseWriter, r *http.Request) {
	date, err := time.Parse(week.DateLayout, r.URL.Query().Get("date"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid date format", "'date' must be in YYYY-MM-DD format")
		return
	}

	projectTimes, err := h.service.GetProjectTimes(r.Context(), date, date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]ProjectTimeDTO, 0, len(projectTimes))
	for _, projectTime := range FindProjectTimesOfDate(projectTimes, date) {
		dtos = append(dtos, ToDTO(projectTime))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateProjectTime(w http.ResponseWriter, r *http.Request) {
	form, ok := h.parseForm(w, r)
	if !ok {
		return
	}
	created, err := h.service.Create(r.Context(), form)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, ToDTO(created))
}

func (h *Handler) UpdateProjectTime(w http.ResponseWriter, r *http.Request) {
	id, ok := projectTimeID(w, r)
	if !ok {
		return
	}
	form, ok := h.parseForm(w, r)
	if !ok {
		return
	}
	updated, err := h.service.Update(r.Context(), id, form)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ToDTO(updated))
}

func (h *Handler) DeleteProjectTime(w http.ResponseWriter, r *http.Request) {
	id, ok := projectTimeID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// parseForm writes the validation errors and reports false when the submitted form is invalid.
func (h *Handler) parseForm(w http.ResponseWriter, r *http.Request) (SaveFormData, bool) {
	if err := r.ParseForm(); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid form", err.Error())
		return SaveFormData{}, false
	}
	form, err := ParseSaveForm(RawSubmissionFromForm(r.PostForm))
	if err != nil {
		var validationErr *ValidationError
		if !errors.As(err, &validationErr) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return SaveFormData{}, false
		}
		for field := range validationErr.Fields {
			metrics.IncValidationFailure(field)
		}
		log.Debugf("project time form rejected: %v", err)
		rest.WriteJSON(w, http.StatusUnprocessableEntity, rest.ValidationErrorResponse{
			Error:  "Invalid project time",
			Fields: validationErr.Fields,
		})
		return SaveFormData{}, false
	}
	return form, true
}

func projectTimeID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid project time id", "")
		return 0, false
	}
	return id, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrProjectTimeNotFound):
		rest.WriteError(w, http.StatusNotFound, "Project time not found", "")
	case errors.Is(err, ErrInvoiced):
		rest.WriteError(w, http.StatusConflict, MsgInvoiced, "")
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func ToDTO(projectTime ProjectTime) ProjectTimeDTO {
	return ProjectTimeDTO{
		ID:                    projectTime.ID,
		CalculationPositionID: projectTime.CalculationPositionID,
		Date:                  projectTime.Date.Format(week.DateLayout),
		Hours:                 projectTime.Hours,
		HoursDisplay:          timeconv.ConvertFloatTimeToHHMM(projectTime.Hours),
		Description:           projectTime.Description,
		IsBillable:            projectTime.IsBillable,
		IsInvoiced:            projectTime.IsInvoiced,
	}
}
