package report

import (
	"context"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/trackyourtime/tracky/pkg/overview"
	"github.com/trackyourtime/tracky/pkg/session"
	"github.com/trackyourtime/tracky/pkg/troi"
)

type WeekLoader interface {
	Today() time.Time
	Week(ctx context.Context, date time.Time) (overview.Week, error)
}

type PositionLister interface {
	GetCalculationPositions(ctx context.Context) ([]troi.CalculationPosition, error)
}

type Handler struct {
	weeks     WeekLoader
	positions PositionLister
	csv       Renderer
	pdf       Renderer
}

func NewHandler(weeks WeekLoader, positions PositionLister, csv Renderer, pdf Renderer) *Handler {
	return &Handler{weeks: weeks, positions: positions, csv: csv, pdf: pdf}
}

func (h *Handler) GetWeekCSV(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, h.csv)
}

func (h *Handler) GetWeekPDF(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, h.pdf)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, renderer Renderer) {
	date, ok := overview.DateParam(w, r, h.weeks.Today())
	if !ok {
		return
	}
	wk, err := h.weeks.Week(r.Context(), date)
	if err != nil {
		overview.WriteWeekError(w, err)
		return
	}
	positions, err := h.positions.GetCalculationPositions(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var username string
	if data, err := session.Current(r.Context()); err == nil {
		username = data.Username
	}
	report := Build(wk, positions, username)

	body, err := renderer.Render(report)
	if err != nil {
		log.Errorf("failed to render %s report: %v", renderer.Extension(), err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename(renderer.Extension())))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Errorf("failed to write report: %v", err)
	}
}
