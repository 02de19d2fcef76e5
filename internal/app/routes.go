package app

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes registers all endpoints. Routes on api require a session.
func RegisterRoutes(r *mux.Router, api *mux.Router, deps *Dependencies) {

	// Session
	r.HandleFunc("/login", deps.SessionHandler.Login).Methods("POST")
	r.HandleFunc("/logout", deps.SessionHandler.Logout).Methods("POST")
	api.HandleFunc("/me", deps.SessionHandler.Me).Methods("GET")

	// Metrics
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Project times
	api.HandleFunc("/calculation-positions", deps.ProjectTimeHandler.GetCalculationPositions).Methods("GET")
	api.HandleFunc("/project-times", deps.ProjectTimeHandler.GetProjectTimes).Methods("GET")
	api.HandleFunc("/project-times", deps.ProjectTimeHandler.CreateProjectTime).Methods("POST")
	api.HandleFunc("/project-times/{id}", deps.ProjectTimeHandler.UpdateProjectTime).Methods("PUT")
	api.HandleFunc("/project-times/{id}", deps.ProjectTimeHandler.DeleteProjectTime).Methods("DELETE")

	// Attendances
	api.HandleFunc("/attendances", deps.AttendanceHandler.GetAttendances).Methods("GET")
	api.HandleFunc("/attendances", deps.AttendanceHandler.SaveWorkTime).Methods("POST")
	api.HandleFunc("/attendances/{id}", deps.AttendanceHandler.DeletePeriod).Methods("DELETE")

	// Calendar events
	api.HandleFunc("/calendar-events", deps.CalendarEventHandler.GetEvents).Methods("GET")

	// Overview
	api.HandleFunc("/overview", deps.OverviewHandler.GetOverview).Methods("GET")
	api.HandleFunc("/week", deps.OverviewHandler.GetWeek).Methods("GET")

	// Reports
	api.HandleFunc("/report/week.csv", deps.ReportHandler.GetWeekCSV).Methods("GET")
	api.HandleFunc("/report/week.pdf", deps.ReportHandler.GetWeekPDF).Methods("GET")
}
