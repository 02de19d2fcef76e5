package app

import (
	"github.com/gorilla/mux"
	"github.com/trackyourtime/tracky/internal/requestid"
	"github.com/trackyourtime/tracky/pkg/session"
)

// SetupMiddleware wires all HTTP middlewares and returns the /api subrouter,
// which only serves requests carrying a valid session.
func SetupMiddleware(r *mux.Router, deps *Dependencies) *mux.Router {
	r.Use(requestid.Middleware)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(session.Middleware(deps.SessionStore))
	return api
}
