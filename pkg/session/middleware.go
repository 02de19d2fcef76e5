package session

import (
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/trackyourtime/tracky/internal/rest"
)

// Middleware rejects requests without a valid session and puts the session
// data into the request context otherwise.
func Middleware(store *Store) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			data, err := store.Load(r)
			if err != nil {
				log.Debugf("rejecting %s %s: %v", r.Method, r.URL.Path, err)
				rest.WriteError(w, http.StatusUnauthorized, "Invalid session", "please log in")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithData(r.Context(), data)))
		})
	}
}
