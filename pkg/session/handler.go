package session

import (
	"errors"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/trackyourtime/tracky/internal/rest"
	"github.com/trackyourtime/tracky/pkg/personio"
	"github.com/trackyourtime/tracky/pkg/troi"
	"golang.org/x/sync/errgroup"
)

const (
	msgMissingCredentials = "Please provide username and password."
	msgLoginFailed        = "Login failed! Please check your username & password."
	msgEmployeeNotFound   = "Personio employee not found, make sure that your Troi username matches your Digitalservice email address."
)

type Handler struct {
	store       *Store
	troi        troi.Client
	personio    personio.Client
	emailDomain string
}

type UserDTO struct {
	Username     string  `json:"username"`
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	WorkingHours float64 `json:"workingHours"`
}

func NewHandler(store *Store, troiClient troi.Client, personioClient personio.Client, emailDomain string) *Handler {
	return &Handler{
		store:       store,
		troi:        troiClient,
		personio:    personioClient,
		emailDomain: emailDomain,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		rest.WriteError(w, http.StatusBadRequest, msgMissingCredentials, "")
		return
	}

	var (
		account  troi.Account
		employee personio.Employee
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		account, err = h.troi.Authenticate(ctx, troi.Credentials{Username: username, Password: password})
		return err
	})
	g.Go(func() error {
		var err error
		employee, err = h.personio.FindEmployee(ctx, h.emailFor(username))
		return err
	})

	if err := g.Wait(); err != nil {
		if destroyErr := h.store.Destroy(w, r); destroyErr != nil {
			log.Errorf("failed to destroy session after failed login: %v", destroyErr)
		}
		switch {
		case errors.Is(err, troi.ErrInvalidCredentials):
			log.Debugf("login of %s rejected by troi", username)
			rest.WriteError(w, http.StatusUnauthorized, msgLoginFailed, "")
		case errors.Is(err, troi.ErrNotFound):
			log.Debugf("no troi client or employee for %s: %v", username, err)
			rest.WriteError(w, http.StatusUnauthorized, msgLoginFailed, "")
		case errors.Is(err, personio.ErrEmployeeNotFound):
			log.Debugf("no personio employee for %s", username)
			rest.WriteError(w, http.StatusUnauthorized, msgEmployeeNotFound, "")
		default:
			log.Errorf("login of %s failed: %v", username, err)
			rest.WriteError(w, http.StatusBadGateway, "Login failed", err.Error())
		}
		return
	}

	data := Data{
		Username:         username,
		TroiPassword:     password,
		TroiClientID:     account.ClientID,
		TroiEmployeeID:   account.EmployeeID,
		PersonioEmployee: employee,
	}
	if err := h.store.Save(w, r, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	log.Infof("user %s logged in", username)
	rest.WriteJSON(w, http.StatusOK, toUserDTO(data))
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Destroy(w, r); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the logged in user. It expects Middleware in front of it.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	data, err := Current(r.Context())
	if err != nil {
		rest.WriteError(w, http.StatusUnauthorized, "Invalid session", "")
		return
	}
	rest.WriteJSON(w, http.StatusOK, toUserDTO(data))
}

func (h *Handler) emailFor(username string) string {
	if strings.Contains(username, "@") || h.emailDomain == "" {
		return username
	}
	return username + "@" + h.emailDomain
}

func toUserDTO(data Data) UserDTO {
	return UserDTO{
		Username:     data.Username,
		FirstName:    data.PersonioEmployee.FirstName,
		LastName:     data.PersonioEmployee.LastName,
		WorkingHours: data.PersonioEmployee.WorkingHours,
	}
}
