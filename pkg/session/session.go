package session

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
	"github.com/trackyourtime/tracky/pkg/personio"
	"github.com/trackyourtime/tracky/pkg/troi"
)

type contextKey string

const dataKey contextKey = "session"

var ErrNoSession = errors.New("no valid session")

// Data is everything a logged in user carries in the session cookie.
type Data struct {
	Username         string
	TroiPassword     string
	TroiClientID     int
	TroiEmployeeID   int
	PersonioEmployee personio.Employee
}

// Valid reports whether the session can authenticate against Troi.
func (d Data) Valid() bool {
	return d.Username != "" && d.TroiPassword != ""
}

func (d Data) TroiAccount() troi.Account {
	return troi.Account{
		Credentials: troi.Credentials{Username: d.Username, Password: d.TroiPassword},
		ClientID:    d.TroiClientID,
		EmployeeID:  d.TroiEmployeeID,
	}
}

// Current returns the session data of the request. Returns ErrNoSession if none is present in ctx.
func Current(ctx context.Context) (Data, error) {
	data, ok := ctx.Value(dataKey).(Data)
	if !ok {
		log.Trace("session not found in context")
		return Data{}, ErrNoSession
	}
	return data, nil
}

func WithData(ctx context.Context, data Data) context.Context {
	return context.WithValue(ctx, dataKey, data)
}
