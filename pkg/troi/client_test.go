package troi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var creds = Credentials{Username: "jane.doe", Password: "hunter2"}

func newTestServer(t *testing.T, handler http.HandlerFunc) *ClientImpl {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != authorizationHeader(creds) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(server.Close)
	return NewClient(server.URL+"/", server.Client())
}

func TestAuthorizationHeader(t *testing.T) {
	// md5("hunter2") = 2ab96390c7dbe3439de74d0c9b0b1767
	assert.Equal(t, "Basic amFuZS5kb2U6MmFiOTYzOTBjN2RiZTM0MzlkZTc0ZDBjOWIwYjE3Njc=", authorizationHeader(creds))
}

func TestAuthenticate(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/clients":
			_ = json.NewEncoder(w).Encode([]clientDTO{{ID: 3, Name: "DigitalService"}})
		case "/employees":
			assert.Equal(t, "3", r.URL.Query().Get("clientId"))
			assert.Equal(t, "jane.doe", r.URL.Query().Get("employeeLoginName"))
			_ = json.NewEncoder(w).Encode([]employeeDTO{{ID: 42}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	account, err := client.Authenticate(context.Background(), creds)
	require.NoError(t, err)
	assert.Equal(t, 3, account.ClientID)
	assert.Equal(t, 42, account.EmployeeID)
	assert.Equal(t, creds, account.Credentials)
}

func TestAuthenticate_InvalidCredentials(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := client.Authenticate(context.Background(), Credentials{Username: "jane.doe", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetProjectTimes(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/billings/hours", r.URL.Path)
		assert.Equal(t, "20240304", r.URL.Query().Get("dateFrom"))
		assert.Equal(t, "20240308", r.URL.Query().Get("dateTo"))
		_, _ = w.Write([]byte(`[{"id": 7, "CalculationPosition": {"Path": "/calculationPositions/123"},
			"Date": "2024-03-04", "Quantity": 2.25, "Remark": "Planning", "IsBillable": true, "IsInvoiced": true}]`))
	})

	account := Account{Credentials: creds, ClientID: 3, EmployeeID: 42}
	from := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	projectTimes, err := client.GetProjectTimes(context.Background(), account, from, from.AddDate(0, 0, 4))
	require.NoError(t, err)
	assert.Equal(t, []ProjectTime{{
		ID:                    7,
		CalculationPositionID: 123,
		Date:                  "2024-03-04",
		Hours:                 2.25,
		Description:           "Planning",
		IsBillable:            true,
		IsInvoiced:            true,
	}}, projectTimes)
}

func TestCreateProjectTime(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var body billingHoursDTO
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "/clients/3", body.Client.Path)
		assert.Equal(t, "/employees/42", body.Employee.Path)
		assert.Equal(t, "/calculationPositions/5", body.CalculationPosition.Path)
		assert.Equal(t, 8.5, body.Quantity)
		body.ID = 99
		_ = json.NewEncoder(w).Encode(body)
	})

	account := Account{Credentials: creds, ClientID: 3, EmployeeID: 42}
	created, err := client.CreateProjectTime(context.Background(), account, ProjectTime{
		CalculationPositionID: 5,
		Date:                  "2024-03-04",
		Hours:                 8.5,
		Description:           "Coding",
	})
	require.NoError(t, err)
	assert.Equal(t, 99, created.ID)
	assert.Equal(t, 5, created.CalculationPositionID)
}

func TestDeleteProjectTime_NotFound(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	err := client.DeleteProjectTime(context.Background(), Account{Credentials: creds}, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetProjectTime(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/billings/hours/7", r.URL.Path)
		_, _ = w.Write([]byte(`{"id": 7, "CalculationPosition": {"Path": "/calculationPositions/5"}, "Date": "2024-03-04", "Quantity": 1.5}`))
	})

	projectTime, err := client.GetProjectTime(context.Background(), Account{Credentials: creds}, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, projectTime.ID)
	assert.Equal(t, 5, projectTime.CalculationPositionID)
	assert.Equal(t, 1.5, projectTime.Hours)
}

func TestIdFromPath(t *testing.T) {
	assert.Equal(t, 123, idFromPath("/calculationPositions/123"))
	assert.Equal(t, 0, idFromPath(""))
	assert.Equal(t, 0, idFromPath("/subprojects/abc"))
}
