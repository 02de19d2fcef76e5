package attendance

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trackyourtime/tracky/internal/rest"
	"github.com/trackyourtime/tracky/pkg/personio"
)

func setupHandlerTest(t *testing.T) (*mux.Router, *personio.ClientStub) {
	t.Helper()
	service, client, _, ctx := setupAttendanceTest(t)
	handler := NewHandler(service)

	r := mux.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.HandleFunc("/api/attendances", handler.GetAttendances).Methods("GET")
	r.HandleFunc("/api/attendances", handler.SaveWorkTime).Methods("POST")
	r.HandleFunc("/api/attendances/{id}", handler.DeletePeriod).Methods("DELETE")
	return r, client
}

func TestHandler_GetAttendances(t *testing.T) {
	r, client := setupHandlerTest(t)
	client.AddAttendance(personio.AttendancePeriod{PersonID: "77", Type: personio.PeriodWork, Date: "2024-03-04", Start: "08:00", End: "12:00"})
	client.AddAttendance(personio.AttendancePeriod{PersonID: "77", Type: personio.PeriodBreak, Date: "2024-03-04", Start: "12:00", End: "12:45"})
	client.AddAttendance(personio.AttendancePeriod{PersonID: "77", Type: personio.PeriodWork, Date: "2024-03-04", Start: "12:45", End: "17:00"})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/attendances?from=2024-03-04&to=2024-03-08", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var dtos []AttendanceDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&dtos))
	require.Len(t, dtos, 1)
	assert.Equal(t, "08:00", dtos[0].Start)
	assert.Equal(t, "17:00", dtos[0].End)
	assert.Equal(t, 495, dtos[0].WorkedMinutes)
	assert.Equal(t, 45, dtos[0].BreakMinutes)
	assert.Equal(t, "8:15", dtos[0].WorkedHours)
}

func TestHandler_GetAttendances_InvalidDate(t *testing.T) {
	r, _ := setupHandlerTest(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/attendances?from=yesterday&to=2024-03-08", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body rest.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Invalid from (date) format", body.Error)
}

func TestHandler_SaveWorkTime(t *testing.T) {
	r, _ := setupHandlerTest(t)

	form := url.Values{"date": {"2024-03-04"}, "startTime": {"09:00"}, "endTime": {"17:00"}}
	req := httptest.NewRequest(http.MethodPost, "/api/attendances", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var dto AttendanceDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
	assert.Equal(t, "2024-03-04", dto.Date)
	assert.Equal(t, "8:00", dto.WorkedHours)
}

func TestHandler_SaveWorkTime_Invalid(t *testing.T) {
	r, _ := setupHandlerTest(t)

	form := url.Values{"date": {"2024-03-04"}, "startTime": {"17:00"}, "endTime": {"09:00"}}
	req := httptest.NewRequest(http.MethodPost, "/api/attendances", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body rest.ValidationErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, map[string][]string{"endTime": {"End time must be after start time."}}, body.Fields)
}

func TestHandler_DeletePeriod(t *testing.T) {
	r, client := setupHandlerTest(t)
	id := client.AddAttendance(personio.AttendancePeriod{PersonID: "77", Type: personio.PeriodWork, Date: "2024-03-04", Start: "08:00", End: "12:00"})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/attendances/"+id, nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/attendances/"+id, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
