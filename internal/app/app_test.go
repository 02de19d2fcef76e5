package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trackyourtime/tracky/internal/config"
	"github.com/trackyourtime/tracky/internal/requestid"
	"github.com/trackyourtime/tracky/internal/utils"
	"github.com/trackyourtime/tracky/pkg/overview"
)

func setupAppTest(t *testing.T) http.Handler {
	t.Helper()
	cfg := config.Application{
		Mock:     true,
		Session:  config.Session{Secret: "test-secret", MaxAgeDays: 30},
		Personio: config.Personio{EmailDomain: "example.com"},
		Calendar: config.Calendar{WindowDays: 30},
	}
	clock := utils.NewMockClock(time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC))
	deps, err := BuildDependencies(context.Background(), cfg, clock)
	require.NoError(t, err)
	return NewRouter(deps, cfg)
}

func login(t *testing.T, router http.Handler, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func get(router http.Handler, target string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestApp_RequiresSession(t *testing.T) {
	router := setupAppTest(t)

	for _, target := range []string{"/api/me", "/api/week", "/api/overview", "/api/report/week.csv"} {
		rec := get(router, target, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
		assert.NotEmpty(t, rec.Header().Get(requestid.Header), target)
	}
}

func TestApp_LoginFailure(t *testing.T) {
	router := setupAppTest(t)

	rec := login(t, router, MockUsername, "wrong")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestApp_MockSession(t *testing.T) {
	router := setupAppTest(t)
	rec := login(t, router, MockUsername, MockPassword)
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	me := get(router, "/api/me", cookies)
	require.Equal(t, http.StatusOK, me.Code)
	assert.Contains(t, me.Body.String(), `"firstName":"Demo"`)

	weekRec := get(router, "/api/week", cookies)
	require.Equal(t, http.StatusOK, weekRec.Code)
	var wk overview.WeekDTO
	require.NoError(t, json.NewDecoder(weekRec.Body).Decode(&wk))
	assert.Equal(t, "2024-W10", wk.Week)
	assert.Equal(t, "11.50", wk.TotalHours)
	assert.Equal(t, 480, wk.WorkedMinutes)

	overviewRec := get(router, "/api/overview", cookies)
	assert.Equal(t, http.StatusOK, overviewRec.Code)

	csvRec := get(router, "/api/report/week.csv?date=2024-03-04", cookies)
	require.Equal(t, http.StatusOK, csvRec.Code)
	assert.Contains(t, csvRec.Body.String(), "Customer project")

	positions := get(router, "/api/calculation-positions", cookies)
	require.Equal(t, http.StatusOK, positions.Code)
	assert.Contains(t, positions.Body.String(), "Internal")
}
