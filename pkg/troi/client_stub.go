package troi

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// ClientStub is an in-memory Troi used by tests and the mock mode.
type ClientStub struct {
	mu                   sync.RWMutex
	users                map[string]string // username -> password
	account              Account
	positions            []CalculationPosition
	projectTimes         map[int]ProjectTime
	calendarEvents       []CalendarEvent
	nextID               int
	authenticateErr      error
	getProjectTimesErr   error
	getCalendarEventsErr error
}

func NewClientStub() *ClientStub {
	return &ClientStub{
		users:        make(map[string]string),
		projectTimes: make(map[int]ProjectTime),
		account:      Account{ClientID: 1, EmployeeID: 1},
		nextID:       1,
	}
}

func (c *ClientStub) AddUser(username, password string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users[username] = password
}

func (c *ClientStub) SetCalculationPositions(positions []CalculationPosition) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.positions = append([]CalculationPosition(nil), positions...)
}

func (c *ClientStub) SetCalendarEvents(events []CalendarEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calendarEvents = append([]CalendarEvent(nil), events...)
}

// AddProjectTime stores projectTime as is, including its invoiced flag, and returns its id.
func (c *ClientStub) AddProjectTime(projectTime ProjectTime) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	projectTime.ID = c.nextID
	c.nextID++
	c.projectTimes[projectTime.ID] = projectTime
	return projectTime.ID
}

func (c *ClientStub) SetAuthenticateErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.authenticateErr = err
}

func (c *ClientStub) SetGetProjectTimesErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.getProjectTimesErr = err
}

func (c *ClientStub) SetGetCalendarEventsErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.getCalendarEventsErr = err
}

func (c *ClientStub) Authenticate(_ context.Context, creds Credentials) (Account, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.authenticateErr != nil {
		return Account{}, c.authenticateErr
	}
	password, ok := c.users[creds.Username]
	if !ok || password != creds.Password {
		return Account{}, ErrInvalidCredentials
	}
	account := c.account
	account.Credentials = creds
	return account, nil
}

func (c *ClientStub) GetCalculationPositions(_ context.Context, _ Account) ([]CalculationPosition, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]CalculationPosition, len(c.positions))
	copy(result, c.positions)
	return result, nil
}

func (c *ClientStub) GetProjectTimes(_ context.Context, _ Account, from, to time.Time) ([]ProjectTime, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.getProjectTimesErr != nil {
		return nil, c.getProjectTimesErr
	}

	fromDate := from.Format("2006-01-02")
	toDate := to.Format("2006-01-02")
	var result []ProjectTime
	for _, projectTime := range c.projectTimes {
		if projectTime.Date >= fromDate && projectTime.Date <= toDate {
			result = append(result, projectTime)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (c *ClientStub) GetProjectTime(_ context.Context, _ Account, id int) (ProjectTime, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	projectTime, ok := c.projectTimes[id]
	if !ok {
		return ProjectTime{}, fmt.Errorf("project time %d: %w", id, ErrNotFound)
	}
	return projectTime, nil
}

func (c *ClientStub) CreateProjectTime(_ context.Context, _ Account, projectTime ProjectTime) (ProjectTime, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	projectTime.ID = c.nextID
	projectTime.IsInvoiced = false
	c.nextID++
	c.projectTimes[projectTime.ID] = projectTime
	return projectTime, nil
}

func (c *ClientStub) UpdateProjectTime(_ context.Context, _ Account, projectTime ProjectTime) (ProjectTime, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.projectTimes[projectTime.ID]; !ok {
		return ProjectTime{}, fmt.Errorf("project time %d: %w", projectTime.ID, ErrNotFound)
	}
	c.projectTimes[projectTime.ID] = projectTime
	return projectTime, nil
}

func (c *ClientStub) DeleteProjectTime(_ context.Context, _ Account, id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.projectTimes[id]; !ok {
		return fmt.Errorf("project time %d: %w", id, ErrNotFound)
	}
	delete(c.projectTimes, id)
	return nil
}

func (c *ClientStub) GetCalendarEvents(_ context.Context, _ Account, _, _ time.Time) ([]CalendarEvent, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.getCalendarEventsErr != nil {
		return nil, c.getCalendarEventsErr
	}
	result := make([]CalendarEvent, len(c.calendarEvents))
	copy(result, c.calendarEvents)
	return result, nil
}
