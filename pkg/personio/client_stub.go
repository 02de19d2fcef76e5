package personio

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ClientStub keeps employees and attendance periods in memory.
type ClientStub struct {
	mu                sync.RWMutex
	employees         map[string]Employee // by lower-cased email
	periods           map[string]AttendancePeriod
	nextID            int
	findEmployeeErr   error
	getAttendancesErr error
}

func NewClientStub() *ClientStub {
	return &ClientStub{
		employees: make(map[string]Employee),
		periods:   make(map[string]AttendancePeriod),
		nextID:    1,
	}
}

func (c *ClientStub) AddEmployee(employee Employee) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.employees[strings.ToLower(employee.Email)] = employee
}

// AddAttendance stores period and returns its generated id.
func (c *ClientStub) AddAttendance(period AttendancePeriod) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store(period).ID
}

func (c *ClientStub) SetFindEmployeeErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.findEmployeeErr = err
}

func (c *ClientStub) SetGetAttendancesErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.getAttendancesErr = err
}

func (c *ClientStub) FindEmployee(_ context.Context, email string) (Employee, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.findEmployeeErr != nil {
		return Employee{}, c.findEmployeeErr
	}
	employee, ok := c.employees[strings.ToLower(email)]
	if !ok {
		return Employee{}, ErrEmployeeNotFound
	}
	return employee, nil
}

func (c *ClientStub) GetAttendances(_ context.Context, personID string, from, to string) ([]AttendancePeriod, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.getAttendancesErr != nil {
		return nil, c.getAttendancesErr
	}

	var result []AttendancePeriod
	for _, period := range c.periods {
		if period.PersonID == personID && period.Date >= from && period.Date <= to {
			result = append(result, period)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date < result[j].Date
		}
		return result[i].Start < result[j].Start
	})
	return result, nil
}

func (c *ClientStub) CreateAttendance(_ context.Context, period AttendancePeriod) (AttendancePeriod, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store(period), nil
}

func (c *ClientStub) DeleteAttendance(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.periods[id]; !ok {
		return fmt.Errorf("attendance period %s: %w", id, ErrNotFound)
	}
	delete(c.periods, id)
	return nil
}

func (c *ClientStub) store(period AttendancePeriod) AttendancePeriod {
	period.ID = fmt.Sprintf("%d", c.nextID)
	c.nextID++
	c.periods[period.ID] = period
	return period
}
