package personio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/trackyourtime/tracky/internal/metrics"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	provider = "personio"

	dateTimeLayout = "2006-01-02T15:04:05"
	pageLimit      = 100
)

type ClientImpl struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client authenticated with the OAuth2 client credentials grant.
// Tokens are fetched lazily and refreshed by the returned HTTP client.
func NewClient(ctx context.Context, baseURL, tokenURL, clientID, clientSecret string) *ClientImpl {
	oauthConfig := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}
	return &ClientImpl{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: oauthConfig.Client(ctx),
	}
}

type personDTO struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type employmentDTO struct {
	WeeklyWorkingHours float64 `json:"weekly_working_hours"`
}

type dateTimeDTO struct {
	DateTime string `json:"date_time"`
}

type idRef struct {
	ID string `json:"id"`
}

type attendancePeriodDTO struct {
	ID      string       `json:"id,omitempty"`
	Person  idRef        `json:"person"`
	Type    string       `json:"type"`
	Start   dateTimeDTO  `json:"start"`
	End     *dateTimeDTO `json:"end,omitempty"`
	Comment string       `json:"comment,omitempty"`
}

type page[T any] struct {
	Data []T `json:"_data"`
	Meta struct {
		Links struct {
			Next struct {
				Href string `json:"href"`
			} `json:"next"`
		} `json:"links"`
	} `json:"_meta"`
}

func (c *ClientImpl) FindEmployee(ctx context.Context, email string) (Employee, error) {
	var persons page[personDTO]
	query := url.Values{"email": {email}}
	if err := c.do(ctx, "find_person", http.MethodGet, c.baseURL+"/v2/persons?"+query.Encode(), nil, &persons); err != nil {
		return Employee{}, err
	}
	if len(persons.Data) == 0 {
		log.Debugf("no personio person for %s", email)
		return Employee{}, ErrEmployeeNotFound
	}
	person := persons.Data[0]

	employee := Employee{
		ID:        person.ID,
		Email:     person.Email,
		FirstName: person.FirstName,
		LastName:  person.LastName,
	}

	var employments page[employmentDTO]
	endpoint := fmt.Sprintf("%s/v2/persons/%s/employments", c.baseURL, url.PathEscape(person.ID))
	if err := c.do(ctx, "get_employments", http.MethodGet, endpoint, nil, &employments); err != nil {
		return Employee{}, err
	}
	if len(employments.Data) > 0 {
		employee.WorkingHours = employments.Data[0].WeeklyWorkingHours
	}
	return employee, nil
}

// GetAttendances returns all periods of personID starting between from and to (both "2006-01-02", inclusive).
func (c *ClientImpl) GetAttendances(ctx context.Context, personID string, from, to string) ([]AttendancePeriod, error) {
	query := url.Values{
		"person.id":           {personID},
		"start.date_time.gte": {from + "T00:00:00"},
		"start.date_time.lte": {to + "T23:59:59"},
		"limit":               {fmt.Sprintf("%d", pageLimit)},
	}
	endpoint := c.baseURL + "/v2/attendance-periods?" + query.Encode()

	var periods []AttendancePeriod
	for endpoint != "" {
		var result page[attendancePeriodDTO]
		if err := c.do(ctx, "get_attendances", http.MethodGet, endpoint, nil, &result); err != nil {
			return nil, err
		}
		for _, dto := range result.Data {
			period, err := periodFromDTO(dto)
			if err != nil {
				log.Warnf("skipping malformed attendance period %s: %v", dto.ID, err)
				continue
			}
			periods = append(periods, period)
		}
		endpoint = result.Meta.Links.Next.Href
	}
	return periods, nil
}

func (c *ClientImpl) CreateAttendance(ctx context.Context, period AttendancePeriod) (AttendancePeriod, error) {
	body := attendancePeriodDTO{
		Person:  idRef{ID: period.PersonID},
		Type:    period.Type,
		Start:   dateTimeDTO{DateTime: period.Date + "T" + period.Start + ":00"},
		Comment: period.Comment,
	}
	if period.End != "" {
		body.End = &dateTimeDTO{DateTime: period.Date + "T" + period.End + ":00"}
	}

	var created idRef
	if err := c.do(ctx, "create_attendance", http.MethodPost, c.baseURL+"/v2/attendance-periods", body, &created); err != nil {
		return AttendancePeriod{}, err
	}
	period.ID = created.ID
	return period, nil
}

func (c *ClientImpl) DeleteAttendance(ctx context.Context, id string) error {
	endpoint := fmt.Sprintf("%s/v2/attendance-periods/%s", c.baseURL, url.PathEscape(id))
	return c.do(ctx, "delete_attendance", http.MethodDelete, endpoint, nil, nil)
}

func (c *ClientImpl) do(ctx context.Context, operation, method, endpoint string, body any, out any) (err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveExternalRequest(provider, operation, err, time.Since(start))
	}()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode personio request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create personio request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("personio %s failed: %v", operation, err)
		return fmt.Errorf("personio %s: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("personio %s: %w", operation, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := fmt.Errorf("personio %s returned non-OK status: %d", operation, resp.StatusCode)
		log.Error(err)
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Errorf("failed to decode personio %s response: %v", operation, err)
		return fmt.Errorf("failed to decode personio %s response: %w", operation, err)
	}
	return nil
}

func periodFromDTO(dto attendancePeriodDTO) (AttendancePeriod, error) {
	start, err := time.Parse(dateTimeLayout, dto.Start.DateTime)
	if err != nil {
		return AttendancePeriod{}, fmt.Errorf("invalid start: %w", err)
	}
	period := AttendancePeriod{
		ID:       dto.ID,
		PersonID: dto.Person.ID,
		Type:     dto.Type,
		Date:     start.Format("2006-01-02"),
		Start:    start.Format("15:04"),
		Comment:  dto.Comment,
	}
	if dto.End != nil && dto.End.DateTime != "" {
		end, err := time.Parse(dateTimeLayout, dto.End.DateTime)
		if err != nil {
			return AttendancePeriod{}, fmt.Errorf("invalid end: %w", err)
		}
		period.End = end.Format("15:04")
	}
	return period, nil
}
