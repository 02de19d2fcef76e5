package troi

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/trackyourtime/tracky/internal/metrics"
)

const provider = "troi"

type ClientImpl struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *ClientImpl {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &ClientImpl{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type pathRef struct {
	Path string `json:"Path"`
}

type clientDTO struct {
	ID   int    `json:"Id"`
	Name string `json:"Name"`
}

type employeeDTO struct {
	ID int `json:"Id"`
}

type calculationPositionDTO struct {
	ID          int     `json:"Id"`
	DisplayPath string  `json:"DisplayPath"`
	Subproject  pathRef `json:"Subproject"`
}

type billingHoursDTO struct {
	ID                  int     `json:"id,omitempty"`
	Client              pathRef `json:"Client"`
	CalculationPosition pathRef `json:"CalculationPosition"`
	Employee            pathRef `json:"Employee"`
	Date                string  `json:"Date"`
	Quantity            float64 `json:"Quantity"`
	Remark              string  `json:"Remark"`
	IsBillable          bool    `json:"IsBillable"`
	IsInvoiced          bool    `json:"IsInvoiced,omitempty"`
}

type calendarEventDTO struct {
	ID      string `json:"id"`
	Start   string `json:"Start"`
	End     string `json:"End"`
	Subject string `json:"Subject"`
	Type    string `json:"Type"`
}

// Authenticate resolves the client and employee ids for the given credentials.
func (c *ClientImpl) Authenticate(ctx context.Context, creds Credentials) (Account, error) {
	account := Account{Credentials: creds}

	var clients []clientDTO
	if err := c.do(ctx, "get_clients", account, http.MethodGet, "/clients", nil, nil, &clients); err != nil {
		return Account{}, err
	}
	if len(clients) == 0 {
		return Account{}, fmt.Errorf("no troi client available for %s: %w", creds.Username, ErrNotFound)
	}
	account.ClientID = clients[0].ID

	var employees []employeeDTO
	query := url.Values{
		"clientId":          {strconv.Itoa(account.ClientID)},
		"employeeLoginName": {creds.Username},
	}
	if err := c.do(ctx, "get_employees", account, http.MethodGet, "/employees", query, nil, &employees); err != nil {
		return Account{}, err
	}
	if len(employees) == 0 {
		return Account{}, fmt.Errorf("no troi employee for %s: %w", creds.Username, ErrNotFound)
	}
	account.EmployeeID = employees[0].ID

	log.Debugf("troi account resolved: client %d, employee %d", account.ClientID, account.EmployeeID)
	return account, nil
}

func (c *ClientImpl) GetCalculationPositions(ctx context.Context, account Account) ([]CalculationPosition, error) {
	var dtos []calculationPositionDTO
	query := url.Values{
		"clientId":      {strconv.Itoa(account.ClientID)},
		"favoritesOnly": {"true"},
		"timeRecording": {"true"},
	}
	if err := c.do(ctx, "get_calculation_positions", account, http.MethodGet, "/calculationPositions", query, nil, &dtos); err != nil {
		return nil, err
	}

	positions := make([]CalculationPosition, 0, len(dtos))
	for _, dto := range dtos {
		positions = append(positions, CalculationPosition{
			ID:           dto.ID,
			Name:         dto.DisplayPath,
			SubprojectID: idFromPath(dto.Subproject.Path),
		})
	}
	return positions, nil
}

func (c *ClientImpl) GetProjectTimes(ctx context.Context, account Account, from, to time.Time) ([]ProjectTime, error) {
	var dtos []billingHoursDTO
	query := url.Values{
		"clientId":   {strconv.Itoa(account.ClientID)},
		"employeeId": {strconv.Itoa(account.EmployeeID)},
		"dateFrom":   {from.Format("20060102")},
		"dateTo":     {to.Format("20060102")},
	}
	if err := c.do(ctx, "get_project_times", account, http.MethodGet, "/billings/hours", query, nil, &dtos); err != nil {
		return nil, err
	}

	projectTimes := make([]ProjectTime, 0, len(dtos))
	for _, dto := range dtos {
		projectTimes = append(projectTimes, projectTimeFromDTO(dto))
	}
	return projectTimes, nil
}

func (c *ClientImpl) GetProjectTime(ctx context.Context, account Account, id int) (ProjectTime, error) {
	var dto billingHoursDTO
	path := fmt.Sprintf("/billings/hours/%d", id)
	if err := c.do(ctx, "get_project_time", account, http.MethodGet, path, nil, nil, &dto); err != nil {
		return ProjectTime{}, err
	}
	return projectTimeFromDTO(dto), nil
}

func (c *ClientImpl) CreateProjectTime(ctx context.Context, account Account, projectTime ProjectTime) (ProjectTime, error) {
	var created billingHoursDTO
	body := projectTimeToDTO(account, projectTime)
	if err := c.do(ctx, "create_project_time", account, http.MethodPost, "/billings/hours", nil, body, &created); err != nil {
		return ProjectTime{}, err
	}
	return projectTimeFromDTO(created), nil
}

func (c *ClientImpl) UpdateProjectTime(ctx context.Context, account Account, projectTime ProjectTime) (ProjectTime, error) {
	var updated billingHoursDTO
	body := projectTimeToDTO(account, projectTime)
	path := fmt.Sprintf("/billings/hours/%d", projectTime.ID)
	if err := c.do(ctx, "update_project_time", account, http.MethodPut, path, nil, body, &updated); err != nil {
		return ProjectTime{}, err
	}
	return projectTimeFromDTO(updated), nil
}

func (c *ClientImpl) DeleteProjectTime(ctx context.Context, account Account, id int) error {
	path := fmt.Sprintf("/billings/hours/%d", id)
	return c.do(ctx, "delete_project_time", account, http.MethodDelete, path, nil, nil, nil)
}

func (c *ClientImpl) GetCalendarEvents(ctx context.Context, account Account, from, to time.Time) ([]CalendarEvent, error) {
	var dtos []calendarEventDTO
	query := url.Values{
		"start": {from.Format("20060102")},
		"end":   {to.Format("20060102")},
		"type":  {strings.Join([]string{EventTypeHoliday, EventTypeAbsence, EventTypeTraining, EventTypeGeneral}, ",")},
	}
	if err := c.do(ctx, "get_calendar_events", account, http.MethodGet, "/calendarEvents", query, nil, &dtos); err != nil {
		return nil, err
	}

	events := make([]CalendarEvent, 0, len(dtos))
	for _, dto := range dtos {
		events = append(events, CalendarEvent{
			ID:      dto.ID,
			Start:   dto.Start,
			End:     dto.End,
			Subject: dto.Subject,
			Type:    dto.Type,
		})
	}
	return events, nil
}

// do performs an authenticated request and decodes the JSON response into out when out is not nil.
func (c *ClientImpl) do(ctx context.Context, operation string, account Account, method, path string, query url.Values, body any, out any) (err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveExternalRequest(provider, operation, err, time.Since(start))
	}()

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode troi request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create troi request: %w", err)
	}
	req.Header.Set("Authorization", authorizationHeader(account.Credentials))
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("troi %s failed: %v", operation, err)
		return fmt.Errorf("troi %s: %w", operation, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrInvalidCredentials
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("troi %s: %w", operation, ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		err := fmt.Errorf("troi %s returned non-OK status: %d", operation, resp.StatusCode)
		log.Error(err)
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Errorf("failed to decode troi %s response: %v", operation, err)
		return fmt.Errorf("failed to decode troi %s response: %w", operation, err)
	}
	return nil
}

// authorizationHeader builds the Basic header Troi expects: the password is sent as its md5 hex digest.
func authorizationHeader(creds Credentials) string {
	sum := md5.Sum([]byte(creds.Password))
	token := creds.Username + ":" + hex.EncodeToString(sum[:])
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(token))
}

func projectTimeToDTO(account Account, projectTime ProjectTime) billingHoursDTO {
	return billingHoursDTO{
		ID:                  projectTime.ID,
		Client:              pathRef{Path: fmt.Sprintf("/clients/%d", account.ClientID)},
		CalculationPosition: pathRef{Path: fmt.Sprintf("/calculationPositions/%d", projectTime.CalculationPositionID)},
		Employee:            pathRef{Path: fmt.Sprintf("/employees/%d", account.EmployeeID)},
		Date:                projectTime.Date,
		Quantity:            projectTime.Hours,
		Remark:              projectTime.Description,
		IsBillable:          projectTime.IsBillable,
	}
}

func projectTimeFromDTO(dto billingHoursDTO) ProjectTime {
	return ProjectTime{
		ID:                    dto.ID,
		CalculationPositionID: idFromPath(dto.CalculationPosition.Path),
		Date:                  dto.Date,
		Hours:                 dto.Quantity,
		Description:           dto.Remark,
		IsBillable:            dto.IsBillable,
		IsInvoiced:            dto.IsInvoiced,
	}
}

// idFromPath extracts 123 from "/calculationPositions/123".
func idFromPath(path string) int {
	idx := strings.LastIndex(path, "/")
	id, err := strconv.Atoi(path[idx+1:])
	if err != nil {
		return 0
	}
	return id
}
