package project_time

import (
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/trackyourtime/tracky/internal/validation"
	"github.com/trackyourtime/tracky/pkg/timeconv"
	"github.com/trackyourtime/tracky/pkg/week"
)

const (
	maxHours = 10

	MsgHoursFormat         = "Time is missing or in the wrong format."
	MsgTooManyHours        = "You can't book more than 10 hours."
	MsgDescriptionRequired = "Description is required."
	MsgInvoiced            = "Invoiced project times cannot be modified."
	MsgInvalidDate         = "Invalid date."
	MsgInvalidPosition     = "Invalid calculation position."
)

// Accepted notations: "8", "8:30", "8.5" and "8,5", hours 0 to 23.
var hoursPattern = regexp.MustCompile(`^((1?\d|2[0-3])(:[0-5]\d)?|((1?\d|2[0-3])[.,]\d+))$`)

type ValidationError = validation.Error

// RawSubmission is the project time form exactly as the browser sent it.
type RawSubmission struct {
	CalculationPositionID string
	Date                  string
	Hours                 string
	Description           string
	IsBillable            string
	IsInvoiced            string
}

func RawSubmissionFromForm(form url.Values) RawSubmission {
	return RawSubmission{
		CalculationPositionID: form.Get("calculationPositionId"),
		Date:                  form.Get("date"),
		Hours:                 form.Get("hours"),
		Description:           form.Get("description"),
		IsBillable:            form.Get("isBillable"),
		IsInvoiced:            form.Get("isInvoiced"),
	}
}

type SaveFormData struct {
	CalculationPositionID int
	Date                  time.Time
	Hours                 float64
	Description           string
	IsBillable            bool
	IsInvoiced            bool
}

// ParseSaveForm validates raw. Either all fields are valid, or the returned
// *ValidationError lists the messages of every rejected field.
func ParseSaveForm(raw RawSubmission) (SaveFormData, error) {
	c := validation.NewCollector()
	form := SaveFormData{
		CalculationPositionID: validation.Field(c, "calculationPositionId", raw.CalculationPositionID, parsePosition),
		Date:                  validation.Field(c, "date", raw.Date, parseDate),
		Hours:                 validation.Field(c, "hours", raw.Hours, parseHours, atMostHours(maxHours)),
		Description:           validation.Field(c, "description", raw.Description, validation.String, validation.MinLength(1, MsgDescriptionRequired)),
		IsBillable:            validation.Field(c, "isBillable", raw.IsBillable, validation.Bool),
		IsInvoiced:            validation.Field(c, "isInvoiced", raw.IsInvoiced, parseNotInvoiced),
	}
	if err := c.Err(); err != nil {
		return SaveFormData{}, err
	}
	return form, nil
}

func parsePosition(raw string) (int, string) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, MsgInvalidPosition
	}
	return id, ""
}

func parseDate(raw string) (time.Time, string) {
	date, err := time.Parse(week.DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, MsgInvalidDate
	}
	return date, ""
}

func parseHours(raw string) (float64, string) {
	raw = strings.TrimSpace(raw)
	if !hoursPattern.MatchString(raw) {
		return 0, MsgHoursFormat
	}
	hours := timeconv.ConvertTimeStringToFloat(raw)
	if math.IsNaN(hours) {
		return 0, MsgHoursFormat
	}
	return hours, ""
}

func atMostHours(limit float64) validation.Check[float64] {
	return func(hours float64) string {
		if hours > limit {
			return MsgTooManyHours
		}
		return ""
	}
}

func parseNotInvoiced(raw string) (bool, string) {
	if raw != "false" {
		return false, MsgInvoiced
	}
	return false, ""
}
