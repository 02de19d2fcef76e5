package project_time

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSubmission() RawSubmission {
	return RawSubmission{
		CalculationPositionID: "5",
		Date:                  "2024-01-01",
		Hours:                 "8:30",
		Description:           "x",
		IsBillable:            "true",
		IsInvoiced:            "false",
	}
}

func fieldErrors(t *testing.T, err error) map[string][]string {
	t.Helper()
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	return validationErr.Fields
}

func TestParseSaveForm(t *testing.T) {
	form, err := ParseSaveForm(validSubmission())

	require.NoError(t, err)
	assert.Equal(t, SaveFormData{
		CalculationPositionID: 5,
		Date:                  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Hours:                 8.5,
		Description:           "x",
		IsBillable:            true,
		IsInvoiced:            false,
	}, form)
}

func TestParseSaveForm_FromForm(t *testing.T) {
	form := url.Values{
		"calculationPositionId": {"12"},
		"date":                  {"2024-03-04"},
		"hours":                 {"2,25"},
		"description":           {"Review"},
		"isBillable":            {"false"},
		"isInvoiced":            {"false"},
	}

	parsed, err := ParseSaveForm(RawSubmissionFromForm(form))

	require.NoError(t, err)
	assert.Equal(t, 12, parsed.CalculationPositionID)
	assert.Equal(t, 2.25, parsed.Hours)
	assert.False(t, parsed.IsBillable)
}

func TestParseSaveForm_TrimsSurroundingWhitespace(t *testing.T) {
	raw := validSubmission()
	raw.CalculationPositionID = " 5 "
	raw.Date = "2024-01-01\n"
	raw.Hours = " 8 "

	form, err := ParseSaveForm(raw)

	require.NoError(t, err)
	assert.Equal(t, 5, form.CalculationPositionID)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), form.Date)
	assert.Equal(t, 8.0, form.Hours)
}

func TestParseSaveForm_MoreThanTenHours(t *testing.T) {
	raw := validSubmission()
	raw.Hours = "11"

	_, err := ParseSaveForm(raw)

	assert.Equal(t, map[string][]string{"hours": {"You can't book more than 10 hours."}}, fieldErrors(t, err))
}

func TestParseSaveForm_MissingDescription(t *testing.T) {
	raw := validSubmission()
	raw.Hours = "8:30"
	raw.Description = ""

	_, err := ParseSaveForm(raw)

	assert.Equal(t, map[string][]string{"description": {"Description is required."}}, fieldErrors(t, err))
}

func TestParseSaveForm_Invoiced(t *testing.T) {
	for _, invoiced := range []string{"true", "", "False"} {
		raw := validSubmission()
		raw.IsInvoiced = invoiced

		_, err := ParseSaveForm(raw)

		assert.Equal(t, []string{"Invoiced project times cannot be modified."}, fieldErrors(t, err)["isInvoiced"], invoiced)
	}
}

func TestParseSaveForm_ReportsEveryField(t *testing.T) {
	raw := RawSubmission{
		CalculationPositionID: "five",
		Date:                  "2024-02-30",
		Hours:                 "",
		Description:           "",
		IsBillable:            "yes",
		IsInvoiced:            "true",
	}

	_, err := ParseSaveForm(raw)

	assert.Equal(t, map[string][]string{
		"calculationPositionId": {"Invalid calculation position."},
		"date":                  {"Invalid date."},
		"hours":                 {"Time is missing or in the wrong format."},
		"description":           {"Description is required."},
		"isInvoiced":            {"Invoiced project times cannot be modified."},
	}, fieldErrors(t, err))
}

func TestParseSaveForm_HourNotations(t *testing.T) {
	tests := []struct {
		hours string
		want  float64
		msg   string
	}{
		{hours: "8", want: 8},
		{hours: "0", want: 0},
		{hours: "10", want: 10},
		{hours: "8:30", want: 8.5},
		{hours: "8:05", want: 8 + 5.0/60},
		{hours: "8.5", want: 8.5},
		{hours: "8,5", want: 8.5},
		{hours: "10:00", want: 10},
		{hours: "10:01", msg: "You can't book more than 10 hours."},
		{hours: "10.5", msg: "You can't book more than 10 hours."},
		{hours: "23:59", msg: "You can't book more than 10 hours."},
		{hours: "24", msg: "Time is missing or in the wrong format."},
		{hours: "8:3", msg: "Time is missing or in the wrong format."},
		{hours: "8:60", msg: "Time is missing or in the wrong format."},
		{hours: "8.", msg: "Time is missing or in the wrong format."},
		{hours: "-1", msg: "Time is missing or in the wrong format."},
		{hours: "eight", msg: "Time is missing or in the wrong format."},
	}

	for _, tt := range tests {
		t.Run(tt.hours, func(t *testing.T) {
			raw := validSubmission()
			raw.Hours = tt.hours

			form, err := ParseSaveForm(raw)

			if tt.msg != "" {
				assert.Equal(t, map[string][]string{"hours": {tt.msg}}, fieldErrors(t, err))
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, form.Hours, 1e-9)
		})
	}
}
