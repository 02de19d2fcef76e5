package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trackyourtime/tracky/internal/utils"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand(utils.NewMockClock(time.Date(2024, 12, 31, 9, 0, 0, 0, time.UTC)))
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestHoursCommand(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"8:30", "8.5 hours (8:30)\n"},
		{"8,5", "8.5 hours (8:30)\n"},
		{"1:3", "1.5 hours (1:30)\n"},
		{"0.25", "0.25 hours (0:15)\n"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			out, err := execute(t, "hours", tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestHoursCommand_Invalid(t *testing.T) {
	_, err := execute(t, "hours", "abc")
	assert.ErrorContains(t, err, `cannot read "abc" as hours`)
}

func TestWeekCommand(t *testing.T) {
	out, err := execute(t, "week")
	require.NoError(t, err)
	assert.Equal(t, "Week 2025-W01 (current)\n"+
		"  0 Mon 2024-12-30\n"+
		"  1 Tue 2024-12-31\n"+
		"  2 Wed 2025-01-01\n"+
		"  3 Thu 2025-01-02\n"+
		"  4 Fri 2025-01-03\n", out)

	out, err = execute(t, "week", "2024-03-06")
	require.NoError(t, err)
	assert.Contains(t, out, "Week 2024-W10\n  0 Mon 2024-03-04\n")

	out, err = execute(t, "week", "2020-W53")
	require.NoError(t, err)
	assert.Contains(t, out, "Week 2020-W53\n  0 Mon 2020-12-28\n")
	assert.Contains(t, out, "  4 Fri 2021-01-01\n")
}

func TestWeekCommand_InvalidDate(t *testing.T) {
	_, err := execute(t, "week", "06.03.2024")
	assert.ErrorContains(t, err, "expected YYYY-MM-DD")

	_, err = execute(t, "week", "2024-W60")
	assert.ErrorContains(t, err, "expected YYYY-Www")
}
