package week

import (
	"testing"
	"time"
)

func TestWeekNumberEqual(t *testing.T) {
	tests := []struct {
		name   string
		left   WeekNumber
		right  WeekNumber
		expect bool
	}{
		{"same year and week", WeekNumber{Year: 2025, Week: 3}, WeekNumber{Year: 2025, Week: 3}, true},
		{"different week", WeekNumber{Year: 2025, Week: 3}, WeekNumber{Year: 2025, Week: 4}, false},
		{"different year", WeekNumber{Year: 2024, Week: 52}, WeekNumber{Year: 2025, Week: 52}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.left.Equal(tt.right); got != tt.expect {
				t.Fatalf("Equal(%+v, %+v) = %v, want %v", tt.left, tt.right, got, tt.expect)
			}
		})
	}
}

func TestWeekNumberOrdering(t *testing.T) {
	tests := []struct {
		name       string
		left       WeekNumber
		right      WeekNumber
		wantBefore bool
		wantAfter  bool
	}{
		{"same week", WeekNumber{Year: 2025, Week: 3}, WeekNumber{Year: 2025, Week: 3}, false, false},
		{"earlier week same year", WeekNumber{Year: 2025, Week: 2}, WeekNumber{Year: 2025, Week: 3}, true, false},
		{"later week same year", WeekNumber{Year: 2025, Week: 4}, WeekNumber{Year: 2025, Week: 3}, false, true},
		{"earlier year", WeekNumber{Year: 2024, Week: 52}, WeekNumber{Year: 2025, Week: 1}, true, false},
		{"later year", WeekNumber{Year: 2026, Week: 1}, WeekNumber{Year: 2025, Week: 52}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.left.Before(tt.right); got != tt.wantBefore {
				t.Errorf("Before(%+v, %+v) = %v, want %v", tt.left, tt.right, got, tt.wantBefore)
			}
			if got := tt.left.After(tt.right); got != tt.wantAfter {
				t.Errorf("After(%+v, %+v) = %v, want %v", tt.left, tt.right, got, tt.wantAfter)
			}
		})
	}
}

func TestWeekNumberFromString(t *testing.T) {
	got, err := WeekNumberFromString("2025-W03")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != (WeekNumber{Year: 2025, Week: 3}) {
		t.Errorf("WeekNumberFromString() = %v", got)
	}
	if got.String() != "2025-W03" {
		t.Errorf("String() = %s, want 2025-W03", got.String())
	}

	for _, invalid := range []string{"2025", "2025-03", "abcd-W03", "2025-Wxx", "2025-W54"} {
		if _, err := WeekNumberFromString(invalid); err == nil {
			t.Errorf("WeekNumberFromString(%q) expected error", invalid)
		}
	}
}

func TestWeekNumberMonday(t *testing.T) {
	tests := []struct {
		week WeekNumber
		want time.Time
	}{
		{WeekNumber{Year: 2025, Week: 1}, time.Date(2024, 12, 30, 5, 0, 0, 0, time.UTC)},
		{WeekNumber{Year: 2024, Week: 10}, time.Date(2024, 3, 4, 5, 0, 0, 0, time.UTC)},
		{WeekNumber{Year: 2020, Week: 53}, time.Date(2020, 12, 28, 5, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.week.String(), func(t *testing.T) {
			got := tt.week.Monday(time.UTC)
			if !got.Equal(tt.want) {
				t.Errorf("Monday() = %v, want %v", got, tt.want)
			}
			if !WeekNumberFor(got).Equal(tt.week) {
				t.Errorf("WeekNumberFor(Monday()) = %v, want %v", WeekNumberFor(got), tt.week)
			}
		})
	}
}
