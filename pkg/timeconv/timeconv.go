package timeconv

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

var hhmmWithLeadingZero = regexp.MustCompile(`^(0\d|1\d|2[0-3]):([0-5]\d)$`)

// plain decimal notation accepted by ConvertTimeStringToFloat, e.g. "8", "8.5", ".5", "1e1"
var decimalNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

var leadingInteger = regexp.MustCompile(`^[+-]?\d+`)

// InvalidTimeMessage is shown to users entering a malformed time of day.
const InvalidTimeMessage = "Time must be in format HH:MM."

var ErrInvalidTime = errors.New("time must be in format HH:MM")

// Time is a time of day in the "HH:MM" format with leading zeros.
type Time string

// ParseTime validates s and returns it as a Time.
func ParseTime(s string) (Time, error) {
	if !hhmmWithLeadingZero.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return Time(s), nil
}

func (t Time) String() string {
	return string(t)
}

// Minutes returns the number of minutes since midnight.
func (t Time) Minutes() int {
	return TimeToMinutes(t)
}

// TimeToMinutes converts a valid Time to minutes since midnight.
func TimeToMinutes(t Time) int {
	hours, minutes, _ := strings.Cut(string(t), ":")
	h, _ := strconv.Atoi(hours)
	m, _ := strconv.Atoi(minutes)
	return h*60 + m
}

// MinutesToTime formats minutes since midnight as a Time. Values outside a
// single day wrap around, so 1440 is "00:00" and -30 is "23:30".
func MinutesToTime(minutes int) Time {
	m := ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	return Time(fmt.Sprintf("%02d:%02d", m/60, m%60))
}

// AddMinutesToTime shifts t by delta minutes, wrapping at midnight.
func AddMinutesToTime(t Time, delta int) Time {
	return MinutesToTime(TimeToMinutes(t) + delta)
}

func PadLeadingZeros(num string) string {
	s := "0" + num
	return s[len(s)-2:]
}

// ConvertFloatTimeToHHMM renders fractional hours as "H:MM", e.g. 2.25 -> "2:15".
// Zero is rendered as "0". Minutes that round up to 60 carry into the hour.
func ConvertFloatTimeToHHMM(hours float64) string {
	if hours == 0 {
		return "0"
	}
	sign := ""
	if hours < 0 {
		sign = "-"
		hours = -hours
	}
	whole := math.Floor(hours)
	minutes := math.Round((hours - whole) * 60)
	if minutes >= 60 {
		whole++
		minutes -= 60
	}
	return fmt.Sprintf("%s%d:%s", sign, int(whole), PadLeadingZeros(strconv.Itoa(int(minutes))))
}

// MinuteStringToInt parses the minutes part of an "H:M" input. A single digit
// counts as tens ("3" -> 30), as in "8:3" meaning half past eight.
func MinuteStringToInt(minutes string) float64 {
	if len(minutes) == 1 {
		return parseLeadingInt(minutes) * 10
	}
	return parseLeadingInt(minutes)
}

// ConvertTimeToFloat converts a Time to fractional hours, e.g. "02:15" -> 2.25.
func ConvertTimeToFloat(t Time) float64 {
	hours, minutes, _ := strings.Cut(string(t), ":")
	return parseLeadingInt(hours) + parseLeadingInt(minutes)/60
}

// ConvertTimeStringToFloat parses free-text hour input in the notations
// "8:30", "8,5" and "8.5" (or "8"). The colon form is checked first, then the
// comma form. Unparseable input yields NaN.
func ConvertTimeStringToFloat(raw string) float64 {
	if strings.Contains(raw, ":") {
		parts := strings.Split(raw, ":")
		return parseNumber(parts[0]) + MinuteStringToInt(parts[1])/60
	}
	if strings.Contains(raw, ",") {
		return parseNumber(strings.Replace(raw, ",", ".", 1))
	}
	return parseNumber(raw)
}

// parseNumber reads a whole string as a decimal number. Blank input is zero.
func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if !decimalNumber.MatchString(s) {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// parseLeadingInt reads the leading integer of s and ignores the rest.
func parseLeadingInt(s string) float64 {
	digits := leadingInteger.FindString(strings.TrimSpace(s))
	if digits == "" {
		return math.NaN()
	}
	i, err := strconv.Atoi(digits)
	if err != nil {
		return math.NaN()
	}
	return float64(i)
}
