package validation

import (
	"sort"
	"strings"
)

// Error holds every rejected field of a submission with its messages.
type Error struct {
	Fields map[string][]string
}

func (e *Error) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+strings.Join(e.Fields[name], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Parser turns the raw value of a field into T. A non-empty message rejects the value.
type Parser[T any] func(raw string) (T, string)

// Check validates an already parsed value. A non-empty message rejects it.
type Check[T any] func(value T) string

// Collector gathers the field errors of one submission.
type Collector struct {
	fields map[string][]string
}

func NewCollector() *Collector {
	return &Collector{fields: make(map[string][]string)}
}

func (c *Collector) Add(field, message string) {
	c.fields[field] = append(c.fields[field], message)
}

// Err returns nil when no field was rejected and an *Error otherwise.
func (c *Collector) Err() error {
	if len(c.fields) == 0 {
		return nil
	}
	return &Error{Fields: c.fields}
}

// Field parses raw and runs the checks in order, stopping at the first failure.
// Failures are recorded under name and the zero value is returned.
func Field[T any](c *Collector, name, raw string, parse Parser[T], checks ...Check[T]) T {
	var zero T
	value, message := parse(raw)
	if message != "" {
		c.Add(name, message)
		return zero
	}
	for _, check := range checks {
		if message := check(value); message != "" {
			c.Add(name, message)
			return zero
		}
	}
	return value
}

// String accepts any raw value unchanged.
func String(raw string) (string, string) {
	return raw, ""
}

// Bool reads "true" as true and anything else as false.
func Bool(raw string) (bool, string) {
	return raw == "true", ""
}

func MinLength(n int, message string) Check[string] {
	return func(value string) string {
		if len([]rune(value)) < n {
			return message
		}
		return ""
	}
}
