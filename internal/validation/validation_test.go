package validation

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intParser(raw string) (int, string) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, "not a number"
	}
	return v, ""
}

func atMost(limit int) Check[int] {
	return func(v int) string {
		if v > limit {
			return "too large"
		}
		return ""
	}
}

func TestField_CollectsAllFields(t *testing.T) {
	c := NewCollector()

	a := Field(c, "a", "x", intParser, atMost(5))
	b := Field(c, "b", "9", intParser, atMost(5))
	d := Field(c, "d", "", String, MinLength(1, "required"))
	ok := Field(c, "ok", "3", intParser, atMost(5))

	assert.Zero(t, a)
	assert.Zero(t, b)
	assert.Empty(t, d)
	assert.Equal(t, 3, ok)

	err := c.Err()
	require.Error(t, err)
	var validationErr *Error
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, map[string][]string{
		"a": {"not a number"},
		"b": {"too large"},
		"d": {"required"},
	}, validationErr.Fields)
	assert.Equal(t, "validation failed: a: not a number; b: too large; d: required", err.Error())
}

func TestField_StopsAtFirstFailedCheck(t *testing.T) {
	c := NewCollector()
	Field(c, "n", "9", intParser, atMost(5), atMost(1))

	var validationErr *Error
	require.ErrorAs(t, c.Err(), &validationErr)
	assert.Equal(t, []string{"too large"}, validationErr.Fields["n"])
}

func TestCollector_NoErrors(t *testing.T) {
	c := NewCollector()
	assert.True(t, Field(c, "flag", "true", Bool))
	assert.False(t, Field(c, "flag", "TRUE", Bool))
	assert.NoError(t, c.Err())
}

func TestMinLength_CountsRunes(t *testing.T) {
	assert.Empty(t, MinLength(2, "short")("äö"))
	assert.Equal(t, "short", MinLength(3, "short")("äö"))
}
