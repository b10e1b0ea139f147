package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHoursWindow(t *testing.T) {
	open, close, err := ParseHoursWindow("9-16")
	require.NoError(t, err)
	assert.Equal(t, 9, open)
	assert.Equal(t, 16, close)

	open, close, err = ParseHoursWindow("0-24")
	require.NoError(t, err)
	assert.Equal(t, 0, open)
	assert.Equal(t, 24, close)

	open, close, err = ParseHoursWindow(" 9 - 16 ")
	require.NoError(t, err)
	assert.Equal(t, 9, open)
	assert.Equal(t, 16, close)
}

func TestParseHoursWindowInvalid(t *testing.T) {
	cases := []string{"", "9", "9:16", "abc-16", "9-xyz", "16-9", "9-9", "-1-16", "9-25"}
	for _, c := range cases {
		_, _, err := ParseHoursWindow(c)
		assert.Errorf(t, err, "expected error for %q", c)
	}
}

func TestFormatHoursWindow(t *testing.T) {
	assert.Equal(t, "9-16", FormatHoursWindow(9, 16))
	assert.Equal(t, "0-24", FormatHoursWindow(0, 24))
}
