package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateRange(t *testing.T) {
	dates, err := dateRange("2026-02-05", "2026-02-07")
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-02-05", "2026-02-06", "2026-02-07"}, dates)
}

func TestDateRange_SingleDay(t *testing.T) {
	dates, err := dateRange("2026-02-06", "2026-02-06")
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-02-06"}, dates)
}

func TestDateRange_EndBeforeStart(t *testing.T) {
	_, err := dateRange("2026-02-07", "2026-02-06")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before start")
}

func TestDateRange_BadDate(t *testing.T) {
	_, err := dateRange("06/02/2026", "2026-02-07")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}

func TestDateRange_TooLong(t *testing.T) {
	_, err := dateRange("2020-01-01", "2026-01-01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maximum")
}
