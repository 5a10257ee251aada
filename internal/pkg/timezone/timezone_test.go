package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTime(t *testing.T) {
	// 06:30 UTC is 14:30 in UTC+8
	ts := time.Date(2024, 3, 15, 6, 30, 0, 0, time.UTC)
	assert.Equal(t, "2:30 PM", FormatTime(&ts))

	assert.Equal(t, "", FormatTime(nil))
}

func TestFormatDate(t *testing.T) {
	// 22:00 UTC on the 15th is already the 16th in UTC+8
	ts := time.Date(2024, 3, 15, 22, 0, 0, 0, time.UTC)
	assert.Equal(t, "3/16/2024", FormatDate(&ts))

	assert.Equal(t, "", FormatDate(nil))
}

func TestCombineWallClock(t *testing.T) {
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, DisplayZone())

	got, err := CombineWallClock(day, "14:30")
	require.NoError(t, err)

	// Stored instant is UTC; converted back to the display zone it must
	// render as the wall-clock time the manager typed.
	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, "2:30 PM", FormatTime(&got))
	assert.Equal(t, 0, got.Second())
	assert.Equal(t, 0, got.Nanosecond())
}

func TestCombineWallClockInvalid(t *testing.T) {
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, DisplayZone())

	for _, input := range []string{"", "25:00", "14:30:00", "half past two"} {
		_, err := CombineWallClock(day, input)
		assert.Error(t, err, "input %q", input)
	}
}
