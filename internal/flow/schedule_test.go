package flow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotsForMarksStartedSlotsUnavailable(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 30, 0, 0, time.UTC)

	slots, err := SlotsFor("2026-10-18", now)
	require.NoError(t, err)
	require.Len(t, slots, 5)
	assert.False(t, slots[0].Available)
	assert.False(t, slots[1].Available)
	assert.True(t, slots[2].Available)

	avail, err := AvailableSlots("2026-10-18", now)
	require.NoError(t, err)
	assert.Len(t, avail, 3)

	avail, err = AvailableSlots("2026-10-19", now)
	require.NoError(t, err)
	assert.Len(t, avail, 5)

	_, err = SlotsFor("19/10/2026", now)
	assert.Error(t, err)
}

func TestSelectableDates(t *testing.T) {
	now := time.Date(2026, 10, 30, 23, 0, 0, 0, time.UTC)
	dates := SelectableDates(now)

	require.Len(t, dates, BookingWindow)
	assert.Equal(t, "2026-10-31", dates[0])
	assert.Equal(t, "2026-11-06", dates[6])
}

func TestCheckSchedule(t *testing.T) {
	now := time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)

	assert.Empty(t, CheckSchedule("2026-10-19", "09:00 AM - 11:00 AM", now))
	assert.Len(t, CheckSchedule("", "", now), 2)
	assert.Contains(t, CheckSchedule("2026-10-18", "04:00 PM - 06:00 PM", now), "date", "today is outside the window")
	assert.Contains(t, CheckSchedule("2026-11-30", "09:00 AM - 11:00 AM", now), "date")
	assert.Contains(t, CheckSchedule("2026-10-19", "midnight", now), "slot")
}
