package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClock() DayClock {
	return NewDayClock(time.Date(2026, 3, 2, 17, 45, 0, 0, time.UTC), 23, 59)
}

func TestDayClockParse(t *testing.T) {
	c := testClock()

	cases := []struct {
		in   string
		h, m int
	}{
		{"8:00 AM", 8, 0},
		{"10:30 am", 10, 30},
		{"12:00 PM", 12, 0},
		{"12:15 AM", 0, 15},
		{"1:05 PM", 13, 5},
		{" 9:05  AM ", 9, 5},
	}
	for _, tc := range cases {
		got, err := c.Parse(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, time.Date(2026, 3, 2, tc.h, tc.m, 0, 0, time.UTC), got, tc.in)
	}
}

func TestDayClockParseRejectsMalformed(t *testing.T) {
	c := testClock()

	for _, in := range []string{"", "830", "8:30", "13:00 PM", "8:60 AM", "8:30 XM", "ab:cd PM", "0:10 AM"} {
		_, err := c.Parse(in)
		require.Error(t, err, in)

		var cfe *ClockFormatError
		assert.True(t, errors.As(err, &cfe), in)
		assert.Equal(t, in, cfe.Input)
	}
}

func TestDayClockDeadlines(t *testing.T) {
	c := testClock()

	eod, err := c.ParseDeadline("EOD")
	require.NoError(t, err)
	assert.True(t, eod.EndOfDay)
	assert.Equal(t, time.Date(2026, 3, 2, 23, 59, 0, 0, time.UTC), eod.At)

	d, err := c.ParseDeadline("10:30 AM")
	require.NoError(t, err)
	assert.False(t, d.EndOfDay)
	assert.Equal(t, c.At(10, 30), d.At)

	_, err = c.ParseDeadline("noon")
	assert.Error(t, err)
}

func TestDayClockIgnoresTimeOfReference(t *testing.T) {
	c := testClock()
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), c.Date())
	assert.Equal(t, time.Date(2026, 3, 2, 23, 59, 0, 0, time.UTC), c.EndOfDay())
}
