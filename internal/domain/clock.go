package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// EndOfDayToken is the deadline spelling used by the input files.
const EndOfDayToken = "EOD"

// ClockFormatError reports a time-of-day string that is not "H:MM AM|PM".
type ClockFormatError struct {
	Input  string
	Reason string
}

func (e *ClockFormatError) Error() string {
	return fmt.Sprintf("invalid time %q: %s (want H:MM AM|PM)", e.Input, e.Reason)
}

// DayClock pins every time-of-day value to one reference date so runs are
// reproducible. It never reads the wall clock.
type DayClock struct {
	date     time.Time
	endOfDay time.Time
}

// NewDayClock builds a clock for the date part of ref with the given
// end-of-day hour and minute.
func NewDayClock(ref time.Time, eodHour, eodMinute int) DayClock {
	date := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	return DayClock{
		date:     date,
		endOfDay: date.Add(time.Duration(eodHour)*time.Hour + time.Duration(eodMinute)*time.Minute),
	}
}

// Date returns midnight of the reference date.
func (c DayClock) Date() time.Time { return c.date }

// EndOfDay returns the end-of-day instant.
func (c DayClock) EndOfDay() time.Time { return c.endOfDay }

// At returns hour:minute on the reference date.
func (c DayClock) At(hour, minute int) time.Time {
	return c.date.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

// EndOfDayDeadline returns the end-of-day sentinel deadline.
func (c DayClock) EndOfDayDeadline() Deadline {
	return Deadline{At: c.endOfDay, EndOfDay: true}
}

// Parse reads "H:MM AM" or "H:MM PM" (case-insensitive) as a time on the
// reference date.
func (c DayClock) Parse(s string) (time.Time, error) {
	in := strings.TrimSpace(s)

	hh, rest, ok := strings.Cut(in, ":")
	if !ok {
		return time.Time{}, &ClockFormatError{Input: s, Reason: "missing ':'"}
	}

	fields := strings.Fields(rest)
	if len(fields) != 2 {
		return time.Time{}, &ClockFormatError{Input: s, Reason: "missing AM/PM"}
	}

	hour, err := strconv.Atoi(strings.TrimSpace(hh))
	if err != nil || hour < 1 || hour > 12 {
		return time.Time{}, &ClockFormatError{Input: s, Reason: "hour must be 1-12"}
	}

	minute, err := strconv.Atoi(fields[0])
	if err != nil || minute < 0 || minute > 59 {
		return time.Time{}, &ClockFormatError{Input: s, Reason: "minute must be 00-59"}
	}

	switch strings.ToUpper(fields[1]) {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour != 12 {
			hour += 12
		}
	default:
		return time.Time{}, &ClockFormatError{Input: s, Reason: "suffix must be AM or PM"}
	}

	return c.At(hour, minute), nil
}

// ParseDeadline accepts EndOfDayToken or a Parse-able time.
func (c DayClock) ParseDeadline(s string) (Deadline, error) {
	if strings.EqualFold(strings.TrimSpace(s), EndOfDayToken) {
		return c.EndOfDayDeadline(), nil
	}

	at, err := c.Parse(s)
	if err != nil {
		return Deadline{}, err
	}
	return Deadline{At: at}, nil
}
