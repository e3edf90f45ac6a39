package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Clock is a parsed 12-hour clock value in 24-hour terms.
// Facilities and reservations store times as display strings ("9 AM",
// "10:30 PM"); parsing happens once at the edge, before any arithmetic.
type Clock struct {
	Hour   int // 0-23
	Minute int // 0-59
}

// Minutes returns the clock value as minutes since midnight.
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

// ParseClock converts a 12-hour clock string ("<h>[:<mm>] <AM|PM>") into a
// Clock. "12 AM" maps to hour 0 and "12 PM" stays 12; minutes default to 0.
func ParseClock(s string) (Clock, error) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) != 2 {
		return Clock{}, fmt.Errorf("invalid clock string %q: expected \"<time> <AM|PM>\"", s)
	}

	period := strings.ToUpper(fields[1])
	if period != "AM" && period != "PM" {
		return Clock{}, fmt.Errorf("invalid clock string %q: missing AM/PM suffix", s)
	}

	timeParts := strings.Split(fields[0], ":")
	if len(timeParts) > 2 {
		return Clock{}, fmt.Errorf("invalid clock string %q: too many time components", s)
	}

	hour, err := strconv.Atoi(timeParts[0])
	if err != nil {
		return Clock{}, fmt.Errorf("invalid clock string %q: non-numeric hour", s)
	}
	if hour < 1 || hour > 12 {
		return Clock{}, fmt.Errorf("invalid clock string %q: hour must be 1-12", s)
	}

	minute := 0
	if len(timeParts) == 2 {
		minute, err = strconv.Atoi(timeParts[1])
		if err != nil {
			return Clock{}, fmt.Errorf("invalid clock string %q: non-numeric minute", s)
		}
		if minute < 0 || minute > 59 {
			return Clock{}, fmt.Errorf("invalid clock string %q: minute must be 0-59", s)
		}
	}

	if period == "PM" && hour != 12 {
		hour += 12
	} else if period == "AM" && hour == 12 {
		hour = 0
	}

	return Clock{Hour: hour, Minute: minute}, nil
}

// FormatHour is the inverse of ParseClock for whole hours: 0 -> "12 AM",
// 9 -> "9 AM", 12 -> "12 PM", 22 -> "10 PM". Callers pass hour % 24 when
// labelling slots that roll past midnight.
func FormatHour(hour int) string {
	switch {
	case hour == 0:
		return "12 AM"
	case hour < 12:
		return fmt.Sprintf("%d AM", hour)
	case hour == 12:
		return "12 PM"
	default:
		return fmt.Sprintf("%d PM", hour-12)
	}
}

// NormalizeRange converts a start/end pair to minute space and applies the
// overnight rule: an end numerically before its start means the window spans
// midnight, so the end is raised by 24 hours. The stored strings are never
// mutated; normalization is local to the comparison.
func NormalizeRange(start, end Clock) (startMin, endMin int) {
	startMin = start.Minutes()
	endMin = end.Minutes()
	if endMin < startMin {
		endMin += 24 * 60
	}
	return startMin, endMin
}

// ExpiresAt returns the absolute instant at which a reservation's window
// ends: the booking date with the end clock applied, pushed to the next
// calendar day when the window crosses midnight. It always lies strictly
// after the booking's actual end.
func ExpiresAt(date time.Time, start, end Clock) time.Time {
	day := date
	if end.Minutes() < start.Minutes() {
		day = day.AddDate(0, 0, 1)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), end.Hour, end.Minute, 0, 0, day.Location())
}
