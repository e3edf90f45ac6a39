package schedule

import "fmt"

// Slot is a one-hour bookable interval. Hours are raw generation values:
// for an overnight operating window the end of the sequence runs past 23
// (9 PM-3 AM yields 21-22 ... 26-27). Display formatting wraps with % 24.
type Slot struct {
	StartHour int
	EndHour   int
}

// StartLabel returns the slot's start boundary as a 12-hour display string.
func (s Slot) StartLabel() string {
	return FormatHour(s.StartHour % 24)
}

// EndLabel returns the slot's end boundary as a 12-hour display string.
func (s Slot) EndLabel() string {
	return FormatHour(s.EndHour % 24)
}

// Label returns the human-readable slot range, e.g. "9 AM - 10 AM".
func (s Slot) Label() string {
	return fmt.Sprintf("%s - %s", s.StartLabel(), s.EndLabel())
}

// Slots generates the ordered one-hour candidate slots covering a facility's
// operating window. A closing hour at or before the opening hour is treated
// as an overnight window and raised by 24 before generation. Generation is
// stateless; every call produces the full sequence again.
func Slots(opening, closing Clock) []Slot {
	start := opening.Hour
	end := closing.Hour
	if end <= start {
		end += 24
	}

	slots := make([]Slot, 0, end-start)
	for hour := start; hour < end; hour++ {
		slots = append(slots, Slot{StartHour: hour, EndHour: hour + 1})
	}
	return slots
}
