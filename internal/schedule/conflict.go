package schedule

// Interval is an existing reservation's start/end pair, parsed but not yet
// overnight-normalized.
type Interval struct {
	Start Clock
	End   Clock
}

// Overlaps reports whether [newStart, newEnd) intersects [existStart,
// existEnd) in normalized minute space. The three clauses cover the three
// overlap shapes: new start inside existing, new end inside existing, and
// new fully enclosing existing. Adjacency is not overlap: a window ending
// exactly when another starts passes under the half-open semantics.
func Overlaps(newStart, newEnd, existStart, existEnd int) bool {
	return (newStart >= existStart && newStart < existEnd) ||
		(newEnd > existStart && newEnd <= existEnd) ||
		(newStart <= existStart && newEnd >= existEnd)
}

// HasConflict reports whether the candidate window intersects any of the
// existing intervals. Each pair is overnight-normalized independently before
// the overlap test runs.
func HasConflict(start, end Clock, existing []Interval) bool {
	newStart, newEnd := NormalizeRange(start, end)
	for _, iv := range existing {
		existStart, existEnd := NormalizeRange(iv.Start, iv.End)
		if Overlaps(newStart, newEnd, existStart, existEnd) {
			return true
		}
	}
	return false
}

// SlotBooked reports whether a generated slot intersects any existing
// interval. Slot hours are already in the raw (possibly >= 24) frame, so
// they convert to minutes directly; the existing intervals still go through
// overnight normalization. A slot past midnight is additionally tested in
// the wrapped next-day frame, because a reservation recorded as an
// early-morning range ("12 AM"-"1 AM") normalizes into that frame.
func SlotBooked(s Slot, existing []Interval) bool {
	slotStart := s.StartHour * 60
	slotEnd := s.EndHour * 60
	for _, iv := range existing {
		existStart, existEnd := NormalizeRange(iv.Start, iv.End)
		if Overlaps(slotStart, slotEnd, existStart, existEnd) {
			return true
		}
		if s.StartHour >= 24 && Overlaps(slotStart-24*60, slotEnd-24*60, existStart, existEnd) {
			return true
		}
	}
	return false
}
