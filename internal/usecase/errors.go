package usecase

import "errors"

// Recoverable, user-facing outcomes of booking operations. Handlers match
// these with errors.Is and surface the specific message; anything that does
// not wrap one of these is an internal failure and stays opaque.
var (
	ErrValidation          = errors.New("validation failed")
	ErrInvalidTimeRange    = errors.New("end time must be after start time")
	ErrSlotUnavailable     = errors.New("this time slot is already booked")
	ErrPastDate            = errors.New("cannot book for past dates")
	ErrPastTimeSlot        = errors.New("cannot book for past time slots")
	ErrNotFound            = errors.New("not found")
	ErrFacilityUnavailable = errors.New("facility is currently not available for booking")
	ErrForbidden           = errors.New("not authorized")
	ErrAlreadyCancelled    = errors.New("booking is already cancelled")
	ErrAlreadyCompleted    = errors.New("cannot cancel a completed booking")
)
