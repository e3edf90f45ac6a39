package entity

import (
	"time"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
	ReservationStatusCompleted ReservationStatus = "completed"
)

// Reservation is a confirmed hourly booking of a facility. Start and end
// stay as display-ready 12-hour clock strings at rest; normalization to
// minute space happens transiently in the schedule package.
type Reservation struct {
	Base
	Reference     string            `db:"reference"`
	FacilityID    uuid.UUID         `db:"facility_id"`
	RenterID      uuid.UUID         `db:"renter_id"`
	Date          time.Time         `db:"date"` // date-only, no time-of-day
	StartTime     string            `db:"start_time"`
	EndTime       string            `db:"end_time"`
	DurationHours float64           `db:"duration_hours"`
	TotalAmount   float64           `db:"total_amount"`
	Status        ReservationStatus `db:"status"`
	ContactNumber string            `db:"contact_number"`
	Notes         string            `db:"notes"`
	ExpiresAt     time.Time         `db:"expires_at"`
}
