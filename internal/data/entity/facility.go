package entity

import (
	"github.com/google/uuid"
)

// Facility is a host's bookable space. The listing side (CRUD, images,
// reviews) lives outside this service; the booking engine only reads
// facilities to validate and price reservations.
type Facility struct {
	Base
	OwnerID      uuid.UUID `db:"owner_id"`
	Name         string    `db:"name"`
	SportType    string    `db:"sport_type"`
	PricePerHour float64   `db:"price_per_hour"`
	OpeningTime  string    `db:"opening_time"` // 12-hour clock string, e.g. "6 AM"
	ClosingTime  string    `db:"closing_time"` // 12-hour clock string, e.g. "10 PM"
	IsActive     bool      `db:"is_active"`
}
