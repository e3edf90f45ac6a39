package response

import (
	"time"

	"facility-booking/internal/data/entity"
)

type BookingResponse struct {
	ID            string                   `json:"id"`
	Reference     string                   `json:"reference"`
	FacilityID    string                   `json:"facility_id"`
	FacilityName  string                   `json:"facility_name,omitempty"`
	SportType     string                   `json:"sport_type,omitempty"`
	RenterID      string                   `json:"renter_id"`
	Date          string                   `json:"date"`
	StartTime     string                   `json:"start_time"`
	EndTime       string                   `json:"end_time"`
	DurationHours float64                  `json:"duration_hours"`
	TotalAmount   float64                  `json:"total_amount"`
	Status        entity.ReservationStatus `json:"status"`
	ContactNumber string                   `json:"contact_number,omitempty"`
	Notes         string                   `json:"notes,omitempty"`
	ExpiresAt     time.Time                `json:"expires_at"`
	CreatedAt     time.Time                `json:"created_at"`
}

// ReservationToResponse maps a stored reservation; facility may be nil when
// the lookup failed, the facility fields are then left empty.
func ReservationToResponse(reservation *entity.Reservation, facility *entity.Facility) BookingResponse {
	resp := BookingResponse{
		ID:            reservation.ID.String(),
		Reference:     reservation.Reference,
		FacilityID:    reservation.FacilityID.String(),
		RenterID:      reservation.RenterID.String(),
		Date:          reservation.Date.Format("2006-01-02"),
		StartTime:     reservation.StartTime,
		EndTime:       reservation.EndTime,
		DurationHours: reservation.DurationHours,
		TotalAmount:   reservation.TotalAmount,
		Status:        reservation.Status,
		ContactNumber: reservation.ContactNumber,
		Notes:         reservation.Notes,
		ExpiresAt:     reservation.ExpiresAt,
		CreatedAt:     reservation.CreatedAt,
	}

	if facility != nil {
		resp.FacilityName = facility.Name
		resp.SportType = facility.SportType
	}

	return resp
}
