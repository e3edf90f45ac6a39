package wire

import (
	"facility-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAvailability(r chi.Router, availabilityHandler *adaptor.AvailabilityHandler) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/facilities/{id}/availability?date=YYYY-MM-DD - Free/booked slots for a date
	r.Get("/api/facilities/{id}/availability", availabilityHandler.GetAvailability)
}
