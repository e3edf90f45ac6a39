package wire

import (
	"facility-booking/internal/adaptor"
	"facility-booking/pkg/middleware"
	"facility-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== IDENTIFIED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Identity(log))

		// POST /api/bookings - Create new booking (rate limited)
		r.With(middleware.RateLimit(config.RateLimit)).Post("/api/bookings", bookingHandler.CreateBooking)

		// GET /api/bookings/{id} - Booking details (renter or facility owner)
		r.Get("/api/bookings/{id}", bookingHandler.GetBooking)

		// DELETE /api/bookings/{id} - Cancel and remove a booking
		r.Delete("/api/bookings/{id}", bookingHandler.CancelBooking)

		// GET /api/user/bookings - Renter's own bookings
		r.Get("/api/user/bookings", bookingHandler.GetRenterBookings)

		// GET /api/owner/bookings - Bookings received across owned facilities
		r.Get("/api/owner/bookings", bookingHandler.GetOwnerBookings)

		// GET /api/facilities/{id}/bookings - One facility's bookings (owner only)
		r.Get("/api/facilities/{id}/bookings", bookingHandler.GetFacilityBookings)

		// DELETE /api/admin/bookings/cleanup-cancelled - Purge cancelled rows
		r.Delete("/api/admin/bookings/cleanup-cancelled", bookingHandler.CleanupCancelled)
	})
}
