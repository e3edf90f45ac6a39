package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"facility-booking/internal/data/entity"
	"facility-booking/internal/data/repository"
	"facility-booking/internal/dto/request"
	"facility-booking/internal/dto/response"
	"facility-booking/internal/schedule"
	"facility-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultContactNumber = "0000000000"

type BookingService interface {
	// Renter endpoints (need identity)
	CreateBooking(ctx context.Context, renterID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, reservationID, requesterID string) error
	GetBookingByID(ctx context.Context, reservationID, requesterID string) (*response.BookingResponse, error)
	GetRenterBookings(ctx context.Context, renterID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)

	// Owner endpoints
	GetOwnerBookings(ctx context.Context, ownerID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetFacilityBookings(ctx context.Context, facilityID, requesterID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)

	// Maintenance
	CleanupCancelled(ctx context.Context) (int64, error)
}

type bookingService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time // injected so temporal rules are testable
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
		now:  time.Now,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, renterID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	renterUUID, err := uuid.Parse(renterID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid renter ID %s", ErrValidation, renterID)
	}

	facilityUUID, err := uuid.Parse(req.FacilityID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid facility ID %s", ErrValidation, req.FacilityID)
	}

	// Facility must exist and be open for booking
	facility, err := s.repo.Facility.FindByID(ctx, facilityUUID)
	if err != nil {
		s.log.Error("Failed to look up facility", zap.Error(err), zap.String("facility_id", req.FacilityID))
		return nil, fmt.Errorf("look up facility: %w", err)
	}
	if facility == nil {
		return nil, fmt.Errorf("%w: facility %s", ErrNotFound, req.FacilityID)
	}
	if !facility.IsActive {
		return nil, fmt.Errorf("%w: facility %s", ErrFacilityUnavailable, req.FacilityID)
	}

	// Parse once at the edge; nothing downstream touches raw strings
	start, err := schedule.ParseClock(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	end, err := schedule.ParseClock(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	startMin, endMin := schedule.NormalizeRange(start, end)
	if endMin <= startMin {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTimeRange, req.StartTime, req.EndTime)
	}

	duration := float64(endMin-startMin) / 60.0
	if duration < 1 {
		return nil, fmt.Errorf("%w: booking must be at least one hour", ErrInvalidTimeRange)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %s", ErrValidation, req.Date)
	}

	// Fast-path conflict check; the unique index backs it up under races
	existing, err := s.repo.Reservation.FindActiveByFacilityDate(ctx, facilityUUID, date)
	if err != nil {
		s.log.Error("Failed to load existing reservations",
			zap.Error(err),
			zap.String("facility_id", req.FacilityID),
			zap.String("date", req.Date),
		)
		return nil, fmt.Errorf("load existing reservations: %w", err)
	}

	if schedule.HasConflict(start, end, s.intervals(existing)) {
		return nil, fmt.Errorf("%w: %s to %s on %s", ErrSlotUnavailable, req.StartTime, req.EndTime, req.Date)
	}

	// Temporal rejection uses the injected clock. The same-day check is
	// deliberately whole-hour coarse: a request at 2:59 PM for a 2 PM slot
	// is rejected, one for a 3 PM slot is not.
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, date.Location())
	if date.Before(today) {
		return nil, fmt.Errorf("%w: %s", ErrPastDate, req.Date)
	}
	if date.Equal(today) && start.Hour <= now.Hour() {
		return nil, fmt.Errorf("%w: %s", ErrPastTimeSlot, req.StartTime)
	}

	contactNumber := req.ContactNumber
	if contactNumber == "" {
		contactNumber = defaultContactNumber
	}

	reservation := &entity.Reservation{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Reference:     utils.GenerateBookingRef(),
		FacilityID:    facilityUUID,
		RenterID:      renterUUID,
		Date:          date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		DurationHours: duration,
		TotalAmount:   duration * facility.PricePerHour,
		Status:        entity.ReservationStatusConfirmed,
		ContactNumber: contactNumber,
		Notes:         req.Notes,
		ExpiresAt:     schedule.ExpiresAt(date, start, end),
	}

	if err := s.repo.Reservation.Create(ctx, reservation); err != nil {
		// A concurrent create won the slot between check and insert
		if errors.Is(err, repository.ErrDuplicateSlot) {
			return nil, fmt.Errorf("%w: %s to %s on %s", ErrSlotUnavailable, req.StartTime, req.EndTime, req.Date)
		}

		s.log.Error("Failed to create reservation",
			zap.Error(err),
			zap.String("renter_id", renterID),
			zap.String("facility_id", req.FacilityID),
		)
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	s.log.Info("Reservation created",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("reference", reservation.Reference),
		zap.String("facility_id", req.FacilityID),
		zap.String("renter_id", renterID),
		zap.String("date", req.Date),
		zap.String("slot", req.StartTime+" - "+req.EndTime),
		zap.Float64("total_amount", reservation.TotalAmount),
	)

	resp := response.ReservationToResponse(reservation, facility)
	return &resp, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, reservationID, requesterID string) error {
	id, err := uuid.Parse(reservationID)
	if err != nil {
		return fmt.Errorf("%w: invalid reservation ID %s", ErrValidation, reservationID)
	}

	requesterUUID, err := uuid.Parse(requesterID)
	if err != nil {
		return fmt.Errorf("%w: invalid requester ID %s", ErrValidation, requesterID)
	}

	reservation, err := s.repo.Reservation.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to look up reservation", zap.Error(err), zap.String("reservation_id", reservationID))
		return fmt.Errorf("look up reservation: %w", err)
	}
	if reservation == nil {
		return fmt.Errorf("%w: reservation %s", ErrNotFound, reservationID)
	}

	if reservation.RenterID != requesterUUID {
		return fmt.Errorf("%w: only the renter can cancel this booking", ErrForbidden)
	}

	switch reservation.Status {
	case entity.ReservationStatusCancelled:
		return ErrAlreadyCancelled
	case entity.ReservationStatusCompleted:
		return ErrAlreadyCompleted
	}

	// Cancellation is destructive: removing the row frees the slot for
	// other renters immediately, and the conflict check only ever asks
	// whether a live reservation exists. Losing a race with the expiry
	// sweeper is fine, the delete is then a no-op.
	if err := s.repo.Reservation.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete reservation",
			zap.Error(err),
			zap.String("reservation_id", reservationID),
		)
		return fmt.Errorf("cancel reservation %s: %w", reservationID, err)
	}

	s.log.Info("Reservation cancelled",
		zap.String("reservation_id", reservationID),
		zap.String("reference", reservation.Reference),
		zap.String("renter_id", requesterID),
	)

	return nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, reservationID, requesterID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(reservationID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid reservation ID %s", ErrValidation, reservationID)
	}

	requesterUUID, err := uuid.Parse(requesterID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid requester ID %s", ErrValidation, requesterID)
	}

	reservation, err := s.repo.Reservation.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to look up reservation", zap.Error(err), zap.String("reservation_id", reservationID))
		return nil, fmt.Errorf("look up reservation: %w", err)
	}
	if reservation == nil {
		return nil, fmt.Errorf("%w: reservation %s", ErrNotFound, reservationID)
	}

	// A storage fault here must surface as an internal failure, not as a
	// denial: swallowing it would 403 the facility owner.
	facility, err := s.repo.Facility.FindByID(ctx, reservation.FacilityID)
	if err != nil {
		s.log.Error("Failed to look up facility",
			zap.Error(err),
			zap.String("facility_id", reservation.FacilityID.String()),
		)
		return nil, fmt.Errorf("look up facility: %w", err)
	}

	// Only the renter or the facility owner may view the booking
	if reservation.RenterID != requesterUUID && (facility == nil || facility.OwnerID != requesterUUID) {
		return nil, fmt.Errorf("%w: not authorized to view this booking", ErrForbidden)
	}

	resp := response.ReservationToResponse(reservation, facility)
	return &resp, nil
}

func (s *bookingService) GetRenterBookings(ctx context.Context, renterID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	renterUUID, err := uuid.Parse(renterID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid renter ID %s", ErrValidation, renterID)
	}

	reservations, err := s.repo.Reservation.FindByRenterID(ctx, renterUUID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get renter bookings",
			zap.Error(err),
			zap.String("renter_id", renterID),
			zap.Int("page", req.Page),
		)
		return nil, fmt.Errorf("get renter bookings: %w", err)
	}

	total, err := s.repo.Reservation.CountByRenterID(ctx, renterUUID)
	if err != nil {
		s.log.Error("Failed to count renter bookings", zap.Error(err))
		return nil, fmt.Errorf("count renter bookings: %w", err)
	}

	return response.NewPaginatedResponse(s.toResponses(ctx, reservations), req.Page, req.PerPage, total), nil
}

func (s *bookingService) GetOwnerBookings(ctx context.Context, ownerID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	ownerUUID, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid owner ID %s", ErrValidation, ownerID)
	}

	reservations, err := s.repo.Reservation.FindByOwnerID(ctx, ownerUUID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get owner bookings",
			zap.Error(err),
			zap.String("owner_id", ownerID),
			zap.Int("page", req.Page),
		)
		return nil, fmt.Errorf("get owner bookings: %w", err)
	}

	total, err := s.repo.Reservation.CountByOwnerID(ctx, ownerUUID)
	if err != nil {
		s.log.Error("Failed to count owner bookings", zap.Error(err))
		return nil, fmt.Errorf("count owner bookings: %w", err)
	}

	return response.NewPaginatedResponse(s.toResponses(ctx, reservations), req.Page, req.PerPage, total), nil
}

// GetFacilityBookings lists one facility's live reservations, ordered by
// date and start time. Only the facility owner may see them.
func (s *bookingService) GetFacilityBookings(ctx context.Context, facilityID, requesterID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	facilityUUID, err := uuid.Parse(facilityID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid facility ID %s", ErrValidation, facilityID)
	}

	requesterUUID, err := uuid.Parse(requesterID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid requester ID %s", ErrValidation, requesterID)
	}

	facility, err := s.repo.Facility.FindByID(ctx, facilityUUID)
	if err != nil {
		s.log.Error("Failed to look up facility", zap.Error(err), zap.String("facility_id", facilityID))
		return nil, fmt.Errorf("look up facility: %w", err)
	}
	if facility == nil {
		return nil, fmt.Errorf("%w: facility %s", ErrNotFound, facilityID)
	}
	if facility.OwnerID != requesterUUID {
		return nil, fmt.Errorf("%w: only the facility owner can view its bookings", ErrForbidden)
	}

	reservations, err := s.repo.Reservation.FindByFacilityID(ctx, facilityUUID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get facility bookings",
			zap.Error(err),
			zap.String("facility_id", facilityID),
			zap.Int("page", req.Page),
		)
		return nil, fmt.Errorf("get facility bookings: %w", err)
	}

	total, err := s.repo.Reservation.CountByFacilityID(ctx, facilityUUID)
	if err != nil {
		s.log.Error("Failed to count facility bookings", zap.Error(err))
		return nil, fmt.Errorf("count facility bookings: %w", err)
	}

	return response.NewPaginatedResponse(s.toResponses(ctx, reservations), req.Page, req.PerPage, total), nil
}

func (s *bookingService) CleanupCancelled(ctx context.Context) (int64, error) {
	deleted, err := s.repo.Reservation.DeleteCancelled(ctx)
	if err != nil {
		s.log.Error("Failed to clean up cancelled reservations", zap.Error(err))
		return 0, fmt.Errorf("clean up cancelled reservations: %w", err)
	}

	s.log.Info("Cancelled reservations removed", zap.Int64("count", deleted))
	return deleted, nil
}

// ==================== HELPER METHODS ====================

// intervals converts stored reservations to parsed intervals for the
// conflict check. Rows were validated on write; a row that fails to parse
// anyway is skipped and logged rather than failing the whole check.
func (s *bookingService) intervals(reservations []*entity.Reservation) []schedule.Interval {
	result := make([]schedule.Interval, 0, len(reservations))
	for _, r := range reservations {
		start, err := schedule.ParseClock(r.StartTime)
		if err != nil {
			s.log.Warn("Skipping reservation with unparseable start time",
				zap.String("reservation_id", r.ID.String()),
				zap.String("start_time", r.StartTime),
			)
			continue
		}
		end, err := schedule.ParseClock(r.EndTime)
		if err != nil {
			s.log.Warn("Skipping reservation with unparseable end time",
				zap.String("reservation_id", r.ID.String()),
				zap.String("end_time", r.EndTime),
			)
			continue
		}
		result = append(result, schedule.Interval{Start: start, End: end})
	}
	return result
}

func (s *bookingService) toResponses(ctx context.Context, reservations []*entity.Reservation) []response.BookingResponse {
	responses := make([]response.BookingResponse, len(reservations))
	for i, reservation := range reservations {
		facility, err := s.repo.Facility.FindByID(ctx, reservation.FacilityID)
		if err != nil {
			// Listing still succeeds; the row just loses its facility fields.
			s.log.Warn("Failed to look up facility for listing",
				zap.Error(err),
				zap.String("facility_id", reservation.FacilityID.String()),
			)
		}
		responses[i] = response.ReservationToResponse(reservation, facility)
	}
	return responses
}
