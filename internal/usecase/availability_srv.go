package usecase

import (
	"context"
	"fmt"
	"time"

	"facility-booking/internal/data/repository"
	"facility-booking/internal/dto/response"
	"facility-booking/internal/schedule"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AvailabilityService interface {
	GetAvailability(ctx context.Context, facilityID, date string) (*response.AvailabilityResponse, error)
}

type availabilityService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAvailabilityService(repo *repository.Repository, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		repo: repo,
		log:  log.With(zap.String("service", "availability")),
	}
}

// GetAvailability partitions the facility's candidate slots for a date into
// free and booked. Every generated slot lands in exactly one side.
func (s *availabilityService) GetAvailability(ctx context.Context, facilityID, date string) (*response.AvailabilityResponse, error) {
	facilityUUID, err := uuid.Parse(facilityID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid facility ID %s", ErrValidation, facilityID)
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %s", ErrValidation, date)
	}

	facility, err := s.repo.Facility.FindByID(ctx, facilityUUID)
	if err != nil {
		s.log.Error("Failed to look up facility", zap.Error(err), zap.String("facility_id", facilityID))
		return nil, fmt.Errorf("look up facility: %w", err)
	}
	if facility == nil {
		return nil, fmt.Errorf("%w: facility %s", ErrNotFound, facilityID)
	}

	opening, err := schedule.ParseClock(facility.OpeningTime)
	if err != nil {
		s.log.Error("Facility has invalid opening time",
			zap.String("facility_id", facilityID),
			zap.String("opening_time", facility.OpeningTime),
		)
		return nil, fmt.Errorf("parse facility opening time: %w", err)
	}
	closing, err := schedule.ParseClock(facility.ClosingTime)
	if err != nil {
		s.log.Error("Facility has invalid closing time",
			zap.String("facility_id", facilityID),
			zap.String("closing_time", facility.ClosingTime),
		)
		return nil, fmt.Errorf("parse facility closing time: %w", err)
	}

	reservations, err := s.repo.Reservation.FindActiveByFacilityDate(ctx, facilityUUID, day)
	if err != nil {
		s.log.Error("Failed to load reservations for availability",
			zap.Error(err),
			zap.String("facility_id", facilityID),
			zap.String("date", date),
		)
		return nil, fmt.Errorf("load reservations: %w", err)
	}

	existing := make([]schedule.Interval, 0, len(reservations))
	bookedSlots := make([]response.BookedSlotResponse, 0, len(reservations))
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
		existing = append(existing, schedule.Interval{Start: start, End: end})
		bookedSlots = append(bookedSlots, response.BookedSlotResponse{
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
		})
	}

	freeSlots := make([]response.FreeSlotResponse, 0)
	for _, slot := range schedule.Slots(opening, closing) {
		if schedule.SlotBooked(slot, existing) {
			continue
		}
		freeSlots = append(freeSlots, response.FreeSlotResponse{
			StartTime: slot.StartLabel(),
			EndTime:   slot.EndLabel(),
			Slot:      slot.Label(),
		})
	}

	s.log.Info("Availability computed",
		zap.String("facility_id", facilityID),
		zap.String("date", date),
		zap.Int("free", len(freeSlots)),
		zap.Int("booked", len(bookedSlots)),
	)

	return &response.AvailabilityResponse{
		FacilityID:  facilityID,
		Date:        date,
		FreeSlots:   freeSlots,
		BookedSlots: bookedSlots,
	}, nil
}
