package usecase

import (
	"context"
	"testing"
	"time"

	"facility-booking/internal/data/entity"
	"facility-booking/internal/data/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAvailabilityFixture() (*availabilityService, *memFacilityRepo, *memReservationRepo) {
	facilities := newMemFacilityRepo()
	reservations := newMemReservationRepo(facilities)
	svc := &availabilityService{
		repo: &repository.Repository{Facility: facilities, Reservation: reservations},
		log:  zap.NewNop(),
	}
	return svc, facilities, reservations
}

func addReservation(reservations *memReservationRepo, facilityID uuid.UUID, date, start, end string) {
	day, _ := time.Parse("2006-01-02", date)
	reservations.add(&entity.Reservation{
		Base:       entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Reference:  "RSV-TEST",
		FacilityID: facilityID,
		RenterID:   uuid.New(),
		Date:       day,
		StartTime:  start,
		EndTime:    end,
		Status:     entity.ReservationStatusConfirmed,
	})
}

func TestGetAvailabilityEmptyDay(t *testing.T) {
	svc, facilities, _ := newAvailabilityFixture()
	facility := addFacility(facilities, "6 AM", "10 PM", 40)

	resp, err := svc.GetAvailability(context.Background(), facility.ID.String(), "2026-09-15")
	require.NoError(t, err)

	assert.Len(t, resp.FreeSlots, 16)
	assert.Empty(t, resp.BookedSlots)
	assert.Equal(t, "6 AM", resp.FreeSlots[0].StartTime)
	assert.Equal(t, "9 PM - 10 PM", resp.FreeSlots[15].Slot)
}

func TestGetAvailabilityPartition(t *testing.T) {
	svc, facilities, reservations := newAvailabilityFixture()
	facility := addFacility(facilities, "6 AM", "10 PM", 40)
	addReservation(reservations, facility.ID, "2026-09-15", "2 PM", "3 PM")
	addReservation(reservations, facility.ID, "2026-09-15", "5 PM", "7 PM")

	resp, err := svc.GetAvailability(context.Background(), facility.ID.String(), "2026-09-15")
	require.NoError(t, err)

	// 16 candidate slots, three of them covered by the two bookings.
	assert.Len(t, resp.FreeSlots, 13)
	assert.Len(t, resp.BookedSlots, 2)

	free := make(map[string]bool)
	for _, slot := range resp.FreeSlots {
		free[slot.StartTime] = true
	}
	assert.False(t, free["2 PM"])
	assert.False(t, free["5 PM"])
	assert.False(t, free["6 PM"])
	assert.True(t, free["3 PM"])
	assert.True(t, free["7 PM"])

	// A different day is unaffected.
	other, err := svc.GetAvailability(context.Background(), facility.ID.String(), "2026-09-16")
	require.NoError(t, err)
	assert.Len(t, other.FreeSlots, 16)
}

func TestGetAvailabilityOvernightWindow(t *testing.T) {
	svc, facilities, reservations := newAvailabilityFixture()
	facility := addFacility(facilities, "9 PM", "3 AM", 40)

	resp, err := svc.GetAvailability(context.Background(), facility.ID.String(), "2026-09-15")
	require.NoError(t, err)

	require.Len(t, resp.FreeSlots, 6)
	assert.Equal(t, "9 PM - 10 PM", resp.FreeSlots[0].Slot)
	assert.Equal(t, "11 PM - 12 AM", resp.FreeSlots[2].Slot)
	assert.Equal(t, "12 AM - 1 AM", resp.FreeSlots[3].Slot)
	assert.Equal(t, "2 AM - 3 AM", resp.FreeSlots[5].Slot)

	// A booking past midnight blocks the post-midnight slot.
	addReservation(reservations, facility.ID, "2026-09-15", "12 AM", "1 AM")
	resp, err = svc.GetAvailability(context.Background(), facility.ID.String(), "2026-09-15")
	require.NoError(t, err)

	assert.Len(t, resp.FreeSlots, 5)
	for _, slot := range resp.FreeSlots {
		assert.NotEqual(t, "12 AM - 1 AM", slot.Slot)
	}
}

func TestGetAvailabilityIgnoresCancelled(t *testing.T) {
	svc, facilities, reservations := newAvailabilityFixture()
	facility := addFacility(facilities, "6 AM", "10 PM", 40)

	day, _ := time.Parse("2006-01-02", "2026-09-15")
	reservations.add(&entity.Reservation{
		Base:       entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Reference:  "RSV-TEST",
		FacilityID: facility.ID,
		RenterID:   uuid.New(),
		Date:       day,
		StartTime:  "2 PM",
		EndTime:    "3 PM",
		Status:     entity.ReservationStatusCancelled,
	})

	resp, err := svc.GetAvailability(context.Background(), facility.ID.String(), "2026-09-15")
	require.NoError(t, err)
	assert.Len(t, resp.FreeSlots, 16)
	assert.Empty(t, resp.BookedSlots)
}

func TestGetAvailabilityErrors(t *testing.T) {
	svc, facilities, _ := newAvailabilityFixture()
	facility := addFacility(facilities, "6 AM", "10 PM", 40)

	_, err := svc.GetAvailability(context.Background(), "not-a-uuid", "2026-09-15")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.GetAvailability(context.Background(), facility.ID.String(), "15/09/2026")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.GetAvailability(context.Background(), uuid.New().String(), "2026-09-15")
	assert.ErrorIs(t, err, ErrNotFound)
}
