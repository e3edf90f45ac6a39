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

func TestSweepRemovesExpired(t *testing.T) {
	facilities := newMemFacilityRepo()
	reservations := newMemReservationRepo(facilities)
	facility := addFacility(facilities, "6 AM", "10 PM", 40)

	now := time.Date(2026, time.September, 14, 12, 0, 0, 0, time.UTC)
	sweeper := &Sweeper{
		repo:     &repository.Repository{Facility: facilities, Reservation: reservations},
		log:      zap.NewNop(),
		interval: time.Minute,
		now:      func() time.Time { return now },
	}

	seed := func(start, end string, expiresAt time.Time, status entity.ReservationStatus) uuid.UUID {
		id := uuid.New()
		reservations.add(&entity.Reservation{
			Base:       entity.Base{ID: id, CreatedAt: now, UpdatedAt: now},
			Reference:  "RSV-TEST",
			FacilityID: facility.ID,
			RenterID:   uuid.New(),
			Date:       time.Date(2026, time.September, 13, 0, 0, 0, 0, time.UTC),
			StartTime:  start,
			EndTime:    end,
			ExpiresAt:  expiresAt,
			Status:     status,
		})
		return id
	}

	expired := seed("9 AM", "10 AM", now.Add(-2*time.Hour), entity.ReservationStatusConfirmed)
	completed := seed("10 AM", "11 AM", now.Add(-time.Hour), entity.ReservationStatusCompleted)
	live := seed("2 PM", "3 PM", now.Add(3*time.Hour), entity.ReservationStatusConfirmed)

	assert.Equal(t, int64(2), sweeper.Sweep(context.Background()))

	// Idempotent: a second sweep finds nothing.
	assert.Equal(t, int64(0), sweeper.Sweep(context.Background()))

	ctx := context.Background()
	for _, id := range []uuid.UUID{expired, completed} {
		gone, err := reservations.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, gone)
	}
	kept, err := reservations.FindByID(ctx, live)
	require.NoError(t, err)
	assert.NotNil(t, kept)
}

func TestSweeperRunStopsOnCancel(t *testing.T) {
	facilities := newMemFacilityRepo()
	reservations := newMemReservationRepo(facilities)
	sweeper := NewSweeper(&repository.Repository{Facility: facilities, Reservation: reservations},
		time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop after context cancellation")
	}
}
