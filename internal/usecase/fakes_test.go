package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"facility-booking/internal/data/entity"
	"facility-booking/internal/data/repository"

	"github.com/google/uuid"
)

// In-memory repositories mirroring the SQL semantics, so the services can be
// exercised without a database.

type memFacilityRepo struct {
	mu         sync.RWMutex
	facilities map[uuid.UUID]*entity.Facility

	// findErr makes every lookup fail, simulating a storage fault.
	findErr error
}

func newMemFacilityRepo() *memFacilityRepo {
	return &memFacilityRepo{facilities: make(map[uuid.UUID]*entity.Facility)}
}

func (m *memFacilityRepo) add(f *entity.Facility) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.facilities[f.ID] = f
}

func (m *memFacilityRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Facility, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.findErr != nil {
		return nil, fmt.Errorf("find facility by ID %s: %w", id.String(), m.findErr)
	}
	return m.facilities[id], nil
}

type memReservationRepo struct {
	mu           sync.RWMutex
	reservations map[uuid.UUID]*entity.Reservation
	facilities   *memFacilityRepo

	// forceDuplicate makes the next Create fail with ErrDuplicateSlot,
	// simulating a concurrent insert winning the unique index.
	forceDuplicate bool
}

func newMemReservationRepo(facilities *memFacilityRepo) *memReservationRepo {
	return &memReservationRepo{
		reservations: make(map[uuid.UUID]*entity.Reservation),
		facilities:   facilities,
	}
}

func (m *memReservationRepo) add(r *entity.Reservation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reservations[r.ID] = r
}

func (m *memReservationRepo) Create(_ context.Context, reservation *entity.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.forceDuplicate {
		m.forceDuplicate = false
		return fmt.Errorf("create reservation: %w", repository.ErrDuplicateSlot)
	}

	// Partial unique index on (facility_id, date, start_time) for
	// non-cancelled rows.
	for _, existing := range m.reservations {
		if existing.Status != entity.ReservationStatusCancelled &&
			existing.FacilityID == reservation.FacilityID &&
			existing.Date.Equal(reservation.Date) &&
			existing.StartTime == reservation.StartTime {
			return fmt.Errorf("create reservation: %w", repository.ErrDuplicateSlot)
		}
	}

	m.reservations[reservation.ID] = reservation
	return nil
}

func (m *memReservationRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reservations[id], nil
}

func (m *memReservationRepo) FindActiveByFacilityDate(_ context.Context, facilityID uuid.UUID, date time.Time) ([]*entity.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*entity.Reservation
	for _, r := range m.reservations {
		if r.FacilityID == facilityID && r.Date.Equal(date) && r.Status != entity.ReservationStatusCancelled {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartTime < result[j].StartTime })
	return result, nil
}

func (m *memReservationRepo) FindByRenterID(_ context.Context, renterID uuid.UUID, limit, offset int) ([]*entity.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*entity.Reservation
	for _, r := range m.reservations {
		if r.RenterID == renterID && r.Status != entity.ReservationStatusCancelled {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return paginate(result, limit, offset), nil
}

func (m *memReservationRepo) CountByRenterID(_ context.Context, renterID uuid.UUID) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var count int64
	for _, r := range m.reservations {
		if r.RenterID == renterID && r.Status != entity.ReservationStatusCancelled {
			count++
		}
	}
	return count, nil
}

func (m *memReservationRepo) FindByOwnerID(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*entity.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*entity.Reservation
	for _, r := range m.reservations {
		if r.Status == entity.ReservationStatusCancelled {
			continue
		}
		facility, _ := m.facilities.FindByID(ctx, r.FacilityID)
		if facility != nil && facility.OwnerID == ownerID {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].StartTime < result[j].StartTime
	})
	return paginate(result, limit, offset), nil
}

func (m *memReservationRepo) CountByOwnerID(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	reservations, err := m.FindByOwnerID(ctx, ownerID, int(^uint(0)>>1), 0)
	if err != nil {
		return 0, err
	}
	return int64(len(reservations)), nil
}

func (m *memReservationRepo) FindByFacilityID(_ context.Context, facilityID uuid.UUID, limit, offset int) ([]*entity.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*entity.Reservation
	for _, r := range m.reservations {
		if r.FacilityID == facilityID && r.Status != entity.ReservationStatusCancelled {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].StartTime < result[j].StartTime
	})
	return paginate(result, limit, offset), nil
}

func (m *memReservationRepo) CountByFacilityID(_ context.Context, facilityID uuid.UUID) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var count int64
	for _, r := range m.reservations {
		if r.FacilityID == facilityID && r.Status != entity.ReservationStatusCancelled {
			count++
		}
	}
	return count, nil
}

func (m *memReservationRepo) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.reservations, id)
	return nil
}

func (m *memReservationRepo) DeleteExpired(_ context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var deleted int64
	for id, r := range m.reservations {
		if r.ExpiresAt.Before(cutoff) &&
			(r.Status == entity.ReservationStatusConfirmed || r.Status == entity.ReservationStatusCompleted) {
			delete(m.reservations, id)
			deleted++
		}
	}
	return deleted, nil
}

func (m *memReservationRepo) DeleteCancelled(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var deleted int64
	for id, r := range m.reservations {
		if r.Status == entity.ReservationStatusCancelled {
			delete(m.reservations, id)
			deleted++
		}
	}
	return deleted, nil
}

func paginate(reservations []*entity.Reservation, limit, offset int) []*entity.Reservation {
	if offset >= len(reservations) {
		return nil
	}
	end := offset + limit
	if end > len(reservations) {
		end = len(reservations)
	}
	return reservations[offset:end]
}
