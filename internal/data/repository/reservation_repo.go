package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"facility-booking/internal/data/entity"
	"facility-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// ErrDuplicateSlot reports that the storage-level uniqueness constraint on
// (facility, date, start_time) rejected an insert. Two concurrent creates
// can both pass the in-application conflict check; this is the backstop.
var ErrDuplicateSlot = errors.New("reservation slot already taken")

type ReservationRepository interface {
	Create(ctx context.Context, reservation *entity.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error)
	FindActiveByFacilityDate(ctx context.Context, facilityID uuid.UUID, date time.Time) ([]*entity.Reservation, error)
	FindByRenterID(ctx context.Context, renterID uuid.UUID, limit, offset int) ([]*entity.Reservation, error)
	CountByRenterID(ctx context.Context, renterID uuid.UUID) (int64, error)
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*entity.Reservation, error)
	CountByOwnerID(ctx context.Context, ownerID uuid.UUID) (int64, error)
	FindByFacilityID(ctx context.Context, facilityID uuid.UUID, limit, offset int) ([]*entity.Reservation, error)
	CountByFacilityID(ctx context.Context, facilityID uuid.UUID) (int64, error)

	// Delete is a no-op when the row is already gone, so cancellation and
	// expiry sweeping can race safely.
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
	DeleteCancelled(ctx context.Context) (int64, error)
}

type reservationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservationRepository(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

const reservationColumns = `id, reference, facility_id, renter_id, date, start_time, end_time,
	duration_hours, total_amount, status, contact_number, notes, expires_at, created_at, updated_at`

func (r *reservationRepository) Create(ctx context.Context, reservation *entity.Reservation) error {
	query := `
		INSERT INTO reservations (id, reference, facility_id, renter_id, date, start_time, end_time,
			duration_hours, total_amount, status, contact_number, notes, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.Exec(ctx, query,
		reservation.ID,
		reservation.Reference,
		reservation.FacilityID,
		reservation.RenterID,
		reservation.Date,
		reservation.StartTime,
		reservation.EndTime,
		reservation.DurationHours,
		reservation.TotalAmount,
		reservation.Status,
		reservation.ContactNumber,
		reservation.Notes,
		reservation.ExpiresAt,
		reservation.CreatedAt,
		reservation.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			r.log.Warn("Duplicate reservation slot rejected by constraint",
				zap.String("facility_id", reservation.FacilityID.String()),
				zap.String("start_time", reservation.StartTime),
			)
			return fmt.Errorf("create reservation %s: %w", reservation.Reference, ErrDuplicateSlot)
		}

		r.log.Error("Failed to create reservation",
			zap.Error(err),
			zap.String("reference", reservation.Reference),
			zap.String("renter_id", reservation.RenterID.String()),
		)
		return fmt.Errorf("create reservation %s: %w", reservation.Reference, err)
	}

	return nil
}

func (r *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	reservation, err := r.scanRow(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation by ID",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return nil, fmt.Errorf("find reservation by ID %s: %w", id.String(), err)
	}

	return reservation, nil
}

func (r *reservationRepository) FindActiveByFacilityDate(ctx context.Context, facilityID uuid.UUID, date time.Time) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE facility_id = $1 AND date = $2 AND status <> 'cancelled'
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query, facilityID, date)
	if err != nil {
		r.log.Error("Failed to find reservations by facility and date",
			zap.Error(err),
			zap.String("facility_id", facilityID.String()),
			zap.Time("date", date),
		)
		return nil, fmt.Errorf("find reservations for facility %s: %w", facilityID.String(), err)
	}
	defer rows.Close()

	return r.scanRows(rows)
}

func (r *reservationRepository) FindByRenterID(ctx context.Context, renterID uuid.UUID, limit, offset int) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE renter_id = $1 AND status <> 'cancelled'
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, renterID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reservations by renter ID",
			zap.Error(err),
			zap.String("renter_id", renterID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find reservations by renter ID %s: %w", renterID.String(), err)
	}
	defer rows.Close()

	return r.scanRows(rows)
}

func (r *reservationRepository) CountByRenterID(ctx context.Context, renterID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM reservations WHERE renter_id = $1 AND status <> 'cancelled'`

	var count int64
	if err := r.db.QueryRow(ctx, query, renterID).Scan(&count); err != nil {
		r.log.Error("Failed to count reservations by renter ID",
			zap.Error(err),
			zap.String("renter_id", renterID.String()),
		)
		return 0, fmt.Errorf("count reservations by renter ID %s: %w", renterID.String(), err)
	}

	return count, nil
}

func (r *reservationRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*entity.Reservation, error) {
	query := `
		SELECT r.id, r.reference, r.facility_id, r.renter_id, r.date, r.start_time, r.end_time,
			r.duration_hours, r.total_amount, r.status, r.contact_number, r.notes, r.expires_at, r.created_at, r.updated_at
		FROM reservations r
		JOIN facilities f ON f.id = r.facility_id
		WHERE f.owner_id = $1 AND r.status <> 'cancelled'
		ORDER BY r.date, r.start_time
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reservations by owner ID",
			zap.Error(err),
			zap.String("owner_id", ownerID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find reservations by owner ID %s: %w", ownerID.String(), err)
	}
	defer rows.Close()

	return r.scanRows(rows)
}

func (r *reservationRepository) CountByOwnerID(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM reservations r
		JOIN facilities f ON f.id = r.facility_id
		WHERE f.owner_id = $1 AND r.status <> 'cancelled'
	`

	var count int64
	if err := r.db.QueryRow(ctx, query, ownerID).Scan(&count); err != nil {
		r.log.Error("Failed to count reservations by owner ID",
			zap.Error(err),
			zap.String("owner_id", ownerID.String()),
		)
		return 0, fmt.Errorf("count reservations by owner ID %s: %w", ownerID.String(), err)
	}

	return count, nil
}

func (r *reservationRepository) FindByFacilityID(ctx context.Context, facilityID uuid.UUID, limit, offset int) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE facility_id = $1 AND status <> 'cancelled'
		ORDER BY date, start_time
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, facilityID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reservations by facility ID",
			zap.Error(err),
			zap.String("facility_id", facilityID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find reservations by facility ID %s: %w", facilityID.String(), err)
	}
	defer rows.Close()

	return r.scanRows(rows)
}

func (r *reservationRepository) CountByFacilityID(ctx context.Context, facilityID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM reservations WHERE facility_id = $1 AND status <> 'cancelled'`

	var count int64
	if err := r.db.QueryRow(ctx, query, facilityID).Scan(&count); err != nil {
		r.log.Error("Failed to count reservations by facility ID",
			zap.Error(err),
			zap.String("facility_id", facilityID.String()),
		)
		return 0, fmt.Errorf("count reservations by facility ID %s: %w", facilityID.String(), err)
	}

	return count, nil
}

func (r *reservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM reservations WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete reservation",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return fmt.Errorf("delete reservation %s: %w", id.String(), err)
	}

	// Zero rows means the sweeper or a concurrent cancel got there first.
	if result.RowsAffected() > 0 {
		r.log.Info("Reservation deleted", zap.String("reservation_id", id.String()))
	}
	return nil
}

func (r *reservationRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM reservations WHERE expires_at < $1 AND status IN ('confirmed', 'completed')`

	result, err := r.db.Exec(ctx, query, cutoff)
	if err != nil {
		r.log.Error("Failed to delete expired reservations",
			zap.Error(err),
			zap.Time("cutoff", cutoff),
		)
		return 0, fmt.Errorf("delete expired reservations: %w", err)
	}

	return result.RowsAffected(), nil
}

func (r *reservationRepository) DeleteCancelled(ctx context.Context) (int64, error) {
	query := `DELETE FROM reservations WHERE status = 'cancelled'`

	result, err := r.db.Exec(ctx, query)
	if err != nil {
		r.log.Error("Failed to delete cancelled reservations", zap.Error(err))
		return 0, fmt.Errorf("delete cancelled reservations: %w", err)
	}

	return result.RowsAffected(), nil
}

func (r *reservationRepository) scanRow(row pgx.Row) (*entity.Reservation, error) {
	var reservation entity.Reservation
	err := row.Scan(
		&reservation.ID,
		&reservation.Reference,
		&reservation.FacilityID,
		&reservation.RenterID,
		&reservation.Date,
		&reservation.StartTime,
		&reservation.EndTime,
		&reservation.DurationHours,
		&reservation.TotalAmount,
		&reservation.Status,
		&reservation.ContactNumber,
		&reservation.Notes,
		&reservation.ExpiresAt,
		&reservation.CreatedAt,
		&reservation.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *reservationRepository) scanRows(rows pgx.Rows) ([]*entity.Reservation, error) {
	var reservations []*entity.Reservation
	for rows.Next() {
		reservation, err := r.scanRow(rows)
		if err != nil {
			r.log.Error("Failed to scan reservation row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		reservations = append(reservations, reservation)
	}
	return reservations, nil
}
