package repository

import (
	"facility-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Facility    FacilityRepository
	Reservation ReservationRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Facility:    NewFacilityRepository(db, log),
		Reservation: NewReservationRepository(db, log),
	}
}
