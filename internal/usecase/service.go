package usecase

import (
	"facility-booking/internal/data/repository"
	"facility-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Booking      BookingService
	Availability AvailabilityService
}

func NewService(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *Service {
	return &Service{
		Booking:      NewBookingService(repo, logger),
		Availability: NewAvailabilityService(repo, logger),
	}
}
