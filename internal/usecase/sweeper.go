package usecase

import (
	"context"
	"time"

	"facility-booking/internal/data/repository"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var (
	expiredReservationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "facility_booking_expired_reservations_total",
		Help: "Total number of reservations removed by the expiry sweeper",
	})

	sweepFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "facility_booking_sweep_failures_total",
		Help: "Total number of failed expiry sweeps",
	})
)

// Sweeper retires reservations whose end instant has passed. It stands in
// for storage-level TTL deletion: the delete-where-expired statement is
// idempotent, so sweeps may overlap each other and race with cancellations.
type Sweeper struct {
	repo     *repository.Repository
	log      *zap.Logger
	interval time.Duration
	now      func() time.Time
}

func NewSweeper(repo *repository.Repository, interval time.Duration, log *zap.Logger) *Sweeper {
	return &Sweeper{
		repo:     repo,
		log:      log.With(zap.String("service", "sweeper")),
		interval: interval,
		now:      time.Now,
	}
}

// Run blocks until ctx is cancelled, sweeping once immediately and then on
// every interval tick. Callers run it in a goroutine.
func (s *Sweeper) Run(ctx context.Context) {
	s.log.Info("Expiry sweeper started", zap.Duration("interval", s.interval))

	s.Sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("Expiry sweeper stopped")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep deletes every reservation whose expiry instant lies before now.
func (s *Sweeper) Sweep(ctx context.Context) int64 {
	deleted, err := s.repo.Reservation.DeleteExpired(ctx, s.now())
	if err != nil {
		sweepFailuresTotal.Inc()
		s.log.Error("Expiry sweep failed", zap.Error(err))
		return 0
	}

	if deleted > 0 {
		expiredReservationsTotal.Add(float64(deleted))
		s.log.Info("Expired reservations removed", zap.Int64("count", deleted))
	}
	return deleted
}
