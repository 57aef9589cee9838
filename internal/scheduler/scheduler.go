package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	log "github.com/sirupsen/logrus"

	"github.com/i474232898/bike-rental-aggregation/internal/rental"
)

// Scheduler periodically reloads the dataset.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *rental.Service
	interval  time.Duration
	timeout   time.Duration
}

// New creates a new Scheduler. Each reload is bounded by timeout.
func New(interval, timeout time.Duration, service *rental.Service) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		service:   service,
		interval:  interval,
		timeout:   timeout,
	}
}

// Start schedules the reload job and starts the underlying scheduler.
// The first run happens one interval after Start; the caller loads eagerly.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Info("scheduler: refresh disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).WaitForSchedule().Do(s.reload)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	log.WithField("interval", s.interval).Info("scheduler: dataset refresh started")
	return nil
}

func (s *Scheduler) reload() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.service.Reload(ctx); err != nil {
		log.WithError(err).Warn("scheduler: reload failed")
	}
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
