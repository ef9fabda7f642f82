package scheduler

import (
	"context"
	"time"

	"github.com/ddubrovin/lunchboard/internal/domain"
	"github.com/wb-go/wbf/logger"
)

type deadlineExpirer interface {
	ExpireDeadlines(ctx context.Context) ([]*domain.Event, error)
}

// Scheduler polls wall-clock time against event deadlines at a fixed interval
// and announces freshly expired events. It never closes events itself.
type Scheduler struct {
	eventService deadlineExpirer
	interval     time.Duration
	logger       logger.Logger
}

func New(
	eventService deadlineExpirer,
	interval time.Duration,
	logger logger.Logger,
) *Scheduler {
	return &Scheduler{
		eventService: eventService,
		interval:     interval,
		logger:       logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("scheduler started",
		logger.Duration("interval", s.interval),
	)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	expired, err := s.eventService.ExpireDeadlines(ctx)
	if err != nil {
		s.logger.Error("failed to expire deadlines",
			logger.String("error", err.Error()),
		)
		return
	}

	for _, e := range expired {
		s.logger.Info("event deadline expired",
			logger.String("event_id", e.ID),
			logger.String("type", string(e.Type)),
			logger.String("company_name", e.CompanyName),
		)
	}
}
