package ports

import (
	"context"

	"github.com/ddubrovin/lunchboard/internal/domain"
)

type EventNotifier interface {
	NotifyEventCreated(ctx context.Context, event *domain.Event)
	NotifyDeadlineExpired(ctx context.Context, event *domain.Event, winners []domain.VotingOption)
}
