package ports

import (
	"context"
	"time"

	"github.com/ddubrovin/lunchboard/internal/domain"
)

type EventRepo interface {
	Create(ctx context.Context, e *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context) ([]*domain.Event, error)
	Update(ctx context.Context, e *domain.Event) error
	Delete(ctx context.Context, id string) error
	ListDeadlineExpired(ctx context.Context, now time.Time) ([]*domain.Event, error)
}
