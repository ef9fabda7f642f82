package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ddubrovin/lunchboard/internal/domain"
)

// EventRepository keeps all events in process memory. Every method takes the
// repo lock for its whole duration, so each mutation entry point is atomic
// with respect to concurrent callers.
type EventRepository struct {
	mu     sync.RWMutex
	events map[string]*domain.Event
}

func NewEventRepo() *EventRepository {
	return &EventRepository{
		events: make(map[string]*domain.Event),
	}
}

func (r *EventRepository) Create(_ context.Context, e *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events[e.ID] = e.Clone()
	return nil
}

func (r *EventRepository) GetByID(_ context.Context, id string) (*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	return e.Clone(), nil
}

func (r *EventRepository) List(_ context.Context) ([]*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]*domain.Event, 0, len(r.events))
	for _, e := range r.events {
		res = append(res, e.Clone())
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].ID < res[j].ID
		}
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})

	return res, nil
}

func (r *EventRepository) Update(_ context.Context, e *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.events[e.ID]; !ok {
		return domain.ErrEventNotFound
	}
	r.events[e.ID] = e.Clone()
	return nil
}

func (r *EventRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.events[id]; !ok {
		return domain.ErrEventNotFound
	}
	delete(r.events, id)
	return nil
}

// ListDeadlineExpired returns open events whose deadline has passed and whose
// expiry has not been announced yet.
func (r *EventRepository) ListDeadlineExpired(_ context.Context, now time.Time) ([]*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var res []*domain.Event
	for _, e := range r.events {
		if e.IsOpen && !e.DeadlineNotified && e.Deadline != nil && !now.Before(*e.Deadline) {
			res = append(res, e.Clone())
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })

	return res, nil
}
