package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/ddubrovin/lunchboard/internal/domain"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

func NewUserRepo() *UserRepository {
	return &UserRepository{
		users: make(map[string]*domain.User),
	}
}

// Seed loads the initial user directory. Intended for startup wiring only.
func (r *UserRepository) Seed(users []*domain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range users {
		c := *u
		r.users[u.ID] = &c
	}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.Email != "" {
		for _, u := range r.users {
			if strings.EqualFold(u.Email, user.Email) {
				return domain.ErrEmailTaken
			}
		}
	}

	c := *user
	r.users[user.ID] = &c
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	c := *u
	return &c, nil
}

func (r *UserRepository) List(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		c := *u
		res = append(res, &c)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })

	return res, nil
}
