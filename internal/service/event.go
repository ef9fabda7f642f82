package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ddubrovin/lunchboard/internal/domain"
	"github.com/ddubrovin/lunchboard/internal/service/ports"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/logger"
)

const minCompanyNameLen = 2

type EventService struct {
	repo     ports.EventRepo
	userRepo ports.UserRepo
	notifier ports.EventNotifier
	logger   logger.Logger
	now      func() time.Time
}

func NewEventService(
	repo ports.EventRepo,
	userRepo ports.UserRepo,
	notifier ports.EventNotifier,
	logger logger.Logger,
) *EventService {
	return &EventService{
		repo:     repo,
		userRepo: userRepo,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *EventService) CreateEvent(ctx context.Context, actorID string, input domain.CreateEventInput) (*domain.Event, error) {
	if err := ensureUserExists(ctx, s.userRepo, actorID); err != nil {
		return nil, err
	}

	if input.Type != domain.EventTypeOrder && input.Type != domain.EventTypeVoting {
		return nil, fmt.Errorf("%w: type must be %q or %q", domain.ErrValidation, domain.EventTypeOrder, domain.EventTypeVoting)
	}
	if len(strings.TrimSpace(input.CompanyName)) < minCompanyNameLen {
		return nil, fmt.Errorf("%w: company_name must be at least %d characters", domain.ErrValidation, minCompanyNameLen)
	}
	if err := validateLink(input.Link); err != nil {
		return nil, err
	}
	if input.Type == domain.EventTypeVoting {
		if len(input.Options) == 0 {
			return nil, fmt.Errorf("%w: a voting event needs at least one option", domain.ErrValidation)
		}
		for _, opt := range input.Options {
			if strings.TrimSpace(opt.Name) == "" {
				return nil, fmt.Errorf("%w: option name must not be empty", domain.ErrValidation)
			}
		}
	}

	now := s.now().UTC()
	event := &domain.Event{
		ID:                 uuid.New().String(),
		Type:               input.Type,
		CompanyName:        input.CompanyName,
		Description:        input.Description,
		Link:               input.Link,
		ImageURL:           input.ImageURL,
		CreatorPhoneNumber: input.CreatorPhoneNumber,
		CreatorID:          actorID,
		Deadline:           input.Deadline,
		IsOpen:             true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if input.Type == domain.EventTypeVoting {
		event.VotingOptions = make([]domain.VotingOption, 0, len(input.Options))
		for _, opt := range input.Options {
			event.VotingOptions = append(event.VotingOptions, domain.VotingOption{
				ID:        uuid.New().String(),
				Name:      opt.Name,
				Link:      opt.Link,
				ImageURL:  opt.ImageURL,
				AddedByID: actorID,
				CreatedAt: now,
			})
		}
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.logger.Info("event created",
		logger.String("event_id", event.ID),
		logger.String("type", string(event.Type)),
		logger.String("creator_id", actorID),
	)

	go s.notifier.NotifyEventCreated(context.WithoutCancel(ctx), event)

	return event, nil
}

func (s *EventService) EditEvent(ctx context.Context, actorID, id string, patch domain.EventPatch) (*domain.Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}

	if err = ensureCanManage(ctx, s.userRepo, actorID, event); err != nil {
		return nil, err
	}

	if patch.CompanyName != nil {
		if len(strings.TrimSpace(*patch.CompanyName)) < minCompanyNameLen {
			return nil, fmt.Errorf("%w: company_name must be at least %d characters", domain.ErrValidation, minCompanyNameLen)
		}
		event.CompanyName = *patch.CompanyName
	}
	if patch.Description != nil {
		event.Description = *patch.Description
	}
	if patch.Link != nil {
		if err = validateLink(*patch.Link); err != nil {
			return nil, err
		}
		event.Link = *patch.Link
	}
	if patch.ImageURL != nil {
		event.ImageURL = *patch.ImageURL
	}
	if patch.CreatorPhoneNumber != nil {
		event.CreatorPhoneNumber = *patch.CreatorPhoneNumber
	}
	if patch.ClearDeadline {
		event.Deadline = nil
		event.DeadlineNotified = false
	} else if patch.Deadline != nil {
		event.Deadline = patch.Deadline
		event.DeadlineNotified = false
	}
	event.UpdatedAt = s.now().UTC()

	if err = s.repo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}

	return event, nil
}

// ToggleOpenState flips IsOpen. Reopening does not clear or extend a past
// deadline, so a reopened event with an expired deadline still rejects input.
func (s *EventService) ToggleOpenState(ctx context.Context, actorID, id string) (*domain.Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}

	if err = ensureCanManage(ctx, s.userRepo, actorID, event); err != nil {
		return nil, err
	}

	event.IsOpen = !event.IsOpen
	event.UpdatedAt = s.now().UTC()

	if err = s.repo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}

	s.logger.Info("event open state toggled",
		logger.String("event_id", event.ID),
		logger.Any("is_open", event.IsOpen),
	)

	return event, nil
}

func (s *EventService) RemoveEvent(ctx context.Context, actorID, id string) error {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get event: %w", err)
	}

	if err = ensureCanManage(ctx, s.userRepo, actorID, event); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}

	s.logger.Info("event removed",
		logger.String("event_id", id),
		logger.String("actor_id", actorID),
	)

	return nil
}

func (s *EventService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *EventService) List(ctx context.Context) ([]*domain.Event, error) {
	return s.repo.List(ctx)
}

// ExpireDeadlines finds open events whose deadline has passed and announces
// them once. IsOpen is never flipped here: liveness after a deadline is always
// derived by AcceptsInput, the flag only records that the announcement went out.
func (s *EventService) ExpireDeadlines(ctx context.Context) ([]*domain.Event, error) {
	expired, err := s.repo.ListDeadlineExpired(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("list expired: %w", err)
	}

	var announced []*domain.Event
	for _, event := range expired {
		event.DeadlineNotified = true
		if err = s.repo.Update(ctx, event); err != nil {
			s.logger.Error("failed to mark deadline notified",
				logger.String("event_id", event.ID),
				logger.String("error", err.Error()),
			)
			continue
		}

		var winners []domain.VotingOption
		if event.Type == domain.EventTypeVoting {
			winners = event.Winners()
		}
		go s.notifier.NotifyDeadlineExpired(context.WithoutCancel(ctx), event, winners)

		announced = append(announced, event)
	}

	return announced, nil
}

func validateLink(link string) error {
	if link == "" {
		return nil
	}
	u, err := url.ParseRequestURI(link)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: link must be a well-formed URL", domain.ErrValidation)
	}
	return nil
}
