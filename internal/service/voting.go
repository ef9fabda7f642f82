package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ddubrovin/lunchboard/internal/domain"
	"github.com/ddubrovin/lunchboard/internal/service/ports"
	"github.com/google/uuid"
)

type VotingService struct {
	repo     ports.EventRepo
	userRepo ports.UserRepo
	notifier ports.EventNotifier
	now      func() time.Time
}

func NewVotingService(repo ports.EventRepo, userRepo ports.UserRepo, notifier ports.EventNotifier) *VotingService {
	return &VotingService{
		repo:     repo,
		userRepo: userRepo,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *VotingService) getVotingEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.Type != domain.EventTypeVoting {
		return nil, fmt.Errorf("%w: expected a voting event", domain.ErrWrongEventType)
	}
	return event, nil
}

// AddOption lets any user contribute a candidate while voting is open.
func (s *VotingService) AddOption(ctx context.Context, actorID, eventID string, input domain.AddOptionInput) (*domain.VotingOption, error) {
	event, err := s.getVotingEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.AcceptsInput(s.now()) {
		return nil, domain.ErrEventClosed
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: option name must not be empty", domain.ErrValidation)
	}
	if err = ensureUserExists(ctx, s.userRepo, actorID); err != nil {
		return nil, err
	}

	option := domain.VotingOption{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Link:      input.Link,
		ImageURL:  input.ImageURL,
		AddedByID: actorID,
		CreatedAt: s.now().UTC(),
	}
	event.VotingOptions = append(event.VotingOptions, option)
	event.UpdatedAt = s.now().UTC()

	if err = s.repo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}

	return &option, nil
}

// ToggleVote adds the user's vote to the option, or removes it when already
// present. Options are toggled independently: one user may hold votes on
// several options of the same event at once.
func (s *VotingService) ToggleVote(ctx context.Context, actorID, eventID, optionID string) (bool, error) {
	event, err := s.getVotingEvent(ctx, eventID)
	if err != nil {
		return false, err
	}
	if !event.AcceptsInput(s.now()) {
		return false, domain.ErrEventClosed
	}
	if err = ensureUserExists(ctx, s.userRepo, actorID); err != nil {
		return false, err
	}

	option := event.FindOption(optionID)
	if option == nil {
		return false, domain.ErrOptionNotFound
	}

	voted := false
	if option.HasVote(actorID) {
		votes := option.Votes[:0]
		for _, id := range option.Votes {
			if id != actorID {
				votes = append(votes, id)
			}
		}
		option.Votes = votes
	} else {
		option.Votes = append(option.Votes, actorID)
		voted = true
	}
	event.UpdatedAt = s.now().UTC()

	if err = s.repo.Update(ctx, event); err != nil {
		return false, fmt.Errorf("update event: %w", err)
	}

	return voted, nil
}

func (s *VotingService) Tally(ctx context.Context, eventID string) (domain.Tally, error) {
	event, err := s.getVotingEvent(ctx, eventID)
	if err != nil {
		return domain.Tally{}, err
	}
	return event.VoteTally(), nil
}

// Winners is only answered once the event stopped accepting input, either by
// an explicit close or a passed deadline.
func (s *VotingService) Winners(ctx context.Context, eventID string) ([]domain.VotingOption, error) {
	event, err := s.getVotingEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.AcceptsInput(s.now()) {
		return nil, domain.ErrEventStillOpen
	}
	return event.Winners(), nil
}

// CreateOrderFromVote spins up a fresh order event seeded from a winning
// option. Open to any user: the voting event stays untouched as history.
func (s *VotingService) CreateOrderFromVote(ctx context.Context, actorID, eventID, optionID string) (*domain.Event, error) {
	event, err := s.getVotingEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.AcceptsInput(s.now()) {
		return nil, domain.ErrEventStillOpen
	}
	if err = ensureUserExists(ctx, s.userRepo, actorID); err != nil {
		return nil, err
	}

	option := event.FindOption(optionID)
	if option == nil {
		return nil, domain.ErrOptionNotFound
	}

	isWinner := false
	for _, w := range event.Winners() {
		if w.ID == optionID {
			isWinner = true
			break
		}
	}
	if !isWinner {
		return nil, domain.ErrNotAWinner
	}

	now := s.now().UTC()
	order := &domain.Event{
		ID:          uuid.New().String(),
		Type:        domain.EventTypeOrder,
		CompanyName: option.Name,
		Link:        option.Link,
		ImageURL:    option.ImageURL,
		Description: fmt.Sprintf("Order for the winner of %q", event.CompanyName),
		CreatorID:   actorID,
		IsOpen:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err = s.repo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order event: %w", err)
	}

	go s.notifier.NotifyEventCreated(context.WithoutCancel(ctx), order)

	return order, nil
}
