package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ddubrovin/lunchboard/internal/domain"
	"github.com/ddubrovin/lunchboard/internal/service/ports"
	"github.com/google/uuid"
)

// MarkAllItems is the item ID the handler passes through for the one-way
// "mark everything paid" bulk action.
const MarkAllItems = "all"

type OrderService struct {
	repo     ports.EventRepo
	userRepo ports.UserRepo
	now      func() time.Time
}

func NewOrderService(repo ports.EventRepo, userRepo ports.UserRepo) *OrderService {
	return &OrderService{
		repo:     repo,
		userRepo: userRepo,
		now:      time.Now,
	}
}

func (s *OrderService) getOrderEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.Type != domain.EventTypeOrder {
		return nil, fmt.Errorf("%w: expected an order event", domain.ErrWrongEventType)
	}
	return event, nil
}

// AddItem appends a line item. Without a guest name the item is attributed to
// the acting user; with one it belongs to nobody's account and is stored with
// the guest name verbatim.
func (s *OrderService) AddItem(ctx context.Context, actorID, eventID string, input domain.AddOrderItemInput) (*domain.OrderItem, error) {
	event, err := s.getOrderEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.AcceptsInput(s.now()) {
		return nil, domain.ErrEventClosed
	}

	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: item name must not be empty", domain.ErrValidation)
	}
	if input.Price < 0 || math.IsNaN(input.Price) || math.IsInf(input.Price, 0) {
		return nil, fmt.Errorf("%w: price must be a non-negative number", domain.ErrValidation)
	}

	item := domain.OrderItem{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Details:   input.Details,
		Price:     input.Price,
		CreatedAt: s.now().UTC(),
	}
	if strings.TrimSpace(input.GuestName) == "" {
		if err = ensureUserExists(ctx, s.userRepo, actorID); err != nil {
			return nil, err
		}
		item.UserID = &actorID
	} else {
		item.GuestName = input.GuestName
	}

	event.Orders = append(event.Orders, item)
	event.UpdatedAt = s.now().UTC()

	if err = s.repo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}

	return &item, nil
}

// RemoveItem is allowed for the item's owner, the event creator or an admin,
// and deliberately ignores the open/deadline state so mistakes can be fixed
// after close.
func (s *OrderService) RemoveItem(ctx context.Context, actorID, eventID, itemID string) error {
	event, err := s.getOrderEvent(ctx, eventID)
	if err != nil {
		return err
	}

	item := event.FindOrderItem(itemID)
	if item == nil {
		return domain.ErrItemNotFound
	}

	if item.UserID == nil || *item.UserID != actorID {
		if err = ensureCanManage(ctx, s.userRepo, actorID, event); err != nil {
			return err
		}
	}

	items := event.Orders[:0]
	for _, it := range event.Orders {
		if it.ID != itemID {
			items = append(items, it)
		}
	}
	event.Orders = items
	event.UpdatedAt = s.now().UTC()

	if err = s.repo.Update(ctx, event); err != nil {
		return fmt.Errorf("update event: %w", err)
	}

	return nil
}

func (s *OrderService) TogglePaid(ctx context.Context, actorID, eventID, itemID string) (*domain.OrderItem, error) {
	event, err := s.getOrderEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if err = ensureCanManage(ctx, s.userRepo, actorID, event); err != nil {
		return nil, err
	}

	item := event.FindOrderItem(itemID)
	if item == nil {
		return nil, domain.ErrItemNotFound
	}

	item.IsPaid = !item.IsPaid
	event.UpdatedAt = s.now().UTC()

	if err = s.repo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}

	res := *item
	return &res, nil
}

// MarkAllPaid sets every item to paid. One-way: there is no bulk unmark.
func (s *OrderService) MarkAllPaid(ctx context.Context, actorID, eventID string) error {
	event, err := s.getOrderEvent(ctx, eventID)
	if err != nil {
		return err
	}

	if err = ensureCanManage(ctx, s.userRepo, actorID, event); err != nil {
		return err
	}

	for i := range event.Orders {
		event.Orders[i].IsPaid = true
	}
	event.UpdatedAt = s.now().UTC()

	if err = s.repo.Update(ctx, event); err != nil {
		return fmt.Errorf("update event: %w", err)
	}

	return nil
}

// Total recomputes the sum from a fresh read on every call.
func (s *OrderService) Total(ctx context.Context, eventID string) (float64, error) {
	event, err := s.getOrderEvent(ctx, eventID)
	if err != nil {
		return 0, err
	}
	return event.OrderTotal(), nil
}
