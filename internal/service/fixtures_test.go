package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/logger"

	"github.com/ddubrovin/lunchboard/internal/domain"
	"github.com/ddubrovin/lunchboard/internal/repository/memory"
	"github.com/ddubrovin/lunchboard/internal/service/ports/mocks"
)

const (
	adminID   = "11111111-1111-1111-1111-111111111111"
	creatorID = "22222222-2222-2222-2222-222222222222"
	otherID   = "33333333-3333-3333-3333-333333333333"
	guestID   = "44444444-4444-4444-4444-444444444444"
)

func newTestLogger(t *testing.T) logger.Logger {
	t.Helper()
	log, err := logger.InitLogger("slog", "test", "test", logger.WithLevel(logger.ErrorLevel))
	if err != nil {
		t.Fatalf("init test logger: %v", err)
	}
	return log
}

func newTestNotifier(t *testing.T) *mocks.MockEventNotifier {
	t.Helper()
	n := mocks.NewMockEventNotifier(t)
	n.EXPECT().NotifyEventCreated(mock.Anything, mock.Anything).Maybe()
	n.EXPECT().NotifyDeadlineExpired(mock.Anything, mock.Anything, mock.Anything).Maybe()
	return n
}

func newUserRepo() *memory.UserRepository {
	repo := memory.NewUserRepo()
	now := time.Now().UTC()
	repo.Seed([]*domain.User{
		{ID: adminID, Name: "Admin", Role: domain.RoleAdmin, CreatedAt: now},
		{ID: creatorID, Name: "Creator", Role: domain.RoleUser, CreatedAt: now},
		{ID: otherID, Name: "Other", Role: domain.RoleUser, CreatedAt: now},
		{ID: guestID, Name: "Fourth", Role: domain.RoleUser, CreatedAt: now},
	})
	return repo
}

// newServices builds the full service stack over fresh in-memory storage.
func newServices(t *testing.T) (*EventService, *OrderService, *VotingService, *memory.EventRepository) {
	t.Helper()
	eventRepo := memory.NewEventRepo()
	userRepo := newUserRepo()
	notifier := newTestNotifier(t)
	log := newTestLogger(t)

	return NewEventService(eventRepo, userRepo, notifier, log),
		NewOrderService(eventRepo, userRepo),
		NewVotingService(eventRepo, userRepo, notifier),
		eventRepo
}

func mustCreateOrderEvent(t *testing.T, svc *EventService) *domain.Event {
	t.Helper()
	event, err := svc.CreateEvent(context.Background(), creatorID, domain.CreateEventInput{
		Type:        domain.EventTypeOrder,
		CompanyName: "Pizza Place",
		Link:        "https://pizza.example/menu",
	})
	require.NoError(t, err)
	return event
}

func mustCreateVotingEvent(t *testing.T, svc *EventService, optionNames ...string) *domain.Event {
	t.Helper()
	options := make([]domain.AddOptionInput, 0, len(optionNames))
	for _, name := range optionNames {
		options = append(options, domain.AddOptionInput{Name: name})
	}
	event, err := svc.CreateEvent(context.Background(), creatorID, domain.CreateEventInput{
		Type:        domain.EventTypeVoting,
		CompanyName: "Friday lunch vote",
		Options:     options,
	})
	require.NoError(t, err)
	return event
}
