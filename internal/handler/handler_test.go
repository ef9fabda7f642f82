package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/logger"

	"github.com/ddubrovin/lunchboard/internal/domain"
	"github.com/ddubrovin/lunchboard/internal/handler/dto"
	"github.com/ddubrovin/lunchboard/internal/repository/memory"
	"github.com/ddubrovin/lunchboard/internal/router"
	"github.com/ddubrovin/lunchboard/internal/service"
	"github.com/ddubrovin/lunchboard/internal/service/ports/mocks"
)

const (
	adminID   = "11111111-1111-1111-1111-111111111111"
	creatorID = "22222222-2222-2222-2222-222222222222"
	otherID   = "33333333-3333-3333-3333-333333333333"
)

// setupRouter wires the real services over in-memory storage: the handler
// tests double as end-to-end tests of the core.
func setupRouter(t *testing.T) http.Handler {
	t.Helper()

	log, err := logger.InitLogger("slog", "test", "test", logger.WithLevel(logger.ErrorLevel))
	require.NoError(t, err)

	notifier := mocks.NewMockEventNotifier(t)
	notifier.EXPECT().NotifyEventCreated(mock.Anything, mock.Anything).Maybe()
	notifier.EXPECT().NotifyDeadlineExpired(mock.Anything, mock.Anything, mock.Anything).Maybe()

	eventRepo := memory.NewEventRepo()
	userRepo := memory.NewUserRepo()
	userRepo.Seed([]*domain.User{
		{ID: adminID, Name: "Admin", Role: domain.RoleAdmin},
		{ID: creatorID, Name: "Creator", Role: domain.RoleUser},
		{ID: otherID, Name: "Other", Role: domain.RoleUser},
	})

	h := NewHandler(
		service.NewEventService(eventRepo, userRepo, notifier, log),
		service.NewOrderService(eventRepo, userRepo),
		service.NewVotingService(eventRepo, userRepo, notifier),
		service.NewUserService(userRepo),
	)

	return router.InitRouter("test", h)
}

func doJSON(t *testing.T, r http.Handler, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createOrderEvent(t *testing.T, r http.Handler) dto.EventResponse {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/events", creatorID, dto.CreateEventRequest{
		Type:        "order",
		CompanyName: "Pizza Place",
		Link:        "https://pizza.example/menu",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp dto.EventResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func createVotingEvent(t *testing.T, r http.Handler, options ...string) dto.EventResponse {
	t.Helper()

	req := dto.CreateEventRequest{
		Type:        "voting",
		CompanyName: "Friday lunch vote",
	}
	for _, name := range options {
		req.Options = append(req.Options, dto.OptionRequest{Name: name})
	}

	w := doJSON(t, r, http.MethodPost, "/api/events", creatorID, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp dto.EventResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandler_CreateEvent_Success(t *testing.T) {
	r := setupRouter(t)

	resp := createOrderEvent(t, r)

	assert.Equal(t, "Pizza Place", resp.CompanyName)
	assert.Equal(t, "order", resp.Type)
	assert.True(t, resp.IsOpen)
	assert.True(t, resp.AcceptingInput)
	require.NotNil(t, resp.Total)
	assert.Zero(t, *resp.Total)
}

func TestHandler_CreateEvent_MissingUserHeader(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/events", "", dto.CreateEventRequest{
		Type:        "order",
		CompanyName: "Pizza Place",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandler_CreateEvent_BadType(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/events", creatorID, map[string]any{
		"type":         "party",
		"company_name": "Pizza Place",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_CreateEvent_PastDeadlineStillCreated(t *testing.T) {
	r := setupRouter(t)

	past := time.Now().Add(-time.Hour).Format(time.RFC3339)
	w := doJSON(t, r, http.MethodPost, "/api/events", creatorID, dto.CreateEventRequest{
		Type:        "order",
		CompanyName: "Pizza Place",
		Deadline:    past,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp dto.EventResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	// Open in storage, but the past deadline already blocks input.
	assert.True(t, resp.IsOpen)
	assert.False(t, resp.AcceptingInput)
}

func TestHandler_GetEvent_NotFound(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/events/55555555-5555-5555-5555-555555555555", "", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_GetEvent_InvalidID(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/events/not-a-uuid", "", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_RemoveEvent_PermissionDenied(t *testing.T) {
	r := setupRouter(t)
	event := createOrderEvent(t, r)

	w := doJSON(t, r, http.MethodDelete, "/api/events/"+event.ID, otherID, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/events/"+event.ID, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_GuestOrderFlow(t *testing.T) {
	r := setupRouter(t)
	event := createOrderEvent(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/events/"+event.ID+"/orders", otherID, dto.AddOrderItemRequest{
		Name:      "Margherita",
		Price:     25.50,
		GuestName: "Anna",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var item dto.OrderItemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.Nil(t, item.UserID)
	assert.Equal(t, "Anna", item.GuestName)

	w = doJSON(t, r, http.MethodGet, "/api/events/"+event.ID+"/total", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var total dto.TotalResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &total))
	assert.InDelta(t, 25.50, total.Total, 1e-9)
}

func TestHandler_MarkAllPaid(t *testing.T) {
	r := setupRouter(t)
	event := createOrderEvent(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/events/"+event.ID+"/orders", otherID, dto.AddOrderItemRequest{
		Name:  "Margherita",
		Price: 20,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/events/"+event.ID+"/orders/all/paid", creatorID, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/events/"+event.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.EventResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Orders, 1)
	assert.True(t, resp.Orders[0].IsPaid)
}

func TestHandler_VotingFlow(t *testing.T) {
	r := setupRouter(t)
	event := createVotingEvent(t, r, "Sushi", "Burgers")
	sushiID := event.VotingOptions[0].ID
	burgersID := event.VotingOptions[1].ID

	for _, vote := range []struct{ user, option string }{
		{creatorID, sushiID},
		{otherID, sushiID},
		{creatorID, burgersID},
	} {
		w := doJSON(t, r, http.MethodPost,
			fmt.Sprintf("/api/events/%s/options/%s/vote", event.ID, vote.option), vote.user, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w := doJSON(t, r, http.MethodGet, "/api/events/"+event.ID+"/tally", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var tally dto.TallyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tally))
	assert.Equal(t, 2, tally.Options[0].Votes)
	assert.Equal(t, 1, tally.Options[1].Votes)
	assert.Equal(t, 3, tally.TotalVotes)

	// Winners are refused while voting is open.
	w = doJSON(t, r, http.MethodGet, "/api/events/"+event.ID+"/winners", "", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Close, then read the winner and convert it into an order event.
	w = doJSON(t, r, http.MethodPost, "/api/events/"+event.ID+"/toggle", creatorID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/events/"+event.ID+"/winners", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var winners []dto.VotingOptionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &winners))
	require.Len(t, winners, 1)
	assert.Equal(t, "Sushi", winners[0].Name)

	w = doJSON(t, r, http.MethodPost,
		fmt.Sprintf("/api/events/%s/options/%s/order", event.ID, sushiID), otherID, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var order dto.EventResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.Equal(t, "order", order.Type)
	assert.Equal(t, "Sushi", order.CompanyName)
}

func TestHandler_ToggleVote_ClosedEvent(t *testing.T) {
	r := setupRouter(t)
	event := createVotingEvent(t, r, "Sushi")

	w := doJSON(t, r, http.MethodPost, "/api/events/"+event.ID+"/toggle", creatorID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost,
		fmt.Sprintf("/api/events/%s/options/%s/vote", event.ID, event.VotingOptions[0].ID), otherID, nil)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandler_Users(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/users", "", dto.CreateUserRequest{Name: "New Intern"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var user dto.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, "New Intern", user.Name)
	assert.Equal(t, "user", user.Role)

	w = doJSON(t, r, http.MethodGet, "/api/users", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var users []dto.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	assert.Len(t, users, 4)
}
