package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ddubrovin/lunchboard/internal/domain"
	"github.com/ddubrovin/lunchboard/internal/handler/dto"
	"github.com/wb-go/wbf/ginext"
)

// userIDHeader carries the mock-login session: the caller just states who
// they are. Ownership and role checks live in the services.
const userIDHeader = "X-User-ID"

type EventSvc interface {
	CreateEvent(ctx context.Context, actorID string, input domain.CreateEventInput) (*domain.Event, error)
	EditEvent(ctx context.Context, actorID, id string, patch domain.EventPatch) (*domain.Event, error)
	ToggleOpenState(ctx context.Context, actorID, id string) (*domain.Event, error)
	RemoveEvent(ctx context.Context, actorID, id string) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context) ([]*domain.Event, error)
}

type OrderSvc interface {
	AddItem(ctx context.Context, actorID, eventID string, input domain.AddOrderItemInput) (*domain.OrderItem, error)
	RemoveItem(ctx context.Context, actorID, eventID, itemID string) error
	TogglePaid(ctx context.Context, actorID, eventID, itemID string) (*domain.OrderItem, error)
	MarkAllPaid(ctx context.Context, actorID, eventID string) error
	Total(ctx context.Context, eventID string) (float64, error)
}

type VotingSvc interface {
	AddOption(ctx context.Context, actorID, eventID string, input domain.AddOptionInput) (*domain.VotingOption, error)
	ToggleVote(ctx context.Context, actorID, eventID, optionID string) (bool, error)
	Tally(ctx context.Context, eventID string) (domain.Tally, error)
	Winners(ctx context.Context, eventID string) ([]domain.VotingOption, error)
	CreateOrderFromVote(ctx context.Context, actorID, eventID, optionID string) (*domain.Event, error)
}

type UserSvc interface {
	Create(ctx context.Context, input domain.CreateUserInput) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

type Handler struct {
	eventService  EventSvc
	orderService  OrderSvc
	votingService VotingSvc
	userService   UserSvc
}

func NewHandler(eventService EventSvc, orderService OrderSvc, votingService VotingSvc, userService UserSvc) *Handler {
	return &Handler{
		eventService:  eventService,
		orderService:  orderService,
		votingService: votingService,
		userService:   userService,
	}
}

// Events

func (h *Handler) CreateEvent(c *ginext.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	input := domain.CreateEventInput{
		Type:               domain.EventType(req.Type),
		CompanyName:        req.CompanyName,
		Description:        req.Description,
		Link:               req.Link,
		ImageURL:           req.ImageURL,
		CreatorPhoneNumber: req.CreatorPhoneNumber,
	}
	if req.Deadline != "" {
		deadline, err := time.Parse(time.RFC3339, req.Deadline)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "invalid deadline format, expected RFC3339",
			})
			return
		}
		input.Deadline = &deadline
	}
	for _, opt := range req.Options {
		input.Options = append(input.Options, domain.AddOptionInput{
			Name:     opt.Name,
			Link:     opt.Link,
			ImageURL: opt.ImageURL,
		})
	}

	event, err := h.eventService.CreateEvent(c.Request.Context(), actor, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEventResponse(event, time.Now()))
}

func (h *Handler) ListEvents(c *ginext.Context) {
	events, err := h.eventService.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	now := time.Now()
	resp := make([]dto.EventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, dto.ToEventResponse(e, now))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetEvent(c *ginext.Context) {
	id, ok := h.eventID(c)
	if !ok {
		return
	}

	event, err := h.eventService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEventResponse(event, time.Now()))
}

func (h *Handler) EditEvent(c *ginext.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.eventID(c)
	if !ok {
		return
	}

	var req dto.EditEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	patch := domain.EventPatch{
		CompanyName:        req.CompanyName,
		Description:        req.Description,
		Link:               req.Link,
		ImageURL:           req.ImageURL,
		CreatorPhoneNumber: req.CreatorPhoneNumber,
	}
	if req.Deadline != nil {
		if *req.Deadline == "" {
			patch.ClearDeadline = true
		} else {
			deadline, err := time.Parse(time.RFC3339, *req.Deadline)
			if err != nil {
				c.JSON(http.StatusBadRequest, dto.ErrorResponse{
					Error: "invalid deadline format, expected RFC3339",
				})
				return
			}
			patch.Deadline = &deadline
		}
	}

	event, err := h.eventService.EditEvent(c.Request.Context(), actor, id, patch)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEventResponse(event, time.Now()))
}

func (h *Handler) ToggleOpenState(c *ginext.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.eventID(c)
	if !ok {
		return
	}

	event, err := h.eventService.ToggleOpenState(c.Request.Context(), actor, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEventResponse(event, time.Now()))
}

func (h *Handler) RemoveEvent(c *ginext.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.eventID(c)
	if !ok {
		return
	}

	if err := h.eventService.RemoveEvent(c.Request.Context(), actor, id); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ginext.H{"status": "removed"})
}

// Orders

func (h *Handler) AddOrderItem(c *ginext.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.eventID(c)
	if !ok {
		return
	}

	var req dto.AddOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	item, err := h.orderService.AddItem(c.Request.Context(), actor, id, domain.AddOrderItemInput{
		Name:      req.Name,
		Details:   req.Details,
		Price:     req.Price,
		GuestName: req.GuestName,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToOrderItemResponse(item))
}

func (h *Handler) RemoveOrderItem(c *ginext.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.eventID(c)
	if !ok {
		return
	}

	if err := h.orderService.RemoveItem(c.Request.Context(), actor, id, c.Param("itemID")); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ginext.H{"status": "removed"})
}

func (h *Handler) TogglePaidStatus(c *ginext.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.eventID(c)
	if !ok {
		return
	}

	itemID := c.Param("itemID")
	if itemID == "all" {
		if err := h.orderService.MarkAllPaid(c.Request.Context(), actor, id); err != nil {
			h.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, ginext.H{"status": "all marked paid"})
		return
	}

	item, err := h.orderService.TogglePaid(c.Request.Context(), actor, id, itemID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderItemResponse(item))
}

func (h *Handler) GetOrderTotal(c *ginext.Context) {
	id, ok := h.eventID(c)
	if !ok {
		return
	}

	total, err := h.orderService.Total(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TotalResponse{EventID: id, Total: total})
}

// Voting

func (h *Handler) AddVotingOption(c *ginext.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.eventID(c)
	if !ok {
		return
	}

	var req dto.AddOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	option, err := h.votingService.AddOption(c.Request.Context(), actor, id, domain.AddOptionInput{
		Name:     req.Name,
		Link:     req.Link,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToVotingOptionResponse(option))
}

func (h *Handler) ToggleVote(c *ginext.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.eventID(c)
	if !ok {
		return
	}

	optionID := c.Param("optionID")
	voted, err := h.votingService.ToggleVote(c.Request.Context(), actor, id, optionID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.VoteResponse{OptionID: optionID, Voted: voted})
}

func (h *Handler) GetTally(c *ginext.Context) {
	id, ok := h.eventID(c)
	if !ok {
		return
	}

	tally, err := h.votingService.Tally(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTallyResponse(tally))
}

func (h *Handler) GetWinners(c *ginext.Context) {
	id, ok := h.eventID(c)
	if !ok {
		return
	}

	winners, err := h.votingService.Winners(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]dto.VotingOptionResponse, 0, len(winners))
	for i := range winners {
		resp = append(resp, dto.ToVotingOptionResponse(&winners[i]))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) CreateOrderFromVote(c *ginext.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.eventID(c)
	if !ok {
		return
	}

	event, err := h.votingService.CreateOrderFromVote(c.Request.Context(), actor, id, c.Param("optionID"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEventResponse(event, time.Now()))
}

// Users

func (h *Handler) CreateUser(c *ginext.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.userService.Create(c.Request.Context(), domain.CreateUserInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

func (h *Handler) ListUsers(c *ginext.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, dto.ToUserResponse(u))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetUser(c *ginext.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid user id"})
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// helpers

func (h *Handler) actor(c *ginext.Context) (string, bool) {
	id := c.GetHeader(userIDHeader)
	if id == "" {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "missing " + userIDHeader + " header"})
		return "", false
	}
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "invalid " + userIDHeader + " header"})
		return "", false
	}
	return id, true
}

func (h *Handler) eventID(c *ginext.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid event id"})
		return "", false
	}
	return id, true
}

func (h *Handler) handleError(c *ginext.Context, err error) {
	c.Set("error", err.Error())

	switch {
	case errors.Is(err, domain.ErrEventNotFound),
		errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrOptionNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrEventClosed),
		errors.Is(err, domain.ErrEventStillOpen),
		errors.Is(err, domain.ErrNotAWinner),
		errors.Is(err, domain.ErrWrongEventType),
		errors.Is(err, domain.ErrEmailTaken):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}
}
