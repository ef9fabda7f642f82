package domain

import "errors"

var (
	ErrEventNotFound  = errors.New("event not found")
	ErrItemNotFound   = errors.New("order item not found")
	ErrOptionNotFound = errors.New("voting option not found")
	ErrUserNotFound   = errors.New("user not found")
)

var (
	ErrEventClosed    = errors.New("event is not accepting input")
	ErrEventStillOpen = errors.New("event is still open")
	ErrNotAWinner     = errors.New("option is not a winner")
	ErrWrongEventType = errors.New("operation does not match event type")
)

var (
	ErrEmailTaken = errors.New("email is already taken")
)

var (
	ErrValidation       = errors.New("validation error")
	ErrPermissionDenied = errors.New("permission denied")
)
