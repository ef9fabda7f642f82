package domain

import "time"

type EventType string

const (
	EventTypeOrder  EventType = "order"
	EventTypeVoting EventType = "voting"
)

// Event is a food-order or restaurant-voting activity. Exactly one of
// Orders/VotingOptions is active, selected by Type.
type Event struct {
	ID                 string         `json:"id"`
	Type               EventType      `json:"type"`
	CompanyName        string         `json:"company_name"`
	Description        string         `json:"description"`
	Link               string         `json:"link"`
	ImageURL           string         `json:"image_url"`
	CreatorPhoneNumber string         `json:"creator_phone_number"`
	CreatorID          string         `json:"creator_id"`
	Deadline           *time.Time     `json:"deadline"`
	IsOpen             bool           `json:"is_open"`
	DeadlineNotified   bool           `json:"deadline_notified"`
	Orders             []OrderItem    `json:"orders"`
	VotingOptions      []VotingOption `json:"voting_options"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// OrderItem is a single line item. UserID is nil for guest orders; GuestName
// is set instead and the item is not linked to any account.
type OrderItem struct {
	ID        string    `json:"id"`
	UserID    *string   `json:"user_id"`
	GuestName string    `json:"guest_name,omitempty"`
	Name      string    `json:"name"`
	Details   string    `json:"details"`
	Price     float64   `json:"price"`
	IsPaid    bool      `json:"is_paid"`
	CreatedAt time.Time `json:"created_at"`
}

type VotingOption struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Link      string    `json:"link,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	AddedByID string    `json:"added_by_id"`
	Votes     []string  `json:"votes"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateEventInput struct {
	Type               EventType
	CompanyName        string
	Description        string
	Link               string
	ImageURL           string
	CreatorPhoneNumber string
	Deadline           *time.Time
	Options            []AddOptionInput
}

// EventPatch carries the mutable metadata fields; nil means "leave as is".
// Type and ID are immutable and deliberately absent.
type EventPatch struct {
	CompanyName        *string
	Description        *string
	Link               *string
	ImageURL           *string
	CreatorPhoneNumber *string
	Deadline           *time.Time
	ClearDeadline      bool
}

type AddOrderItemInput struct {
	Name      string
	Details   string
	Price     float64
	GuestName string
}

type AddOptionInput struct {
	Name     string
	Link     string
	ImageURL string
}

// Clone returns a deep copy so repository reads never alias stored slices.
func (e *Event) Clone() *Event {
	c := *e
	if e.Deadline != nil {
		d := *e.Deadline
		c.Deadline = &d
	}
	if e.Orders != nil {
		c.Orders = make([]OrderItem, len(e.Orders))
		for i, it := range e.Orders {
			c.Orders[i] = it
			if it.UserID != nil {
				uid := *it.UserID
				c.Orders[i].UserID = &uid
			}
		}
	}
	if e.VotingOptions != nil {
		c.VotingOptions = make([]VotingOption, len(e.VotingOptions))
		for i, opt := range e.VotingOptions {
			c.VotingOptions[i] = opt
			c.VotingOptions[i].Votes = append([]string(nil), opt.Votes...)
		}
	}
	return &c
}

func (e *Event) FindOrderItem(itemID string) *OrderItem {
	for i := range e.Orders {
		if e.Orders[i].ID == itemID {
			return &e.Orders[i]
		}
	}
	return nil
}

func (e *Event) FindOption(optionID string) *VotingOption {
	for i := range e.VotingOptions {
		if e.VotingOptions[i].ID == optionID {
			return &e.VotingOptions[i]
		}
	}
	return nil
}
