package dto

import (
	"time"

	"github.com/ddubrovin/lunchboard/internal/domain"
)

type OrderItemResponse struct {
	ID        string  `json:"id"`
	UserID    *string `json:"user_id"`
	GuestName string  `json:"guest_name,omitempty"`
	Name      string  `json:"name"`
	Details   string  `json:"details,omitempty"`
	Price     float64 `json:"price"`
	IsPaid    bool    `json:"is_paid"`
}

type VotingOptionResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Link      string   `json:"link,omitempty"`
	ImageURL  string   `json:"image_url,omitempty"`
	AddedByID string   `json:"added_by_id"`
	Votes     []string `json:"votes"`
	VoteCount int      `json:"vote_count"`
}

type TallyResponse struct {
	Options    []OptionTallyResponse `json:"options"`
	TotalVotes int                   `json:"total_votes"`
}

type OptionTallyResponse struct {
	OptionID string `json:"option_id"`
	Name     string `json:"name"`
	Votes    int    `json:"votes"`
}

// EventResponse embeds the derived views: liveness, order total, tally and
// (for closed voting events) the winner IDs, all computed fresh per read.
type EventResponse struct {
	ID                 string                 `json:"id"`
	Type               string                 `json:"type"`
	CompanyName        string                 `json:"company_name"`
	Description        string                 `json:"description,omitempty"`
	Link               string                 `json:"link,omitempty"`
	ImageURL           string                 `json:"image_url,omitempty"`
	CreatorPhoneNumber string                 `json:"creator_phone_number,omitempty"`
	CreatorID          string                 `json:"creator_id"`
	Deadline           *string                `json:"deadline,omitempty"`
	IsOpen             bool                   `json:"is_open"`
	AcceptingInput     bool                   `json:"accepting_input"`
	Orders             []OrderItemResponse    `json:"orders,omitempty"`
	Total              *float64               `json:"total,omitempty"`
	VotingOptions      []VotingOptionResponse `json:"voting_options,omitempty"`
	Tally              *TallyResponse         `json:"tally,omitempty"`
	WinnerIDs          []string               `json:"winner_ids,omitempty"`
	CreatedAt          string                 `json:"created_at"`
	UpdatedAt          string                 `json:"updated_at"`
}

type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

type TotalResponse struct {
	EventID string  `json:"event_id"`
	Total   float64 `json:"total"`
}

type VoteResponse struct {
	OptionID string `json:"option_id"`
	Voted    bool   `json:"voted"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func ToEventResponse(e *domain.Event, now time.Time) EventResponse {
	resp := EventResponse{
		ID:                 e.ID,
		Type:               string(e.Type),
		CompanyName:        e.CompanyName,
		Description:        e.Description,
		Link:               e.Link,
		ImageURL:           e.ImageURL,
		CreatorPhoneNumber: e.CreatorPhoneNumber,
		CreatorID:          e.CreatorID,
		IsOpen:             e.IsOpen,
		AcceptingInput:     e.AcceptsInput(now),
		CreatedAt:          e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          e.UpdatedAt.Format(time.RFC3339),
	}
	if e.Deadline != nil {
		d := e.Deadline.Format(time.RFC3339)
		resp.Deadline = &d
	}

	switch e.Type {
	case domain.EventTypeOrder:
		resp.Orders = make([]OrderItemResponse, 0, len(e.Orders))
		for i := range e.Orders {
			resp.Orders = append(resp.Orders, ToOrderItemResponse(&e.Orders[i]))
		}
		total := e.OrderTotal()
		resp.Total = &total

	case domain.EventTypeVoting:
		resp.VotingOptions = make([]VotingOptionResponse, 0, len(e.VotingOptions))
		for i := range e.VotingOptions {
			resp.VotingOptions = append(resp.VotingOptions, ToVotingOptionResponse(&e.VotingOptions[i]))
		}
		tally := ToTallyResponse(e.VoteTally())
		resp.Tally = &tally
		if !e.AcceptsInput(now) {
			for _, w := range e.Winners() {
				resp.WinnerIDs = append(resp.WinnerIDs, w.ID)
			}
		}
	}

	return resp
}

func ToOrderItemResponse(it *domain.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ID:        it.ID,
		UserID:    it.UserID,
		GuestName: it.GuestName,
		Name:      it.Name,
		Details:   it.Details,
		Price:     it.Price,
		IsPaid:    it.IsPaid,
	}
}

func ToVotingOptionResponse(opt *domain.VotingOption) VotingOptionResponse {
	votes := opt.Votes
	if votes == nil {
		votes = []string{}
	}
	return VotingOptionResponse{
		ID:        opt.ID,
		Name:      opt.Name,
		Link:      opt.Link,
		ImageURL:  opt.ImageURL,
		AddedByID: opt.AddedByID,
		Votes:     votes,
		VoteCount: len(opt.Votes),
	}
}

func ToTallyResponse(t domain.Tally) TallyResponse {
	resp := TallyResponse{
		Options:    make([]OptionTallyResponse, 0, len(t.Options)),
		TotalVotes: t.TotalVotes,
	}
	for _, o := range t.Options {
		resp.Options = append(resp.Options, OptionTallyResponse{
			OptionID: o.OptionID,
			Name:     o.Name,
			Votes:    o.Votes,
		})
	}
	return resp
}

func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}
