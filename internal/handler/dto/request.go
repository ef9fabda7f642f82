package dto

type OptionRequest struct {
	Name     string `json:"name" binding:"required"`
	Link     string `json:"link"`
	ImageURL string `json:"image_url"`
}

type CreateEventRequest struct {
	Type               string          `json:"type" binding:"required,oneof=order voting"`
	CompanyName        string          `json:"company_name" binding:"required"`
	Description        string          `json:"description"`
	Link               string          `json:"link"`
	ImageURL           string          `json:"image_url"`
	CreatorPhoneNumber string          `json:"creator_phone_number"`
	Deadline           string          `json:"deadline"`
	Options            []OptionRequest `json:"options"`
}

// EditEventRequest: absent fields stay untouched; an explicitly empty
// deadline string clears the deadline.
type EditEventRequest struct {
	CompanyName        *string `json:"company_name"`
	Description        *string `json:"description"`
	Link               *string `json:"link"`
	ImageURL           *string `json:"image_url"`
	CreatorPhoneNumber *string `json:"creator_phone_number"`
	Deadline           *string `json:"deadline"`
}

type AddOrderItemRequest struct {
	Name      string  `json:"name" binding:"required"`
	Details   string  `json:"details"`
	Price     float64 `json:"price" binding:"gte=0"`
	GuestName string  `json:"guest_name"`
}

type AddOptionRequest struct {
	Name     string `json:"name" binding:"required"`
	Link     string `json:"link"`
	ImageURL string `json:"image_url"`
}

type CreateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
}
