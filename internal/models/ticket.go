package models

import "time"

// Ticket statuses. The status is a plain integer, no state machine is enforced.
const (
	TicketStatusOpen   = 0
	TicketStatusClosed = 1
)

// Ticket is a free-text message between two users
type Ticket struct {
	ID          int       `json:"id"`
	SenderID    int       `json:"sender_id"`
	RecipientID int       `json:"recipient_id"`
	Content     string    `json:"content"`
	Status      int       `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateTicketRequest is the payload for POST /tickets/add.
// The sender is always the authenticated caller.
type CreateTicketRequest struct {
	RecipientID int    `json:"recipient_id"`
	Content     string `json:"content"`
}

// UpdateTicketStatusRequest is the payload for PUT /tickets/{id}/status
type UpdateTicketStatusRequest struct {
	Status int `json:"status"`
}
