package domain

import (
	"time"

	"github.com/google/uuid"
)

// Ticket is an issued admission for a paid event, created by the backend
// once the corresponding order is approved.
type Ticket struct {
	ID      uuid.UUID `json:"id"`
	OrderID uuid.UUID `json:"order_id"`
	EventID uuid.UUID `json:"event_id"`
	// Code is the short check-in code printed on the PDF.
	Code      string     `json:"code"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`

	EventName string `json:"event_name,omitempty"`
}

// Badge is the printable attendee badge for an event.
type Badge struct {
	ID        uuid.UUID `json:"id"`
	EventID   uuid.UUID `json:"event_id"`
	UserID    uuid.UUID `json:"user_id"`
	EventName string    `json:"event_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Certificate is the attendance certificate issued after an event once the
// backend deems the participant eligible.
type Certificate struct {
	ID        uuid.UUID `json:"id"`
	EventID   uuid.UUID `json:"event_id"`
	UserID    uuid.UUID `json:"user_id"`
	Hours     int       `json:"hours"`
	EventName string    `json:"event_name,omitempty"`
	IssuedAt  time.Time `json:"issued_at"`
}
