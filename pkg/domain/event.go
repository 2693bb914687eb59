package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event categories used for list filtering and colored badges.
var EventCategories = []string{
	"palestra", "workshop", "minicurso", "hackathon", "congresso", "social",
}

// Event represents a university event published on the platform.
type Event struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	ExternalURL string    `json:"external_url,omitempty"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	Capacity    int       `json:"capacity"`
	// PriceCents is zero for free events; paid events require a ticket order.
	PriceCents int       `json:"price_cents"`
	BannerURL  string    `json:"banner_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// IsPaid returns true when attending requires purchasing a ticket.
func (e *Event) IsPaid() bool {
	return e.PriceCents > 0
}

// HasEnded returns true when the event is already over.
func (e *Event) HasEnded() bool {
	return !e.EndsAt.IsZero() && time.Now().After(e.EndsAt)
}

// Remaining returns the number of open spots given a participant count.
func (e *Event) Remaining(participants int) int {
	if e.Capacity <= 0 {
		return 0
	}
	return e.Capacity - participants
}

// IsFull returns true when no spots remain.
func (e *Event) IsFull(participants int) bool {
	return e.Capacity > 0 && participants >= e.Capacity
}
