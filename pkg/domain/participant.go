package domain

import (
	"time"

	"github.com/google/uuid"
)

// Participant is a user's registration on a free event.
type Participant struct {
	ID          uuid.UUID  `json:"id"`
	EventID     uuid.UUID  `json:"event_id"`
	UserID      uuid.UUID  `json:"user_id"`
	CheckedInAt *time.Time `json:"checked_in_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CheckedIn returns true once the participant has checked in at the venue.
func (p *Participant) CheckedIn() bool {
	return p.CheckedInAt != nil
}
