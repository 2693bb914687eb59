package domain

import (
	"time"

	"github.com/google/uuid"
)

// Notification kinds surfaced in the alerts view.
const (
	NotifOrderApproved = "order_approved"
	NotifOrderRejected = "order_rejected"
	NotifCertificate   = "certificate_ready"
	NotifEventReminder = "event_reminder"
	NotifEventChanged  = "event_changed"
)

// Notification is a single in-app notification.
type Notification struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Kind      string     `json:"kind"`
	Title     string     `json:"title"`
	Body      string     `json:"body,omitempty"`
	EventID   *uuid.UUID `json:"event_id,omitempty"`
	Read      bool       `json:"read"`
	CreatedAt time.Time  `json:"created_at"`
}
