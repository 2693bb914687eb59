package domain

import (
	"time"

	"github.com/google/uuid"
)

// Order statuses as reported by the backend. Payment validation itself is
// server-side; the client only displays the current status.
const (
	OrderPending  = "pending"
	OrderApproved = "approved"
	OrderRejected = "rejected"
)

// TicketOrder is a purchase of one or more tickets for a paid event,
// settled by a manually reviewed PIX transfer.
type TicketOrder struct {
	ID       uuid.UUID `json:"id"`
	EventID  uuid.UUID `json:"event_id"`
	UserID   uuid.UUID `json:"user_id"`
	Quantity int       `json:"quantity"`
	// TotalCents is the amount after any coupon discount.
	TotalCents int    `json:"total_cents"`
	CouponCode string `json:"coupon_code,omitempty"`
	Status     string `json:"status"`
	// PixKey and PixPayload are provided by the backend for the transfer.
	PixKey       string     `json:"pix_key,omitempty"`
	PixPayload   string     `json:"pix_payload,omitempty"`
	ProofFile    string     `json:"proof_file,omitempty"`
	RejectReason string     `json:"reject_reason,omitempty"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`

	// EventName is denormalized by the list endpoint for display.
	EventName string `json:"event_name,omitempty"`
}

// AwaitingProof returns true while the order still needs a payment proof.
func (o *TicketOrder) AwaitingProof() bool {
	return o.Status == OrderPending && o.ProofFile == ""
}

// Coupon is a discount code, validated server-side before an order.
type Coupon struct {
	Code            string     `json:"code"`
	DiscountPercent int        `json:"discount_percent"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
	Valid           bool       `json:"valid"`
}
