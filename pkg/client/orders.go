package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/JoaoLucasCordeiro/meetix-cli/pkg/domain"
)

// MaxProofSize is the client-side cap on a PIX proof upload.
const MaxProofSize = 5 << 20 // 5 MB

// CreateOrderRequest is the payload for opening a ticket order.
type CreateOrderRequest struct {
	EventID    uuid.UUID `json:"event_id"`
	Quantity   int       `json:"quantity"`
	CouponCode string    `json:"coupon_code,omitempty"`
}

// MyOrders lists the current user's ticket orders, newest first.
func (c *Client) MyOrders(ctx context.Context) ([]domain.TicketOrder, error) {
	var orders []domain.TicketOrder
	if err := c.get(ctx, "/api/ticket-orders/my", &orders); err != nil {
		return nil, fmt.Errorf("client.MyOrders: %w", err)
	}
	return orders, nil
}

// GetOrder fetches a single order by ID.
func (c *Client) GetOrder(ctx context.Context, id uuid.UUID) (*domain.TicketOrder, error) {
	var order domain.TicketOrder
	if err := c.get(ctx, "/api/ticket-orders/"+id.String(), &order); err != nil {
		return nil, fmt.Errorf("client.GetOrder: %w", err)
	}
	return &order, nil
}

// CreateOrder opens a ticket order. The response carries the PIX key and
// payload for the transfer. 409 means a pending order already exists.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*domain.TicketOrder, error) {
	var order domain.TicketOrder
	if err := c.post(ctx, "/api/ticket-orders", req, &order); err != nil {
		return nil, fmt.Errorf("client.CreateOrder: %w", err)
	}
	return &order, nil
}

// CancelOrder deletes a still-pending order.
func (c *Client) CancelOrder(ctx context.Context, id uuid.UUID) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/api/ticket-orders/"+id.String(), nil, nil); err != nil {
		return fmt.Errorf("client.CancelOrder: %w", err)
	}
	return nil
}

// UploadProof attaches the PIX transfer receipt to an order. The file goes
// up as multipart form data; size and format checks beyond the byte cap are
// the backend's call.
func (c *Client) UploadProof(ctx context.Context, orderID uuid.UUID, filename string, data []byte) (*domain.TicketOrder, error) {
	if len(data) > MaxProofSize {
		return nil, fmt.Errorf("client.UploadProof: file exceeds %d MB limit", MaxProofSize>>20)
	}
	var order domain.TicketOrder
	path := "/api/ticket-orders/" + orderID.String() + "/proof"
	if err := c.upload(ctx, path, "proof", filepath.Base(filename), data, &order); err != nil {
		return nil, fmt.Errorf("client.UploadProof: %w", err)
	}
	return &order, nil
}

// ValidateCoupon checks a discount code against an event before ordering.
func (c *Client) ValidateCoupon(ctx context.Context, code string, eventID uuid.UUID) (*domain.Coupon, error) {
	params := url.Values{}
	params.Set("code", code)
	params.Set("event_id", eventID.String())

	var coupon domain.Coupon
	if err := c.get(ctx, "/api/coupon/validate?"+params.Encode(), &coupon); err != nil {
		return nil, fmt.Errorf("client.ValidateCoupon: %w", err)
	}
	return &coupon, nil
}
