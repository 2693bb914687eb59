package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/JoaoLucasCordeiro/meetix-cli/pkg/domain"
)

// ListNotifications returns the current user's notifications, newest first.
func (c *Client) ListNotifications(ctx context.Context, limit, offset int) ([]domain.Notification, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))

	var notifs []domain.Notification
	if err := c.get(ctx, "/api/notifications?"+params.Encode(), &notifs); err != nil {
		return nil, fmt.Errorf("client.ListNotifications: %w", err)
	}
	return notifs, nil
}

// UnreadCount returns the number of unread notifications.
func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	var resp struct {
		Count int `json:"count"`
	}
	if err := c.get(ctx, "/api/notifications/unread-count", &resp); err != nil {
		return 0, fmt.Errorf("client.UnreadCount: %w", err)
	}
	return resp.Count, nil
}

// MarkRead marks a single notification as read.
func (c *Client) MarkRead(ctx context.Context, id uuid.UUID) error {
	if err := c.doRequest(ctx, http.MethodPatch, "/api/notifications/"+id.String()+"/read", nil, nil); err != nil {
		return fmt.Errorf("client.MarkRead: %w", err)
	}
	return nil
}

// MarkAllRead marks every notification as read.
func (c *Client) MarkAllRead(ctx context.Context) error {
	if err := c.post(ctx, "/api/notifications/read-all", nil, nil); err != nil {
		return fmt.Errorf("client.MarkAllRead: %w", err)
	}
	return nil
}
