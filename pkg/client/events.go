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

// ListEvents fetches events with optional category filter.
func (c *Client) ListEvents(ctx context.Context, category string, limit, offset int) ([]domain.Event, error) {
	params := url.Values{}
	if category != "" {
		params.Set("category", category)
	}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))

	var events []domain.Event
	if err := c.get(ctx, "/api/events?"+params.Encode(), &events); err != nil {
		return nil, fmt.Errorf("client.ListEvents: %w", err)
	}
	return events, nil
}

// GetEvent fetches a single event by ID.
func (c *Client) GetEvent(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	var event domain.Event
	if err := c.get(ctx, "/api/events/"+id.String(), &event); err != nil {
		return nil, fmt.Errorf("client.GetEvent: %w", err)
	}
	return &event, nil
}

// ParticipantCount returns how many people are registered for an event.
// Views fetch these in parallel for the visible list and must tolerate
// out-of-order completion.
func (c *Client) ParticipantCount(ctx context.Context, eventID uuid.UUID) (int, error) {
	var resp struct {
		Count int `json:"count"`
	}
	if err := c.get(ctx, "/api/events/"+eventID.String()+"/participants/count", &resp); err != nil {
		return 0, fmt.Errorf("client.ParticipantCount: %w", err)
	}
	return resp.Count, nil
}

// RegisterForEvent signs the current user up for a free event.
// 409 means already registered or event full; callers map it to display text.
func (c *Client) RegisterForEvent(ctx context.Context, eventID uuid.UUID) (*domain.Participant, error) {
	var p domain.Participant
	body := map[string]string{"event_id": eventID.String()}
	if err := c.post(ctx, "/api/event-participants", body, &p); err != nil {
		return nil, fmt.Errorf("client.RegisterForEvent: %w", err)
	}
	return &p, nil
}

// MyParticipations lists the current user's registrations.
func (c *Client) MyParticipations(ctx context.Context) ([]domain.Participant, error) {
	var parts []domain.Participant
	if err := c.get(ctx, "/api/event-participants/my", &parts); err != nil {
		return nil, fmt.Errorf("client.MyParticipations: %w", err)
	}
	return parts, nil
}

// CancelRegistration removes a registration.
func (c *Client) CancelRegistration(ctx context.Context, participantID uuid.UUID) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/api/event-participants/"+participantID.String(), nil, nil); err != nil {
		return fmt.Errorf("client.CancelRegistration: %w", err)
	}
	return nil
}

// CheckIn marks the participant as present at the venue.
func (c *Client) CheckIn(ctx context.Context, participantID uuid.UUID) (*domain.Participant, error) {
	var p domain.Participant
	if err := c.doRequest(ctx, http.MethodPatch, "/api/event-participants/"+participantID.String()+"/check-in", nil, &p); err != nil {
		return nil, fmt.Errorf("client.CheckIn: %w", err)
	}
	return &p, nil
}
