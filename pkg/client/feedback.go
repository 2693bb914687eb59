package client

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/JoaoLucasCordeiro/meetix-cli/pkg/domain"
)

// SubmitFeedbackRequest is the payload for rating an event.
type SubmitFeedbackRequest struct {
	EventID uuid.UUID `json:"event_id"`
	Rating  int       `json:"rating"` // 1..5
	Comment string    `json:"comment,omitempty"`
}

// SubmitFeedback leaves a rating and optional comment for an event.
// 409 means feedback was already submitted.
func (c *Client) SubmitFeedback(ctx context.Context, req SubmitFeedbackRequest) (*domain.Feedback, error) {
	var fb domain.Feedback
	if err := c.post(ctx, "/api/feedbacks", req, &fb); err != nil {
		return nil, fmt.Errorf("client.SubmitFeedback: %w", err)
	}
	return &fb, nil
}

// MyFeedback returns the current user's feedback for an event.
// 404 means none has been submitted yet.
func (c *Client) MyFeedback(ctx context.Context, eventID uuid.UUID) (*domain.Feedback, error) {
	var fb domain.Feedback
	if err := c.get(ctx, "/api/feedbacks/event/"+eventID.String()+"/mine", &fb); err != nil {
		return nil, fmt.Errorf("client.MyFeedback: %w", err)
	}
	return &fb, nil
}
