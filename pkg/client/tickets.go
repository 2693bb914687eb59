package client

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/JoaoLucasCordeiro/meetix-cli/pkg/domain"
)

// MyTickets lists the current user's issued tickets.
func (c *Client) MyTickets(ctx context.Context) ([]domain.Ticket, error) {
	var tickets []domain.Ticket
	if err := c.get(ctx, "/api/tickets/my", &tickets); err != nil {
		return nil, fmt.Errorf("client.MyTickets: %w", err)
	}
	return tickets, nil
}

// TicketPDF downloads the printable ticket. The payload is the raw PDF.
func (c *Client) TicketPDF(ctx context.Context, id uuid.UUID) ([]byte, error) {
	data, err := c.download(ctx, "/api/tickets/"+id.String()+"/pdf")
	if err != nil {
		return nil, fmt.Errorf("client.TicketPDF: %w", err)
	}
	return data, nil
}

// MyBadges lists the current user's attendee badges.
func (c *Client) MyBadges(ctx context.Context) ([]domain.Badge, error) {
	var badges []domain.Badge
	if err := c.get(ctx, "/api/badges/my", &badges); err != nil {
		return nil, fmt.Errorf("client.MyBadges: %w", err)
	}
	return badges, nil
}

// BadgePDF downloads the printable badge.
func (c *Client) BadgePDF(ctx context.Context, id uuid.UUID) ([]byte, error) {
	data, err := c.download(ctx, "/api/badges/"+id.String()+"/pdf")
	if err != nil {
		return nil, fmt.Errorf("client.BadgePDF: %w", err)
	}
	return data, nil
}

// MyCertificates lists the certificates already issued to the current user.
func (c *Client) MyCertificates(ctx context.Context) ([]domain.Certificate, error) {
	var certs []domain.Certificate
	if err := c.get(ctx, "/api/certificates/my", &certs); err != nil {
		return nil, fmt.Errorf("client.MyCertificates: %w", err)
	}
	return certs, nil
}

// CertificatePDF downloads the attendance certificate. Eligibility is
// decided server-side; 403 means not yet eligible.
func (c *Client) CertificatePDF(ctx context.Context, id uuid.UUID) ([]byte, error) {
	data, err := c.download(ctx, "/api/certificates/"+id.String()+"/pdf")
	if err != nil {
		return nil, fmt.Errorf("client.CertificatePDF: %w", err)
	}
	return data, nil
}
