package client

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/JoaoLucasCordeiro/meetix-cli/pkg/domain"
)

// authResponse is the flat shape the backend returns from login and
// register: the token and the user fields all at the top level. The client
// reassembles a proper User before persisting.
type authResponse struct {
	Token      string    `json:"token"`
	UserID     uuid.UUID `json:"userId"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	Instagram  string    `json:"instagram"`
	University string    `json:"university"`
	Course     string    `json:"course"`
}

func (r *authResponse) user() *domain.User {
	return &domain.User{
		ID:         r.UserID,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Email:      r.Email,
		Instagram:  r.Instagram,
		University: r.University,
		Course:     r.Course,
	}
}

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Instagram  string `json:"instagram,omitempty"`
	University string `json:"university"`
	Course     string `json:"course"`
}

// Login authenticates with email and password. On success the token and the
// reassembled user snapshot are persisted to the session store before the
// user is returned. A 401 here means bad credentials and never triggers the
// global session teardown.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.User, error) {
	var resp authResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.post(ctx, "/auth/login", body, &resp); err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	user := resp.user()
	if err := c.store.Set(resp.Token, user); err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	return user, nil
}

// Register creates an account. Same persistence contract as Login.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	var resp authResponse
	if err := c.post(ctx, "/auth/register", req, &resp); err != nil {
		return nil, fmt.Errorf("client.Register: %w", err)
	}
	user := resp.user()
	if err := c.store.Set(resp.Token, user); err != nil {
		return nil, fmt.Errorf("client.Register: %w", err)
	}
	return user, nil
}

// ValidateToken confirms the stored token is still accepted by the backend.
// Any failure, not just 401, means the session should be treated as invalid.
func (c *Client) ValidateToken(ctx context.Context) error {
	if err := c.get(ctx, "/auth/validate", nil); err != nil {
		return fmt.Errorf("client.ValidateToken: %w", err)
	}
	return nil
}

// Logout tells the backend to revoke the session, best-effort: the local
// store is cleared regardless of the network outcome.
func (c *Client) Logout(ctx context.Context) error {
	reqErr := c.post(ctx, "/auth/logout", nil, nil)
	if err := c.store.Clear(); err != nil {
		return fmt.Errorf("client.Logout: clear session: %w", err)
	}
	if reqErr != nil {
		return fmt.Errorf("client.Logout: %w", reqErr)
	}
	return nil
}

// UpdateProfileRequest is the payload for editing the user profile.
type UpdateProfileRequest struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Instagram  string `json:"instagram,omitempty"`
	University string `json:"university"`
	Course     string `json:"course"`
}

// UpdateProfile saves profile changes and refreshes the cached user
// snapshot so the store always holds the most recent backend value.
func (c *Client) UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*domain.User, error) {
	var user domain.User
	if err := c.doRequest(ctx, "PUT", "/api/users/"+id.String(), req, &user); err != nil {
		return nil, fmt.Errorf("client.UpdateProfile: %w", err)
	}
	if err := c.store.Set(c.store.Token(), &user); err != nil {
		return nil, fmt.Errorf("client.UpdateProfile: %w", err)
	}
	return &user, nil
}
