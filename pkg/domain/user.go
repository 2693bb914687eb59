package domain

import "github.com/google/uuid"

// User is the profile snapshot cached alongside the session token.
// It is assembled from the flat login/register response and refreshed
// on profile updates; no other component derives it.
type User struct {
	ID         uuid.UUID `json:"id"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	Instagram  string    `json:"instagram,omitempty"`
	University string    `json:"university"`
	Course     string    `json:"course"`
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
