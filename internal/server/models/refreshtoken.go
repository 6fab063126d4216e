package models

import "time"

// RefreshToken is an opaque, single-use token row in refresh_tokens.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}

// Expired reports whether the token is no longer usable at t.
func (r *RefreshToken) Expired(t time.Time) bool {
	return !t.Before(r.Expires)
}
