// Package refreshtokens declares the server-side repository contract for
// managing refresh tokens in persistent storage.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophdrive/internal/server/models"
)

// Repository defines operations for issuing, retrieving, and revoking refresh tokens.
type Repository interface {
	// Create stores a new refresh token for userID with an expiry of now+validity.
	Create(ctx context.Context, userID string, token string, validity time.Duration) error
	// Find looks up a refresh token by its opaque token string.
	// It returns common.ErrorNotFound when the token is absent.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)
	// Delete revokes a token. It returns common.ErrorNotFound when no row
	// was removed, so a token can be consumed at most once.
	Delete(ctx context.Context, token string) error
}
