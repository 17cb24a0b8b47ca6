// Package session maps opaque bearer tokens to the identity that logged in.
package session

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Identity is what a session token resolves to.
type Identity struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Store issues, resolves and revokes session tokens. Implementations are safe
// for concurrent use.
type Store interface {
	// Create issues a fresh token bound to id.
	Create(ctx context.Context, id Identity) (string, error)
	// Resolve reports the identity bound to token. Unknown, revoked and
	// expired tokens all report false, as does a backend failure.
	Resolve(ctx context.Context, token string) (Identity, bool)
	// Invalidate revokes token. Revoking an unknown token is not an error.
	Invalidate(ctx context.Context, token string) error
}

// ErrEmptyIdentity is returned by Create for an identity without a user id.
var ErrEmptyIdentity = errors.New("session: identity has no user id")

// newToken returns 122 bits of crypto/rand entropy in canonical uuid form.
func newToken() string {
	return uuid.NewString()
}
