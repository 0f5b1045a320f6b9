// Package auth resolves bearer tokens into caller sessions
package auth

import (
	"context"

	"github.com/thenoetrevino/rolodex/internal/models"
)

// Session identifies the caller of a service operation
type Session struct {
	UserID string
}

// NewSession returns a session for userID
func NewSession(userID string) *Session {
	return &Session{UserID: userID}
}

// Require returns the session's user id, or models.ErrUnauthenticated when
// there is no usable session
func Require(s *Session) (string, error) {
	if s == nil || s.UserID == "" {
		return "", models.ErrUnauthenticated
	}
	return s.UserID, nil
}

type sessionKey struct{}

// WithSession stores s in ctx
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// FromContext returns the session stored in ctx, or nil
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionKey{}).(*Session)
	return s
}
