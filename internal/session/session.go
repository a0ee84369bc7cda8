// Package session holds the signed-in identity that is passed explicitly into
// every workflow call, and the table that routes a role to its workflow root.
package session

import (
	"context"
	"time"

	"github.com/YusovID/service-dispatch/internal/domain"
)

type Session struct {
	UserID    string
	TokenID   string
	ExpiresAt time.Time
	Profile   *domain.Profile
}

func (s *Session) Role() domain.Role {
	if s == nil || s.Profile == nil {
		return ""
	}

	return s.Profile.Role
}

// Remaining is how long the session token stays valid after now.
func (s *Session) Remaining(now time.Time) time.Duration {
	if d := s.ExpiresAt.Sub(now); d > 0 {
		return d
	}

	return 0
}

var workflowRoots = map[domain.Role]string{
	domain.RoleCustomer: "/customer",
	domain.RoleProvider: "/provider",
	domain.RoleAdmin:    "/admin",
}

// RootFor returns the workflow root of a role. ok is false for a role that has
// no workflow.
func RootFor(role domain.Role) (root string, ok bool) {
	root, ok = workflowRoots[role]

	return root, ok
}

type ctxKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)

	return s, ok && s != nil
}
