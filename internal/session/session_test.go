package session

import (
	"context"
	"testing"
	"time"

	"github.com/YusovID/service-dispatch/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootFor(t *testing.T) {
	testCases := []struct {
		role     domain.Role
		expected string
		ok       bool
	}{
		{role: domain.RoleCustomer, expected: "/customer", ok: true},
		{role: domain.RoleProvider, expected: "/provider", ok: true},
		{role: domain.RoleAdmin, expected: "/admin", ok: true},
		{role: "guest", expected: "", ok: false},
	}

	for _, tc := range testCases {
		t.Run(string(tc.role), func(t *testing.T) {
			root, ok := RootFor(tc.role)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.expected, root)
		})
	}
}

func TestContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	s := &Session{UserID: "u-1", Profile: &domain.Profile{ID: "u-1", Role: domain.RoleProvider}}
	got, ok := FromContext(WithSession(context.Background(), s))
	require.True(t, ok)
	assert.Same(t, s, got)
	assert.Equal(t, domain.RoleProvider, got.Role())

	var empty *Session
	assert.Equal(t, domain.Role(""), empty.Role())
}

func TestRemaining(t *testing.T) {
	now := time.Now()
	s := &Session{ExpiresAt: now.Add(time.Minute)}

	assert.Equal(t, time.Minute, s.Remaining(now))
	assert.Zero(t, s.Remaining(now.Add(2*time.Minute)))
}
