//go:build integration

package redis

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/YusovID/service-dispatch/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) *Client {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	client, err := NewClient(config.Redis{Addr: endpoint}, log)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Close()
	})

	return client
}

func TestRevocationStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	store := NewRevocationStore(startRedis(t))
	ctx := context.Background()

	revoked, err := store.IsRevoked(ctx, "token-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "token-1", time.Second))

	revoked, err = store.IsRevoked(ctx, "token-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	assert.Eventually(t, func() bool {
		revoked, err := store.IsRevoked(ctx, "token-1")
		return err == nil && !revoked
	}, 5*time.Second, 100*time.Millisecond)

	require.NoError(t, store.Revoke(ctx, "token-2", 0))
	revoked, err = store.IsRevoked(ctx, "token-2")
	require.NoError(t, err)
	assert.False(t, revoked, "already expired tokens are not stored")
}
