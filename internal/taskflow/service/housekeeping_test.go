package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/domain"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestHousekeepingSweep(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.register(t, "Alice", "alice@x.com")
	bob := env.register(t, "Bob", "bob@x.com")

	now := time.Now()
	require.NoError(t, env.store.RefreshTokens().UpsertRefreshToken(ctx, domain.RefreshToken{
		ID:        idx.New().String(),
		UserID:    bob.ID,
		TokenHash: "stale",
		ExpiresAt: now.Add(-time.Minute),
		CreatedAt: now.Add(-time.Hour),
	}))
	require.NoError(t, env.store.PasswordResetCodes().UpsertCode(ctx, domain.PasswordResetCode{
		ID:        idx.New().String(),
		Email:     alice.Email,
		CodeHash:  "stale",
		ExpiresAt: now.Add(-time.Minute),
		CreatedAt: now.Add(-time.Hour),
	}))
	require.NoError(t, env.store.PasswordResetCodes().UpsertCode(ctx, domain.PasswordResetCode{
		ID:        idx.New().String(),
		Email:     bob.Email,
		CodeHash:  "fresh",
		ExpiresAt: now.Add(time.Minute),
		CreatedAt: now,
	}))

	hk := NewHousekeepingService(env.store, slog.New(slog.NewTextHandler(io.Discard, nil)), 0)
	require.Equal(t, time.Hour, hk.Interval)

	res := hk.Sweep(ctx, now)
	require.Equal(t, SweepResult{RefreshTokens: 1, ResetCodes: 1}, res)

	_, err := env.store.PasswordResetCodes().GetCodeByEmail(ctx, bob.Email)
	require.NoError(t, err)

	require.Equal(t, SweepResult{}, hk.Sweep(ctx, now))
}

func TestHousekeepingStartStop(t *testing.T) {
	env := newTestEnv(t)
	hk := NewHousekeepingService(env.store, slog.New(slog.NewTextHandler(io.Discard, nil)), time.Millisecond)
	hk.Start()
	time.Sleep(5 * time.Millisecond)
	hk.Stop()
}
