package service

import (
	"context"
	"testing"
	"time"

	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/domain"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/cryptox"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/idx"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	res, err := env.auth.Register(ctx, "Alice", " Alice@X.com ", "secret1")
	require.NoError(t, err)
	require.Equal(t, "alice@x.com", res.User.Email)
	require.Equal(t, domain.RoleMember, res.User.Role)
	require.NotEqual(t, "secret1", res.User.PasswordHash)

	login, err := env.auth.Login(ctx, "alice@x.com", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, login.Tokens.AccessToken)
	require.NotEmpty(t, login.Tokens.RefreshToken)

	claims, err := env.auth.KeyManager.Verifier.Verify(login.Tokens.AccessToken)
	require.NoError(t, err)
	require.Equal(t, res.User.ID, claims.Subject)
	require.Equal(t, "member", claims.Role)
	require.Equal(t, jwtx.TokenUseAccess, claims.TokenUse)
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	tests := []struct {
		name, userName, email, password string
	}{
		{"short name", "A", "a@x.com", "secret1"},
		{"bad email", "Alice", "not-an-email", "secret1"},
		{"short password", "Alice", "a@x.com", "12345"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.auth.Register(ctx, tt.userName, tt.email, tt.password)
			require.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.register(t, "Alice", "alice@x.com")

	_, err := env.auth.Register(ctx, "Alice Again", "ALICE@x.com", "secret1")
	require.ErrorIs(t, err, ErrEmailTaken)
	require.ErrorIs(t, err, ErrConflict)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.register(t, "Alice", "alice@x.com")

	_, wrongPassword := env.auth.Login(ctx, "alice@x.com", "nope-nope")
	_, unknownEmail := env.auth.Login(ctx, "bob@x.com", "secret1")

	require.ErrorIs(t, wrongPassword, ErrUnauthenticated)
	require.ErrorIs(t, unknownEmail, ErrUnauthenticated)
	require.Equal(t, wrongPassword.Error(), unknownEmail.Error())
	require.Equal(t, Message(wrongPassword), Message(unknownEmail))
}

func TestRefreshRotatesToken(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	res, err := env.auth.Register(ctx, "Alice", "alice@x.com", "secret1")
	require.NoError(t, err)

	pair, err := env.auth.Refresh(ctx, res.Tokens.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, res.Tokens.RefreshToken, pair.RefreshToken)

	_, err = env.auth.Refresh(ctx, res.Tokens.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidRefresh)

	_, err = env.auth.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
}

func TestRefreshPicksUpRoleChange(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	res, err := env.auth.Register(ctx, "Alice", "alice@x.com", "secret1")
	require.NoError(t, err)

	_, err = env.auth.PromoteUser(ctx, "alice@x.com", domain.RoleAdmin)
	require.NoError(t, err)

	pair, err := env.auth.Refresh(ctx, res.Tokens.RefreshToken)
	require.NoError(t, err)
	claims, err := env.auth.KeyManager.Verifier.Verify(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "admin", claims.Role)
}

func TestRefreshRejects(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	res, err := env.auth.Register(ctx, "Alice", "alice@x.com", "secret1")
	require.NoError(t, err)

	t.Run("access token", func(t *testing.T) {
		_, err := env.auth.Refresh(ctx, res.Tokens.AccessToken)
		require.ErrorIs(t, err, ErrInvalidRefresh)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := env.auth.Refresh(ctx, "not-a-jwt")
		require.ErrorIs(t, err, ErrInvalidRefresh)
	})

	t.Run("expired row", func(t *testing.T) {
		now := time.Now()
		require.NoError(t, env.store.RefreshTokens().UpsertRefreshToken(ctx, domain.RefreshToken{
			ID:        idx.New().String(),
			UserID:    res.User.ID,
			TokenHash: cryptox.FingerprintToken(res.Tokens.RefreshToken),
			ExpiresAt: now.Add(-time.Second),
			CreatedAt: now.Add(-time.Hour),
		}))

		_, err := env.auth.Refresh(ctx, res.Tokens.RefreshToken)
		require.ErrorIs(t, err, ErrInvalidRefresh)

		_, err = env.store.RefreshTokens().GetRefreshTokenByHash(ctx, cryptox.FingerprintToken(res.Tokens.RefreshToken))
		require.Error(t, err, "expired row should be purged")
	})
}

func TestLogoutIsIdempotent(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	res, err := env.auth.Register(ctx, "Alice", "alice@x.com", "secret1")
	require.NoError(t, err)

	require.NoError(t, env.auth.Logout(ctx, res.Tokens.RefreshToken))
	require.NoError(t, env.auth.Logout(ctx, res.Tokens.RefreshToken))
	require.NoError(t, env.auth.Logout(ctx, ""))

	_, err = env.auth.Refresh(ctx, res.Tokens.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestLoginReplacesRefreshToken(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	first, err := env.auth.Register(ctx, "Alice", "alice@x.com", "secret1")
	require.NoError(t, err)
	second, err := env.auth.Login(ctx, "alice@x.com", "secret1")
	require.NoError(t, err)

	_, err = env.auth.Refresh(ctx, first.Tokens.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidRefresh)
	_, err = env.auth.Refresh(ctx, second.Tokens.RefreshToken)
	require.NoError(t, err)
}

func TestUpdateProfileAndMe(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.register(t, "Alice", "alice@x.com")

	updated, err := env.auth.UpdateProfile(ctx, alice.ID, "  Alice Liddell ")
	require.NoError(t, err)
	require.Equal(t, "Alice Liddell", updated.Name)

	me, err := env.auth.Me(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, "Alice Liddell", me.Name)

	_, err = env.auth.UpdateProfile(ctx, alice.ID, "")
	require.ErrorIs(t, err, ErrValidation)

	_, err = env.auth.Me(ctx, idx.New().String())
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestPromoteUser(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.register(t, "Alice", "alice@x.com")

	u, err := env.auth.PromoteUser(ctx, "ALICE@x.com", domain.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, u.Role)

	_, err = env.auth.PromoteUser(ctx, "alice@x.com", domain.Role("root"))
	require.ErrorIs(t, err, ErrValidation)

	_, err = env.auth.PromoteUser(ctx, "nobody@x.com", domain.RoleAdmin)
	require.ErrorIs(t, err, ErrNotFound)

	users, err := env.auth.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, domain.RoleAdmin, users[0].Role)
}
