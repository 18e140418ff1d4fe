package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/domain"
	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/store"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/cryptox"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/idx"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/jwtx"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/slogx"
)

// AuthResult is returned by register and login.
type AuthResult struct {
	User   domain.User
	Tokens domain.TokenPair
}

type AuthService struct {
	KeyManager *jwtx.KeyManager
	Store      store.Store
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Register creates a member account and signs the user in.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}
	email, err = validateEmail(email)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	u := domain.User{
		ID:           idx.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleMember,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var pair domain.TokenPair
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, u); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrEmailTaken
			}
			return err
		}
		pair, err = s.issuePair(ctx, tx, u, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	slogx.FromContext(ctx).Info("user registered", slog.String("user_id", u.ID))
	return &AuthResult{User: u, Tokens: pair}, nil
}

// Login checks credentials and replaces the user's refresh token. Unknown
// emails and wrong passwords fail with the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	l := slogx.FromContext(ctx)
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, validationf("Email and password are required")
	}

	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			cryptox.DummyVerify(password)
			l.Info("login failed", slog.String("reason", "unknown_email"))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			l.Error("stored password hash unreadable", slog.String("user_id", u.ID), slogx.Err(err))
		}
		l.Info("login failed", slog.String("reason", "bad_password"), slog.String("user_id", u.ID))
		return nil, ErrInvalidCredentials
	}

	pair, err := s.issuePair(ctx, s.Store, u, time.Now())
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: u, Tokens: pair}, nil
}

// Refresh exchanges a refresh token for a new pair. The stored row is
// rotated, so the presented token stops working.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	l := slogx.FromContext(ctx)
	now := time.Now()

	refreshToken = strings.TrimSpace(refreshToken)
	claims, err := s.KeyManager.Verifier.Verify(refreshToken)
	if err != nil {
		l.Info("refresh token rejected", slogx.Err(err))
		return nil, ErrInvalidRefresh
	}
	if claims.TokenUse != jwtx.TokenUseRefresh {
		return nil, ErrInvalidRefresh
	}

	fp := cryptox.FingerprintToken(refreshToken)

	var pair domain.TokenPair
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		row, err := tx.RefreshTokens().GetRefreshTokenByHash(ctx, fp)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidRefresh
			}
			return err
		}
		if row.UserID != claims.Subject {
			return ErrInvalidRefresh
		}
		if !now.Before(row.ExpiresAt) {
			return errExpiredRefresh
		}

		u, err := tx.Users().GetUserByID(ctx, row.UserID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidRefresh
			}
			return err
		}
		pair, err = s.issuePair(ctx, tx, u, now)
		return err
	})
	if errors.Is(err, errExpiredRefresh) {
		if err := s.Store.RefreshTokens().DeleteRefreshTokenByHash(ctx, fp); err != nil {
			l.Warn("failed to purge expired refresh token", slogx.Err(err))
		}
		return nil, ErrInvalidRefresh
	}
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

var errExpiredRefresh = errors.New("refresh token row expired")

// Logout revokes the refresh token. Unknown tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return nil
	}
	return s.Store.RefreshTokens().DeleteRefreshTokenByHash(ctx, cryptox.FingerprintToken(refreshToken))
}

// Me returns the profile of the given user.
func (s *AuthService) Me(ctx context.Context, userID string) (domain.User, error) {
	return loadUser(ctx, s.Store, userID)
}

// UpdateProfile changes the display name.
func (s *AuthService) UpdateProfile(ctx context.Context, userID, name string) (domain.User, error) {
	name, err := validateName(name)
	if err != nil {
		return domain.User{}, err
	}
	if err := s.Store.Users().UpdateName(ctx, userID, name); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return loadUser(ctx, s.Store, userID)
}

// PromoteUser sets the role of the account registered under email. The new
// role shows up in access tokens from the next refresh.
func (s *AuthService) PromoteUser(ctx context.Context, email string, role domain.Role) (domain.User, error) {
	if !role.Valid() {
		return domain.User{}, validationf("unknown role %q", role)
	}
	u, err := s.Store.Users().GetUserByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	if err := s.Store.Users().UpdateRole(ctx, u.ID, role); err != nil {
		return domain.User{}, err
	}
	u.Role = role
	return u, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx)
}

// issuePair signs both tokens and stores the refresh fingerprint through st,
// which may be a transaction.
func (s *AuthService) issuePair(ctx context.Context, st store.Store, u domain.User, now time.Time) (domain.TokenPair, error) {
	signer := s.KeyManager.GetSigner()

	access, err := signer.Sign(jwtx.NewAccessClaims(u.ID, string(u.Role), s.Issuer, s.AccessTTL, now))
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := signer.Sign(jwtx.NewRefreshClaims(u.ID, s.Issuer, s.RefreshTTL, now))
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("sign refresh token: %w", err)
	}

	err = st.RefreshTokens().UpsertRefreshToken(ctx, domain.RefreshToken{
		ID:        idx.New().String(),
		UserID:    u.ID,
		TokenHash: cryptox.FingerprintToken(refresh),
		ExpiresAt: now.Add(s.RefreshTTL),
		CreatedAt: now,
	})
	if err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    s.AccessTTL,
	}, nil
}
