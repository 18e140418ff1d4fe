package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/domain"
	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/store"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/cryptox"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/idx"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/jwtx"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/mailer"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/slogx"
)

const (
	PurposePasswordReset = "password_reset"

	DefaultOTPTTL        = 10 * time.Minute
	DefaultResetTokenTTL = 15 * time.Minute
)

// PasswordResetService runs the forgot-password flow: an emailed one-time
// code is exchanged for a short-lived reset token, which authorizes exactly
// one password change.
type PasswordResetService struct {
	Store  store.Store
	Mailer mailer.Sender
	Tokens *jwtx.PurposeSigner

	// OTPKey keys the stored code hashes.
	OTPKey []byte

	OTPTTL   time.Duration
	ResetTTL time.Duration

	// Now defaults to time.Now.
	Now func() time.Time
}

func (s *PasswordResetService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ForgotPassword issues a code for email. Unknown emails succeed without
// side effects. A mail failure is reported but the stored code stays valid.
func (s *PasswordResetService) ForgotPassword(ctx context.Context, email string) error {
	l := slogx.FromContext(ctx)
	email = domain.NormalizeEmail(email)
	if email == "" {
		return validationf("Email is required")
	}

	if _, err := s.Store.Users().GetUserByEmail(ctx, email); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("password reset requested for unknown email")
			return nil
		}
		return err
	}

	code, err := cryptox.GenerateOTP()
	if err != nil {
		return err
	}

	now := s.now()
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.PasswordResetCodes().DeleteCodesByEmail(ctx, email); err != nil {
			return err
		}
		return tx.PasswordResetCodes().UpsertCode(ctx, domain.PasswordResetCode{
			ID:        idx.New().String(),
			Email:     email,
			CodeHash:  cryptox.HashOTP(s.OTPKey, email, code),
			ExpiresAt: now.Add(s.OTPTTL),
			CreatedAt: now,
		})
	})
	if err != nil {
		return err
	}

	msg, err := otpMail(email, code, s.OTPTTL)
	if err != nil {
		return err
	}
	if err := s.Mailer.Send(ctx, msg); err != nil {
		l.Error("failed to send password reset code", slogx.Err(err))
		return ErrMailFailed
	}
	return nil
}

// VerifyOTP consumes the code issued for email and returns a reset token.
func (s *PasswordResetService) VerifyOTP(ctx context.Context, email, code string) (string, error) {
	email = domain.NormalizeEmail(email)
	code = strings.TrimSpace(code)
	if email == "" || code == "" {
		return "", validationf("Email and OTP required")
	}

	rec, err := s.Store.PasswordResetCodes().GetCodeByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrOTPNotFound
		}
		return "", err
	}

	now := s.now()
	if rec.Expired(now) {
		if err := s.Store.PasswordResetCodes().DeleteCodesByEmail(ctx, email); err != nil {
			return "", err
		}
		return "", ErrOTPExpired
	}
	if !cryptox.EqualFingerprints(rec.CodeHash, cryptox.HashOTP(s.OTPKey, email, code)) {
		return "", ErrOTPInvalid
	}

	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrOTPNotFound
		}
		return "", err
	}

	if err := s.Store.PasswordResetCodes().DeleteCodesByEmail(ctx, email); err != nil {
		return "", err
	}

	return s.Tokens.Sign(PurposePasswordReset, email, passwordState(u.PasswordHash), s.ResetTTL, now)
}

// ResetPassword sets a new password for the account the reset token was
// issued to and signs the user out everywhere.
func (s *PasswordResetService) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	l := slogx.FromContext(ctx)
	if strings.TrimSpace(resetToken) == "" {
		return validationf("Token and password required")
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	claims, err := s.Tokens.Parse(strings.TrimSpace(resetToken), PurposePasswordReset)
	if err != nil {
		l.Info("reset token rejected", slogx.Err(err))
		return ErrInvalidResetToken
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetUserByEmail(ctx, claims.Email)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidResetToken
			}
			return err
		}
		// a token only works against the password it was minted for
		if !cryptox.EqualFingerprints(claims.State, passwordState(u.PasswordHash)) {
			return ErrInvalidResetToken
		}
		if err := tx.Users().UpdatePasswordHash(ctx, u.ID, hash); err != nil {
			return err
		}
		if err := tx.RefreshTokens().DeleteUserRefreshTokens(ctx, u.ID); err != nil {
			return err
		}
		l.Info("password reset", slog.String("user_id", u.ID))
		return nil
	})
}

func passwordState(hash string) string {
	return cryptox.FingerprintToken(hash)
}
