package domain

import "time"

// TokenPair is what register, login and refresh hand back to the caller:
// the short-lived access token (JWT) and the refresh token (JWT).
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration
}

// RefreshToken models the stored refresh token record. There is at most one
// row per user; login replaces it and logout removes it.
type RefreshToken struct {
	ID        string
	UserID    string
	TokenHash string // deterministic fingerprint (base64url SHA-256)
	ExpiresAt time.Time
	CreatedAt time.Time
}

// PasswordResetCode is the stored one-time passcode for the forgot-password
// flow. Only a keyed hash of the code is kept.
type PasswordResetCode struct {
	ID        string
	Email     string
	CodeHash  string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the code is past its expiry at now.
func (c PasswordResetCode) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}
