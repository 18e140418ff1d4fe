package app

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
	"log/slog"

	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/jwtx"
	"golang.org/x/crypto/hkdf"
)

// Keys bundles every secret the services sign or hash with.
type Keys struct {
	Manager     *jwtx.KeyManager
	ResetTokens *jwtx.PurposeSigner
	OTPKey      []byte
}

// InitKeys generates the access token signing keys and derives the reset
// token and OTP keys from the configured reset secret.
//
// Signing keys live in memory only, so all sessions end on restart. Without
// TASKFLOW_RESET_SECRET a random secret is used and pending password resets
// do not survive a restart either.
func InitKeys(cfg Config, logger *slog.Logger) (*Keys, error) {
	logger.Info("initializing ephemeral key manager",
		"algorithm", cfg.Algorithm,
		"num_keys", cfg.NumKeys,
	)

	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
		Algorithm: cfg.Algorithm,
		Issuer:    cfg.Issuer,
		NumKeys:   cfg.NumKeys,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize key manager: %w", err)
	}
	logger.Info("generated ephemeral signing keys",
		"algorithm", km.Algorithm(),
		"issuer", cfg.Issuer,
	)

	secret := []byte(cfg.ResetSecret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("failed to generate reset secret: %w", err)
		}
		logger.Warn("TASKFLOW_RESET_SECRET not set, pending password resets will not survive a restart")
	}

	tokenKey, err := deriveKey(secret, "taskflow reset token")
	if err != nil {
		return nil, err
	}
	otpKey, err := deriveKey(secret, "taskflow otp hash")
	if err != nil {
		return nil, err
	}

	resetTokens, err := jwtx.NewPurposeSigner(tokenKey, cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize reset token signer: %w", err)
	}

	return &Keys{Manager: km, ResetTokens: resetTokens, OTPKey: otpKey}, nil
}

// deriveKey expands secret into an independent 32 byte key per purpose.
func deriveKey(secret []byte, info string) ([]byte, error) {
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(info)), key); err != nil {
		return nil, fmt.Errorf("failed to derive %s key: %w", info, err)
	}
	return key, nil
}
