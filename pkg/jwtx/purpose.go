package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// PurposeClaims are carried by short-lived HS256 tokens that authorize exactly
// one action, such as a password reset.
type PurposeClaims struct {
	jwt.RegisteredClaims

	Purpose string `json:"purpose"`
	Email   string `json:"email"`

	// State fingerprints the account state the token was minted against.
	// Once that state changes the token stops validating.
	State string `json:"state"`
}

// PurposeSigner mints and checks purpose tokens with a shared secret.
type PurposeSigner struct {
	secret []byte
	issuer string
}

func NewPurposeSigner(secret []byte, issuer string) (*PurposeSigner, error) {
	if len(secret) < 32 {
		return nil, errors.New("jwtx: purpose secret must be at least 32 bytes")
	}
	return &PurposeSigner{secret: secret, issuer: issuer}, nil
}

func (p *PurposeSigner) Sign(purpose, email, state string, ttl time.Duration, now time.Time) (string, error) {
	claims := PurposeClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    p.issuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Purpose: purpose,
		Email:   email,
		State:   state,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}

// Parse validates signature, expiry and issuer and that the token was minted
// for purpose.
func (p *PurposeSigner) Parse(token, purpose string) (PurposeClaims, error) {
	var claims PurposeClaims
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(p.issuer),
		jwt.WithExpirationRequired(),
	)
	if _, err := parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return p.secret, nil
	}); err != nil {
		return PurposeClaims{}, mapParseError(err)
	}
	if claims.Purpose != purpose {
		return PurposeClaims{}, fmt.Errorf("%w: %q", ErrWrongPurpose, claims.Purpose)
	}
	return claims, nil
}
