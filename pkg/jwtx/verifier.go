package jwtx

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed    = errors.New("jwtx: malformed token")
	ErrUnknownKID   = errors.New("jwtx: unknown kid")
	ErrInvalid      = errors.New("jwtx: invalid token")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrWrongUse     = errors.New("jwtx: wrong token use")
	ErrWrongPurpose = errors.New("jwtx: wrong token purpose")
)

// Verifier validates a JWT and returns its claims.
type Verifier interface {
	Verify(token string) (Claims, error)
}

type keySetVerifier struct {
	keys   *KeySet
	alg    string
	parser *jwt.Parser
}

// NewVerifier returns a Verifier accepting tokens signed with alg by a key in
// keys and issued by issuer.
func NewVerifier(keys *KeySet, alg, issuer string) Verifier {
	return &keySetVerifier{
		keys: keys,
		alg:  alg,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{alg}),
			jwt.WithIssuer(issuer),
			jwt.WithExpirationRequired(),
		),
	}
}

func (v *keySetVerifier) Verify(tokenStr string) (Claims, error) {
	var claims Claims
	_, err := v.parser.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		pub, err := v.keys.Get(kid)
		if err != nil {
			return nil, ErrUnknownKID
		}
		switch v.alg {
		case AlgorithmEdDSA:
			if k, ok := pub.(ed25519.PublicKey); ok {
				return k, nil
			}
		case AlgorithmES256:
			if k, ok := pub.(*ecdsa.PublicKey); ok {
				return k, nil
			}
		}
		return nil, fmt.Errorf("jwtx: key %q does not match %s", kid, v.alg)
	})
	if err != nil {
		return Claims{}, mapParseError(err)
	}
	return claims, nil
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	case errors.Is(err, ErrUnknownKID):
		return ErrUnknownKID
	}
	return fmt.Errorf("%w: %v", ErrInvalid, err)
}
