package jwtx

import (
	"fmt"
	"math/rand/v2"

	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/cryptox"
)

const (
	AlgorithmES256 = "ES256"
	AlgorithmEdDSA = "EdDSA"
)

// KeyManager owns the signing keys of one process together with the KeySet
// and Verifier built from them.
type KeyManager struct {
	Verifier Verifier
	KeySet   *KeySet

	algorithm string
	signers   []Signer
}

type KeyManagerOptions struct {
	// Algorithm is EdDSA or ES256.
	Algorithm string

	// Issuer is stamped into and required of every token.
	Issuer string

	// NumKeys defaults to 1 and is capped at 10.
	NumKeys int
}

// NewEphemeralKeyManager generates keys that only exist in memory. Tokens
// issued before a restart stop verifying after it.
func NewEphemeralKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, fmt.Errorf("jwtx: Issuer is required")
	}
	if opts.Algorithm != AlgorithmEdDSA && opts.Algorithm != AlgorithmES256 {
		return nil, fmt.Errorf("jwtx: unsupported algorithm %q (supported: ES256, EdDSA)", opts.Algorithm)
	}

	n := min(max(opts.NumKeys, 1), 10)
	keyset := NewKeySet()
	signers := make([]Signer, 0, n)

	for i := range n {
		kid, err := cryptox.GenerateToken(cryptox.TokenSize128)
		if err != nil {
			return nil, err
		}

		var pemKey []byte
		if opts.Algorithm == AlgorithmEdDSA {
			pemKey, err = cryptox.GenerateEd25519Key()
		} else {
			pemKey, err = cryptox.GenerateES256Key()
		}
		if err != nil {
			return nil, fmt.Errorf("jwtx: generate key %d: %w", i+1, err)
		}

		signer, err := NewSigner(opts.Algorithm, "taskflow-"+kid, pemKey)
		if err != nil {
			return nil, err
		}
		if err := keyset.Add(signer.PublicJWK()); err != nil {
			return nil, err
		}
		signers = append(signers, signer)
	}

	return &KeyManager{
		Verifier:  NewVerifier(keyset, opts.Algorithm, opts.Issuer),
		KeySet:    keyset,
		algorithm: opts.Algorithm,
		signers:   signers,
	}, nil
}

func (km *KeyManager) Algorithm() string { return km.algorithm }

func (km *KeyManager) IsReady() bool { return km.KeySet.IsReady() }

// GetSigner picks one of the signing keys at random.
func (km *KeyManager) GetSigner() Signer {
	if len(km.signers) == 1 {
		return km.signers[0]
	}
	return km.signers[rand.IntN(len(km.signers))]
}
