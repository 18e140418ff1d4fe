package cryptox

import (
	"crypto/rand"
	"encoding/base32"
	"encoding/binary"
	"fmt"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/hotp"
)

// OTPDigits is the length of emailed one-time passcodes.
const OTPDigits = 6

// GenerateOTP returns a numeric one-time passcode. Each code is an HOTP value
// over a fresh random secret and counter, so codes are uniformly distributed
// and zero padded.
func GenerateOTP() (string, error) {
	secret := make([]byte, 20)
	if _, err := rand.Read(secret); err != nil {
		return "", fmt.Errorf("cryptox: otp secret: %w", err)
	}
	var counter [8]byte
	if _, err := rand.Read(counter[:]); err != nil {
		return "", fmt.Errorf("cryptox: otp counter: %w", err)
	}

	code, err := hotp.GenerateCodeCustom(
		base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(secret),
		binary.BigEndian.Uint64(counter[:]),
		hotp.ValidateOpts{Digits: otp.DigitsSix, Algorithm: otp.AlgorithmSHA1},
	)
	if err != nil {
		return "", fmt.Errorf("cryptox: otp generate: %w", err)
	}
	return code, nil
}

// HashOTP binds a code to the email it was issued for. Only this value is stored.
func HashOTP(key []byte, email, code string) string {
	return KeyedFingerprint(key, email, code)
}
