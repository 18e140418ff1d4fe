package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	pepperMu sync.RWMutex
	pepper   string
)

// LoadPepper reads the pepper from path, generating and persisting a new one
// when the file does not exist. Every password hash depends on it, so losing
// the file invalidates all stored passwords.
func LoadPepper(path string) error {
	path = filepath.Clean(path)

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return err
		}
		buf := make([]byte, keyLength)
		if _, err := rand.Read(buf); err != nil {
			return err
		}
		raw = []byte(base64.RawURLEncoding.EncodeToString(buf))
		if err := os.WriteFile(path, raw, 0o600); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	SetPepper(strings.TrimSpace(string(raw)))
	return nil
}

// SetPepper replaces the pepper in memory. Tests use it directly.
func SetPepper(p string) {
	pepperMu.Lock()
	defer pepperMu.Unlock()
	pepper = p
}

func currentPepper() string {
	pepperMu.RLock()
	defer pepperMu.RUnlock()
	return pepper
}
