// Package cookie implements spec §4.B: session-ID generation, HMAC
// signing, append-only persistence to cookies.txt, and verification.
//
// The HMAC secret itself is not hardcoded: it is stored in the OS
// keyring (Keychain / Secret Service / Credential Manager) with a
// file-based fallback when no keyring is available, adapted from the
// same pattern the teacher repo uses for its credential manager.
package cookie

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zalando/go-keyring"

	"github.com/webserv/webserv/pkg/logger"
)

const (
	keyringService = "webserv"
	keyringField   = "cookie-signing-secret"
	keyFileName    = "cookie.key"
	keyFileMode    = 0600
)

// SecretStore supplies the master secret from which New derives the
// Service's HMAC signing key.
type SecretStore interface {
	GetSecret() ([]byte, error)
	SetSecret() ([]byte, error)
}

// osKeyring stores the master secret in the operating system's native
// keyring service.
type osKeyring struct{}

func (osKeyring) SetSecret() ([]byte, error) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, err
	}
	if err := keyring.Set(keyringService, keyringField, hex.EncodeToString(secret)); err != nil {
		return nil, err
	}
	return secret, nil
}

func (osKeyring) GetSecret() ([]byte, error) {
	s, err := keyring.Get(keyringService, keyringField)
	if err != nil {
		return nil, err
	}
	return hex.DecodeString(s)
}

// fileSecretStore persists the master secret as a 0600 hex file, used
// when the OS keyring is unavailable (headless CI, minimal containers).
type fileSecretStore struct {
	dir string
}

func (f fileSecretStore) path() string {
	return filepath.Join(f.dir, keyFileName)
}

func (f fileSecretStore) SetSecret() ([]byte, error) {
	if err := os.MkdirAll(f.dir, 0755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generate secret: %w", err)
	}
	if err := os.WriteFile(f.path(), []byte(hex.EncodeToString(secret)), keyFileMode); err != nil {
		return nil, fmt.Errorf("write secret: %w", err)
	}
	return secret, nil
}

func (f fileSecretStore) GetSecret() ([]byte, error) {
	data, err := os.ReadFile(f.path())
	if err != nil {
		return nil, err
	}
	secret, err := hex.DecodeString(string(data))
	if err != nil {
		return nil, fmt.Errorf("invalid secret format: %w", err)
	}
	return secret, nil
}

// fallbackSecretStore tries the OS keyring first, falling back to a file
// in configDir when the keyring is unavailable.
type fallbackSecretStore struct {
	primary  SecretStore
	fallback SecretStore
	log      logger.Logger
}

// NewSecretStore returns a SecretStore that prefers the OS keyring and
// falls back to a file under configDir, logging a warning when it does.
func NewSecretStore(configDir string, l logger.Logger) SecretStore {
	return &fallbackSecretStore{
		primary:  osKeyring{},
		fallback: fileSecretStore{dir: configDir},
		log:      l,
	}
}

func (f *fallbackSecretStore) GetSecret() ([]byte, error) {
	if s, err := f.primary.GetSecret(); err == nil {
		return s, nil
	}
	return f.fallback.GetSecret()
}

func (f *fallbackSecretStore) SetSecret() ([]byte, error) {
	if s, err := f.primary.SetSecret(); err == nil {
		return s, nil
	} else if f.log != nil {
		f.log.Warning("system keyring unavailable, using file-based secret storage: %v", err)
	}
	return f.fallback.SetSecret()
}

// EnsureSecret returns the existing master secret from store, generating
// and persisting a new one if none exists yet.
func EnsureSecret(store SecretStore) ([]byte, error) {
	if s, err := store.GetSecret(); err == nil && len(s) > 0 {
		return s, nil
	}
	return store.SetSecret()
}
