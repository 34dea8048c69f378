// Package credential stores account passwords in the system keyring.
package credential

import (
	"errors"
	"fmt"
	"os"

	"github.com/99designs/keyring"
)

const serviceName = "vimail"

// PasswordEnv overrides every other password source when set.
const PasswordEnv = "VIMAIL_PASSWORD"

// ErrNotFound is returned by Get when no credential is stored under a key.
var ErrNotFound = keyring.ErrKeyNotFound

// Store reads and writes credentials by key.
type Store struct {
	ring keyring.Keyring
}

// Open returns a store backed by the system keyring. The encrypted file
// backend under dir is used where no native keyring exists.
func Open(dir string) (*Store, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  dir,
		FilePasswordFunc:         keyring.FixedStringPrompt("vimail-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return NewStore(ring), nil
}

// NewStore wraps an already opened keyring.
func NewStore(ring keyring.Keyring) *Store {
	return &Store{ring: ring}
}

// Get retrieves a credential value by key.
func (s *Store) Get(key string) (string, error) {
	item, err := s.ring.Get(key)
	if err != nil {
		return "", fmt.Errorf("getting credential %q: %w", key, err)
	}
	return string(item.Data), nil
}

// Set stores a credential value by key.
func (s *Store) Set(key, value string) error {
	err := s.ring.Set(keyring.Item{
		Key:   key,
		Data:  []byte(value),
		Label: "vimail " + key,
	})
	if err != nil {
		return fmt.Errorf("setting credential %q: %w", key, err)
	}
	return nil
}

// Delete removes a credential by key.
func (s *Store) Delete(key string) error {
	if err := s.ring.Remove(key); err != nil {
		return fmt.Errorf("deleting credential %q: %w", key, err)
	}
	return nil
}

// Source names where a resolved password came from.
type Source int

const (
	FromEnv Source = iota
	FromKeyring
	FromPrompt
)

// Resolve finds the password for key: the environment first, then the
// store, then prompt. A nil store is skipped. Keyring errors other than
// a missing key are returned.
func Resolve(key string, store *Store, prompt func() (string, error)) (string, Source, error) {
	if pw, ok := os.LookupEnv(PasswordEnv); ok && pw != "" {
		return pw, FromEnv, nil
	}
	if store != nil {
		pw, err := store.Get(key)
		switch {
		case err == nil:
			return pw, FromKeyring, nil
		case !errors.Is(err, ErrNotFound):
			return "", FromKeyring, err
		}
	}
	pw, err := prompt()
	if err != nil {
		return "", FromPrompt, err
	}
	return pw, FromPrompt, nil
}
