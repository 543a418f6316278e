// Package keyring keeps wird's secrets in the OS keyring instead of on disk.
package keyring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/wird/internal/constants"
)

var (
	// ErrNotFound is returned when the secret is not in the keyring
	ErrNotFound = errors.New("secret not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Secret names one keyring entry under the wird service
type Secret string

const (
	// SecretDatabase is the PostgreSQL connection string
	SecretDatabase Secret = "database-connection"
	// SecretTelegramToken is the Telegram bot token used for delivery
	SecretTelegramToken Secret = "telegram-token"
)

// Secrets lists every secret wird knows about.
func Secrets() []Secret {
	return []Secret{SecretDatabase, SecretTelegramToken}
}

// ParseSecret maps a user-supplied name onto a Secret.
func ParseSecret(name string) (Secret, error) {
	for _, s := range Secrets() {
		if strings.EqualFold(name, string(s)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown secret %q (known: %s, %s)", name, SecretDatabase, SecretTelegramToken)
}

// Get retrieves a secret. Returns ErrNotFound if nothing is stored.
func Get(secret Secret) (string, error) {
	value, err := keyring.Get(constants.AppName, string(secret))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return value, nil
}

func Set(secret Secret, value string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", secret)
	}
	if err := keyring.Set(constants.AppName, string(secret), value); err != nil {
		return fmt.Errorf("failed to store %s in keyring: %w", secret, err)
	}
	return nil
}

func Delete(secret Secret) error {
	err := keyring.Delete(constants.AppName, string(secret))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete %s from keyring: %w", secret, err)
	}
	return nil
}

// Resolve prefers an explicit value (flag or environment) and falls back to
// the keyring. It returns "" when neither has the secret.
func Resolve(secret Secret, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	value, err := Get(secret)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return value, err
}

// IsAvailable checks if the OS keyring is available on the current system.
// A missing check entry still means the keyring answered.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
