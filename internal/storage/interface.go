package storage

import "errors"

// ErrNotInitialized is returned by Load when the backing store does not exist yet
var ErrNotInitialized = errors.New("storage not initialized, run 'wird init' first")

// Provider is the durable key-value storage the scheduler persists to.
// Values are opaque strings; the settings blob is JSON and the day marker
// is a YYYY-MM-DD date.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// GetItem returns the stored value and whether the key exists.
	GetItem(key string) (string, bool, error)
	SetItem(key, value string) error
	// RemoveItem deletes key. Removing a missing key is not an error.
	RemoveItem(key string) error

	// Utils
	GetConfigPath() string
}
