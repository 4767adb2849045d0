// Package kvstore defines the key-value storage boundary the rest of
// the application persists through: JSON blobs under string keys.
package kvstore

import "errors"

// ErrNotFound is returned by Get when no value exists under the key.
var ErrNotFound = errors.New("kvstore: key not found")

// Store is the persistence contract. Implementations must be safe for
// use from a single goroutine; the application is event-driven and
// never issues overlapping operations.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error

	// Remove deletes the value under key. Removing a missing key is
	// not an error.
	Remove(key string) error

	// Close releases any underlying resources.
	Close() error
}
