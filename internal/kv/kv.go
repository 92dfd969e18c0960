// Package kv is the persistence boundary of the service. Exactly two
// logical records live behind it: the participant identity and the
// serialized message log.
package kv

import "context"

// Store reads and writes string values by key. Absence of a key is a
// valid state, not an error.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// UpdateFunc transforms the current value under a key into its replacement.
// found is false when the key has never been written.
type UpdateFunc func(current string, found bool) (string, error)

// Updater is implemented by backends that can apply a read-modify-write
// cycle without losing concurrent updates (storage-side transaction or a
// process-local lock).
type Updater interface {
	Update(ctx context.Context, key string, fn UpdateFunc) error
}

// Update applies fn to the value under key. It uses the backend's atomic
// update when offered and falls back to a plain get-then-set otherwise,
// which is safe only with a single writer.
func Update(ctx context.Context, s Store, key string, fn UpdateFunc) error {
	if u, ok := s.(Updater); ok {
		return u.Update(ctx, key, fn)
	}

	current, found, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	next, err := fn(current, found)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, next)
}
