package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/studyhall-labs/studybuddy/internal/kv"
)

// EnsureIdentity returns the persisted participant identity, generating
// and persisting one on first run. The identity is random and
// human-unreadable; it never changes without an external reset of the
// underlying storage.
func EnsureIdentity(ctx context.Context, s kv.Store) (string, error) {
	var id string
	err := kv.Update(ctx, s, KeyIdentity, func(current string, found bool) (string, error) {
		if found && current != "" {
			id = current
			return current, nil
		}
		id = newIdentity()
		return id, nil
	})
	if err != nil {
		return "", fmt.Errorf("ensure identity: %w", err)
	}
	return id, nil
}

func newIdentity() string {
	return "user_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
