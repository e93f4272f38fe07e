// Package cloud finds, creates, reads and overwrites the single remote
// backup document associated with a credential, and drives the connection
// status machine around those operations.
package cloud

import (
	"context"
	"strings"

	"github.com/nexo-finance/nexo/internal/domain"
)

// Client is the per-provider backup document API. One remote document per
// credential; push overwrites, never merges.
type Client interface {
	// Verify checks the credential against the provider.
	Verify(ctx context.Context, apiKey string) error

	// SupportsDiscovery reports whether FindBackup can locate the document
	// from the credential alone. Providers without discovery need the
	// document id supplied out-of-band.
	SupportsDiscovery() bool

	// FindBackup returns the id of the backup document previously created
	// by this system, ErrBackupNotFound when the provider is reachable but
	// holds none, or a transport error when it could not check.
	FindBackup(ctx context.Context, apiKey string) (string, error)

	// Pull reads and decodes the backup document.
	Pull(ctx context.Context, apiKey, binID string) (*domain.Bundle, error)

	// Push writes the bundle. An empty binID creates a new document;
	// otherwise the existing one is overwritten. Returns the document id.
	Push(ctx context.Context, apiKey, binID string, b *domain.Bundle) (string, error)
}

// SanitizeKey normalizes a user-supplied credential: surrounding
// whitespace and quotes are stripped, as is a pasted auth-scheme prefix.
func SanitizeKey(key string) string {
	key = strings.TrimSpace(key)
	key = strings.Trim(key, `"'`)
	for _, prefix := range []string{"Bearer ", "bearer ", "token ", "Token "} {
		if strings.HasPrefix(key, prefix) {
			key = key[len(prefix):]
			break
		}
	}
	return strings.TrimSpace(key)
}
