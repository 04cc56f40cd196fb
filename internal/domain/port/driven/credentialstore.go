package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/quickdynalist/internal/domain/model"
)

// ErrEncryptionKeyNotSet is returned by CredentialStore operations when an
// encrypted value is read but QUICKDYNALIST_SECRET_KEY has not been configured.
var ErrEncryptionKeyNotSet = errors.New("encryption key not configured: set QUICKDYNALIST_SECRET_KEY")

// CredentialStore defines the driven port for credential persistence.
// The adapter layer is responsible for encryption/decryption; this interface
// operates on plaintext values at the domain boundary.
type CredentialStore interface {
	// Set stores or replaces the credential for the given service and key.
	Set(ctx context.Context, service, key, plaintext string) error

	// Get retrieves the plaintext credential for the given service and key.
	// Returns ("", nil) if no credential exists.
	Get(ctx context.Context, service, key string) (string, error)

	// List returns all stored credentials. Values are decrypted plaintext.
	List(ctx context.Context) ([]model.Credential, error)
}
