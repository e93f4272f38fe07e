package cloud

import (
	"errors"
	"fmt"

	"github.com/nexo-finance/nexo/internal/domain"
)

// Failure classes of cloud operations. Callers branch on these to produce
// provider-aware user messages: "no internet" is not "provider rejected the
// credential" is not "provider unreachable" is not "nothing to restore".
var (
	// ErrOffline is returned when the connectivity gate fails before any
	// network call is attempted.
	ErrOffline = errors.New("no internet connectivity")

	// ErrEmptyCredential is returned when the sanitized credential is empty.
	ErrEmptyCredential = errors.New("empty credential")

	// ErrInvalidCredential is returned when the provider rejects the
	// credential.
	ErrInvalidCredential = errors.New("provider rejected the credential")

	// ErrUnreachable is returned when the provider cannot be reached at
	// all. Distinct from ErrBackupNotFound: "could not check" is not "no
	// backup exists yet".
	ErrUnreachable = errors.New("backup provider unreachable")

	// ErrBackupNotFound is returned when the provider is reachable but
	// holds no backup document.
	ErrBackupNotFound = errors.New("no backup document found")

	// ErrMalformedPayload is returned when a remote document cannot be
	// decoded as a data bundle.
	ErrMalformedPayload = errors.New("malformed backup payload")

	// ErrMissingBinID is returned when a restore needs an explicit
	// document id and none is configured.
	ErrMissingBinID = errors.New("missing backup document id")

	// ErrDiscoveryUnsupported is returned by providers that cannot locate
	// a backup from the credential alone.
	ErrDiscoveryUnsupported = errors.New("provider does not support backup discovery")

	// ErrNotConfigured is returned when a sync is requested without an
	// enabled cloud configuration.
	ErrNotConfigured = errors.New("cloud backup not configured")

	// ErrUnknownProvider is returned for a provider with no registered
	// client.
	ErrUnknownProvider = errors.New("unknown cloud provider")
)

// SyncError wraps a failure with the operation and provider it came from.
type SyncError struct {
	Op       string
	Provider domain.Provider
	Err      error
}

// Error implements the error interface.
func (e *SyncError) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("cloud: %s (%s): %v", e.Op, e.Provider, e.Err)
	}
	return fmt.Sprintf("cloud: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *SyncError) Unwrap() error { return e.Err }

// Is implements error matching for errors.Is.
func (e *SyncError) Is(target error) bool { return errors.Is(e.Err, target) }

func opErr(op string, provider domain.Provider, err error) error {
	if err == nil {
		return nil
	}
	return &SyncError{Op: op, Provider: provider, Err: err}
}
