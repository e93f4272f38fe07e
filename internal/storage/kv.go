// Package storage provides the local persistent key-value capability the
// rest of the application writes through. Values are opaque JSON-encoded
// strings, one logical value per key.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Persisted state keys.
const (
	KeyTransactions     = "nexo_transactions"
	KeyDebts            = "nexo_debts"
	KeySheets           = "nexo_sheets"
	KeyLegacySheet      = "nexo_sheet_sparse"
	KeyQuickActions     = "nexo_quick_actions"
	KeyCustomCategories = "nexo_custom_categories"
	KeyProfile          = "nexo_profile"
	KeyCurrency         = "nexo_currency"
	KeyDisplayCurrency  = "nexo_display_currency"
	KeyOnboarded        = "nexo_onboarded"
)

// KV is the synchronous string-valued store capability. Implementations are
// best-effort: callers treat write failures as non-fatal.
type KV interface {
	// Get returns the value for key and whether it exists.
	Get(key string) (string, bool)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// Remove deletes key. Removing a missing key is a no-op.
	Remove(key string) error
}

// FileKV stores each key as its own file inside a data directory. Writes go
// through a temp file followed by a rename so a crash never leaves a
// half-written value behind.
type FileKV struct {
	mu  sync.RWMutex
	dir string
}

// OpenFileKV creates the data directory if needed and returns a store
// rooted at it.
func OpenFileKV(dir string) (*FileKV, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %q: %w", dir, err)
	}
	return &FileKV{dir: dir}, nil
}

func (kv *FileKV) path(key string) string {
	// Keys are fixed identifiers, but guard against separators anyway.
	safe := strings.ReplaceAll(key, string(os.PathSeparator), "_")
	return filepath.Join(kv.dir, safe+".json")
}

// Get implements KV.
func (kv *FileKV) Get(key string) (string, bool) {
	kv.mu.RLock()
	defer kv.mu.RUnlock()

	data, err := os.ReadFile(kv.path(key))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Set implements KV.
func (kv *FileKV) Set(key, value string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	path := kv.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0o600); err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("commit %q: %w", key, err)
	}
	return nil
}

// Remove implements KV.
func (kv *FileKV) Remove(key string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	if err := os.Remove(kv.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}

// MemKV is an in-memory KV for tests.
type MemKV struct {
	mu     sync.RWMutex
	values map[string]string

	// SetErr, when non-nil, is returned by every Set. Lets tests exercise
	// the best-effort persistence path.
	SetErr error
}

// NewMemKV returns an empty in-memory store.
func NewMemKV() *MemKV {
	return &MemKV{values: make(map[string]string)}
}

// Get implements KV.
func (kv *MemKV) Get(key string) (string, bool) {
	kv.mu.RLock()
	defer kv.mu.RUnlock()
	v, ok := kv.values[key]
	return v, ok
}

// Set implements KV.
func (kv *MemKV) Set(key, value string) error {
	if kv.SetErr != nil {
		return kv.SetErr
	}
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.values[key] = value
	return nil
}

// Remove implements KV.
func (kv *MemKV) Remove(key string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	delete(kv.values, key)
	return nil
}

var (
	_ KV = (*FileKV)(nil)
	_ KV = (*MemKV)(nil)
)
