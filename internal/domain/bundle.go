package domain

import (
	"encoding/json"
	"fmt"
)

// Bundle is the full or partial serialized snapshot of all collections,
// used for both local export and cloud backup. Any subset of keys may be
// present; the same shape is accepted back on import, so export/import
// round-trips.
type Bundle struct {
	Transactions     []Transaction `json:"transactions,omitempty"`
	Debts            []Debt        `json:"debts,omitempty"`
	CustomCategories []string      `json:"customCategories,omitempty"`
	QuickActions     []QuickAction `json:"quickActions,omitempty"`
	UserProfile      *UserProfile  `json:"userProfile,omitempty"`
	UserCurrency     string        `json:"userCurrency,omitempty"`
	Sheets           []Sheet       `json:"sheets,omitempty"`
}

// KeyError records a bundle key that failed to decode. Other keys of the
// same bundle are still applied.
type KeyError struct {
	Key string
	Err error
}

func (e KeyError) Error() string {
	return fmt.Sprintf("bundle key %q: %v", e.Key, e.Err)
}

func (e KeyError) Unwrap() error { return e.Err }

// ParseBundle decodes an externally supplied bundle. Each known key is
// decoded independently so one malformed key cannot poison the others;
// unknown keys are ignored. The returned KeyError slice lists the keys
// that were dropped.
func ParseBundle(data []byte) (*Bundle, []KeyError, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("parse bundle: %w", err)
	}

	b := &Bundle{}
	var keyErrs []KeyError
	decode := func(key string, dst any) {
		msg, ok := raw[key]
		if !ok {
			return
		}
		if err := json.Unmarshal(msg, dst); err != nil {
			keyErrs = append(keyErrs, KeyError{Key: key, Err: err})
		}
	}

	decode("transactions", &b.Transactions)
	decode("debts", &b.Debts)
	decode("customCategories", &b.CustomCategories)
	decode("quickActions", &b.QuickActions)
	decode("userProfile", &b.UserProfile)
	decode("userCurrency", &b.UserCurrency)
	decode("sheets", &b.Sheets)

	return b, keyErrs, nil
}

// Encode serializes the bundle for export or backup.
func (b *Bundle) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode bundle: %w", err)
	}
	return data, nil
}
