package domain

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseBundle_MalformedKeyIsolated(t *testing.T) {
	raw := []byte(`{
		"transactions": [{"id":"t1","title":"Café","amount":3,"type":"EXPENSE","category":"Comida","date":"2026-01-10T00:00:00Z"}],
		"debts": "this is not a debt list",
		"userCurrency": "MXN"
	}`)

	b, keyErrs, err := ParseBundle(raw)
	if err != nil {
		t.Fatalf("ParseBundle failed: %v", err)
	}
	if len(keyErrs) != 1 || keyErrs[0].Key != "debts" {
		t.Fatalf("keyErrs = %v, want exactly one for debts", keyErrs)
	}
	if len(b.Transactions) != 1 || b.Transactions[0].ID != "t1" {
		t.Errorf("transactions = %+v, want the valid key applied", b.Transactions)
	}
	if !b.Transactions[0].Amount.Equal(decimal.NewFromInt(3)) {
		t.Errorf("amount = %s, want 3", b.Transactions[0].Amount)
	}
	if b.UserCurrency != "MXN" {
		t.Errorf("userCurrency = %q, want MXN", b.UserCurrency)
	}
	if b.Debts != nil {
		t.Errorf("debts = %+v, want absent after decode failure", b.Debts)
	}
}

func TestParseBundle_UnknownKeysIgnored(t *testing.T) {
	b, keyErrs, err := ParseBundle([]byte(`{"trackers": [1,2,3], "quickActions": []}`))
	if err != nil {
		t.Fatalf("ParseBundle failed: %v", err)
	}
	if len(keyErrs) != 0 {
		t.Errorf("keyErrs = %v, want none", keyErrs)
	}
	if b.QuickActions == nil || len(b.QuickActions) != 0 {
		t.Errorf("quickActions = %v, want present-but-empty", b.QuickActions)
	}
}

func TestParseBundle_NotAnObject(t *testing.T) {
	if _, _, err := ParseBundle([]byte(`[1,2,3]`)); err == nil {
		t.Error("Expected error for non-object payload")
	}
}

func TestBundle_AmountsEncodeAsNumbers(t *testing.T) {
	b := &Bundle{
		Transactions: []Transaction{{ID: "t1", Title: "x", Amount: decimal.RequireFromString("12.5"), Type: Income}},
	}
	data, err := b.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if got := string(data); !strings.Contains(got, `"amount": 12.5`) {
		t.Errorf("encoded bundle should carry bare numeric amounts, got:\n%s", got)
	}
}
