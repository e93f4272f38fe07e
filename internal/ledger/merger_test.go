package ledger

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/nexo-finance/nexo/internal/domain"
	"github.com/nexo-finance/nexo/internal/storage"
)

func decimalComparer() cmp.Option {
	return cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })
}

func TestExportImport_RoundTrip(t *testing.T) {
	src, _ := newTestStore(t)
	src.AddTransaction(domain.Transaction{Title: "Salario", Amount: decimal.NewFromInt(2500), Type: domain.Income, Category: "Salario"})
	debt, _, _ := src.CreateDebt(decimal.NewFromInt(100), domain.Lent, "Ana", nil, "prestamo")
	src.PayDebt(debt.ID, decimal.NewFromInt(40))
	src.SaveQuickAction(domain.QuickAction{Title: "Bus", Amount: decimal.NewFromInt(2), Type: domain.Expense, Category: "Transporte"})
	src.AddCustomCategory("Mascotas")
	src.UpsertSheet(domain.Sheet{Name: "Gastos", Data: map[string]string{"A1": "120"}})
	src.SetUserCurrency("MXN")

	// Serialize through the wire format, as a cloud backup would.
	raw, err := src.Export().Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	bundle, keyErrs, err := domain.ParseBundle(raw)
	if err != nil {
		t.Fatalf("ParseBundle failed: %v", err)
	}
	if len(keyErrs) != 0 {
		t.Fatalf("unexpected key errors: %v", keyErrs)
	}

	dst := Open(storage.NewMemKV(), zerolog.Nop())
	dst.Import(bundle)

	if diff := cmp.Diff(src.Transactions(), dst.Transactions(), decimalComparer()); diff != "" {
		t.Errorf("transactions mismatch (-src +dst):\n%s", diff)
	}
	if diff := cmp.Diff(src.Debts(), dst.Debts(), decimalComparer()); diff != "" {
		t.Errorf("debts mismatch (-src +dst):\n%s", diff)
	}
	if diff := cmp.Diff(src.QuickActions(), dst.QuickActions(), decimalComparer()); diff != "" {
		t.Errorf("quick actions mismatch (-src +dst):\n%s", diff)
	}
	if diff := cmp.Diff(src.Sheets(), dst.Sheets()); diff != "" {
		t.Errorf("sheets mismatch (-src +dst):\n%s", diff)
	}
	if diff := cmp.Diff(src.CustomCategories(), dst.CustomCategories()); diff != "" {
		t.Errorf("categories mismatch (-src +dst):\n%s", diff)
	}
	if dst.UserCurrency() != "MXN" {
		t.Errorf("userCurrency = %q, want MXN", dst.UserCurrency())
	}
	if diff := cmp.Diff(src.Profile(), dst.Profile(), decimalComparer()); diff != "" {
		t.Errorf("profile mismatch (-src +dst):\n%s", diff)
	}
}

func TestImport_PartialLeavesOtherCollectionsUntouched(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddTransaction(domain.Transaction{Title: "Salario", Amount: decimal.NewFromInt(100), Type: domain.Income})
	s.CreateDebt(decimal.NewFromInt(50), domain.Lent, "Ana", nil, "")
	s.UpsertSheet(domain.Sheet{Name: "Gastos"})

	s.Import(&domain.Bundle{
		QuickActions: []domain.QuickAction{{ID: "q1", Title: "Bus", Amount: decimal.NewFromInt(2), Type: domain.Expense}},
	})

	if n := len(s.QuickActions()); n != 1 {
		t.Errorf("quick actions = %d, want 1", n)
	}
	if n := len(s.Transactions()); n != 2 {
		t.Errorf("transactions = %d, want 2 untouched", n)
	}
	if n := len(s.Debts()); n != 1 {
		t.Errorf("debts = %d, want 1 untouched", n)
	}
	if n := len(s.Sheets()); n != 1 {
		t.Errorf("sheets = %d, want 1 untouched", n)
	}
}

func TestImport_PresentEmptyClearsCollection(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddTransaction(domain.Transaction{Title: "x", Amount: decimal.NewFromInt(1), Type: domain.Income})

	s.Import(&domain.Bundle{Transactions: []domain.Transaction{}})

	if n := len(s.Transactions()); n != 0 {
		t.Errorf("transactions = %d, want 0 after present-empty key", n)
	}
}

func TestImport_NilBundleIsNoOp(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddTransaction(domain.Transaction{Title: "x", Amount: decimal.NewFromInt(1), Type: domain.Income})

	s.Import(nil)

	if n := len(s.Transactions()); n != 1 {
		t.Errorf("transactions = %d, want 1", n)
	}
}

func TestImport_CurrencySetsBothCodes(t *testing.T) {
	s, _ := newTestStore(t)
	s.SetDisplayCurrency("EUR")

	s.Import(&domain.Bundle{UserCurrency: "COP"})

	if s.UserCurrency() != "COP" || s.DisplayCurrency() != "COP" {
		t.Errorf("currencies = %q/%q, want COP/COP", s.UserCurrency(), s.DisplayCurrency())
	}
}
