package ledger

import (
	"github.com/nexo-finance/nexo/internal/domain"
	"github.com/nexo-finance/nexo/internal/storage"
)

// Import merges an externally supplied bundle into the store. Only keys
// present in the bundle replace their collection, wholesale; absent keys
// leave current state untouched, so a partial bundle is a partial merge
// and not a reset. Keys are applied independently of one another.
//
// For slice-valued keys, a nil slice means absent and a non-nil empty
// slice means present-but-empty (which clears the collection).
func (s *Store) Import(b *domain.Bundle) {
	if b == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if b.Transactions != nil {
		s.transactions = b.Transactions
		s.persist(storage.KeyTransactions, s.transactions)
	}
	if b.Debts != nil {
		s.debts = b.Debts
		s.persist(storage.KeyDebts, s.debts)
	}
	if b.CustomCategories != nil {
		s.categories = b.CustomCategories
		s.persist(storage.KeyCustomCategories, s.categories)
	}
	if b.QuickActions != nil {
		s.quickActions = b.QuickActions
		s.persist(storage.KeyQuickActions, s.quickActions)
	}
	if b.UserProfile != nil {
		s.profile = *b.UserProfile
		s.persist(storage.KeyProfile, s.profile)
	}
	if b.UserCurrency != "" {
		s.userCurrency = b.UserCurrency
		s.displayCurrency = b.UserCurrency
		s.persistString(storage.KeyCurrency, s.userCurrency)
		s.persistString(storage.KeyDisplayCurrency, s.displayCurrency)
	}
	if b.Sheets != nil {
		s.sheets = b.Sheets
		s.persist(storage.KeySheets, s.sheets)
	}
}

// Export builds the full snapshot bundle. Every key is present, including
// empty collections, so the bundle restores a store to a known state.
func (s *Store) Export() *domain.Bundle {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile := s.profile
	b := &domain.Bundle{
		Transactions:     make([]domain.Transaction, len(s.transactions)),
		Debts:            make([]domain.Debt, len(s.debts)),
		CustomCategories: make([]string, len(s.categories)),
		QuickActions:     make([]domain.QuickAction, len(s.quickActions)),
		UserProfile:      &profile,
		UserCurrency:     s.userCurrency,
		Sheets:           make([]domain.Sheet, len(s.sheets)),
	}
	copy(b.Transactions, s.transactions)
	copy(b.Debts, s.debts)
	copy(b.CustomCategories, s.categories)
	copy(b.QuickActions, s.quickActions)
	copy(b.Sheets, s.sheets)
	return b
}
