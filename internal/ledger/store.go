// Package ledger owns the domain collections (transactions, debts, sheets,
// quick actions) plus the scalar profile state, and keeps the debt and
// transaction collections paired through every mutation. All writes go
// through this package; nothing else touches the collections directly.
package ledger

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/nexo-finance/nexo/internal/domain"
	"github.com/nexo-finance/nexo/internal/storage"
)

// LegacySheetColor is assigned to the sheet synthesized from the legacy
// single-sheet value.
const LegacySheetColor = "from-blue-500 to-cyan-500"

// Store is the single owner of all domain state. Mutators are synchronous
// and total: they either apply fully or not at all, and each one is
// followed by a best-effort durability commit of the affected keys.
type Store struct {
	mu  sync.Mutex
	kv  storage.KV
	log zerolog.Logger

	now   func() time.Time
	newID func() string

	transactions    []domain.Transaction
	debts           []domain.Debt
	sheets          []domain.Sheet
	quickActions    []domain.QuickAction
	categories      []string
	profile         domain.UserProfile
	userCurrency    string
	displayCurrency string
	onboarded       bool
}

// Open loads all persisted collections from kv and returns the store.
// Unparseable values are logged and replaced by their zero state rather
// than failing the whole load. The legacy single-sheet value is migrated
// into the modern sheets collection on first load.
func Open(kv storage.KV, log zerolog.Logger) *Store {
	s := &Store{
		kv:      kv,
		log:     log.With().Str("component", "ledger").Logger(),
		now:     time.Now,
		newID:   uuid.NewString,
		profile: domain.DefaultProfile(),
	}
	s.load()
	return s
}

func (s *Store) load() {
	s.loadKey(storage.KeyTransactions, &s.transactions)
	s.loadKey(storage.KeyDebts, &s.debts)
	s.loadKey(storage.KeyQuickActions, &s.quickActions)
	s.loadKey(storage.KeyCustomCategories, &s.categories)
	s.loadKey(storage.KeyProfile, &s.profile)

	if v, ok := s.kv.Get(storage.KeyCurrency); ok {
		s.userCurrency = v
	} else {
		s.userCurrency = s.profile.Currency
	}
	if v, ok := s.kv.Get(storage.KeyDisplayCurrency); ok {
		s.displayCurrency = v
	} else {
		s.displayCurrency = s.userCurrency
	}
	if v, ok := s.kv.Get(storage.KeyOnboarded); ok {
		s.onboarded = v == "true"
	}

	s.loadSheets()
}

// loadSheets reads the modern sheets collection, falling back to the legacy
// single-sheet value. The legacy key is kept after migration; only the
// modern collection is written.
func (s *Store) loadSheets() {
	if raw, ok := s.kv.Get(storage.KeySheets); ok {
		if err := json.Unmarshal([]byte(raw), &s.sheets); err != nil {
			s.log.Warn().Err(err).Str("key", storage.KeySheets).Msg("Dropping unparseable value")
		}
		return
	}

	raw, ok := s.kv.Get(storage.KeyLegacySheet)
	if !ok {
		return
	}
	var data map[string]string
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		s.log.Warn().Err(err).Str("key", storage.KeyLegacySheet).Msg("Dropping unparseable legacy sheet")
		return
	}

	migrated := domain.Sheet{
		ID:           s.newID(),
		Name:         "General",
		Data:         data,
		LastModified: s.now(),
		Color:        LegacySheetColor,
	}
	s.sheets = []domain.Sheet{migrated}
	s.persist(storage.KeySheets, s.sheets)
	s.log.Info().Str("sheet_id", migrated.ID).Msg("Migrated legacy sheet")
}

func (s *Store) loadKey(key string, dst any) {
	raw, ok := s.kv.Get(key)
	if !ok {
		return
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("Dropping unparseable value")
	}
}

// persist commits one key to the local store. Failures are logged and
// swallowed: the in-memory session stays authoritative.
func (s *Store) persist(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("Encode for persistence failed")
		return
	}
	if err := s.kv.Set(key, string(data)); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("Persist failed")
	}
}

func (s *Store) persistString(key, v string) {
	if err := s.kv.Set(key, v); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("Persist failed")
	}
}

// --- Transactions ---

// AddTransaction appends a transaction. A missing id is generated, a zero
// date is stamped with the current time.
func (s *Store) AddTransaction(tx domain.Transaction) (domain.Transaction, error) {
	if !tx.Amount.IsPositive() {
		return domain.Transaction{}, ErrInvalidAmount
	}
	if tx.Type != domain.Income && tx.Type != domain.Expense {
		return domain.Transaction{}, ErrInvalidType
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if tx.ID == "" {
		tx.ID = s.newID()
	}
	if tx.Date.IsZero() {
		tx.Date = s.now()
	}
	s.transactions = append(s.transactions, tx)
	s.persist(storage.KeyTransactions, s.transactions)
	return tx, nil
}

// UpdateTransaction replaces the transaction with the same id. Updating a
// missing id is a no-op.
func (s *Store) UpdateTransaction(tx domain.Transaction) error {
	if !tx.Amount.IsPositive() {
		return ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.transactions {
		if s.transactions[i].ID == tx.ID {
			s.transactions[i] = tx
			s.persist(storage.KeyTransactions, s.transactions)
			return nil
		}
	}
	return nil
}

// DeleteTransaction removes a transaction by id. Missing id is a no-op.
func (s *Store) DeleteTransaction(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteTransactionLocked(id)
	s.persist(storage.KeyTransactions, s.transactions)
}

func (s *Store) deleteTransactionLocked(id string) {
	for i := range s.transactions {
		if s.transactions[i].ID == id {
			s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
			return
		}
	}
}

// Transactions returns a copy of the transaction collection.
func (s *Store) Transactions() []domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// --- Debts (reads; mutations live in reconciler.go) ---

// Debts returns a copy of the debt collection.
func (s *Store) Debts() []domain.Debt {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Debt, len(s.debts))
	copy(out, s.debts)
	return out
}

// Debt returns one debt by id.
func (s *Store) Debt(id string) (domain.Debt, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.debts {
		if d.ID == id {
			return d, true
		}
	}
	return domain.Debt{}, false
}

// --- Sheets ---

// ReplaceSheets replaces the sheet collection wholesale.
func (s *Store) ReplaceSheets(sheets []domain.Sheet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sheets = sheets
	s.persist(storage.KeySheets, s.sheets)
}

// UpsertSheet creates or replaces a single sheet, stamping LastModified.
func (s *Store) UpsertSheet(sheet domain.Sheet) domain.Sheet {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sheet.ID == "" {
		sheet.ID = s.newID()
	}
	sheet.LastModified = s.now()
	for i := range s.sheets {
		if s.sheets[i].ID == sheet.ID {
			s.sheets[i] = sheet
			s.persist(storage.KeySheets, s.sheets)
			return sheet
		}
	}
	s.sheets = append(s.sheets, sheet)
	s.persist(storage.KeySheets, s.sheets)
	return sheet
}

// DeleteSheet removes a sheet by id. Missing id is a no-op.
func (s *Store) DeleteSheet(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.sheets {
		if s.sheets[i].ID == id {
			s.sheets = append(s.sheets[:i], s.sheets[i+1:]...)
			break
		}
	}
	s.persist(storage.KeySheets, s.sheets)
}

// Sheets returns a copy of the sheet collection.
func (s *Store) Sheets() []domain.Sheet {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Sheet, len(s.sheets))
	copy(out, s.sheets)
	return out
}

// --- Quick actions ---

// SaveQuickAction creates or updates a quick action template.
func (s *Store) SaveQuickAction(qa domain.QuickAction) (domain.QuickAction, error) {
	if !qa.Amount.IsPositive() {
		return domain.QuickAction{}, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if qa.ID == "" {
		qa.ID = s.newID()
	}
	for i := range s.quickActions {
		if s.quickActions[i].ID == qa.ID {
			s.quickActions[i] = qa
			s.persist(storage.KeyQuickActions, s.quickActions)
			return qa, nil
		}
	}
	s.quickActions = append(s.quickActions, qa)
	s.persist(storage.KeyQuickActions, s.quickActions)
	return qa, nil
}

// DeleteQuickAction removes a template by id. Missing id is a no-op.
func (s *Store) DeleteQuickAction(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.quickActions {
		if s.quickActions[i].ID == id {
			s.quickActions = append(s.quickActions[:i], s.quickActions[i+1:]...)
			break
		}
	}
	s.persist(storage.KeyQuickActions, s.quickActions)
}

// QuickActions returns a copy of the quick action collection.
func (s *Store) QuickActions() []domain.QuickAction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.QuickAction, len(s.quickActions))
	copy(out, s.quickActions)
	return out
}

// ExecuteQuickAction creates a transaction from a saved template.
func (s *Store) ExecuteQuickAction(id string) (domain.Transaction, error) {
	s.mu.Lock()
	var action *domain.QuickAction
	for i := range s.quickActions {
		if s.quickActions[i].ID == id {
			action = &s.quickActions[i]
			break
		}
	}
	if action == nil {
		s.mu.Unlock()
		return domain.Transaction{}, ErrNotFoundQuickAction
	}
	tx := domain.Transaction{
		Title:       action.Title,
		Amount:      action.Amount,
		Type:        action.Type,
		Category:    action.Category,
		Icon:        action.Icon,
		Description: "Acceso Rápido",
	}
	s.mu.Unlock()
	return s.AddTransaction(tx)
}

// --- Custom categories ---

// SetCustomCategories replaces the user-defined category list wholesale.
func (s *Store) SetCustomCategories(categories []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = categories
	s.persist(storage.KeyCustomCategories, s.categories)
}

// AddCustomCategory appends a category if not already present.
func (s *Store) AddCustomCategory(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c == name {
			return
		}
	}
	s.categories = append(s.categories, name)
	s.persist(storage.KeyCustomCategories, s.categories)
}

// CustomCategories returns a copy of the category list.
func (s *Store) CustomCategories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.categories))
	copy(out, s.categories)
	return out
}

// --- Profile and currency ---

// Profile returns the current user profile.
func (s *Store) Profile() domain.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// UpdateProfile replaces the profile wholesale.
func (s *Store) UpdateProfile(p domain.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = p
	s.persist(storage.KeyProfile, s.profile)
}

// UpdateCloudConfig replaces only the cloud section of the profile.
func (s *Store) UpdateCloudConfig(cfg domain.CloudConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile.CloudConfig = &cfg
	s.persist(storage.KeyProfile, s.profile)
}

// UserCurrency returns the home currency code.
func (s *Store) UserCurrency() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userCurrency
}

// SetUserCurrency sets the home currency code.
func (s *Store) SetUserCurrency(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userCurrency = code
	s.persistString(storage.KeyCurrency, code)
}

// DisplayCurrency returns the display currency code.
func (s *Store) DisplayCurrency() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.displayCurrency
}

// SetDisplayCurrency sets the display currency code.
func (s *Store) SetDisplayCurrency(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.displayCurrency = code
	s.persistString(storage.KeyDisplayCurrency, code)
}

// Onboarded reports whether onboarding has completed.
func (s *Store) Onboarded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.onboarded
}

// SetOnboarded marks onboarding state.
func (s *Store) SetOnboarded(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onboarded = v
	if v {
		s.persistString(storage.KeyOnboarded, "true")
	} else {
		s.persistString(storage.KeyOnboarded, "false")
	}
}

// --- Derived aggregates ---

// Summary is the income/expense/balance aggregate over a set of
// transactions.
type Summary struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

// Totals scans the full transaction collection.
func (s *Store) Totals() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return summarize(s.transactions, func(domain.Transaction) bool { return true })
}

// MonthlySummary scans transactions of the month containing ref.
func (s *Store) MonthlySummary(ref time.Time) Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	y, m := ref.Year(), ref.Month()
	return summarize(s.transactions, func(tx domain.Transaction) bool {
		return tx.Date.Year() == y && tx.Date.Month() == m
	})
}

func summarize(txs []domain.Transaction, match func(domain.Transaction) bool) Summary {
	sum := Summary{Income: decimal.Zero, Expense: decimal.Zero}
	for _, tx := range txs {
		if !match(tx) {
			continue
		}
		switch tx.Type {
		case domain.Income:
			sum.Income = sum.Income.Add(tx.Amount)
		case domain.Expense:
			sum.Expense = sum.Expense.Add(tx.Amount)
		}
	}
	sum.Balance = sum.Income.Sub(sum.Expense)
	return sum
}
