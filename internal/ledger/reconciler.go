package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nexo-finance/nexo/internal/domain"
	"github.com/nexo-finance/nexo/internal/storage"
)

// Debt mutations keep the debt and transaction collections paired: every
// debt origination and every installment owns exactly one history
// transaction, and cascades remove them together. Each operation runs as
// one batch under the store lock — validate first, then mutate both
// collections, then persist — so a failure can never leave half a pair
// behind.

// CreateDebt registers a debt together with its paired origination
// transaction. Lending money is cash out now (EXPENSE); borrowing is cash
// in now (INCOME).
func (s *Store) CreateDebt(amount decimal.Decimal, dtype domain.DebtType, person string, dueDate *time.Time, description string) (domain.Debt, domain.Transaction, error) {
	if !amount.IsPositive() {
		return domain.Debt{}, domain.Transaction{}, ErrInvalidAmount
	}
	if dtype != domain.Lent && dtype != domain.Borrowed {
		return domain.Debt{}, domain.Transaction{}, ErrInvalidType
	}
	if person == "" {
		return domain.Debt{}, domain.Transaction{}, ErrMissingPerson
	}

	txType := domain.Income
	if dtype == domain.Lent {
		txType = domain.Expense
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	note := description
	if note == "" {
		note = "Sin nota"
	}
	tx := domain.Transaction{
		ID:          s.newID(),
		Title:       domain.DebtsTitle,
		Amount:      amount,
		Type:        txType,
		Category:    domain.DebtsCategory,
		Date:        now,
		Description: fmt.Sprintf("Registro inicial: %s (%s)", person, note),
	}
	debt := domain.Debt{
		ID:                   s.newID(),
		Person:               person,
		Amount:               amount,
		PaidAmount:           decimal.Zero,
		Type:                 dtype,
		DueDate:              dueDate,
		Description:          description,
		InitialTransactionID: tx.ID,
		Payments:             []domain.DebtPayment{},
	}

	s.debts = append(s.debts, debt)
	s.transactions = append(s.transactions, tx)
	s.persist(storage.KeyDebts, s.debts)
	s.persist(storage.KeyTransactions, s.transactions)
	return debt, tx, nil
}

// PayDebt records an installment against a debt and its paired history
// transaction. Direction inverts the origination rule: being repaid on
// lent money is INCOME, repaying borrowed money is EXPENSE. Overpayment is
// legal and preserved verbatim.
func (s *Store) PayDebt(debtID string, amount decimal.Decimal) (domain.Debt, domain.Transaction, error) {
	if !amount.IsPositive() {
		return domain.Debt{}, domain.Transaction{}, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.debtIndexLocked(debtID)
	if idx < 0 {
		return domain.Debt{}, domain.Transaction{}, ErrDebtNotFound
	}
	debt := &s.debts[idx]

	txType := domain.Expense
	if debt.Type == domain.Lent {
		txType = domain.Income
	}

	now := s.now()
	tx := domain.Transaction{
		ID:          s.newID(),
		Title:       domain.DebtsTitle,
		Amount:      amount,
		Type:        txType,
		Category:    domain.DebtsCategory,
		Date:        now,
		Description: fmt.Sprintf("Abono: %s", debt.Person),
	}
	payment := domain.DebtPayment{
		ID:            s.newID(),
		Amount:        amount,
		Date:          now,
		TransactionID: tx.ID,
	}

	debt.Payments = append(debt.Payments, payment)
	debt.PaidAmount = debt.PaidAmount.Add(amount)
	s.transactions = append(s.transactions, tx)
	s.persist(storage.KeyDebts, s.debts)
	s.persist(storage.KeyTransactions, s.transactions)
	return *debt, tx, nil
}

// DeleteDebt cascades: origination transaction, every payment transaction,
// then the debt record itself. Transactions already missing are skipped
// silently; a missing debt is a no-op.
func (s *Store) DeleteDebt(debtID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.debtIndexLocked(debtID)
	if idx < 0 {
		return
	}
	debt := s.debts[idx]

	if debt.InitialTransactionID != "" {
		s.deleteTransactionLocked(debt.InitialTransactionID)
	}
	for _, p := range debt.Payments {
		if p.TransactionID != "" {
			s.deleteTransactionLocked(p.TransactionID)
		}
	}
	s.debts = append(s.debts[:idx], s.debts[idx+1:]...)

	s.persist(storage.KeyTransactions, s.transactions)
	s.persist(storage.KeyDebts, s.debts)
}

// DeletePayment removes one installment, its paired transaction, and
// recomputes PaidAmount from the remaining sequence rather than
// subtracting, so repeated edits cannot drift. Missing debt or payment is
// a no-op.
func (s *Store) DeletePayment(debtID, paymentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.debtIndexLocked(debtID)
	if idx < 0 {
		return
	}
	debt := &s.debts[idx]

	pi := -1
	for i, p := range debt.Payments {
		if p.ID == paymentID {
			pi = i
			break
		}
	}
	if pi < 0 {
		return
	}

	if txID := debt.Payments[pi].TransactionID; txID != "" {
		s.deleteTransactionLocked(txID)
	}
	debt.Payments = append(debt.Payments[:pi], debt.Payments[pi+1:]...)

	paid := decimal.Zero
	for _, p := range debt.Payments {
		paid = paid.Add(p.Amount)
	}
	debt.PaidAmount = paid

	s.persist(storage.KeyTransactions, s.transactions)
	s.persist(storage.KeyDebts, s.debts)
}

func (s *Store) debtIndexLocked(id string) int {
	for i := range s.debts {
		if s.debts[i].ID == id {
			return i
		}
	}
	return -1
}
