package services

import (
	"log/slog"
	"strings"
	"time"

	"expenses/internal/core"
	"expenses/internal/store"
)

// Ledger records, deletes and totals expenses for the active account.
type Ledger struct {
	store  *store.Store
	logger *slog.Logger
	now    func() time.Time
}

// Entry pairs an expense with its storage index, which DeleteAt needs after
// the list has been shown newest-first.
type Entry struct {
	Index   int
	Expense core.Expense
}

func NewLedger(st *store.Store, logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ledger{
		store:  st,
		logger: logger.With("component", "ledger"),
		now:    time.Now,
	}
}

// Add records an expense on the active account with the current timestamp.
//
// Both inputs are trimmed first. A blank amount or payee returns
// core.ErrEmptyInput and the caller is expected to do nothing; unparseable
// amount text returns core.ErrInvalidAmount and should be surfaced to the
// user with the input preserved.
func (l *Ledger) Add(amountText, payeeText string) error {
	payee := strings.TrimSpace(payeeText)
	if strings.TrimSpace(amountText) == "" || payee == "" {
		return core.ErrEmptyInput
	}
	amount, err := core.ParseAmount(amountText)
	if err != nil {
		return err
	}
	e := core.Expense{
		Amount: amount,
		Payee:  payee,
		Date:   core.Timestamp(l.now()),
	}
	if err := l.store.AppendExpense(e); err != nil {
		return err
	}
	l.logger.Info("expense added", "payee", payee, "amount", amount.Display())
	return nil
}

// DeleteAt removes the expense at the given storage (chronological) index.
// Out-of-range indices are a no-op; they mean a caller translated a display
// position wrongly, so they are logged.
func (l *Ledger) DeleteAt(index int) bool {
	if !l.store.RemoveExpense(index) {
		l.logger.Warn("delete index out of range", "index", index)
		return false
	}
	l.logger.Info("expense deleted", "index", index)
	return true
}

// DeleteDisplayed removes the expense at a newest-first display position,
// translating it to the storage index itself so callers rendering the
// reversed list do not carry that contract.
func (l *Ledger) DeleteDisplayed(position int) bool {
	n := len(l.store.CurrentExpenses())
	return l.DeleteAt(n - 1 - position)
}

// Total sums the active account's expenses. Zero for an empty list.
func (l *Ledger) Total() core.Amount {
	var total core.Amount
	for _, e := range l.store.CurrentExpenses() {
		total = total.Add(e.Amount)
	}
	return total
}

// ListForDisplay returns the active account's expenses newest-first, each
// paired with its storage index.
func (l *Ledger) ListForDisplay() []Entry {
	items := l.store.CurrentExpenses()
	entries := make([]Entry, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		entries = append(entries, Entry{Index: i, Expense: items[i]})
	}
	return entries
}
