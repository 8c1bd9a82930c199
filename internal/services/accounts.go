// Package services exposes the operations the presentation layer calls:
// account management, the expense ledger, and payee suggestions. Each service
// wraps the store, adding validation, index translation and logging; none of
// them hold state of their own.
package services

import (
	"log/slog"

	"expenses/internal/store"
)

// Accounts lists, selects and creates accounts.
type Accounts struct {
	store  *store.Store
	logger *slog.Logger
}

func NewAccounts(st *store.Store, logger *slog.Logger) *Accounts {
	if logger == nil {
		logger = slog.Default()
	}
	return &Accounts{store: st, logger: logger.With("component", "accounts")}
}

// List returns the account names in stored order.
func (a *Accounts) List() []string {
	return a.store.Accounts()
}

// Current returns the active account name.
func (a *Accounts) Current() string {
	return a.store.CurrentAccount()
}

// Select switches the active account. Callers are expected to pass a name
// obtained from List; an unknown name returns core.ErrUnknownAccount with no
// state change and is logged as a caller bug.
func (a *Accounts) Select(name string) error {
	if err := a.store.SelectAccount(name); err != nil {
		a.logger.Warn("select of unknown account", "name", name)
		return err
	}
	return nil
}

// Create adds a new account. Empty and duplicate names are rejected silently.
// The new account is not selected; callers wanting to switch to it call
// Select afterwards.
func (a *Accounts) Create(name string) bool {
	if !a.store.CreateAccount(name) {
		return false
	}
	a.logger.Info("account created", "name", name)
	return true
}
