// Package store owns the persisted expense document. It loads the JSON file
// on startup, repairs its invariants, and flushes the full document back to
// disk after every mutation. The in-memory document is always authoritative:
// a failed save is logged and retried implicitly on the next mutation.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"expenses/internal/core"
)

var (
	// ErrNoDocument means no file existed at the store path.
	ErrNoDocument = errors.New("no document")
	// ErrCorruptDocument means the file existed but could not be read or
	// decoded. The store falls back to defaults in both cases.
	ErrCorruptDocument = errors.New("corrupt document")
)

// Store holds the document and serializes all access to it. Operations that
// mutate state persist before returning, under the same lock, so there is at
// most one writer at any time.
type Store struct {
	mu     sync.Mutex
	path   string
	doc    core.Document
	logger *slog.Logger
}

// Open loads the document at path, falling back to defaults when the file is
// missing or unreadable. Open never fails: a damaged file is logged and
// discarded, matching the behavior users of the original format rely on.
func Open(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{path: path, logger: logger.With("component", "store")}
	switch err := s.load(); {
	case err == nil:
	case errors.Is(err, ErrNoDocument):
		s.logger.Debug("no existing document, starting from defaults", "path", path)
	default:
		s.logger.Warn("discarding unreadable document", "path", path, "error", err)
	}
	return s
}

func (s *Store) load() error {
	s.doc = core.DefaultDocument()
	defer s.normalize()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNoDocument
		}
		return fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}

	// Legacy format: a bare array of expenses, predating accounts. It
	// becomes the Default account's list.
	if head := bytes.TrimLeft(raw, " \t\r\n"); len(head) > 0 && head[0] == '[' {
		var legacy []core.Expense
		if err := json.Unmarshal(raw, &legacy); err != nil {
			return fmt.Errorf("%w: %v", ErrCorruptDocument, err)
		}
		s.doc.Expenses[core.DefaultAccount] = legacy
		return nil
	}

	// Partial documents merge field-by-field over the defaults.
	var loaded struct {
		Accounts       *[]string                 `json:"accounts"`
		CurrentAccount *string                   `json:"current_account"`
		Expenses       map[string][]core.Expense `json:"expenses"`
	}
	if err := json.Unmarshal(raw, &loaded); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	if loaded.Accounts != nil {
		s.doc.Accounts = *loaded.Accounts
	}
	if loaded.CurrentAccount != nil {
		s.doc.CurrentAccount = *loaded.CurrentAccount
	}
	if loaded.Expenses != nil {
		s.doc.Expenses = loaded.Expenses
	}
	return nil
}

// normalize repairs the document invariants: a non-empty, duplicate-free
// account list, a current account that is a member of it, and an expense
// list entry for every account. Idempotent.
func (s *Store) normalize() {
	seen := make(map[string]struct{}, len(s.doc.Accounts))
	accounts := make([]string, 0, len(s.doc.Accounts))
	for _, name := range s.doc.Accounts {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		accounts = append(accounts, name)
	}
	if len(accounts) == 0 {
		accounts = []string{core.DefaultAccount}
	}
	s.doc.Accounts = accounts

	if _, ok := seen[s.doc.CurrentAccount]; !ok {
		s.doc.CurrentAccount = s.doc.Accounts[0]
	}

	if s.doc.Expenses == nil {
		s.doc.Expenses = make(map[string][]core.Expense, len(s.doc.Accounts))
	}
	for _, name := range s.doc.Accounts {
		if _, ok := s.doc.Expenses[name]; !ok {
			s.doc.Expenses[name] = []core.Expense{}
		}
	}
}

// Save flushes the document to disk.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

func (s *Store) saveLocked() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			s.logger.Error("create data directory", "dir", dir, "error", err)
			return fmt.Errorf("create data directory: %w", err)
		}
	}
	raw, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		s.logger.Error("encode document", "error", err)
		return fmt.Errorf("encode document: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		s.logger.Error("write document", "path", s.path, "error", err)
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}

// SelectAccount makes name the current account and persists. Unknown names
// leave the document untouched and return core.ErrUnknownAccount.
func (s *Store) SelectAccount(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !contains(s.doc.Accounts, name) {
		return core.ErrUnknownAccount
	}
	s.doc.CurrentAccount = name
	s.saveLocked() // already logged; in-memory state stays authoritative
	return nil
}

// CreateAccount appends a new account with an empty expense list and
// persists. The name is trimmed first; empty or duplicate names are rejected
// with no state change. The current account is not switched.
func (s *Store) CreateAccount(name string) bool {
	name = strings.TrimSpace(name)
	s.mu.Lock()
	defer s.mu.Unlock()
	if name == "" || contains(s.doc.Accounts, name) {
		return false
	}
	s.doc.Accounts = append(s.doc.Accounts, name)
	s.doc.Expenses[name] = []core.Expense{}
	s.saveLocked()
	return true
}

// AppendExpense adds e to the end of the current account's list and persists.
func (s *Store) AppendExpense(e core.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.doc.CurrentAccount
	s.doc.Expenses[cur] = append(s.currentLocked(), e)
	s.saveLocked()
	return nil
}

// RemoveExpense deletes the expense at storage index i from the current
// account's list and persists. Out-of-range indices are a no-op.
func (s *Store) RemoveExpense(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.currentLocked()
	if i < 0 || i >= len(list) {
		return false
	}
	cur := s.doc.CurrentAccount
	s.doc.Expenses[cur] = append(list[:i], list[i+1:]...)
	s.saveLocked()
	return true
}

// currentLocked returns the current account's list, repairing a missing
// entry. Callers must hold the lock.
func (s *Store) currentLocked() []core.Expense {
	cur := s.doc.CurrentAccount
	if _, ok := s.doc.Expenses[cur]; !ok {
		s.doc.Expenses[cur] = []core.Expense{}
	}
	return s.doc.Expenses[cur]
}

// Accounts returns the account names in stored order.
func (s *Store) Accounts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.doc.Accounts...)
}

// CurrentAccount returns the active account name.
func (s *Store) CurrentAccount() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.CurrentAccount
}

// CurrentExpenses returns a copy of the active account's list in storage
// (chronological, oldest first) order.
func (s *Store) CurrentExpenses() []core.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Expense{}, s.currentLocked()...)
}

// AllExpenses returns a snapshot of every account's expense list.
func (s *Store) AllExpenses() map[string][]core.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string][]core.Expense, len(s.doc.Expenses))
	for name, list := range s.doc.Expenses {
		out[name] = append([]core.Expense{}, list...)
	}
	return out
}

// Document returns a snapshot of the whole document.
func (s *Store) Document() core.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
