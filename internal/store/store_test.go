package store

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/sync/errgroup"

	"expenses/internal/core"
)

func testPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "expenses.json")
}

func mustExpense(t *testing.T, amount, payee string) core.Expense {
	t.Helper()
	a, err := core.ParseAmount(amount)
	if err != nil {
		t.Fatalf("parse %q: %v", amount, err)
	}
	return core.Expense{Amount: a, Payee: payee, Date: "2026-01-15 09:30"}
}

func docJSON(t *testing.T, d core.Document) string {
	t.Helper()
	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal document: %v", err)
	}
	return string(raw)
}

func TestOpenMissingFileStartsFromDefaults(t *testing.T) {
	s := Open(testPath(t), nil)
	d := s.Document()
	if len(d.Accounts) != 1 || d.Accounts[0] != core.DefaultAccount {
		t.Fatalf("unexpected accounts: %v", d.Accounts)
	}
	if d.CurrentAccount != core.DefaultAccount {
		t.Fatalf("unexpected current: %s", d.CurrentAccount)
	}
	if _, ok := d.Expenses[core.DefaultAccount]; !ok {
		t.Fatalf("expected expense entry for default account")
	}
}

func TestOpenCorruptFileStartsFromDefaults(t *testing.T) {
	path := testPath(t)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s := Open(path, nil)
	d := s.Document()
	if len(d.Accounts) != 1 || d.Accounts[0] != core.DefaultAccount {
		t.Fatalf("corrupt file should fall back to defaults, got %v", d.Accounts)
	}
}

func TestLoadErrorKinds(t *testing.T) {
	s := &Store{path: testPath(t), logger: slog.Default()}
	if err := s.load(); !errors.Is(err, ErrNoDocument) {
		t.Fatalf("expected ErrNoDocument, got %v", err)
	}
	if err := os.WriteFile(s.path, []byte("[{bad"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := s.load(); !errors.Is(err, ErrCorruptDocument) {
		t.Fatalf("expected ErrCorruptDocument, got %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	path := testPath(t)
	s := Open(path, nil)
	s.CreateAccount("Cash")
	if err := s.AppendExpense(mustExpense(t, "12.50", "Coffee Shop")); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.SelectAccount("Cash"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := s.AppendExpense(mustExpense(t, "-3,25", "Refund")); err != nil {
		t.Fatalf("append: %v", err)
	}

	reloaded := Open(path, nil)
	if got, want := docJSON(t, reloaded.Document()), docJSON(t, s.Document()); got != want {
		t.Fatalf("round trip mismatch:\n got %s\nwant %s", got, want)
	}
}

func TestLegacyArrayDocument(t *testing.T) {
	path := testPath(t)
	legacy := `[{"amount": 12.5, "payee": "Coffee Shop", "date": "2026-01-15 09:30"}]`
	if err := os.WriteFile(path, []byte(legacy), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s := Open(path, nil)
	d := s.Document()
	if len(d.Accounts) != 1 || d.Accounts[0] != core.DefaultAccount {
		t.Fatalf("unexpected accounts: %v", d.Accounts)
	}
	list := d.Expenses[core.DefaultAccount]
	if len(list) != 1 || list[0].Payee != "Coffee Shop" || list[0].Amount.Display() != "12.50" {
		t.Fatalf("unexpected legacy expenses: %+v", list)
	}
}

func TestPartialDocumentMergesOverDefaults(t *testing.T) {
	path := testPath(t)
	partial := `{"accounts": ["Default", "Cash"]}`
	if err := os.WriteFile(path, []byte(partial), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s := Open(path, nil)
	d := s.Document()
	if d.CurrentAccount != "Default" {
		t.Fatalf("expected default current account, got %s", d.CurrentAccount)
	}
	for _, name := range []string{"Default", "Cash"} {
		if _, ok := d.Expenses[name]; !ok {
			t.Fatalf("missing expense entry for %s", name)
		}
	}
}

func TestNormalizeRepairs(t *testing.T) {
	cases := []struct {
		name        string
		raw         string
		wantCurrent string
		wantAccs    []string
	}{
		{
			name:        "unknown current account resets to first",
			raw:         `{"accounts": ["A", "B"], "current_account": "Gone", "expenses": {}}`,
			wantCurrent: "A",
			wantAccs:    []string{"A", "B"},
		},
		{
			name:        "duplicate accounts keep first occurrence",
			raw:         `{"accounts": ["A", "B", "A"], "current_account": "B", "expenses": {}}`,
			wantCurrent: "B",
			wantAccs:    []string{"A", "B"},
		},
		{
			name:        "empty account list restores default",
			raw:         `{"accounts": [], "current_account": "X", "expenses": {}}`,
			wantCurrent: core.DefaultAccount,
			wantAccs:    []string{core.DefaultAccount},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := testPath(t)
			if err := os.WriteFile(path, []byte(tc.raw), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			d := Open(path, nil).Document()
			if d.CurrentAccount != tc.wantCurrent {
				t.Fatalf("expected current %s, got %s", tc.wantCurrent, d.CurrentAccount)
			}
			if len(d.Accounts) != len(tc.wantAccs) {
				t.Fatalf("expected accounts %v, got %v", tc.wantAccs, d.Accounts)
			}
			for i, name := range tc.wantAccs {
				if d.Accounts[i] != name {
					t.Fatalf("expected accounts %v, got %v", tc.wantAccs, d.Accounts)
				}
				if _, ok := d.Expenses[name]; !ok {
					t.Fatalf("missing expense entry for %s", name)
				}
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	s := Open(testPath(t), nil)
	s.doc = core.Document{
		Accounts:       []string{"A", "A", "B"},
		CurrentAccount: "missing",
		Expenses:       nil,
	}
	s.normalize()
	once := docJSON(t, s.doc.Clone())
	s.normalize()
	if twice := docJSON(t, s.doc.Clone()); twice != once {
		t.Fatalf("normalize not idempotent:\n once %s\ntwice %s", once, twice)
	}
}

func TestSelectAccountUnknownIsNoOp(t *testing.T) {
	s := Open(testPath(t), nil)
	if err := s.SelectAccount("Nope"); !errors.Is(err, core.ErrUnknownAccount) {
		t.Fatalf("expected ErrUnknownAccount, got %v", err)
	}
	if s.CurrentAccount() != core.DefaultAccount {
		t.Fatalf("unknown select changed state to %s", s.CurrentAccount())
	}
}

func TestCreateAccount(t *testing.T) {
	s := Open(testPath(t), nil)
	if !s.CreateAccount(" Cash ") {
		t.Fatalf("expected creation to succeed")
	}
	if s.CreateAccount("Cash") {
		t.Fatalf("duplicate creation should be rejected")
	}
	if s.CreateAccount("") || s.CreateAccount("   ") {
		t.Fatalf("empty names should be rejected")
	}
	accs := s.Accounts()
	if len(accs) != 2 || accs[1] != "Cash" {
		t.Fatalf("unexpected accounts: %v", accs)
	}
	if s.CurrentAccount() != core.DefaultAccount {
		t.Fatalf("create must not switch the current account")
	}
	if _, ok := s.AllExpenses()["Cash"]; !ok {
		t.Fatalf("new account should have an expense entry")
	}
}

func TestRemoveExpenseBounds(t *testing.T) {
	s := Open(testPath(t), nil)
	if s.RemoveExpense(0) {
		t.Fatalf("remove from empty list should be a no-op")
	}
	if err := s.AppendExpense(mustExpense(t, "1", "A")); err != nil {
		t.Fatalf("append: %v", err)
	}
	if s.RemoveExpense(-1) || s.RemoveExpense(1) {
		t.Fatalf("out of range remove should be a no-op")
	}
	if !s.RemoveExpense(0) {
		t.Fatalf("expected in-range remove to succeed")
	}
	if got := len(s.CurrentExpenses()); got != 0 {
		t.Fatalf("expected empty list, got %d entries", got)
	}
}

func TestSaveCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "expenses.json")
	s := Open(path, nil)
	if err := s.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file at %s: %v", path, err)
	}
}

func TestSaveFailureKeepsMemoryAuthoritative(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}
	dir := t.TempDir()
	s := Open(filepath.Join(dir, "expenses.json"), nil)
	if err := os.Chmod(dir, 0o500); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	defer os.Chmod(dir, 0o755)

	// The mutation sticks even though the flush fails.
	if err := s.AppendExpense(mustExpense(t, "5", "Kept")); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.Save(); err == nil {
		t.Fatalf("expected save to fail on read-only directory")
	}
	if got := len(s.CurrentExpenses()); got != 1 {
		t.Fatalf("expected in-memory expense to survive, got %d", got)
	}
}

func TestConcurrentMutationsPreserveInvariants(t *testing.T) {
	s := Open(testPath(t), nil)
	s.CreateAccount("Cash")
	s.CreateAccount("Card")

	e := mustExpense(t, "1.25", "Worker")
	var g errgroup.Group
	for w := 0; w < 4; w++ {
		g.Go(func() error {
			for i := 0; i < 25; i++ {
				if err := s.AppendExpense(e); err != nil {
					return err
				}
				s.RemoveExpense(0)
				s.CreateAccount("Cash")
				if err := s.SelectAccount("Card"); err != nil {
					return err
				}
				if err := s.SelectAccount(core.DefaultAccount); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent mutations: %v", err)
	}

	d := s.Document()
	seen := map[string]bool{}
	for _, name := range d.Accounts {
		if seen[name] {
			t.Fatalf("duplicate account %s", name)
		}
		seen[name] = true
		if _, ok := d.Expenses[name]; !ok {
			t.Fatalf("account %s has no expense entry", name)
		}
	}
	if !seen[d.CurrentAccount] {
		t.Fatalf("current account %s not in account list", d.CurrentAccount)
	}
}
