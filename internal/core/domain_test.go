package core

import (
	"testing"
	"time"
)

func TestTimestampMinuteResolution(t *testing.T) {
	at := time.Date(2026, 1, 15, 9, 30, 59, 123456, time.UTC)
	if got := Timestamp(at); got != "2026-01-15 09:30" {
		t.Fatalf("expected 2026-01-15 09:30, got %s", got)
	}
}

func TestDefaultDocument(t *testing.T) {
	d := DefaultDocument()
	if len(d.Accounts) != 1 || d.Accounts[0] != DefaultAccount {
		t.Fatalf("unexpected accounts: %v", d.Accounts)
	}
	if d.CurrentAccount != DefaultAccount {
		t.Fatalf("unexpected current account: %s", d.CurrentAccount)
	}
	if d.Expenses == nil || len(d.Expenses) != 0 {
		t.Fatalf("expected empty expense map, got %v", d.Expenses)
	}
}

func TestExpenseValidate(t *testing.T) {
	a, _ := ParseAmount("1")
	good := Expense{Amount: a, Payee: "Coffee Shop", Date: "2026-01-15 09:30"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	bads := []Expense{
		{Amount: a, Payee: "", Date: "2026-01-15 09:30"},
		{Amount: a, Payee: "   ", Date: "2026-01-15 09:30"},
		{Amount: a, Payee: "Coffee Shop", Date: ""},
	}
	for i, e := range bads {
		if err := e.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestDocumentCloneIsDeep(t *testing.T) {
	a, _ := ParseAmount("5")
	d := Document{
		Accounts:       []string{"Default", "Cash"},
		CurrentAccount: "Cash",
		Expenses: map[string][]Expense{
			"Default": {},
			"Cash":    {{Amount: a, Payee: "Market", Date: "2026-01-15 09:30"}},
		},
	}
	c := d.Clone()
	c.Accounts[0] = "changed"
	c.Expenses["Cash"][0].Payee = "changed"
	if d.Accounts[0] != "Default" || d.Expenses["Cash"][0].Payee != "Market" {
		t.Fatalf("clone shares memory with original: %v", d)
	}
}
