package core

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the fixed, sortable timestamp format expenses are recorded
// with. Minute resolution is enough for a hand-entered ledger.
const DateLayout = "2006-01-02 15:04"

// DefaultAccount is the account every document starts with and the bucket
// legacy documents are folded into.
const DefaultAccount = "Default"

var (
	ErrEmptyInput     = errors.New("empty input")
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrUnknownAccount = errors.New("unknown account")
)

type (
	// Expense is a single recorded payment. Amount is signed: negative
	// values represent refunds or credits.
	Expense struct {
		Amount Amount `json:"amount"`
		Payee  string `json:"payee"`
		Date   string `json:"date"`
	}

	// Document is the full persisted state: the account list, the active
	// account, and one expense list per account. After normalization every
	// name in Accounts has an entry in Expenses.
	Document struct {
		Accounts       []string             `json:"accounts"`
		CurrentAccount string               `json:"current_account"`
		Expenses       map[string][]Expense `json:"expenses"`
	}
)

// DefaultDocument returns the state a fresh installation starts from.
func DefaultDocument() Document {
	return Document{
		Accounts:       []string{DefaultAccount},
		CurrentAccount: DefaultAccount,
		Expenses:       map[string][]Expense{},
	}
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	out := Document{
		Accounts:       append([]string(nil), d.Accounts...),
		CurrentAccount: d.CurrentAccount,
		Expenses:       make(map[string][]Expense, len(d.Expenses)),
	}
	for name, list := range d.Expenses {
		out.Expenses[name] = append([]Expense{}, list...)
	}
	return out
}

func (e Expense) Validate() error {
	if len(strings.TrimSpace(e.Payee)) == 0 {
		return ErrEmptyInput
	}
	if e.Date == "" {
		return errors.New("missing date")
	}
	return nil
}

// Timestamp formats t in the ledger's date layout, truncated to the minute.
func Timestamp(t time.Time) string {
	return t.Format(DateLayout)
}
