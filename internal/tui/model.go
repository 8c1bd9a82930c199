// Package tui is the terminal presentation layer. It invokes the account,
// ledger and suggestion services in response to key presses and re-reads
// their derived views to refresh itself; it never touches the document
// directly and holds no state the services cannot rebuild.
package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"expenses/internal/core"
	"expenses/internal/services"
)

type focusArea int

const (
	focusAmount focusArea = iota
	focusPayee
	focusList
)

type mode int

const (
	modeNormal mode = iota
	modeNewAccount
	modeNotice
)

// Model defines the state for the expenses window.
type Model struct {
	accounts *services.Accounts
	ledger   *services.Ledger
	suggest  *services.Suggestions

	amountInput textinput.Model
	payeeInput  textinput.Model
	nameInput   textinput.Model
	viewport    viewport.Model

	styles Styles

	// Derived views, rebuilt from the services after every action.
	accountNames []string
	current      string
	entries      []services.Entry
	total        core.Amount
	payees       []string

	focus  focusArea
	mode   mode
	notice string
	cursor int
	width  int
	height int
}

// New builds the initial model and renders the startup state: accounts with
// the current one selected, the expense list newest-first, the total, and
// the payee suggestions.
func New(accounts *services.Accounts, ledger *services.Ledger, suggest *services.Suggestions) Model {
	amount := textinput.New()
	amount.Placeholder = "0.00"
	amount.CharLimit = 16
	amount.Width = 12
	amount.Focus()

	payee := textinput.New()
	payee.Placeholder = "Payee"
	payee.CharLimit = 80
	payee.Width = 28

	name := textinput.New()
	name.Placeholder = "e.g., Cash, Credit Card, Savings"
	name.CharLimit = 80
	name.Width = 32

	m := Model{
		accounts:    accounts,
		ledger:      ledger,
		suggest:     suggest,
		amountInput: amount,
		payeeInput:  payee,
		nameInput:   name,
		viewport:    viewport.New(0, 10),
		styles:      defaultStyles(),
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// refresh re-reads every derived view from the services.
func (m *Model) refresh() {
	m.accountNames = m.accounts.List()
	m.current = m.accounts.Current()
	m.entries = m.ledger.ListForDisplay()
	m.total = m.ledger.Total()
	m.payees = m.suggest.Payees()
	if m.cursor >= len(m.entries) {
		m.cursor = len(m.entries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.viewport.SetContent(m.renderEntries())
	m.scrollToCursor()
}

func (m *Model) scrollToCursor() {
	if m.cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.cursor)
	}
	if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chromeHeight, 1)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeNotice:
			return m.updateNotice(msg)
		case modeNewAccount:
			return m.updateNewAccount(msg)
		default:
			return m.updateNormal(msg)
		}
	}
	return m, nil
}

func (m Model) updateNotice(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.mode = modeNormal
		m.notice = ""
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateNewAccount(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.mode = modeNormal
		m.nameInput.SetValue("")
		return m, nil
	case "enter":
		name := strings.TrimSpace(m.nameInput.Value())
		if m.accounts.Create(name) {
			// Match the desktop behavior: creating from the dialog
			// also switches to the new account.
			_ = m.accounts.Select(name)
			m.cursor = 0
		}
		m.mode = modeNormal
		m.nameInput.SetValue("")
		m.refresh()
		return m, nil
	}
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab":
		if m.focus == focusPayee {
			if full := m.completion(m.payeeInput.Value()); full != "" {
				m.payeeInput.SetValue(full)
				m.payeeInput.CursorEnd()
				return m, nil
			}
		}
		m.setFocus((m.focus + 1) % 3)
		return m, nil
	case "shift+tab":
		m.setFocus((m.focus + 2) % 3)
		return m, nil
	case "ctrl+n":
		m.mode = modeNewAccount
		m.nameInput.Focus()
		return m, textinput.Blink
	case "ctrl+o":
		m.cycleAccount(1)
		return m, nil
	case "enter":
		if m.focus == focusAmount || m.focus == focusPayee {
			m.submitExpense()
		}
		return m, nil
	}

	if m.focus == focusList {
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			m.viewport.SetContent(m.renderEntries())
			m.scrollToCursor()
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
			m.viewport.SetContent(m.renderEntries())
			m.scrollToCursor()
		case "left", "h":
			m.cycleAccount(-1)
		case "right", "l":
			m.cycleAccount(1)
		case "d", "delete":
			if len(m.entries) > 0 {
				m.ledger.DeleteDisplayed(m.cursor)
				m.refresh()
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == focusAmount {
		m.amountInput, cmd = m.amountInput.Update(msg)
	} else {
		m.payeeInput, cmd = m.payeeInput.Update(msg)
	}
	return m, cmd
}

// submitExpense runs the add operation and renders its outcome: blank input
// aborts silently, an unparseable amount raises a dismissible notice with
// the input preserved, success clears the inputs and refreshes every view.
func (m *Model) submitExpense() {
	err := m.ledger.Add(m.amountInput.Value(), m.payeeInput.Value())
	switch {
	case err == nil:
		m.amountInput.SetValue("")
		m.payeeInput.SetValue("")
		m.setFocus(focusAmount)
		m.refresh()
	case errors.Is(err, core.ErrInvalidAmount):
		m.mode = modeNotice
		m.notice = "Please enter a valid number for the amount."
	case errors.Is(err, core.ErrEmptyInput):
		// nothing to do
	}
}

func (m *Model) setFocus(f focusArea) {
	m.focus = f
	m.amountInput.Blur()
	m.payeeInput.Blur()
	switch f {
	case focusAmount:
		m.amountInput.Focus()
	case focusPayee:
		m.payeeInput.Focus()
	}
}

func (m *Model) cycleAccount(delta int) {
	if len(m.accountNames) < 2 {
		return
	}
	idx := 0
	for i, name := range m.accountNames {
		if name == m.current {
			idx = i
			break
		}
	}
	next := (idx + delta + len(m.accountNames)) % len(m.accountNames)
	if err := m.accounts.Select(m.accountNames[next]); err != nil {
		return
	}
	m.cursor = 0
	m.refresh()
}

// completion returns the first suggestion extending the typed prefix, or ""
// when there is none.
func (m *Model) completion(prefix string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return ""
	}
	for _, p := range m.payees {
		if len(p) > len(prefix) && strings.HasPrefix(strings.ToLower(p), strings.ToLower(prefix)) {
			return p
		}
	}
	return ""
}
