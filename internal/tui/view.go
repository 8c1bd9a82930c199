package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// chromeHeight is the number of terminal rows used around the expense list:
// header, tabs, input row and footer.
const chromeHeight = 7

type Styles struct {
	Title       lipgloss.Style
	Tab         lipgloss.Style
	ActiveTab   lipgloss.Style
	Payee       lipgloss.Style
	Date        lipgloss.Style
	Amount      lipgloss.Style
	Refund      lipgloss.Style
	CursorRow   lipgloss.Style
	Hint        lipgloss.Style
	TotalLabel  lipgloss.Style
	TotalAmount lipgloss.Style
	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style
}

func defaultStyles() Styles {
	return Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#d29b1d")),
		Tab:         lipgloss.NewStyle().Foreground(lipgloss.Color("#828282")).Padding(0, 1),
		ActiveTab:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#3a3a3a")).Padding(0, 1),
		Payee:       lipgloss.NewStyle().Bold(true),
		Date:        lipgloss.NewStyle().Foreground(lipgloss.Color("#828282")),
		Amount:      lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f")),
		Refund:      lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff00")),
		CursorRow:   lipgloss.NewStyle().Background(lipgloss.Color("#262626")),
		Hint:        lipgloss.NewStyle().Foreground(lipgloss.Color("#585858")),
		TotalLabel:  lipgloss.NewStyle().Foreground(lipgloss.Color("#bbbbbb")),
		TotalAmount: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#d29b1d")),
		Dialog:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2),
		DialogTitle: lipgloss.NewStyle().Bold(true),
	}
}

func (m Model) View() string {
	switch m.mode {
	case modeNotice:
		return m.dialog("Invalid Amount", m.notice+"\n\npress enter to dismiss")
	case modeNewAccount:
		return m.dialog("New Account", "Enter a new account name:\n\n"+m.nameInput.View()+"\n\nenter to add, esc to cancel")
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Expenses"))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(m.renderInputs())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) dialog(title, body string) string {
	content := m.styles.DialogTitle.Render(title) + "\n\n" + body
	box := m.styles.Dialog.Render(content)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(m.accountNames))
	for _, name := range m.accountNames {
		if name == m.current {
			tabs = append(tabs, m.styles.ActiveTab.Render(name))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderInputs() string {
	row := m.amountInput.View() + "  " + m.payeeInput.View()
	if m.focus == focusPayee {
		if full := m.completion(m.payeeInput.Value()); full != "" {
			row += "  " + m.styles.Hint.Render("tab: "+full)
		}
	}
	return row
}

func (m Model) renderEntries() string {
	if len(m.entries) == 0 {
		return m.styles.Hint.Render("no expenses yet")
	}
	lines := make([]string, 0, len(m.entries))
	for i, entry := range m.entries {
		e := entry.Expense
		amountStyle := m.styles.Amount
		if e.Amount.IsNegative() {
			amountStyle = m.styles.Refund
		}
		line := fmt.Sprintf("%s  %s  %s",
			m.styles.Payee.Render(fmt.Sprintf("%-30s", e.Payee)),
			m.styles.Date.Render(e.Date),
			amountStyle.Render(fmt.Sprintf("%12s", e.Amount.Display())),
		)
		if i == m.cursor && m.focus == focusList {
			line = m.styles.CursorRow.Render("> " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderFooter() string {
	total := m.styles.TotalLabel.Render("Total ") + m.styles.TotalAmount.Render(m.total.Display())
	help := m.styles.Hint.Render("tab focus · enter add · d delete · ctrl+o account · ctrl+n new account · q quit")
	return total + "\n" + help
}
