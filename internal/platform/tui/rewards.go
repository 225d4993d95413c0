package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/ozembnic-arcade/internal/ledger"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			MarginBottom(1)
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

// RewardsModel lists the reward catalog against the balance and walks the
// player through a confirmed redemption.
type RewardsModel struct {
	redeemer *ledger.Redeemer
	offers   []ledger.Offer
	table    table.Model
	help     help.Model
	keys     ListKeyMap
	width    int
	height   int

	confirming *ledger.Offer // Set while waiting for y/n
	message    string
	failed     bool

	quitting  bool
	goingBack bool
}

// NewRewardsModel creates the rewards view.
func NewRewardsModel(r *ledger.Redeemer, width, height int) RewardsModel {
	m := RewardsModel{
		redeemer: r,
		help:     help.New(),
		keys:     DefaultListKeyMap(),
		width:    width,
		height:   height,
	}
	m.table = m.createTable()
	m.refresh()
	return m
}

func (m *RewardsModel) createTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Reward", Width: 26},
			{Title: "Cost", Width: 8},
			{Title: "", Width: 18},
		}),
		table.WithFocused(true),
		table.WithHeight(max(m.height-12, 4)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// refresh re-quotes every reward against the current balance, keeping the
// cursor where it was.
func (m *RewardsModel) refresh() {
	m.offers = m.redeemer.Offers()
	rows := make([]table.Row, len(m.offers))
	for i, o := range m.offers {
		rows[i] = table.Row{o.Name, humanize.Comma(int64(o.Cost)), o.Label}
	}
	cursor := m.table.Cursor()
	m.table.SetRows(rows)
	if cursor < len(rows) {
		m.table.SetCursor(cursor)
	}
}

// Init initializes the model.
func (m RewardsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the rewards view.
func (m RewardsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirming != nil {
			return m.handleConfirm(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.Select):
			m.selectCurrent()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.refresh()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// selectCurrent asks for confirmation of an affordable reward, or explains
// how many points are missing.
func (m *RewardsModel) selectCurrent() {
	m.refresh()
	i := m.table.Cursor()
	if i < 0 || i >= len(m.offers) {
		return
	}

	offer := m.offers[i]
	if !offer.Affordable {
		m.message = (&ledger.ShortfallError{Reward: offer.Reward, Needed: offer.Needed}).Error()
		m.failed = true
		return
	}
	m.confirming = &offer
	m.message = ""
}

func (m RewardsModel) handleConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		receipt, err := m.redeemer.Redeem(m.confirming.Reward)
		m.confirming = nil
		if err != nil {
			var short *ledger.ShortfallError
			if errors.As(err, &short) {
				m.message = short.Error()
			} else {
				m.message = fmt.Sprintf("Redemption failed: %v", err)
			}
			m.failed = true
		} else {
			m.message = receipt.Message()
			m.failed = false
		}
		m.refresh()

	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Back):
		m.confirming = nil

	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the rewards view.
func (m RewardsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	title := fmt.Sprintf("REWARDS - %s points", humanize.Comma(int64(m.redeemer.Balance())))
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boxStyle.Render(m.table.View())))
	b.WriteString("\n\n")

	switch {
	case m.confirming != nil:
		b.WriteString(promptStyle.Render(m.confirming.Prompt + " (y/n)"))
	case m.message != "" && m.failed:
		b.WriteString(errorStyle.Render(m.message))
	case m.message != "":
		b.WriteString(successStyle.Render(m.message))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Message returns the outcome of the last redemption attempt.
func (m RewardsModel) Message() string {
	return m.message
}

// Confirming reports whether a redemption is waiting for y/n.
func (m RewardsModel) Confirming() bool {
	return m.confirming != nil
}

// IsGoingBack returns true if user wants to go back to menu.
func (m RewardsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RewardsModel) IsQuitting() bool {
	return m.quitting
}
