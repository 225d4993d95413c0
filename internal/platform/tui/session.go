package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
)

// SessionModel manages the full arcade flow: menu -> game, rewards or
// scores -> menu. It is the top-level model for local and SSH players.
type SessionModel struct {
	env      Env
	screen   Screen
	menu     MenuModel
	game     *GameModel
	rewards  *RewardsModel
	scores   *ScoreboardModel
	quitting bool
	cleanup  *releaser
}

// releaser holds the release func of the open game. It is shared by every
// copy of a SessionModel, so it can be run from outside the program.
type releaser struct {
	mu sync.Mutex
	fn func()
}

func (r *releaser) set(fn func()) {
	r.run()
	r.mu.Lock()
	r.fn = fn
	r.mu.Unlock()
}

func (r *releaser) run() {
	r.mu.Lock()
	fn := r.fn
	r.fn = nil
	r.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// NewSessionModel creates a session that opens on the menu.
func NewSessionModel(env Env) SessionModel {
	m := SessionModel{env: env, cleanup: &releaser{}}
	m.menu = m.newMenu()
	return m
}

// NewSessionModelAt creates a session that opens directly on screen s.
// Leaving that screen returns to the menu.
func NewSessionModelAt(env Env, s Screen) SessionModel {
	m := NewSessionModel(env)
	m.open(s)
	return m
}

func (m SessionModel) newMenu() MenuModel {
	balance := func() string {
		if m.env.Ledger == nil {
			return "0"
		}
		return humanize.Comma(int64(m.env.Ledger.Balance()))
	}
	return NewMenuModel(m.env.Runtime.ScreenW, m.env.Runtime.ScreenH, balance)
}

// open switches to screen s, building its model from the current size.
func (m *SessionModel) open(s Screen) {
	m.screen = s
	switch s {
	case ScreenGame:
		g := NewGameModel(m.env)
		m.game = &g
		m.cleanup.set(g.Release)
	case ScreenRewards:
		if m.env.Redeemer == nil {
			m.screen = ScreenMenu
			return
		}
		r := NewRewardsModel(m.env.Redeemer, m.env.Runtime.ScreenW, m.env.Runtime.ScreenH)
		m.rewards = &r
	case ScreenScores:
		sb := NewScoreboardModel(m.env.Store, m.env.Runtime.ScreenW, m.env.Runtime.ScreenH)
		m.scores = &sb
	}
}

// backToMenu discards the current screen.
func (m *SessionModel) backToMenu() {
	m.cleanup.run()
	m.game, m.rewards, m.scores = nil, nil, nil
	m.screen = ScreenMenu
	m.menu = m.newMenu()
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.env.Runtime.ScreenW = wsm.Width
		m.env.Runtime.ScreenH = wsm.Height
	}

	var (
		cmd       tea.Cmd
		quitting  bool
		goingBack bool
	)

	switch m.screen {
	case ScreenGame:
		next, c := m.game.Update(msg)
		g := next.(GameModel)
		m.game, cmd = &g, c
		quitting, goingBack = g.IsQuitting(), g.BackToMenu()

	case ScreenRewards:
		next, c := m.rewards.Update(msg)
		r := next.(RewardsModel)
		m.rewards, cmd = &r, c
		quitting, goingBack = r.IsQuitting(), r.IsGoingBack()

	case ScreenScores:
		next, c := m.scores.Update(msg)
		sb := next.(ScoreboardModel)
		m.scores, cmd = &sb, c
		quitting, goingBack = sb.IsQuitting(), sb.IsGoingBack()

	default:
		next, c := m.menu.Update(msg)
		m.menu, cmd = next.(MenuModel), c
		if m.menu.IsQuitting() {
			quitting = true
		} else if sel := m.menu.Selected(); sel != nil {
			m.open(sel.Target)
			return m, m.sizeCmd()
		}
	}

	if quitting {
		m.cleanup.run()
		m.quitting = true
		return m, tea.Quit
	}
	if goingBack {
		m.backToMenu()
		return m, nil
	}
	return m, cmd
}

// sizeCmd replays the current terminal size to a freshly opened screen.
func (m SessionModel) sizeCmd() tea.Cmd {
	w, h := m.env.Runtime.ScreenW, m.env.Runtime.ScreenH
	return func() tea.Msg {
		return tea.WindowSizeMsg{Width: w, Height: h}
	}
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case ScreenGame:
		return m.game.View()
	case ScreenRewards:
		return m.rewards.View()
	case ScreenScores:
		return m.scores.View()
	}
	return m.menu.View()
}

// Screen returns the screen being shown.
func (m SessionModel) Screen() Screen {
	return m.screen
}

// Release drops ledger subscriptions held by the session. Safe to call
// from any goroutine and more than once.
func (m SessionModel) Release() {
	m.cleanup.run()
}

// Run starts a local Bubble Tea program on screen s.
func Run(env Env, s Screen) error {
	model := NewSessionModelAt(env, s)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	model.Release()
	return err
}
