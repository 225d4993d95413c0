package tui

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ozembnic-arcade/internal/config"
	"github.com/vovakirdan/ozembnic-arcade/internal/core"
	"github.com/vovakirdan/ozembnic-arcade/internal/display"
	"github.com/vovakirdan/ozembnic-arcade/internal/games/flappy"
	"github.com/vovakirdan/ozembnic-arcade/internal/ledger"
	"github.com/vovakirdan/ozembnic-arcade/internal/storage"
)

// Env is everything a player's views share.
type Env struct {
	Config   config.Config
	Runtime  core.RuntimeConfig
	Ledger   *ledger.Ledger
	Redeemer *ledger.Redeemer
	Store    *storage.Store // Optional; runs are not recorded without it
	Sprite   *core.Sprite   // Optional bird image
	Stats    *display.Board // Optional extra outputs for score and points earned
	Logger   *log.Logger
	Player   string
}

func (e Env) logger() *log.Logger {
	if e.Logger == nil {
		return log.New(io.Discard)
	}
	return e.Logger
}

// Rows taken by the status bar and the help line.
const chromeRows = 2

var (
	statusStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// GameModel is the Bubble Tea model of the game view.
type GameModel struct {
	env      Env
	session  *flappy.Session
	loop     *flappy.Loop
	screen   *core.Screen
	renderer flappy.Renderer
	debounce *core.Debouncer
	keys     GameKeyMap
	help     help.Model

	balance *display.Label
	score   *display.Label
	earned  *display.Label
	hint    *display.Label
	best    *display.Label
	release func()

	width     int
	height    int
	resizeSeq *int
	now       func() time.Time

	quitting   bool
	backToMenu bool
}

// NewGameModel creates the game view. Call Release when the view is
// discarded to stop following the ledger.
func NewGameModel(env Env) GameModel {
	if env.Runtime.Seed == 0 {
		env.Runtime.Seed = time.Now().UnixNano()
	}
	if env.Runtime.TickRate <= 0 {
		env.Runtime.TickRate = 60
	}

	m := GameModel{
		env:       env,
		renderer:  flappy.Renderer{Sprite: env.Sprite},
		debounce:  core.NewDebouncer(time.Duration(env.Config.Input.DebounceMS) * time.Millisecond),
		keys:      DefaultGameKeyMap(),
		help:      help.New(),
		balance:   display.NewLabel("0"),
		score:     display.NewLabel("0"),
		earned:    display.NewLabel("0"),
		hint:      display.NewLabel(""),
		best:      display.NewLabel("0"),
		width:     env.Runtime.ScreenW,
		height:    env.Runtime.ScreenH,
		resizeSeq: new(int),
		now:       time.Now,
	}
	m.screen = core.NewScreen(m.width, max(m.height-chromeRows, 0))

	var stats display.Board
	if env.Stats != nil {
		stats = *env.Stats
	}
	board := &display.Board{
		Balance: m.balance,
		Score:   display.Multi(m.score, stats.Score),
		Earned:  display.Multi(m.earned, stats.Earned),
	}

	opts := []flappy.Option{
		flappy.WithSeed(env.Runtime.Seed),
		flappy.WithStats(board),
		flappy.WithPlayer(env.Player),
		flappy.WithLogger(env.logger()),
	}
	if env.Ledger != nil {
		opts = append(opts, flappy.WithLedger(env.Ledger))
		m.release = env.Ledger.Subscribe(board.ShowBalance)
	}
	if env.Store != nil {
		opts = append(opts, flappy.WithRecorder(env.Store))
	}

	m.session = flappy.NewSession(env.Config, opts...)
	m.session.OnGameOver(m.showNextReward)
	m.session.OnGameOver(m.showBest)
	m.showBest(flappy.Result{})
	m.loop = flappy.NewLoop(m.session)
	m.fitPlayfield()
	return m
}

// showNextReward points at the cheapest reward still out of reach, the
// terminal counterpart of refreshing the reward buttons.
func (m GameModel) showNextReward(flappy.Result) {
	if m.env.Redeemer == nil {
		return
	}
	for _, o := range m.env.Redeemer.Offers() {
		if !o.Affordable {
			m.hint.SetText(fmt.Sprintf("%s: %s", o.Name, o.Label))
			return
		}
	}
	m.hint.SetText("Every reward is within reach!")
}

// showBest reads the high score back from the store. Game over listeners
// run after the run is recorded, so the finished run counts.
func (m GameModel) showBest(flappy.Result) {
	if m.env.Store == nil {
		return
	}
	best, err := m.env.Store.HighScore()
	if err != nil {
		m.env.logger().Warn("cannot read high score", "error", err)
		return
	}
	m.best.SetText(strconv.Itoa(best))
}

// Init initializes the model.
func (m GameModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Back) {
			m.loop.Reset()
			m.backToMenu = true
			return m, nil
		}
		return m.handleAction(m.keys.Action(msg))

	case tea.MouseMsg:
		if !m.playArea().Contains(msg.X, msg.Y) {
			return m, nil
		}
		return m.handleAction(MouseAction(msg))

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case resizeMsg:
		if msg.seq == *m.resizeSeq {
			m.fitPlayfield()
		}
		return m, nil

	case FrameMsg:
		next, ok := m.loop.Fire(msg.Frame)
		if !ok {
			return m, nil
		}
		return m, frameCmd(m.env.Runtime.TickRate, next)
	}

	return m, nil
}

// handleAction applies one semantic action. Flaps are debounced so one
// physical press fires once.
func (m GameModel) handleAction(action core.Action) (tea.Model, tea.Cmd) {
	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionReset:
		m.loop.Reset()
		m.debounce.Reset()
		m.hint.SetText("")
		m.fitPlayfield()

	case core.ActionFlap:
		if !m.debounce.Accept(m.now()) {
			return m, nil
		}
		switch m.session.State() {
		case flappy.Waiting:
			if f, ok := m.loop.Start(); ok {
				return m, frameCmd(m.env.Runtime.TickRate, f)
			}
		case flappy.Playing:
			m.session.Jump()
		}
	}
	return m, nil
}

// handleResize resizes the screen buffer at once and the playfield after the
// terminal has been quiet for the resize window.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-chromeRows, 0))
	m.help.Width = msg.Width

	*m.resizeSeq++
	quiet := time.Duration(m.env.Config.Input.ResizeMS) * time.Millisecond
	return m, resizeCmd(quiet, *m.resizeSeq)
}

// fitPlayfield sizes the playfield from the terminal width as if every
// column were CellPx pixels wide, never shorter than a full pipe gap.
// Ignored by the session outside Waiting.
func (m GameModel) fitPlayfield() {
	if m.width <= 0 {
		return
	}
	w, h := m.env.Config.Fit(float64(m.width) * m.env.Config.Playfield.CellPx)
	m.session.Resize(w, h)
}

// playArea returns the screen cells covered by the playfield, in terminal
// coordinates.
func (m GameModel) playArea() core.Rect {
	w, h := m.session.Size()
	area := core.NewCanvas(m.screen, core.NewRect(0, 0, m.screen.Width(), m.screen.Height()), w, h).Area()
	area.Y++ // status bar
	return area
}

// View renders the status bar, the playfield and the help line.
func (m GameModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.screen.Clear()
	w, h := m.session.Size()
	canvas := core.NewCanvas(m.screen, core.NewRect(0, 0, m.screen.Width(), m.screen.Height()), w, h)
	m.renderer.Draw(canvas, m.session)

	status := statusStyle.Render(fmt.Sprintf("Points: %s   Score: %s   Earned: %s   Best: %s",
		m.balance.Text(), m.score.Text(), m.earned.Text(), m.best.Text()))
	if hint := m.hint.Text(); hint != "" {
		status += " " + hintStyle.Render(hint)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		status,
		RenderScreen(m.screen),
		helpStyle.Render(m.help.View(m.keys)),
	)
}

// Session returns the game session.
func (m GameModel) Session() *flappy.Session {
	return m.session
}

// Release stops following the ledger balance.
func (m GameModel) Release() {
	if m.release != nil {
		m.release()
	}
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}
