package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ozembnic-arcade/internal/config"
	"github.com/vovakirdan/ozembnic-arcade/internal/core"
	"github.com/vovakirdan/ozembnic-arcade/internal/games/flappy"
	"github.com/vovakirdan/ozembnic-arcade/internal/ledger"
	"github.com/vovakirdan/ozembnic-arcade/internal/storage"
)

type memStore map[string]string

func (m memStore) Get(key string) (string, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

func (m memStore) Set(key, value string) error {
	m[key] = value
	return nil
}

func testEnv(balance string) Env {
	cfg := config.Default()
	l := ledger.Open(memStore{ledger.PointsKey: balance})
	return Env{
		Config:   cfg,
		Runtime:  core.RuntimeConfig{ScreenW: 80, ScreenH: 40, TickRate: 60, Seed: 42},
		Ledger:   l,
		Redeemer: ledger.NewRedeemer(l, ledger.NewCatalog(cfg.Rewards)),
		Player:   "tester",
	}
}

var (
	spaceKey = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	resetKey = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}
	quitKey  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
)

// steppedClock returns a clock that advances by step on every call, so
// consecutive inputs are never debounced.
func steppedClock(step time.Duration) func() time.Time {
	t := time.Unix(0, 0)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

func update(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T, want GameModel", next)
	}
	return gm, cmd
}

func TestSpaceStartsThenFlaps(t *testing.T) {
	m := NewGameModel(testEnv("50"))
	m.now = steppedClock(time.Second)

	m, cmd := update(t, m, spaceKey)
	if m.Session().State() != flappy.Playing {
		t.Fatalf("State = %v, want playing", m.Session().State())
	}
	if cmd == nil {
		t.Fatal("start should schedule a frame")
	}
	f, ok := m.loop.Pending()
	if !ok {
		t.Fatal("no pending frame after start")
	}

	m, _ = update(t, m, FrameMsg{Frame: f})
	m, _ = update(t, m, spaceKey)
	if v := m.Session().Bird().Velocity; v != -5 {
		t.Errorf("Velocity after flap = %v, want -5", v)
	}
}

func TestFlapIsDebounced(t *testing.T) {
	m := NewGameModel(testEnv("0"))
	m.now = steppedClock(10 * time.Millisecond)

	m, _ = update(t, m, spaceKey) // start
	f, _ := m.loop.Pending()
	m, _ = update(t, m, FrameMsg{Frame: f})
	m, _ = update(t, m, spaceKey) // 10ms later, inside the 80ms window

	if v := m.Session().Bird().Velocity; v == -5 {
		t.Error("second press inside the debounce window should not flap")
	}
}

func TestStaleFrameIgnoredAfterReset(t *testing.T) {
	m := NewGameModel(testEnv("0"))
	m.now = steppedClock(time.Second)

	m, _ = update(t, m, spaceKey)
	stale, _ := m.loop.Pending()

	m, _ = update(t, m, resetKey)
	if m.Session().State() != flappy.Waiting {
		t.Fatalf("State = %v, want waiting", m.Session().State())
	}

	m, cmd := update(t, m, FrameMsg{Frame: stale})
	if cmd != nil {
		t.Error("stale frame should not schedule another")
	}
	if m.Session().Result().Frames != 0 {
		t.Error("stale frame advanced the session")
	}
}

func TestMouseLeftPressFlaps(t *testing.T) {
	m := NewGameModel(testEnv("0"))
	m.now = steppedClock(time.Second)
	area := m.playArea()

	press := tea.MouseMsg{X: area.X + 1, Y: area.Y + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	release := press
	release.Action = tea.MouseActionRelease

	m, _ = update(t, m, release)
	if m.Session().State() != flappy.Waiting {
		t.Error("mouse release should not start the game")
	}
	m, _ = update(t, m, press)
	if m.Session().State() != flappy.Playing {
		t.Errorf("State = %v, want playing after left press", m.Session().State())
	}
}

func TestMouseOutsidePlayfieldIgnored(t *testing.T) {
	m := NewGameModel(testEnv("0"))
	m.now = steppedClock(time.Second)

	m, _ = update(t, m, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.Session().State() != flappy.Waiting {
		t.Error("click on the status bar should be ignored")
	}
}

func TestResizeAppliesLatestOnly(t *testing.T) {
	m := NewGameModel(testEnv("0"))

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 50, Height: 40})
	first := *m.resizeSeq
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 40})

	m, _ = update(t, m, resizeMsg{seq: first})
	if w, _ := m.Session().Size(); w != 400 {
		t.Errorf("superseded resize applied, width %v", w)
	}

	// 45 columns * 8px = 360px viewport, narrow: 360 - 40 = 320
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 45, Height: 40})
	m, _ = update(t, m, resizeMsg{seq: *m.resizeSeq})
	w, h := m.Session().Size()
	if w != 320 || h != 480 {
		t.Errorf("Size = %vx%v, want 320x480", w, h)
	}
}

func TestNarrowTerminalKeepsGapInPlayfield(t *testing.T) {
	m := NewGameModel(testEnv("0"))

	// 20 columns * 8px = 160px viewport, too short for a 220 gap at 2:3
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 40})
	m, _ = update(t, m, resizeMsg{seq: *m.resizeSeq})
	if _, h := m.Session().Size(); h != 340 {
		t.Fatalf("height = %v, want 340 (gap + two minimum segments)", h)
	}

	s := m.Session()
	s.Start()
	s.Tick()
	pipes := s.Pipes()
	if len(pipes) == 0 {
		t.Fatal("no pipe spawned")
	}
	for _, p := range pipes {
		if p.TopHeight < 60 || p.BottomHeight < 60 {
			t.Errorf("pipe segments %v / %v, want both at least 60", p.TopHeight, p.BottomHeight)
		}
	}
}

func TestResizeIgnoredWhilePlaying(t *testing.T) {
	m := NewGameModel(testEnv("0"))
	m.now = steppedClock(time.Second)
	m, _ = update(t, m, spaceKey)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 45, Height: 40})
	m, _ = update(t, m, resizeMsg{seq: *m.resizeSeq})
	if w, _ := m.Session().Size(); w != 400 {
		t.Errorf("playfield resized mid-run to width %v", w)
	}
}

func TestStatusBarShowsBalance(t *testing.T) {
	m := NewGameModel(testEnv("1250"))
	defer m.Release()

	view := m.View()
	if !strings.Contains(view, "Points: 1,250") {
		t.Errorf("status bar missing formatted balance:\n%s", view)
	}
	if !strings.Contains(view, "to Start!") {
		t.Error("waiting overlay not rendered")
	}
}

func TestStatusBarShowsBest(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "points.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	if err := store.SaveRun(storage.Run{ID: "earlier", Score: 7, PointsEarned: 7}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	env := testEnv("0")
	env.Store = store
	m := NewGameModel(env)
	defer m.Release()

	if view := m.View(); !strings.Contains(view, "Best: 7") {
		t.Errorf("status bar missing the stored high score:\n%s", view)
	}
}

func TestReleaseStopsFollowingLedger(t *testing.T) {
	env := testEnv("10")
	m := NewGameModel(env)
	m.Release()

	env.Ledger.Add(5)
	if got := m.balance.Text(); got != "10" {
		t.Errorf("balance label = %q after release, want 10", got)
	}
}

func TestGameOverShowsNextReward(t *testing.T) {
	m := NewGameModel(testEnv("30"))
	m.now = steppedClock(time.Second)
	m, _ = update(t, m, spaceKey)

	for f, ok := m.loop.Pending(); ok; f, ok = m.loop.Pending() {
		m, _ = update(t, m, FrameMsg{Frame: f})
	}

	if m.Session().State() != flappy.GameOver {
		t.Fatalf("State = %v, want game over", m.Session().State())
	}
	if got := m.hint.Text(); got != "Ozembnic Mug: Need 70 more" {
		t.Errorf("hint = %q", got)
	}
}

func TestQuitAndBack(t *testing.T) {
	m := NewGameModel(testEnv("0"))
	m, cmd := update(t, m, quitKey)
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}

	m = NewGameModel(testEnv("0"))
	m, _ = update(t, m, escKey)
	if !m.BackToMenu() {
		t.Error("esc should go back to the menu")
	}
}
