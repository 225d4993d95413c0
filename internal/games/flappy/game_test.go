package flappy

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/ozembnic-arcade/internal/config"
	"github.com/vovakirdan/ozembnic-arcade/internal/ledger"
)

type mapStore map[string]string

func (m mapStore) Get(key string) (string, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

func (m mapStore) Set(key, value string) error {
	m[key] = value
	return nil
}

type statsSpy struct {
	scores []int
	earned []int
}

func (s *statsSpy) ShowScore(n int)  { s.scores = append(s.scores, n) }
func (s *statsSpy) ShowEarned(n int) { s.earned = append(s.earned, n) }

type recorderSpy struct {
	runs []Result
	err  error
}

func (r *recorderSpy) RecordRun(res Result) error {
	r.runs = append(r.runs, res)
	return r.err
}

// steer parks the bird in the middle of the next unscored gap with a
// velocity that cancels the coming gravity step.
func steer(s *Session) {
	b := &s.bird
	b.Velocity = -b.Gravity
	for _, p := range s.pipes {
		if !p.Scored {
			b.Y = p.TopHeight + (s.cfg.Pipes.Gap-b.Height)/2
			return
		}
	}
}

func TestNewSessionWaiting(t *testing.T) {
	s := NewSession(config.Default(), WithSeed(1))

	if s.State() != Waiting {
		t.Errorf("State = %v, want waiting", s.State())
	}
	if len(s.Pipes()) != 0 {
		t.Errorf("pipes = %d, want 0", len(s.Pipes()))
	}
	if b := s.Bird(); b.Y != 300 || b.Velocity != 0 {
		t.Errorf("bird y %v v %v, want centered at rest", b.Y, b.Velocity)
	}
	if s.Tick() {
		t.Error("Tick in Waiting should not schedule another frame")
	}
	if s.Jump() {
		t.Error("Jump in Waiting should be ignored")
	}
}

func TestStartOnlyFromWaiting(t *testing.T) {
	s := NewSession(config.Default(), WithSeed(1))

	if !s.Start() {
		t.Fatal("Start from Waiting should succeed")
	}
	if s.State() != Playing {
		t.Fatalf("State = %v, want playing", s.State())
	}
	if s.Start() {
		t.Error("Start while Playing should be ignored")
	}
	if s.Result().RunID == "" {
		t.Error("started run should have an ID")
	}
}

func TestJumpWhilePlaying(t *testing.T) {
	s := NewSession(config.Default(), WithSeed(1))
	s.Start()

	if !s.Jump() {
		t.Fatal("Jump while Playing should succeed")
	}
	if v := s.Bird().Velocity; v != -5 {
		t.Errorf("Velocity = %v, want -5", v)
	}
}

func TestFallingBirdEndsRun(t *testing.T) {
	spy := &recorderSpy{}
	s := NewSession(config.Default(), WithSeed(1), WithRecorder(spy))
	s.Start()

	frames := 0
	for s.Tick() {
		frames++
		if frames > 1000 {
			t.Fatal("run never ended")
		}
	}

	if s.State() != GameOver {
		t.Fatalf("State = %v, want game over", s.State())
	}
	if s.Score() != 0 {
		t.Errorf("Score = %d, want 0", s.Score())
	}
	if len(spy.runs) != 1 {
		t.Fatalf("recorded %d runs, want 1", len(spy.runs))
	}
	if spy.runs[0].Frames != frames+1 {
		t.Errorf("recorded frames = %d, want %d", spy.runs[0].Frames, frames+1)
	}
	if s.Tick() || s.Jump() {
		t.Error("GameOver should ignore Tick and Jump")
	}
}

func TestRunStampedAtGameOver(t *testing.T) {
	ended := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	spy := &recorderSpy{}
	s := NewSession(config.Default(), WithSeed(1), WithRecorder(spy), WithClock(func() time.Time { return ended }))
	s.Start()

	if !s.Result().EndedAt.IsZero() {
		t.Error("a run in progress should have no end time")
	}
	for s.Tick() {
	}
	if len(spy.runs) != 1 || !spy.runs[0].EndedAt.Equal(ended) {
		t.Fatalf("recorded runs %+v, want one ended at %v", spy.runs, ended)
	}

	s.Reset()
	if !s.Result().EndedAt.IsZero() {
		t.Error("Reset should clear the end time")
	}
}

func TestCeilingClamp(t *testing.T) {
	s := NewSession(config.Default(), WithSeed(1))
	s.Start()
	s.bird.Y = 2
	s.Jump()
	s.Tick()

	if b := s.Bird(); b.Y != 0 || b.Velocity != 0 {
		t.Errorf("bird y %v v %v, want clamped to 0 0", b.Y, b.Velocity)
	}
	if s.State() != Playing {
		t.Errorf("ceiling contact should not end the run, state %v", s.State())
	}
}

func TestPipeCollisionEndsRun(t *testing.T) {
	s := NewSession(config.Default(), WithSeed(3))
	s.Start()

	for i := 0; i < 1000 && s.State() == Playing; i++ {
		// hug the ceiling so the first pipe's top segment hits
		s.bird.Y = 0
		s.bird.Velocity = -s.bird.Gravity
		s.Tick()
	}

	if s.State() != GameOver {
		t.Fatalf("State = %v, want game over", s.State())
	}
	if len(s.Pipes()) == 0 {
		t.Error("pipes should stay visible after a collision")
	}
	if s.Score() != 0 {
		t.Errorf("Score = %d, want 0", s.Score())
	}
}

func TestPipesMoveAndDrop(t *testing.T) {
	s := NewSession(config.Default(), WithSeed(7))
	s.Start()
	steer(s)
	s.Tick()

	if n := len(s.Pipes()); n != 1 {
		t.Fatalf("pipes after first tick = %d, want 1", n)
	}
	if x := s.Pipes()[0].X; x != 398.5 {
		t.Errorf("first pipe x = %v, want 398.5", x)
	}

	for i := 0; i < 2000 && s.State() == Playing; i++ {
		steer(s)
		s.Tick()
		for _, p := range s.Pipes() {
			if p.Right() < 0 {
				t.Fatalf("off-screen pipe kept at x %v", p.X)
			}
		}
		for j := 1; j < len(s.Pipes()); j++ {
			if s.Pipes()[j].X <= s.Pipes()[j-1].X {
				t.Fatal("pipes should stay ordered oldest first")
			}
		}
	}
	if s.State() != Playing {
		t.Fatalf("steered bird crashed, state %v", s.State())
	}
}

func TestScoringCreditsLedger(t *testing.T) {
	store := mapStore{ledger.PointsKey: "50"}
	l := ledger.Open(store)
	stats := &statsSpy{}
	spy := &recorderSpy{}

	s := NewSession(config.Default(), WithSeed(42), WithLedger(l), WithStats(stats), WithRecorder(spy))

	var overs []Result
	s.OnGameOver(func(r Result) { overs = append(overs, r) })

	loop := NewLoop(s)
	frame, ok := loop.Start()
	if !ok {
		t.Fatal("loop did not start")
	}

	for i := 0; i < 5000 && ok; i++ {
		if s.Score() < 3 {
			steer(s)
		}
		frame, ok = loop.Fire(frame)
	}

	if s.State() != GameOver {
		t.Fatalf("State = %v, want game over", s.State())
	}
	if s.Score() != 3 || s.Earned() != 3 {
		t.Errorf("score %d earned %d, want 3 and 3", s.Score(), s.Earned())
	}
	if l.Balance() != 53 {
		t.Errorf("Balance = %d, want 53", l.Balance())
	}
	if store[ledger.PointsKey] != "53" {
		t.Errorf("stored balance = %q, want 53", store[ledger.PointsKey])
	}
	if len(overs) != 1 || overs[0].Score != 3 {
		t.Errorf("game over listeners got %+v, want one run with score 3", overs)
	}
	if len(spy.runs) != 1 || spy.runs[0].Earned != 3 {
		t.Errorf("recorded runs %+v, want one with 3 earned", spy.runs)
	}

	wantScores := []int{0, 1, 2, 3}
	if len(stats.scores) != len(wantScores) {
		t.Fatalf("published scores %v, want %v", stats.scores, wantScores)
	}
	for i, v := range wantScores {
		if stats.scores[i] != v || stats.earned[i] != v {
			t.Errorf("publish %d = score %d earned %d, want %d", i, stats.scores[i], stats.earned[i], v)
		}
	}
	if _, pending := loop.Pending(); pending {
		t.Error("no frame should be pending after game over")
	}
}

func TestResetKeepsEarnedPoints(t *testing.T) {
	l := ledger.Open(mapStore{})
	stats := &statsSpy{}
	s := NewSession(config.Default(), WithSeed(42), WithLedger(l), WithStats(stats))
	s.Start()

	for i := 0; i < 2000 && s.Score() < 1; i++ {
		steer(s)
		s.Tick()
	}
	s.Reset()

	if s.State() != Waiting {
		t.Errorf("State = %v, want waiting", s.State())
	}
	if s.Score() != 0 || s.Earned() != 0 || len(s.Pipes()) != 0 {
		t.Errorf("reset left score %d earned %d pipes %d", s.Score(), s.Earned(), len(s.Pipes()))
	}
	if l.Balance() != 1 {
		t.Errorf("Balance = %d, want 1", l.Balance())
	}
	if last := stats.scores[len(stats.scores)-1]; last != 0 {
		t.Errorf("last published score = %d, want 0", last)
	}
}

func TestRecorderFailureStillEndsRun(t *testing.T) {
	spy := &recorderSpy{err: errors.New("disk full")}
	s := NewSession(config.Default(), WithSeed(1), WithRecorder(spy))
	s.Start()
	for s.Tick() {
	}

	if s.State() != GameOver {
		t.Errorf("State = %v, want game over", s.State())
	}
	if len(spy.runs) != 1 {
		t.Errorf("recorded %d runs, want 1", len(spy.runs))
	}
}

func TestResizeOnlyWhileWaiting(t *testing.T) {
	s := NewSession(config.Default(), WithSeed(1))

	if !s.Resize(300, 450) {
		t.Fatal("Resize while Waiting should apply")
	}
	if w, h := s.Size(); w != 300 || h != 450 {
		t.Errorf("Size = %vx%v, want 300x450", w, h)
	}
	if y := s.Bird().Y; y != 225 {
		t.Errorf("bird y = %v, want recentered at 225", y)
	}

	s.Start()
	if s.Resize(400, 600) {
		t.Error("Resize while Playing should be ignored")
	}
	if w, _ := s.Size(); w != 300 {
		t.Errorf("width changed mid-run to %v", w)
	}
	if s.Resize(0, 100) {
		t.Error("zero width should be rejected")
	}
}

func TestSessionDeterminism(t *testing.T) {
	run := func() (int, int) {
		s := NewSession(config.Default(), WithSeed(12345))
		s.Start()
		for i := 0; i < 3000 && s.State() == Playing; i++ {
			if i%40 == 0 {
				s.Jump()
			}
			s.Tick()
		}
		return s.Score(), s.Result().Frames
	}

	score1, frames1 := run()
	score2, frames2 := run()
	if score1 != score2 || frames1 != frames2 {
		t.Errorf("runs differ: score %d/%d frames %d/%d", score1, score2, frames1, frames2)
	}
}
