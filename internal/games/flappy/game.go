// Package flappy implements the Flappy Bird game that earns reward points.
// The player keeps a bird airborne through gaps between pipe pairs; every
// pipe passed scores a point and credits one point to the ledger.
package flappy

import (
	"io"
	"math/rand"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/ozembnic-arcade/internal/config"
)

// State is the session lifecycle phase.
type State int

const (
	Waiting State = iota
	Playing
	GameOver
)

func (s State) String() string {
	switch s {
	case Waiting:
		return "waiting"
	case Playing:
		return "playing"
	case GameOver:
		return "game_over"
	}
	return "unknown"
}

// PointsAdder credits points earned during play.
type PointsAdder interface {
	Add(amount int)
}

// StatsDisplay shows the score and points earned of the current run.
type StatsDisplay interface {
	ShowScore(n int)
	ShowEarned(n int)
}

// Result summarises a finished run.
type Result struct {
	RunID   string
	Player  string
	Score   int
	Earned  int
	Frames  int
	EndedAt time.Time
}

// RunRecorder persists finished runs.
type RunRecorder interface {
	RecordRun(r Result) error
}

// Session is one game: bird, pipes, score and lifecycle state. It is not safe
// for concurrent use; each player gets their own Session.
type Session struct {
	cfg    config.Config
	width  float64
	height float64

	bird  Bird
	pipes []Pipe
	gen   *PipeGenerator

	state   State
	score   int
	earned  int
	frames  int
	runID   string
	endedAt time.Time

	player    string
	points    PointsAdder
	stats     StatsDisplay
	recorder  RunRecorder
	listeners []func(Result)
	logger    *log.Logger
	rng       *rand.Rand
	now       func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithSeed makes pipe placement reproducible.
func WithSeed(seed int64) Option {
	return func(s *Session) {
		s.rng = rand.New(rand.NewSource(seed)) //nolint:gosec
	}
}

// WithLedger credits every scored pipe to p.
func WithLedger(p PointsAdder) Option {
	return func(s *Session) {
		s.points = p
	}
}

// WithStats publishes score and points earned to d.
func WithStats(d StatsDisplay) Option {
	return func(s *Session) {
		s.stats = d
	}
}

// WithRecorder persists each finished run.
func WithRecorder(r RunRecorder) Option {
	return func(s *Session) {
		s.recorder = r
	}
}

// WithPlayer names the player in recorded runs.
func WithPlayer(name string) Option {
	return func(s *Session) {
		s.player = name
	}
}

// WithClock sets the clock that stamps finished runs.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// NewSession creates a session in the Waiting state with the bird centered
// and no pipes.
func NewSession(cfg config.Config, opts ...Option) *Session {
	s := &Session{
		cfg:    cfg,
		width:  cfg.Playfield.Width,
		height: cfg.Playfield.Height,
		logger: log.New(io.Discard),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec
	}

	s.gen = NewPipeGenerator(cfg.Pipes, s.rng)
	s.bird = NewBird(cfg.Bird, s.height)
	return s
}

// OnGameOver registers fn to run after every finished run.
func (s *Session) OnGameOver(fn func(Result)) {
	s.listeners = append(s.listeners, fn)
}

// Start begins a run. It only has an effect in the Waiting state.
func (s *Session) Start() bool {
	if s.state != Waiting {
		return false
	}
	s.clear()
	s.runID = uuid.NewString()
	s.state = Playing
	s.publish()
	s.logger.Debug("run started", "run", s.runID, "player", s.player)
	return true
}

// Reset abandons the current run and returns to Waiting. Points already
// credited stay credited.
func (s *Session) Reset() {
	s.clear()
	s.runID = ""
	s.state = Waiting
	s.publish()
}

// Jump gives the bird its jump impulse. Only effective while Playing.
func (s *Session) Jump() bool {
	if s.state != Playing {
		return false
	}
	s.bird.Jump()
	return true
}

// Tick advances the simulation one frame and reports whether another frame
// should follow. Outside Playing it does nothing and returns false.
func (s *Session) Tick() bool {
	if s.state != Playing {
		return false
	}
	s.frames++

	s.bird.Integrate()
	if s.bird.HitsFloor(s.height) {
		s.end("floor")
		return false
	}
	s.bird.ClampCeiling()

	s.pipes = s.gen.MaybeSpawn(s.pipes, s.width, s.height)

	for i := range s.pipes {
		p := &s.pipes[i]
		p.X -= s.cfg.Pipes.Speed

		if Collides(s.bird, *p) {
			s.end("pipe")
			return false
		}

		if !p.Scored && p.Right() < s.bird.X {
			p.Scored = true
			s.score++
			s.earned++
			if s.points != nil {
				s.points.Add(1)
			}
			s.publish()
		}
	}
	s.pipes = slices.DeleteFunc(s.pipes, func(p Pipe) bool { return p.Right() < 0 })
	return true
}

// Resize changes the playfield size. Only applied while Waiting, so a run in
// progress never changes geometry.
func (s *Session) Resize(width, height float64) bool {
	if s.state != Waiting || width <= 0 || height <= 0 {
		return false
	}
	s.width, s.height = width, height
	s.bird.Center(height)
	return true
}

func (s *Session) clear() {
	s.score = 0
	s.earned = 0
	s.frames = 0
	s.endedAt = time.Time{}
	s.pipes = s.pipes[:0]
	s.bird.Center(s.height)
}

func (s *Session) publish() {
	if s.stats == nil {
		return
	}
	s.stats.ShowScore(s.score)
	s.stats.ShowEarned(s.earned)
}

func (s *Session) end(cause string) {
	s.state = GameOver
	s.endedAt = s.now()
	res := s.Result()
	s.logger.Info("run finished", "run", res.RunID, "player", res.Player,
		"score", res.Score, "earned", res.Earned, "frames", res.Frames, "cause", cause)

	if s.recorder != nil {
		if err := s.recorder.RecordRun(res); err != nil {
			s.logger.Warn("cannot record run", "run", res.RunID, "error", err)
		}
	}
	for _, fn := range s.listeners {
		fn(res)
	}
}

// Result returns the summary of the current or last run. EndedAt is zero
// until the run is over.
func (s *Session) Result() Result {
	return Result{
		RunID:   s.runID,
		Player:  s.player,
		Score:   s.score,
		Earned:  s.earned,
		Frames:  s.frames,
		EndedAt: s.endedAt,
	}
}

// State returns the lifecycle phase.
func (s *Session) State() State { return s.state }

// Score returns pipes passed in the current run.
func (s *Session) Score() int { return s.score }

// Earned returns points earned in the current run.
func (s *Session) Earned() int { return s.earned }

// Bird returns a copy of the bird.
func (s *Session) Bird() Bird { return s.bird }

// Pipes returns the live pipes, oldest first. The slice must not be modified.
func (s *Session) Pipes() []Pipe { return s.pipes }

// Size returns the playfield size in units.
func (s *Session) Size() (width, height float64) { return s.width, s.height }

// Ground returns the height of the ground strip drawn at the bottom.
func (s *Session) Ground() float64 { return s.cfg.Playfield.Ground }
