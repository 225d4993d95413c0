package flappy

// Frame identifies one scheduled animation frame. The zero Frame is never
// scheduled.
type Frame uint64

// Loop drives a Session one frame at a time. At most one frame is pending;
// a frame that is no longer pending when it fires is ignored, so a Reset or
// a finished run cancels any tick already in flight.
type Loop struct {
	session *Session
	pending Frame
	last    Frame
}

// NewLoop creates a loop for s.
func NewLoop(s *Session) *Loop {
	return &Loop{session: s}
}

// Session returns the driven session.
func (l *Loop) Session() *Session { return l.session }

// Start starts the session and schedules the first frame. It returns false
// when the session was not Waiting.
func (l *Loop) Start() (Frame, bool) {
	if !l.session.Start() {
		return 0, false
	}
	return l.schedule(), true
}

// Reset resets the session and cancels the pending frame.
func (l *Loop) Reset() {
	l.pending = 0
	l.session.Reset()
}

// Fire runs the tick for f if it is the pending frame and schedules the
// next one while the session keeps playing.
func (l *Loop) Fire(f Frame) (Frame, bool) {
	if f == 0 || f != l.pending {
		return 0, false
	}
	l.pending = 0
	if !l.session.Tick() {
		return 0, false
	}
	return l.schedule(), true
}

// Pending returns the pending frame, if any.
func (l *Loop) Pending() (Frame, bool) {
	return l.pending, l.pending != 0
}

func (l *Loop) schedule() Frame {
	l.last++
	l.pending = l.last
	return l.pending
}
