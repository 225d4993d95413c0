// Package display routes the three values the site shows next to the game:
// the points balance, the score of the current run and the points earned in
// it. Each value goes to an optional Target; a missing target is skipped.
package display

import (
	"strconv"
	"sync"

	"github.com/dustin/go-humanize"
)

// Element IDs used by the website and the WebSocket feed.
const (
	TotalPoints  = "totalPoints"
	GameScore    = "gameScore"
	PointsEarned = "pointsEarned"
)

// Target is one text output, the equivalent of a page element.
type Target interface {
	SetText(text string)
}

// TargetFunc adapts a function to a Target.
type TargetFunc func(text string)

// SetText calls f.
func (f TargetFunc) SetText(text string) { f(text) }

// Board holds the three display targets. Any of them may be nil, and a nil
// *Board is valid and shows nothing.
type Board struct {
	Balance Target
	Score   Target
	Earned  Target
}

// ShowBalance renders the balance with thousands separators.
func (b *Board) ShowBalance(n int) {
	if b == nil || b.Balance == nil {
		return
	}
	b.Balance.SetText(humanize.Comma(int64(n)))
}

// ShowScore renders the current run's score.
func (b *Board) ShowScore(n int) {
	if b == nil || b.Score == nil {
		return
	}
	b.Score.SetText(strconv.Itoa(n))
}

// ShowEarned renders the points earned in the current run.
func (b *Board) ShowEarned(n int) {
	if b == nil || b.Earned == nil {
		return
	}
	b.Earned.SetText(strconv.Itoa(n))
}

// Multi fans a text out to several targets, skipping nil ones.
func Multi(targets ...Target) Target {
	live := make([]Target, 0, len(targets))
	for _, t := range targets {
		if t != nil {
			live = append(live, t)
		}
	}
	switch len(live) {
	case 0:
		return nil
	case 1:
		return live[0]
	}
	return TargetFunc(func(text string) {
		for _, t := range live {
			t.SetText(text)
		}
	})
}

// Label is a Target that keeps the last text, for views that render on
// their own schedule. Safe for concurrent use.
type Label struct {
	mu   sync.RWMutex
	text string
}

// NewLabel creates a label with initial text.
func NewLabel(initial string) *Label {
	return &Label{text: initial}
}

// SetText replaces the label text.
func (l *Label) SetText(text string) {
	l.mu.Lock()
	l.text = text
	l.mu.Unlock()
}

// Text returns the current label text.
func (l *Label) Text() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.text
}
