// Package tui provides the Bubble Tea front end of the arcade: the game
// view, the rewards counter, the high score table and the SSH server that
// serves them to remote players.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ozembnic-arcade/internal/games/flappy"
)

// FrameMsg fires one scheduled animation frame.
type FrameMsg struct {
	Frame flappy.Frame
}

// frameCmd schedules frame f one tick from now.
func frameCmd(tickRate int, f flappy.Frame) tea.Cmd {
	interval := time.Second / time.Duration(max(tickRate, 1))
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return FrameMsg{Frame: f}
	})
}

// resizeMsg applies a terminal resize once the terminal has stopped
// changing size for the quiet period.
type resizeMsg struct {
	seq int
}

func resizeCmd(quiet time.Duration, seq int) tea.Cmd {
	return tea.Tick(quiet, func(time.Time) tea.Msg {
		return resizeMsg{seq: seq}
	})
}
