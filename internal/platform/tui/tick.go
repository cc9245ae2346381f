// Package tui provides the Bubble Tea integration for the crosser.
// It handles the terminal UI loop, input mapping, menus and SSH sessions.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is the host redraw signal.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// tickRequester adapts TickMsg to crosser.FrameRequester. It holds at most
// one pending frame, which runs on the Bubble Tea goroutine when fire is called.
type tickRequester struct {
	pending func(time.Time)
	seq     uint64
}

// RequestFrame implements crosser.FrameRequester.
func (r *tickRequester) RequestFrame(fn func(now time.Time)) func() {
	r.seq++
	seq := r.seq
	r.pending = fn
	return func() {
		if r.seq == seq {
			r.pending = nil
		}
	}
}

// fire runs the pending frame, if any.
func (r *tickRequester) fire(now time.Time) bool {
	fn := r.pending
	if fn == nil {
		return false
	}
	r.pending = nil
	fn(now)
	return true
}
