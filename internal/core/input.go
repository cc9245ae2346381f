package core

import (
	"math"
	"time"
)

// Action represents a semantic input action, abstracted from physical key presses.
// The platform translates device events into actions and delivers them one at a time.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow, tap - hop forward
	ActionDown           // S, Down arrow - menu navigation only
	ActionLeft           // A, Left arrow, swipe left
	ActionRight          // D, Right arrow, swipe right
	ActionPause          // Space - pause/unpause
	ActionRestart        // R - restart at any time
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B, Escape - go back to menu
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Gesture thresholds, in game pixels and wall-clock time.
const (
	MinSwipeDistance = 30.0
	MaxSwipeTime     = 200 * time.Millisecond
)

// GestureTracker turns a press/release pair into a swipe or tap action.
// A fast horizontal drag is a swipe (left/right); a press that barely moves is a tap (up).
type GestureTracker struct {
	startX, startY float64
	startAt        time.Time
	active         bool
}

// Press records the start of a gesture.
func (g *GestureTracker) Press(x, y float64, at time.Time) {
	g.startX, g.startY = x, y
	g.startAt = at
	g.active = true
}

// Release completes the gesture and returns the resulting action.
// Returns ActionNone when no press is pending or the motion is ambiguous.
func (g *GestureTracker) Release(x, y float64, at time.Time) Action {
	if !g.active {
		return ActionNone
	}
	g.active = false

	dx := x - g.startX
	dy := y - g.startY
	elapsed := at.Sub(g.startAt)

	switch {
	case math.Abs(dx) > MinSwipeDistance && elapsed < MaxSwipeTime:
		if dx > 0 {
			return ActionRight
		}
		return ActionLeft
	case math.Abs(dx) < MinSwipeDistance && math.Abs(dy) < MinSwipeDistance:
		return ActionUp
	}
	return ActionNone
}
