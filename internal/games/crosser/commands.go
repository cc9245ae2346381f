package crosser

import (
	"fmt"

	"github.com/vovakirdan/rasta-crosser/internal/core"
)

// Command is a logical player command delivered by an input source.
type Command uint8

const (
	CommandNone Command = iota
	CommandUp
	CommandLeft
	CommandRight
	CommandPause
	CommandRestart
)

func (c Command) String() string {
	switch c {
	case CommandUp:
		return "up"
	case CommandLeft:
		return "left"
	case CommandRight:
		return "right"
	case CommandPause:
		return "pause"
	case CommandRestart:
		return "restart"
	default:
		return fmt.Sprintf("Command(%d)", uint8(c))
	}
}

// CommandFromAction maps a device-level action to an engine command.
// Actions with no game meaning map to CommandNone.
func CommandFromAction(a core.Action) Command {
	switch a {
	case core.ActionUp:
		return CommandUp
	case core.ActionLeft:
		return CommandLeft
	case core.ActionRight:
		return CommandRight
	case core.ActionPause:
		return CommandPause
	case core.ActionRestart:
		return CommandRestart
	default:
		return CommandNone
	}
}

// outcome is what a command does in a given status.
type outcome uint8

const (
	outcomeIgnore outcome = iota
	outcomeRestart
	outcomePause
	outcomeResume
	outcomeMove
)

// transition decides the outcome of cmd in status s. It does not look at the
// player; hop gating and boundaries are checked by move.
func transition(s Status, cmd Command) outcome {
	switch {
	case cmd == CommandRestart:
		return outcomeRestart
	case cmd == CommandUp && s == StatusGameOver:
		return outcomeRestart
	case cmd == CommandPause && s == StatusPlaying:
		return outcomePause
	case cmd == CommandPause && s == StatusPaused:
		return outcomeResume
	case s != StatusPlaying:
		return outcomeIgnore
	case cmd == CommandUp || cmd == CommandLeft || cmd == CommandRight:
		return outcomeMove
	default:
		return outcomeIgnore
	}
}

// HandleInput applies one command synchronously to the current state.
// Invalid commands for the current state are no-ops.
func (e *Engine) HandleInput(cmd Command) {
	switch transition(e.state.Status, cmd) {
	case outcomeRestart:
		e.Restart()
	case outcomePause:
		e.state.Status = StatusPaused
		e.logger.Debug("paused", "score", e.state.Score)
	case outcomeResume:
		e.state.Status = StatusPlaying
		e.logger.Debug("resumed", "score", e.state.Score)
	case outcomeMove:
		e.move(cmd)
	}
}

// Restart replaces the whole state with a fresh initial state.
func (e *Engine) Restart() {
	prev := e.state
	e.state = e.initialState()
	e.logger.Info("restart", "previousScore", prev.Score, "previousStatus", prev.Status)
}

// move performs a grid hop if no hop is in flight and the target is in bounds.
func (e *Engine) move(cmd Command) {
	p := &e.state.Player
	if p.IsMoving {
		return
	}

	switch cmd {
	case CommandUp:
		if p.GridY <= 0 {
			return
		}
		p.GridY--
		e.state.Score += e.cfg.Scoring.PointsPerHop
		e.state.HopCount++
	case CommandLeft:
		if p.GridX <= 0 {
			return
		}
		p.GridX--
	case CommandRight:
		if p.GridX >= e.cfg.Game.Columns()-1 {
			return
		}
		p.GridX++
	default:
		return
	}

	p.IsMoving = true
	p.AnimationState = AnimHopping
	p.AnimationProgress = 0
}
