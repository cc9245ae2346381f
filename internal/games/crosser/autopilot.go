package crosser

import (
	"math"

	"github.com/vovakirdan/rasta-crosser/internal/config"
)

// Autopilot picks commands for demo play. It looks at a snapshot only and
// never touches an engine.
type Autopilot struct {
	cfg        *config.GameConfig
	difficulty *config.DifficultyManager
	lookahead  float64 // Milliseconds of vehicle travel considered dangerous
}

// NewAutopilot creates an autopilot for a configuration.
func NewAutopilot(cfg *config.GameConfig) *Autopilot {
	return &Autopilot{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		lookahead:  HopDuration * 2.5,
	}
}

// Next returns the command to issue for state s, or CommandNone to wait.
func (a *Autopilot) Next(s GameState) Command {
	switch s.Status {
	case StatusGameOver:
		return CommandRestart
	case StatusPaused:
		return CommandPause
	case StatusPlaying:
	default:
		return CommandNone
	}

	p := s.Player
	if p.IsMoving {
		return CommandNone
	}
	if p.GridY == 0 {
		return CommandRestart
	}

	grid := float64(a.cfg.Game.GridSize)
	x := float64(p.GridX)*grid + grid/2
	y := float64(p.GridY)*grid + grid/2

	if a.clear(s, x, y-grid) {
		return CommandUp
	}
	if a.clear(s, x, y) {
		return CommandNone
	}

	// Current row is about to be hit; sidestep toward the safer side.
	if p.GridX > 0 && a.clear(s, x-grid, y) {
		return CommandLeft
	}
	if p.GridX < a.cfg.Game.Columns()-1 && a.clear(s, x+grid, y) {
		return CommandRight
	}
	return CommandNone
}

// clear reports whether no vehicle sweeps over the player box at (x, y)
// within the lookahead window.
func (a *Autopilot) clear(s GameState, x, y float64) bool {
	mult := a.difficulty.SpeedMultiplier(s.CurrentLevel)
	half := PlayerBoxSize / 2

	for _, v := range s.Vehicles {
		if math.Abs(v.Y-y) >= (v.Height/2 + half) {
			continue
		}

		travel := v.Speed * mult * a.lookahead / FrameReference
		lo, hi := v.X, v.X+travel
		if v.Direction == DirLeft {
			lo, hi = v.X-travel, v.X
		}
		lo -= v.Width / 2
		hi += v.Width / 2

		if lo < x+half && hi > x-half {
			return false
		}
	}
	return true
}
