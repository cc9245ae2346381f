package crosser

import (
	"testing"

	"github.com/vovakirdan/rasta-crosser/internal/config"
)

func TestAutopilot(t *testing.T) {
	cfg := config.DefaultGameConfig()
	base := func() GameState {
		e, err := New(&cfg, WithSeed(1))
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		return e.Snapshot()
	}

	tests := []struct {
		name   string
		mutate func(*GameState)
		want   Command
	}{
		{"empty road hops", func(*GameState) {}, CommandUp},
		{"game over restarts", func(s *GameState) { s.Status = StatusGameOver }, CommandRestart},
		{"paused resumes", func(s *GameState) { s.Status = StatusPaused }, CommandPause},
		{"menu waits", func(s *GameState) { s.Status = StatusMenu }, CommandNone},
		{"hop in flight waits", func(s *GameState) { s.Player.IsMoving = true }, CommandNone},
		{"top row restarts", func(s *GameState) { s.Player.GridY = 0 }, CommandRestart},
		{
			"oncoming vehicle above waits",
			func(s *GameState) {
				// Row above is y=500; vehicle approaching from the left
				s.Vehicles = []Vehicle{{ID: "v", Type: "car", X: 380, Y: 500, Speed: 2, Width: 64, Height: 28, Direction: DirRight}}
			},
			CommandNone,
		},
		{
			"receding vehicle above hops",
			func(s *GameState) {
				s.Vehicles = []Vehicle{{ID: "v", Type: "car", X: 340, Y: 500, Speed: 2, Width: 64, Height: 28, Direction: DirLeft}}
			},
			CommandUp,
		},
		{
			"threatened row sidesteps",
			func(s *GameState) {
				s.Player.GridX, s.Player.GridY = 10, 5
				s.Vehicles = []Vehicle{
					{ID: "a", Type: "car", X: 420, Y: 180, Speed: 2, Width: 64, Height: 28, Direction: DirRight},
					{ID: "b", Type: "car", X: 480, Y: 220, Speed: 0.5, Width: 64, Height: 28, Direction: DirLeft},
				}
			},
			CommandLeft,
		},
	}

	ap := NewAutopilot(&cfg)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base()
			tt.mutate(&s)
			if got := ap.Next(s); got != tt.want {
				t.Errorf("Next() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAutopilotPlaysWithoutPanicking(t *testing.T) {
	cfg := config.DefaultGameConfig()
	cfg.Difficulty.VehicleSpawnRate = 0.2
	e, err := New(&cfg, WithSeed(3))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ap := NewAutopilot(&cfg)

	best := 0
	for i := 0; i < 5000; i++ {
		e.HandleInput(ap.Next(e.Snapshot()))
		e.Update(16.67)
		if s := e.Snapshot(); s.Score > best {
			best = s.Score
		}
	}
	if best == 0 {
		t.Error("autopilot never scored")
	}
}
