package crosser

import (
	"fmt"

	"github.com/vovakirdan/rasta-crosser/internal/core"
)

// Status is the top-level game state. Menu and CityTransition are reserved
// for the shell; the engine itself only moves between Playing, Paused and GameOver.
type Status uint8

const (
	StatusMenu Status = iota
	StatusPlaying
	StatusPaused
	StatusCityTransition
	StatusGameOver
)

var statusNames = [...]string{
	StatusMenu:           "menu",
	StatusPlaying:        "playing",
	StatusPaused:         "paused",
	StatusCityTransition: "cityTransition",
	StatusGameOver:       "gameOver",
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

// MarshalText encodes the status by name for snapshot consumers.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name.
func (s *Status) UnmarshalText(text []byte) error {
	for i, name := range statusNames {
		if name == string(text) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("crosser: unknown status %q", text)
}

// AnimationState is the player's sprite state.
type AnimationState string

const (
	AnimIdle      AnimationState = "idle"
	AnimHopping   AnimationState = "hopping"
	AnimCollision AnimationState = "collision"
)

// Direction is a vehicle's travel direction.
type Direction string

const (
	DirLeft  Direction = "left"
	DirRight Direction = "right"
)

// Player is the single controllable entity.
// While IsMoving, GridX/GridY already hold the destination cell and X/Y
// still hold the hop origin.
type Player struct {
	X                 float64        `json:"x"`
	Y                 float64        `json:"y"`
	GridX             int            `json:"gridX"`
	GridY             int            `json:"gridY"`
	IsMoving          bool           `json:"isMoving"`
	AnimationFrame    int            `json:"animationFrame"`
	AnimationState    AnimationState `json:"animationState"`
	AnimationProgress float64        `json:"animationProgress"` // 0..1 through the current hop
}

// Vehicle is one moving obstacle. Only X changes after spawn.
type Vehicle struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Speed     float64   `json:"speed"`
	Direction Direction `json:"direction"`
	Lane      int       `json:"lane"`
	Width     float64   `json:"width"`
	Height    float64   `json:"height"`
}

// Box returns the vehicle's collision box.
func (v Vehicle) Box() core.Box {
	return core.CenteredBox(v.X, v.Y, v.Width, v.Height)
}

// GameState is the single mutable aggregate owned by an Engine.
type GameState struct {
	Status          Status    `json:"status"`
	Score           int       `json:"score"`
	CurrentCity     int       `json:"currentCity"`
	Lives           int       `json:"lives"`
	Player          Player    `json:"player"`
	Vehicles        []Vehicle `json:"vehicles"`
	CurrentLevel    int       `json:"currentLevel"`
	HopCount        int       `json:"hopCount"`
	ComboMultiplier float64   `json:"comboMultiplier"` // Carried, not applied to scoring
	LastUpdateTime  float64   `json:"lastUpdateTime"`  // Milliseconds of play simulated so far
}

// Clone returns a deep copy safe to hand to observers.
func (s GameState) Clone() GameState {
	c := s
	c.Vehicles = make([]Vehicle, len(s.Vehicles))
	copy(c.Vehicles, s.Vehicles)
	return c
}
