package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidConfig marks a document that parsed but cannot drive the engine,
	// or that could not be parsed at all.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrFetch marks a document source that could not be read.
	ErrFetch = errors.New("cannot fetch configuration")
)

// Validate checks that the document can drive the engine.
// All problems are reported together in one error wrapping ErrInvalidConfig.
// City vehicle types missing from the vehicle table are tolerated; the
// spawner skips them.
func (c *GameConfig) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	g := c.Game
	if g.GridSize <= 0 {
		add("game.gridSize must be positive (got %d)", g.GridSize)
	}
	if g.GameWidth <= 0 || g.GameHeight <= 0 {
		add("game dimensions must be positive (got %dx%d)", g.GameWidth, g.GameHeight)
	}
	if g.GridSize > 0 && g.GameWidth > 0 && g.GameHeight > 0 {
		if g.GameWidth < g.GridSize || g.GameHeight < g.GridSize*2 {
			add("game area %dx%d too small for gridSize %d", g.GameWidth, g.GameHeight, g.GridSize)
		}
	}

	d := c.Difficulty
	if d.VehicleSpawnRate < 0 || d.VehicleSpawnRate > 1 {
		add("difficulty.vehicleSpawnRate must be within [0, 1] (got %g)", d.VehicleSpawnRate)
	}
	if d.SpeedIncreasePerCity < 0 {
		add("difficulty.speedIncreasePerCity must not be negative (got %g)", d.SpeedIncreasePerCity)
	}

	if c.Scoring.PointsPerHop < 0 {
		add("scoring.pointsPerHop must not be negative (got %d)", c.Scoring.PointsPerHop)
	}

	if len(c.Cities) == 0 {
		add("at least one city is required")
	}
	for i, city := range c.Cities {
		if len(city.VehicleTypes) == 0 {
			add("cities[%d] (%s) has no vehicle types", i, city.Name)
		}
	}

	for name, v := range c.Vehicles {
		if v.Width <= 0 || v.Height <= 0 {
			add("vehicles.%s must have positive size (got %gx%g)", name, v.Width, v.Height)
		}
		if v.Speed < 0 {
			add("vehicles.%s speed must not be negative (got %g)", name, v.Speed)
		}
	}

	if len(c.Lanes.TrafficLanes()) == 0 {
		add("lanes must contain at least one position outside the safe zones")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
