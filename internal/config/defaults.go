package config

import (
	_ "embed"
)

//go:embed defaults/crosser.yaml
var defaultCrosserYAML []byte

// DefaultGameConfig returns the built-in configuration.
// Mirrors defaults/crosser.yaml and is used when the embedded document cannot be parsed.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Game: GameDimensions{
			TargetFPS:  60,
			GridSize:   40,
			GameWidth:  800,
			GameHeight: 600,
		},
		Difficulty: DifficultyConfig{
			BaseVehicleSpeed:         2.0,
			SpeedIncreasePerCity:     0.15,
			VehicleSpawnRate:         0.02,
			SpawnRateIncreasePerCity: 0.1,
			MinGapBetweenVehicles:    120,
			GapDecreasePerCity:       5,
		},
		Scoring: ScoringConfig{
			PointsPerHop:        1,
			RoadCompletionBonus: 10,
			CityCompletionBonus: 50,
			HopsPerCity:         75,
			ComboMultiplier:     1.2,
		},
		Cities: []CityConfig{
			{
				Name:            "Dhaka",
				ID:              "dhaka",
				UnlockScore:     0,
				VehicleTypes:    []string{"cng", "rickshaw", "bus", "motorcycle"},
				BackgroundColor: "#4A5568",
				AccentColor:     "#F6E05E",
			},
		},
		Vehicles: map[string]VehicleConfig{
			"cng":        {Width: 48, Height: 24, Speed: 1.5, SpawnWeight: 0.3},
			"rickshaw":   {Width: 40, Height: 24, Speed: 1.0, SpawnWeight: 0.25},
			"bus":        {Width: 96, Height: 36, Speed: 1.2, SpawnWeight: 0.15},
			"motorcycle": {Width: 32, Height: 16, Speed: 2.5, SpawnWeight: 0.2},
		},
		Lanes: LaneConfig{
			Count:     5,
			Width:     80,
			Positions: []float64{0, 80, 160, 240, 320, 400, 480, 560},
			SafeZones: []float64{0, 480, 560},
		},
	}
}

// DefaultYAML returns the embedded default document.
func DefaultYAML() []byte {
	return defaultCrosserYAML
}
