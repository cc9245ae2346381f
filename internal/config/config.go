// Package config provides YAML-based game configuration loading and
// difficulty management for the crosser.
//
// Keys use the camelCase layout of gameConfig.json, so a JSON game
// configuration parses unchanged (JSON is valid YAML).
package config

// GameConfig is the complete, read-only configuration document.
type GameConfig struct {
	Game       GameDimensions           `yaml:"game"`
	Difficulty DifficultyConfig         `yaml:"difficulty"`
	Scoring    ScoringConfig            `yaml:"scoring"`
	Cities     []CityConfig             `yaml:"cities"`
	Vehicles   map[string]VehicleConfig `yaml:"vehicles"`
	Lanes      LaneConfig               `yaml:"lanes"`
}

// GameDimensions defines the playfield in game pixels.
type GameDimensions struct {
	TargetFPS  int `yaml:"targetFPS"`
	GridSize   int `yaml:"gridSize"`
	GameWidth  int `yaml:"gameWidth"`
	GameHeight int `yaml:"gameHeight"`
}

// Columns returns the number of grid columns across the playfield.
func (g GameDimensions) Columns() int {
	return g.GameWidth / g.GridSize
}

// Rows returns the number of grid rows down the playfield.
func (g GameDimensions) Rows() int {
	return g.GameHeight / g.GridSize
}

// DifficultyConfig defines the difficulty curve.
type DifficultyConfig struct {
	BaseVehicleSpeed         float64 `yaml:"baseVehicleSpeed"`
	SpeedIncreasePerCity     float64 `yaml:"speedIncreasePerCity"`
	VehicleSpawnRate         float64 `yaml:"vehicleSpawnRate"` // Per-frame spawn probability
	SpawnRateIncreasePerCity float64 `yaml:"spawnRateIncreasePerCity"`
	MinGapBetweenVehicles    float64 `yaml:"minGapBetweenVehicles"`
	GapDecreasePerCity       float64 `yaml:"gapDecreasePerCity"`
}

// ScoringConfig defines the scoring table.
type ScoringConfig struct {
	PointsPerHop        int     `yaml:"pointsPerHop"`
	RoadCompletionBonus int     `yaml:"roadCompletionBonus"`
	CityCompletionBonus int     `yaml:"cityCompletionBonus"`
	HopsPerCity         int     `yaml:"hopsPerCity"`
	ComboMultiplier     float64 `yaml:"comboMultiplier"`
}

// CityConfig is one entry of the ordered city list.
type CityConfig struct {
	Name            string   `yaml:"name"`
	ID              string   `yaml:"id"`
	UnlockScore     int      `yaml:"unlockScore"`
	VehicleTypes    []string `yaml:"vehicleTypes"`
	BackgroundColor string   `yaml:"backgroundColor"`
	AccentColor     string   `yaml:"accentColor"`
}

// VehicleConfig holds the physical parameters of one vehicle type.
type VehicleConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	Speed       float64 `yaml:"speed"` // Pixels per 60fps frame
	SpawnWeight float64 `yaml:"spawnWeight"`
}

// LaneConfig holds lane centre positions; safe zones never receive traffic.
type LaneConfig struct {
	Count     int       `yaml:"count"`
	Width     int       `yaml:"width"`
	Positions []float64 `yaml:"positions"`
	SafeZones []float64 `yaml:"safeZones"`
}

// IsSafe reports whether a lane position is a safe zone.
func (l LaneConfig) IsSafe(pos float64) bool {
	for _, s := range l.SafeZones {
		if s == pos {
			return true
		}
	}
	return false
}

// TrafficLanes returns the lane positions open to traffic, in configured order.
func (l LaneConfig) TrafficLanes() []float64 {
	lanes := make([]float64, 0, len(l.Positions))
	for _, p := range l.Positions {
		if !l.IsSafe(p) {
			lanes = append(lanes, p)
		}
	}
	return lanes
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ApplyPreset modifies the difficulty curve for a preset.
// An empty or unknown preset leaves the config untouched.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) {
	d := &cfg.Difficulty
	switch preset {
	case DifficultyEasy:
		d.VehicleSpawnRate *= 0.6
		d.SpeedIncreasePerCity *= 0.5
	case DifficultyHard:
		d.VehicleSpawnRate *= 1.5
		d.SpeedIncreasePerCity *= 1.5
	case DifficultyFixed:
		d.SpeedIncreasePerCity = 0
		d.SpawnRateIncreasePerCity = 0
		d.GapDecreasePerCity = 0
	}
	if d.VehicleSpawnRate > 1 {
		d.VehicleSpawnRate = 1
	}
}
