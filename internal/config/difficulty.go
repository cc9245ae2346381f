package config

// DifficultyManager derives live game parameters from the difficulty curve.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg}
}

// SpeedMultiplier returns the vehicle speed factor for a level.
// Level 1 is the base speed; each level above adds speedIncreasePerCity.
func (d *DifficultyManager) SpeedMultiplier(level int) float64 {
	return 1 + float64(level-1)*d.cfg.SpeedIncreasePerCity
}

// SpawnRate returns the per-frame spawn probability for a city index.
// City 0 uses vehicleSpawnRate unchanged.
func (d *DifficultyManager) SpawnRate(city int) float64 {
	rate := d.cfg.VehicleSpawnRate * (1 + float64(city)*d.cfg.SpawnRateIncreasePerCity)
	if rate > 1 {
		return 1
	}
	return rate
}

// MinGap returns the minimum gap between vehicles for a city index, never below zero.
// The spawner does not enforce it; it is reported alongside the other derived values.
func (d *DifficultyManager) MinGap(city int) float64 {
	gap := d.cfg.MinGapBetweenVehicles - float64(city)*d.cfg.GapDecreasePerCity
	if gap < 0 {
		return 0
	}
	return gap
}
