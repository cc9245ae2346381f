package config

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const gameConfigJSON = `{
  "game": {"targetFPS": 60, "gridSize": 40, "gameWidth": 800, "gameHeight": 600},
  "difficulty": {"baseVehicleSpeed": 2.0, "speedIncreasePerCity": 0.15, "vehicleSpawnRate": 0.02,
    "spawnRateIncreasePerCity": 0.1, "minGapBetweenVehicles": 120, "gapDecreasePerCity": 5},
  "scoring": {"pointsPerHop": 1, "roadCompletionBonus": 10, "cityCompletionBonus": 50,
    "hopsPerCity": 75, "comboMultiplier": 1.2},
  "cities": [{"name": "Dhaka", "id": "dhaka", "unlockScore": 0, "vehicleTypes": ["cng"],
    "backgroundColor": "#4A5568", "accentColor": "#F6E05E"}],
  "vehicles": {"cng": {"width": 48, "height": 24, "speed": 1.5, "spawnWeight": 0.3}},
  "lanes": {"count": 5, "width": 80, "positions": [80, 160, 240, 320, 400], "safeZones": [0, 480, 560]}
}`

func TestParseGameConfigJSON(t *testing.T) {
	cfg, err := Parse([]byte(gameConfigJSON), "gameConfig.json")
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if cfg.Game.GameWidth != 800 || cfg.Game.GridSize != 40 {
		t.Errorf("game dimensions = %+v", cfg.Game)
	}
	if cfg.Vehicles["cng"].Width != 48 {
		t.Errorf("cng width = %g, expected 48", cfg.Vehicles["cng"].Width)
	}
	if cfg.Cities[0].Name != "Dhaka" {
		t.Errorf("first city = %q, expected Dhaka", cfg.Cities[0].Name)
	}
	if cfg.Scoring.ComboMultiplier != 1.2 {
		t.Errorf("comboMultiplier = %g, expected 1.2", cfg.Scoring.ComboMultiplier)
	}
}

func TestEmbeddedDefaultIsValid(t *testing.T) {
	cfg, err := Parse(DefaultYAML(), "embedded")
	if err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if len(cfg.Cities) != 3 {
		t.Errorf("expected 3 cities in default, got %d", len(cfg.Cities))
	}
	for _, city := range cfg.Cities {
		for _, vt := range city.VehicleTypes {
			if _, ok := cfg.Vehicles[vt]; !ok {
				t.Errorf("city %s references unknown vehicle %q", city.Name, vt)
			}
		}
	}

	hard := DefaultGameConfig()
	if err := hard.Validate(); err != nil {
		t.Errorf("DefaultGameConfig() invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *GameConfig)
		wantErr string
	}{
		{"zero grid", func(c *GameConfig) { c.Game.GridSize = 0 }, "gridSize"},
		{"negative width", func(c *GameConfig) { c.Game.GameWidth = -1 }, "dimensions"},
		{"spawn rate above one", func(c *GameConfig) { c.Difficulty.VehicleSpawnRate = 1.5 }, "vehicleSpawnRate"},
		{"no cities", func(c *GameConfig) { c.Cities = nil }, "at least one city"},
		{"empty roster", func(c *GameConfig) { c.Cities[0].VehicleTypes = nil }, "no vehicle types"},
		{"bad vehicle size", func(c *GameConfig) { c.Vehicles["cng"] = VehicleConfig{Width: 0, Height: 10} }, "positive size"},
		{"all lanes safe", func(c *GameConfig) { c.Lanes.SafeZones = c.Lanes.Positions }, "outside the safe zones"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultGameConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error should wrap ErrInvalidConfig: %v", err)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error %q should mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestValidateToleratesUnknownVehicleType(t *testing.T) {
	cfg := DefaultGameConfig()
	cfg.Cities[0].VehicleTypes = append(cfg.Cities[0].VehicleTypes, "hovercraft")

	if err := cfg.Validate(); err != nil {
		t.Errorf("unknown roster entries should be tolerated, got %v", err)
	}
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte("game: [unclosed"), "broken.yaml")
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if !strings.Contains(err.Error(), "broken.yaml") {
		t.Errorf("error should name the document: %v", err)
	}

	if _, err := Parse(nil, "empty.yaml"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("empty document should be invalid, got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.json")
	if err := os.WriteFile(path, []byte(gameConfigJSON), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(cfg.Cities) != 1 {
		t.Errorf("expected the custom document, got %d cities", len(cfg.Cities))
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, ErrFetch) {
		t.Errorf("expected ErrFetch, got %v", err)
	}
}

func TestLoadFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/gameConfig.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(gameConfigJSON))
	}))
	defer srv.Close()

	cfg, err := Load(context.Background(), srv.URL+"/gameConfig.json")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Game.GameHeight != 600 {
		t.Errorf("gameHeight = %d, expected 600", cfg.Game.GameHeight)
	}

	_, err = Load(context.Background(), srv.URL+"/missing.json")
	if !errors.Is(err, ErrFetch) {
		t.Fatalf("expected ErrFetch for 404, got %v", err)
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("error should carry the status: %v", err)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	// Nothing on disk: embedded default
	cfg, err := Load(context.Background(), "")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(cfg.Cities) != 3 {
		t.Errorf("expected embedded default, got %d cities", len(cfg.Cities))
	}

	// Local ./configs wins over embedded
	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", FileName), []byte(gameConfigJSON), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(context.Background(), "")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(cfg.Cities) != 1 {
		t.Errorf("expected ./configs document, got %d cities", len(cfg.Cities))
	}

	// User directory wins over local
	userDir := filepath.Join(home, ".crosser", "configs")
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(userDir, FileName), DefaultYAML(), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(context.Background(), "")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(cfg.Cities) != 3 {
		t.Errorf("expected user document, got %d cities", len(cfg.Cities))
	}
}

func TestTrafficLanes(t *testing.T) {
	lanes := LaneConfig{
		Positions: []float64{0, 80, 160, 480},
		SafeZones: []float64{0, 480, 560},
	}

	got := lanes.TrafficLanes()
	if len(got) != 2 || got[0] != 80 || got[1] != 160 {
		t.Errorf("TrafficLanes() = %v, expected [80 160]", got)
	}
	if !lanes.IsSafe(560) {
		t.Error("560 should be a safe zone")
	}
}

func TestApplyPreset(t *testing.T) {
	base := DefaultGameConfig()

	easy := DefaultGameConfig()
	ApplyPreset(&easy, DifficultyEasy)
	if easy.Difficulty.VehicleSpawnRate >= base.Difficulty.VehicleSpawnRate {
		t.Error("easy preset should lower the spawn rate")
	}

	hard := DefaultGameConfig()
	ApplyPreset(&hard, DifficultyHard)
	if hard.Difficulty.VehicleSpawnRate <= base.Difficulty.VehicleSpawnRate {
		t.Error("hard preset should raise the spawn rate")
	}

	fixed := DefaultGameConfig()
	ApplyPreset(&fixed, DifficultyFixed)
	if fixed.Difficulty.SpeedIncreasePerCity != 0 {
		t.Error("fixed preset should disable speed progression")
	}

	none := DefaultGameConfig()
	ApplyPreset(&none, "")
	if none.Difficulty != base.Difficulty {
		t.Error("empty preset should not change difficulty")
	}
}

func TestDifficultyManager(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		SpeedIncreasePerCity:     0.15,
		VehicleSpawnRate:         0.02,
		SpawnRateIncreasePerCity: 0.1,
	})

	tests := []struct {
		level    int
		expected float64
	}{
		{1, 1.0},
		{2, 1.15},
		{3, 1.3},
	}
	for _, tc := range tests {
		if got := dm.SpeedMultiplier(tc.level); got < tc.expected-1e-9 || got > tc.expected+1e-9 {
			t.Errorf("SpeedMultiplier(%d) = %g, expected %g", tc.level, got, tc.expected)
		}
	}

	if got := dm.SpawnRate(0); got != 0.02 {
		t.Errorf("SpawnRate(0) = %g, expected 0.02", got)
	}
	if got := dm.SpawnRate(2); got < 0.024-1e-9 || got > 0.024+1e-9 {
		t.Errorf("SpawnRate(2) = %g, expected 0.024", got)
	}
}

func TestDifficultyMinGap(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{MinGapBetweenVehicles: 120, GapDecreasePerCity: 5})

	tests := []struct {
		city int
		want float64
	}{
		{0, 120},
		{2, 110},
		{30, 0},
	}
	for _, tc := range tests {
		if got := dm.MinGap(tc.city); got != tc.want {
			t.Errorf("MinGap(%d) = %g, expected %g", tc.city, got, tc.want)
		}
	}
}
