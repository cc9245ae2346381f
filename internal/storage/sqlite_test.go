package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{City: "dhaka", Score: 100, Hops: 100, Duration: 42 * time.Second, Player: "rafi"},
		{City: "dhaka", Score: 50, Hops: 55},
		{City: "dhaka", Score: 200, Hops: 210, Difficulty: "hard"},
		{City: "sylhet", Score: 500},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	got, err := store.TopRuns("dhaka", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 dhaka runs, got %d", len(got))
	}
	if got[0].Score != 200 || got[1].Score != 100 || got[2].Score != 50 {
		t.Errorf("Runs not ordered by score: %+v", got)
	}
	if got[0].Difficulty != "hard" || got[2].Difficulty != "normal" {
		t.Errorf("Difficulty = %q/%q, want hard/normal", got[0].Difficulty, got[2].Difficulty)
	}
	if got[1].Duration != 42*time.Second || got[1].Player != "rafi" || got[1].Hops != 100 {
		t.Errorf("Run fields not round-tripped: %+v", got[1])
	}

	all, err := store.TopRuns("", 10)
	if err != nil {
		t.Fatalf("TopRuns(all) failed: %v", err)
	}
	if len(all) != 4 || all[0].City != "sylhet" {
		t.Errorf("Expected 4 runs led by sylhet, got %+v", all)
	}
}

func TestStoreSaveRunAssignsID(t *testing.T) {
	store := openTestStore(t)

	id1, err := store.SaveRun(Run{City: "dhaka", Score: 1})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	id2, _ := store.SaveRun(Run{City: "dhaka", Score: 1})
	if id1 == "" || id1 == id2 {
		t.Errorf("IDs not unique: %q %q", id1, id2)
	}

	id3, err := store.SaveRun(Run{ID: "fixed-id", City: "dhaka", Score: 9})
	if err != nil || id3 != "fixed-id" {
		t.Fatalf("SaveRun(fixed) = %q, %v", id3, err)
	}
	if _, err := store.SaveRun(Run{ID: "fixed-id", City: "dhaka"}); err == nil {
		t.Error("Expected duplicate ID to fail")
	}

	r, err := store.RunByID("fixed-id")
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if r.Score != 9 {
		t.Errorf("Score = %d, want 9", r.Score)
	}

	if _, err := store.RunByID("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("RunByID(missing) error = %v, want ErrNotFound", err)
	}
}

func TestStoreTopRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveRun(Run{City: "test", Score: (i + 1) * 100})
	}

	runs, err := store.TopRuns("test", 3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("Expected 3 runs with limit, got %d", len(runs))
	}
	if runs[0].Score != 500 || runs[1].Score != 400 || runs[2].Score != 300 {
		t.Errorf("Runs not in expected order: %v", runs)
	}

	// Zero limit falls back to 10
	runs, _ = store.TopRuns("test", 0)
	if len(runs) != 5 {
		t.Errorf("Expected 5 runs with default limit, got %d", len(runs))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("dhaka")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty city, got %d", high)
	}

	store.SaveRun(Run{City: "dhaka", Score: 100})
	store.SaveRun(Run{City: "dhaka", Score: 300})
	store.SaveRun(Run{City: "dhaka", Score: 200})

	high, err = store.HighScore("dhaka")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{City: "dhaka", Score: 100})
	store.SaveRun(Run{City: "dhaka", Score: 200})
	store.SaveRun(Run{City: "chittagong", Score: 300})

	if err := store.ClearRuns("dhaka"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	dhaka, _ := store.TopRuns("dhaka", 10)
	if len(dhaka) != 0 {
		t.Errorf("Expected 0 dhaka runs after clear, got %d", len(dhaka))
	}

	ctg, _ := store.TopRuns("chittagong", 10)
	if len(ctg) != 1 {
		t.Errorf("Chittagong runs should not be affected by clearing dhaka")
	}
}

func TestStoreCityStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.CityStats("dhaka")
	if err != nil {
		t.Fatalf("CityStats() failed: %v", err)
	}
	if empty.RunsCount != 0 || empty.HighScore != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	store.SaveRun(Run{City: "dhaka", Score: 10, Hops: 12})
	store.SaveRun(Run{City: "dhaka", Score: 30, Hops: 31})

	stats, err := store.CityStats("dhaka")
	if err != nil {
		t.Fatalf("CityStats() failed: %v", err)
	}
	if stats.RunsCount != 2 || stats.HighScore != 30 || stats.AvgScore != 20 || stats.TotalHops != 43 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestParseTime(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	tests := []struct {
		in   any
		want time.Time
	}{
		{now, now},
		{"2024-05-01 12:30:00", now},
		{"garbage", time.Time{}},
		{nil, time.Time{}},
	}
	for _, tt := range tests {
		if got := parseTime(tt.in); !got.Equal(tt.want) {
			t.Errorf("parseTime(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
