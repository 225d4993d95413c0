package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
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
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreKeyValue(t *testing.T) {
	store := openTestStore(t)

	_, ok, err := store.Get("ozembnicPoints")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if ok {
		t.Error("Get() on a fresh store should report a missing key")
	}

	if err := store.Set("ozembnicPoints", "50"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := store.Set("ozembnicPoints", "53"); err != nil {
		t.Fatalf("Set() overwrite failed: %v", err)
	}

	v, ok, err := store.Get("ozembnicPoints")
	if err != nil || !ok {
		t.Fatalf("Get() = %q, %v, %v", v, ok, err)
	}
	if v != "53" {
		t.Errorf("Get() = %q, expected %q", v, "53")
	}
}

func TestStoreValueSurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "points.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.Set("ozembnicPoints", "1234"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	v, ok, err := store.Get("ozembnicPoints")
	if err != nil || !ok || v != "1234" {
		t.Errorf("after reopen Get() = %q, %v, %v; expected \"1234\"", v, ok, err)
	}
}

func TestStoreRuns(t *testing.T) {
	store := openTestStore(t)

	for i, score := range []int{3, 10, 7} {
		err := store.SaveRun(Run{
			ID:           fmt.Sprintf("run-%d", i),
			Player:       "nic",
			Score:        score,
			PointsEarned: score,
			Frames:       100 * (i + 1),
		})
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.TopRuns(2)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs with limit, got %d", len(runs))
	}
	if runs[0].Score != 10 || runs[1].Score != 7 {
		t.Errorf("Runs not in expected order: %+v", runs)
	}
	if runs[0].Player != "nic" || runs[0].Frames != 200 {
		t.Errorf("Run fields not round-tripped: %+v", runs[0])
	}

	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 10 {
		t.Errorf("Expected high score of 10, got %d", high)
	}

	stats, err := store.RunStats()
	if err != nil {
		t.Fatalf("RunStats() failed: %v", err)
	}
	if stats.Runs != 3 || stats.HighScore != 10 || stats.TotalEarned != 20 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}

	if err := store.SaveRun(Run{ID: "run-0"}); err == nil {
		t.Error("SaveRun with a duplicate ID should fail")
	}
}

func TestStoreEmptyStats(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 with no runs, got %d", high)
	}

	stats, err := store.RunStats()
	if err != nil {
		t.Fatalf("RunStats() failed: %v", err)
	}
	if stats.Runs != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("unexpected empty stats: %+v", stats)
	}
}

func TestStoreRedemptions(t *testing.T) {
	store := openTestStore(t)

	for i, cost := range []int{25, 100} {
		err := store.SaveRedemption(Redemption{
			ID:           fmt.Sprintf("red-%d", i),
			RewardID:     "mug",
			RewardName:   "Ozembnic Mug",
			Cost:         cost,
			BalanceAfter: 200 - cost,
		})
		if err != nil {
			t.Fatalf("SaveRedemption() failed: %v", err)
		}
	}

	got, err := store.Redemptions(10)
	if err != nil {
		t.Fatalf("Redemptions() failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 redemptions, got %d", len(got))
	}
	// Newest first
	if got[0].ID != "red-1" || got[0].BalanceAfter != 100 {
		t.Errorf("unexpected newest redemption: %+v", got[0])
	}
}
