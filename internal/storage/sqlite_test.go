package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/gh-space-shooter/internal/contrib"
)

func openTemp(t *testing.T) *Store {
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

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreInMemory(t *testing.T) {
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	defer store.Close()

	if _, err := store.SaveRun(Run{Username: "octo", Strategy: "row", Format: "gif"}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	runs, err := store.RecentRuns(5)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("Expected 1 run, got %d", len(runs))
	}
}

func TestStoreSaveAndRetrieveRuns(t *testing.T) {
	store := openTemp(t)

	in := Run{
		Username:  "Octocat",
		Strategy:  "column",
		Format:    "gif",
		Seed:      42,
		Frames:    812,
		Shots:     120,
		Hits:      120,
		Destroyed: 60,
		Truncated: true,
		Bytes:     2048,
		Duration:  1500 * time.Millisecond,
	}
	id, err := store.SaveRun(in)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	got, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got.Username != "octocat" {
		t.Errorf("Username = %q, expected lowercased octocat", got.Username)
	}
	if got.Frames != 812 || got.Destroyed != 60 || !got.Truncated || got.Seed != 42 {
		t.Errorf("RunByID() = %+v, expected saved values", got)
	}
	if got.Duration != 1500*time.Millisecond {
		t.Errorf("Duration = %v, expected 1.5s", got.Duration)
	}

	if _, err := store.RunByID(id + 100); !errors.Is(err, ErrNotFound) {
		t.Errorf("RunByID(missing) error = %v, expected ErrNotFound", err)
	}
}

func TestStoreRunsByUser(t *testing.T) {
	store := openTemp(t)

	for i := 0; i < 5; i++ {
		store.SaveRun(Run{Username: "octo", Strategy: "random", Format: "gif", Frames: (i + 1) * 100})
	}
	store.SaveRun(Run{Username: "other", Strategy: "row", Format: "png", Frames: 10})

	runs, err := store.RunsByUser("OCTO", 3)
	if err != nil {
		t.Fatalf("RunsByUser() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(runs))
	}
	// Newest first
	if runs[0].Frames != 500 || runs[1].Frames != 400 || runs[2].Frames != 300 {
		t.Errorf("Runs not in expected order: %v", runs)
	}

	all, err := store.RecentRuns(0)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(all) != 6 {
		t.Errorf("Expected 6 runs, got %d", len(all))
	}
}

func TestStoreUserStats(t *testing.T) {
	store := openTemp(t)

	stats, err := store.UserStats("nobody")
	if err != nil {
		t.Fatalf("UserStats() failed: %v", err)
	}
	if stats.Runs != 0 || stats.MaxFrames != 0 {
		t.Errorf("Expected empty stats, got %+v", stats)
	}

	store.SaveRun(Run{Username: "octo", Strategy: "row", Format: "gif", Frames: 100, Destroyed: 3})
	store.SaveRun(Run{Username: "octo", Strategy: "row", Format: "gif", Frames: 300, Destroyed: 5})

	stats, err = store.UserStats("octo")
	if err != nil {
		t.Fatalf("UserStats() failed: %v", err)
	}
	if stats.Runs != 2 {
		t.Errorf("Runs = %d, expected 2", stats.Runs)
	}
	if stats.AvgFrames != 200 {
		t.Errorf("AvgFrames = %v, expected 200", stats.AvgFrames)
	}
	if stats.MaxFrames != 300 || stats.Destroyed != 8 {
		t.Errorf("UserStats() = %+v, expected max 300 destroyed 8", stats)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTemp(t)

	store.SaveRun(Run{Username: "octo", Strategy: "row", Format: "gif"})
	store.SaveRun(Run{Username: "dino", Strategy: "row", Format: "gif"})

	if err := store.ClearRuns("octo"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	octo, _ := store.RunsByUser("octo", 10)
	if len(octo) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(octo))
	}
	dino, _ := store.RunsByUser("dino", 10)
	if len(dino) != 1 {
		t.Errorf("Other users should not be affected by clearing octo")
	}
}

func TestStoreGridCache(t *testing.T) {
	store := openTemp(t)
	now := time.Unix(1_700_000_000, 0)

	in := contrib.Contributions{
		Username: "Octo",
		Total:    9,
		Weeks:    [][]int{{0, 1, 2, 3, 4, 0, 0}, {1, 1, 1, 1, 1, 1, 1}},
	}
	if err := store.CacheGrid(in, now); err != nil {
		t.Fatalf("CacheGrid() failed: %v", err)
	}

	got, ok, err := store.CachedGrid("octo", time.Hour, now.Add(30*time.Minute))
	if err != nil || !ok {
		t.Fatalf("CachedGrid() = %v, %v, expected a fresh entry", ok, err)
	}
	if got.Total != 9 || len(got.Weeks) != 2 || got.Weeks[0][4] != 4 {
		t.Errorf("CachedGrid() = %+v, expected the cached grid", got)
	}

	if _, ok, _ := store.CachedGrid("octo", time.Hour, now.Add(2*time.Hour)); ok {
		t.Errorf("CachedGrid() returned a stale entry")
	}
	if _, ok, _ := store.CachedGrid("ghost", time.Hour, now); ok {
		t.Errorf("CachedGrid() returned an entry for an unknown user")
	}

	// Refetch replaces the entry.
	in.Total = 10
	store.CacheGrid(in, now.Add(3*time.Hour))
	got, ok, _ = store.CachedGrid("octo", time.Hour, now.Add(3*time.Hour))
	if !ok || got.Total != 10 {
		t.Errorf("CachedGrid() after refresh = %v %+v, expected total 10", ok, got)
	}
}

func TestStorePurgeGrids(t *testing.T) {
	store := openTemp(t)
	now := time.Unix(1_700_000_000, 0)

	store.CacheGrid(contrib.Contributions{Username: "old"}, now.Add(-48*time.Hour))
	store.CacheGrid(contrib.Contributions{Username: "new"}, now)

	n, err := store.PurgeGrids(now.Add(-24 * time.Hour))
	if err != nil {
		t.Fatalf("PurgeGrids() failed: %v", err)
	}
	if n != 1 {
		t.Errorf("PurgeGrids() = %d, expected 1", n)
	}
}
