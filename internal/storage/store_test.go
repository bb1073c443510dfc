package storage

import (
	"testing"

	"github.com/san-kum/terrasim/internal/eco"
	"github.com/san-kum/terrasim/internal/sim"
)

func sampleResults(t *testing.T) []sim.RunResult {
	t.Helper()
	setup := eco.Setup{
		PorousSoil: true, Plants: 3, SoilKg: 20,
		WindowProximity: 2, WaterLiters: 5, Rocks: 3,
	}
	st, err := eco.NewState(setup)
	if err != nil {
		t.Fatal(err)
	}
	return []sim.RunResult{
		{Survived: true, DayReached: 365, Cause: eco.CauseNone, Setup: setup, Initial: st, Final: st},
		{Survived: false, DayReached: 12, Cause: eco.CausePlantsDied, Setup: setup, Initial: st, Final: st},
	}
}

func TestSaveAndLoadBatch(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	results := sampleResults(t)
	id, err := store.Save(42, 365, results)
	if err != nil {
		t.Fatal(err)
	}

	meta, err := store.Load(id)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Runs != 2 || meta.Survived != 1 {
		t.Errorf("metadata mismatch: %+v", meta)
	}
	if meta.Seed != 42 || meta.DayCap != 365 {
		t.Errorf("seed/day cap mismatch: %+v", meta)
	}

	loaded, err := store.LoadResults(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 results, got %d", len(loaded))
	}
	if !loaded[0].Survived || loaded[1].Survived {
		t.Error("survival flags did not round-trip")
	}
	if loaded[1].Cause != eco.CausePlantsDied {
		t.Errorf("expected plants_died, got %v", loaded[1].Cause)
	}
	if loaded[1].DayReached != 12 {
		t.Errorf("expected day 12, got %d", loaded[1].DayReached)
	}
	if loaded[0].Setup.Plants != 3 {
		t.Errorf("setup did not round-trip: %+v", loaded[0].Setup)
	}
}

func TestList(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	batches, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(batches) != 0 {
		t.Errorf("expected empty list, got %d", len(batches))
	}

	if _, err := store.Save(1, 30, sampleResults(t)); err != nil {
		t.Fatal(err)
	}

	batches, err = store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(batches) != 1 {
		t.Fatalf("expected 1 batch, got %d", len(batches))
	}
}

func TestList_MissingBaseDir(t *testing.T) {
	store := New(t.TempDir() + "/nope")
	batches, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(batches) != 0 {
		t.Error("missing base dir should list as empty")
	}
}
