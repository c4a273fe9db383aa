package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	_ "modernc.org/sqlite"

	"roomsim/internal/core"
	"roomsim/internal/sims/room"
	"roomsim/internal/sweep"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "results.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func sampleSweep(t *testing.T) (sweep.Plan, []sweep.Result) {
	t.Helper()
	plan := sweep.Plan{
		Name:       "roundtrip",
		Base:       room.Config{DirtFraction: 0.5, Width: 4, Height: 3, MaxSteps: 25, Cleaners: 2, Start: &core.Pos{X: 2, Y: 1}},
		Vary:       sweep.Axes{Cleaners: []int{1, 3}},
		Iterations: 2,
		Seed:       5,
	}
	jobs, err := plan.Jobs()
	if err != nil {
		t.Fatalf("Jobs: %v", err)
	}
	results, err := sweep.Runner{Workers: 2}.Run(context.Background(), jobs)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return plan, results
}

func TestSaveSweepRoundTrip(t *testing.T) {
	s, _ := openTemp(t)
	ctx := context.Background()
	plan, results := sampleSweep(t)

	id, err := s.SaveSweep(ctx, plan, results)
	if err != nil {
		t.Fatalf("SaveSweep: %v", err)
	}
	got, err := s.Runs(ctx, id)
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if diff := cmp.Diff(results, got); diff != "" {
		t.Fatalf("runs mismatch (-saved +loaded):\n%s", diff)
	}

	gotPlan, err := s.Plan(ctx, id)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if diff := cmp.Diff(plan, gotPlan); diff != "" {
		t.Fatalf("plan mismatch (-saved +loaded):\n%s", diff)
	}
}

func TestSweepsListing(t *testing.T) {
	s, _ := openTemp(t)
	ctx := context.Background()
	plan, results := sampleSweep(t)

	first, err := s.SaveSweep(ctx, plan, results)
	if err != nil {
		t.Fatalf("SaveSweep: %v", err)
	}
	plan.Name = "empty"
	second, err := s.SaveSweep(ctx, plan, nil)
	if err != nil {
		t.Fatalf("SaveSweep: %v", err)
	}

	list, err := s.Sweeps(ctx)
	if err != nil {
		t.Fatalf("Sweeps: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 sweeps, got %d", len(list))
	}
	if list[0].ID != second || list[0].Name != "empty" || list[0].Runs != 0 {
		t.Fatalf("unexpected newest sweep: %+v", list[0])
	}
	if list[1].ID != first || list[1].Runs != len(results) {
		t.Fatalf("unexpected oldest sweep: %+v", list[1])
	}
	if list[1].CreatedAt.IsZero() {
		t.Fatalf("created_at not parsed")
	}
}

func TestUnknownSweep(t *testing.T) {
	s, _ := openTemp(t)
	ctx := context.Background()
	if _, err := s.Runs(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Runs: expected ErrNotFound, got %v", err)
	}
	if _, err := s.Plan(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Plan: expected ErrNotFound, got %v", err)
	}
}

func TestReopenKeepsData(t *testing.T) {
	s, path := openTemp(t)
	ctx := context.Background()
	plan, results := sampleSweep(t)
	id, err := s.SaveSweep(ctx, plan, results)
	if err != nil {
		t.Fatalf("SaveSweep: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	defer db.Close()
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM runs WHERE sweep_id = ?`, id).Scan(&n); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if n != len(results) {
		t.Fatalf("expected %d rows, got %d", len(results), n)
	}
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
