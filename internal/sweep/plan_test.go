package sweep

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"roomsim/internal/sims/room"
	pcore "roomsim/pkg/core"
)

func TestDefaultPlanExpansion(t *testing.T) {
	jobs, err := DefaultPlan().Jobs()
	if err != nil {
		t.Fatalf("Jobs: %v", err)
	}
	if len(jobs) != 45 {
		t.Fatalf("expected 45 jobs, got %d", len(jobs))
	}
	for i, job := range jobs {
		if job.Index != i {
			t.Fatalf("job %d has index %d", i, job.Index)
		}
		if job.Combo != i/5 || job.Iteration != i%5 {
			t.Fatalf("job %d: combo %d iteration %d", i, job.Combo, job.Iteration)
		}
	}
	cases := []struct {
		job             int
		steps, cleaners int
	}{
		{0, 50, 1},
		{5, 50, 5},
		{10, 50, 20},
		{15, 100, 1},
		{44, 500, 20},
	}
	for _, tc := range cases {
		cfg := jobs[tc.job].Config
		if cfg.MaxSteps != tc.steps || cfg.Cleaners != tc.cleaners {
			t.Fatalf("job %d: steps %d cleaners %d, want %d %d", tc.job, cfg.MaxSteps, cfg.Cleaners, tc.steps, tc.cleaners)
		}
		if cfg.Width != 10 || cfg.Height != 10 || cfg.DirtFraction != 0.2 {
			t.Fatalf("job %d lost base values: %+v", tc.job, cfg)
		}
	}
}

func TestJobSeedsFollowPlanSeed(t *testing.T) {
	p := DefaultPlan()
	p.Seed = 1234
	jobs, err := p.Jobs()
	if err != nil {
		t.Fatalf("Jobs: %v", err)
	}
	rng := pcore.NewRNG(1234)
	seen := make(map[int64]bool)
	for _, job := range jobs {
		want := rng.Int64()
		if job.Config.Seed != want {
			t.Fatalf("job %d seed %d, want %d", job.Index, job.Config.Seed, want)
		}
		seen[want] = true
	}
	if len(seen) != len(jobs) {
		t.Fatalf("expected distinct seeds, got %d for %d jobs", len(seen), len(jobs))
	}
}

func TestJobsRejectsInvalidCombination(t *testing.T) {
	p := DefaultPlan()
	p.Vary.Cleaners = []int{1, -1}
	_, err := p.Jobs()
	if !errors.Is(err, room.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}

	p = DefaultPlan()
	p.Vary.Width = []int{8192}
	p.Vary.Height = []int{4096}
	if _, err := p.Jobs(); !errors.Is(err, room.ErrInvalidConfig) {
		t.Fatalf("expected oversized room to be rejected, got %v", err)
	}

	p = DefaultPlan()
	p.Iterations = 0
	if _, err := p.Jobs(); err == nil {
		t.Fatalf("expected error for zero iterations")
	}
}

func TestParsePlan(t *testing.T) {
	raw := []byte(`
name: small
base:
  dirt: 0.5
  width: 4
vary:
  cleaners: [1, 2, 3]
  dirt: [0.25, 0.5]
iterations: 2
seed: 9
`)
	p, err := ParsePlan(raw)
	if err != nil {
		t.Fatalf("ParsePlan: %v", err)
	}
	def := room.DefaultConfig()
	if p.Name != "small" || p.Iterations != 2 || p.Seed != 9 {
		t.Fatalf("unexpected plan header: %+v", p)
	}
	if p.Base.Width != 4 || p.Base.DirtFraction != 0.5 {
		t.Fatalf("base fields not decoded: %+v", p.Base)
	}
	if p.Base.Height != def.Height || p.Base.MaxSteps != def.MaxSteps || p.Base.Cleaners != def.Cleaners {
		t.Fatalf("missing base fields should keep defaults: %+v", p.Base)
	}
	jobs, err := p.Jobs()
	if err != nil {
		t.Fatalf("Jobs: %v", err)
	}
	if len(jobs) != 12 {
		t.Fatalf("expected 12 jobs, got %d", len(jobs))
	}
	if jobs[0].Config.DirtFraction != 0.25 || jobs[11].Config.DirtFraction != 0.5 {
		t.Fatalf("dirt axis should vary slowest")
	}
}

func TestParsePlanDefaultsIterations(t *testing.T) {
	p, err := ParsePlan([]byte("vary:\n  steps: [10]\n"))
	if err != nil {
		t.Fatalf("ParsePlan: %v", err)
	}
	if p.Iterations != 1 {
		t.Fatalf("expected one iteration, got %d", p.Iterations)
	}
}

func TestParsePlanRejects(t *testing.T) {
	cases := map[string]string{
		"empty":            "",
		"unknown axis":     "vary:\n  speed: [1, 2]\n",
		"unknown field":    "bogus: 1\n",
		"dirt above one":   "base:\n  dirt: 1.5\n",
		"zero iterations":  "iterations: 0\n",
		"fractional width": "vary:\n  width: [2.5]\n",
		"empty axis":       "vary:\n  cleaners: []\n",
		"negative cleaner": "vary:\n  cleaners: [-1]\n",
		"not yaml":         "base: [unterminated\n",
		"start missing y":  "base:\n  start: {x: 1}\n",
		"width over limit": "vary:\n  width: [16777217]\n",
		"base height huge": "base:\n  height: 4294967296\n",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParsePlan([]byte(raw)); err == nil {
				t.Fatalf("expected %q to be rejected", raw)
			}
		})
	}
}

func TestLoadPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	if err := os.WriteFile(path, []byte("vary:\n  steps: [5, 10]\nseed: 3\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	p, err := LoadPlan(path)
	if err != nil {
		t.Fatalf("LoadPlan: %v", err)
	}
	if len(p.Vary.Steps) != 2 || p.Seed != 3 {
		t.Fatalf("unexpected plan: %+v", p)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("iterations: -1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err = LoadPlan(bad)
	if err == nil || !strings.Contains(err.Error(), bad) {
		t.Fatalf("expected error naming the file, got %v", err)
	}
}
