package room

import "testing"

func TestCrowdFieldStartsOnOneCell(t *testing.T) {
	r := mustNew(t, Config{DirtFraction: 0.5, Width: 4, Height: 3, MaxSteps: 10, Cleaners: 6, Seed: 2})
	field := r.CrowdField()
	if len(field) != 12 {
		t.Fatalf("expected 12 cells, got %d", len(field))
	}
	start := 1*4 + 1
	for i, v := range field {
		want := float32(0)
		if i == start {
			want = 1
		}
		if v != want {
			t.Fatalf("cell %d: got %v want %v", i, v, want)
		}
	}
}

func TestCrowdFieldNormalized(t *testing.T) {
	r := mustNew(t, Config{DirtFraction: 0.3, Width: 6, Height: 6, MaxSteps: 40, Cleaners: 10, Seed: 8})
	for !r.Done() {
		r.Step()
		var total, peak float32
		for _, v := range r.CrowdField() {
			if v < 0 || v > 1 {
				t.Fatalf("value %v out of [0,1]", v)
			}
			total += v
			peak = max(peak, v)
		}
		if peak != 1 || total <= 0 {
			t.Fatalf("step %d: expected a peak of 1, got peak %v total %v", r.Steps(), peak, total)
		}
	}
}

func TestCrowdFieldWithoutCleaners(t *testing.T) {
	r := mustNew(t, Config{DirtFraction: 0.5, Width: 3, Height: 3, MaxSteps: 5, Cleaners: 0, Seed: 1})
	for i, v := range r.CrowdField() {
		if v != 0 {
			t.Fatalf("cell %d: expected 0, got %v", i, v)
		}
	}
}
