package core

import (
	"testing"
	"time"
)

func TestFixedStepPacing(t *testing.T) {
	clock := time.Unix(1000, 0)
	fs := NewFixedStep(4)
	fs.now = func() time.Time { return clock }

	if !fs.ShouldStep() {
		t.Fatal("first poll should report a due step")
	}
	if fs.ShouldStep() {
		t.Fatal("no time elapsed, no step expected")
	}

	clock = clock.Add(100 * time.Millisecond)
	if fs.ShouldStep() {
		t.Fatal("100ms is shorter than the 250ms interval")
	}
	clock = clock.Add(150 * time.Millisecond)
	if !fs.ShouldStep() {
		t.Fatal("250ms accumulated, step expected")
	}

	fs.Reset()
	clock = clock.Add(time.Hour)
	if fs.ShouldStep() {
		t.Fatal("Reset should drop time that passed before the next poll")
	}
}

func TestFixedStepDefaultRate(t *testing.T) {
	fs := NewFixedStep(0)
	if got := fs.Interval(); got != 100*time.Millisecond {
		t.Fatalf("interval = %v, want 100ms", got)
	}
}
