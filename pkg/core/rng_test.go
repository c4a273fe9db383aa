package core

import (
	"slices"
	"testing"
)

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(99)
	b := NewRNG(99)
	for i := 0; i < 64; i++ {
		if x, y := a.IntN(1000), b.IntN(1000); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
	}

	permA := []int{0, 1, 2, 3, 4, 5, 6, 7}
	permB := slices.Clone(permA)
	a.Shuffle(len(permA), func(i, j int) { permA[i], permA[j] = permA[j], permA[i] })
	b.Shuffle(len(permB), func(i, j int) { permB[i], permB[j] = permB[j], permB[i] })
	if !slices.Equal(permA, permB) {
		t.Fatalf("shuffles differ: %v vs %v", permA, permB)
	}
}

func TestRNGIntNNonPositive(t *testing.T) {
	r := NewRNG(1)
	if got := r.IntN(0); got != 0 {
		t.Fatalf("IntN(0) = %d, want 0", got)
	}
	if got := r.IntN(-3); got != 0 {
		t.Fatalf("IntN(-3) = %d, want 0", got)
	}
	for i := 0; i < 32; i++ {
		if got := r.IntN(1); got != 0 {
			t.Fatalf("IntN(1) = %d, want 0", got)
		}
	}
}
