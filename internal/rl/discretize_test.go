package rl

import (
	"testing"

	"github.com/talgya/mini-pet/internal/pet"
)

func TestDiscretizeBoundaries(t *testing.T) {
	cases := []struct {
		v      int
		bounds []int
		want   int
	}{
		{0, HungerBins, 0},
		{24, HungerBins, 0},
		{25, HungerBins, 1},
		{49, HungerBins, 1},
		{50, HungerBins, 2},
		{75, HungerBins, 3},
		{99, HungerBins, 3},
		{100, HungerBins, 3}, // final boundary clamps to last bin
		{0, CleanlinessBins, 0},
		{32, CleanlinessBins, 0},
		{33, CleanlinessBins, 1},
		{66, CleanlinessBins, 2},
		{100, CleanlinessBins, 2},
		// Defensive clamping outside the nominal range.
		{-5, HungerBins, 0},
		{140, HungerBins, 3},
	}

	for _, tc := range cases {
		if got := Discretize(tc.v, tc.bounds); got != tc.want {
			t.Errorf("Discretize(%d, %v) = %d, want %d", tc.v, tc.bounds, got, tc.want)
		}
	}
}

func TestDiscretizeIsMonotonic(t *testing.T) {
	for _, bounds := range [][]int{HungerBins, HappinessBins, EnergyBins, CleanlinessBins} {
		prev := 0
		for v := 0; v <= 100; v++ {
			got := Discretize(v, bounds)
			if got < 0 || got > len(bounds)-2 {
				t.Fatalf("Discretize(%d, %v) = %d out of range", v, bounds, got)
			}
			if got < prev {
				t.Fatalf("Discretize(%d, %v) = %d decreased from %d", v, bounds, got, prev)
			}
			prev = got
		}
	}
}

func TestStateIndexMixedRadix(t *testing.T) {
	if NumStates() != 192 {
		t.Fatalf("NumStates() = %d, want 192", NumStates())
	}

	cases := []struct {
		needs pet.Needs
		want  int
	}{
		// bins (0,2,3,0)
		{pet.Needs{Hunger: 10, Happiness: 60, Energy: 80, Cleanliness: 20}, ((0*4+2)*4+3)*3 + 0},
		// bins (3,0,0,2)
		{pet.Needs{Hunger: 90, Happiness: 10, Energy: 5, Cleanliness: 90}, ((3*4+0)*4+0)*3 + 2},
		{pet.Needs{}, 0},
		{pet.Needs{Hunger: 100, Happiness: 100, Energy: 100, Cleanliness: 100}, NumStates() - 1},
	}

	for _, tc := range cases {
		got, err := StateIndex(tc.needs)
		if err != nil {
			t.Fatalf("StateIndex(%+v): %v", tc.needs, err)
		}
		if got != tc.want {
			t.Errorf("StateIndex(%+v) = %d, want %d", tc.needs, got, tc.want)
		}
	}
}

func TestStateIndexCoversFullRange(t *testing.T) {
	seen := make(map[int]bool)
	for h := 0; h <= 100; h += 5 {
		for p := 0; p <= 100; p += 5 {
			for e := 0; e <= 100; e += 5 {
				for c := 0; c <= 100; c += 5 {
					idx, err := StateIndex(pet.Needs{Hunger: h, Happiness: p, Energy: e, Cleanliness: c})
					if err != nil {
						t.Fatalf("StateIndex: %v", err)
					}
					if idx < 0 || idx >= NumStates() {
						t.Fatalf("index %d outside [0,%d)", idx, NumStates())
					}
					seen[idx] = true
				}
			}
		}
	}
	if len(seen) != NumStates() {
		t.Fatalf("only %d of %d states reachable", len(seen), NumStates())
	}
}

func TestStateIndexRejectsInvariantViolations(t *testing.T) {
	bad := []pet.Needs{
		{Hunger: -1, Happiness: 50, Energy: 50, Cleanliness: 50},
		{Hunger: 50, Happiness: 101, Energy: 50, Cleanliness: 50},
		{Hunger: 50, Happiness: 50, Energy: 150, Cleanliness: 50},
		{Hunger: 50, Happiness: 50, Energy: 50, Cleanliness: -10},
	}
	for _, n := range bad {
		if _, err := StateIndex(n); err == nil {
			t.Errorf("StateIndex(%+v) accepted an out-of-range need", n)
		}
	}
}
