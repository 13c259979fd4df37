package bag

import (
	"testing"

	"tetrion/shapes"
)

func TestSevenDrawsArePermutationOfAllShapes(t *testing.T) {
	b := New(1)
	seen := map[shapes.Name]int{}
	for range 7 {
		seen[b.Draw()]++
	}
	for _, name := range shapes.All() {
		if seen[name] != 1 {
			t.Errorf("%s drawn %d times in the first seven draws", name, seen[name])
		}
	}
}

// TestEveryAlignedWindowOfSevenIsAPermutation checks the real 7-bag
// invariant: each block of seven draws aligned to a bag boundary is a
// permutation of all shapes. Unaligned sliding windows straddle two
// independently shuffled bags and are not permutations in general — the
// window {a1..a6, b0} is only a permutation if b0 happens to equal a0.
func TestEveryAlignedWindowOfSevenIsAPermutation(t *testing.T) {
	b := New(42)
	var drawn []shapes.Name
	for range 7 * 20 {
		drawn = append(drawn, b.Draw())
	}
	for start := 0; start+7 <= len(drawn); start += 7 {
		window := drawn[start : start+7]
		seen := map[shapes.Name]int{}
		for _, n := range window {
			seen[n]++
		}
		for _, name := range shapes.All() {
			if seen[name] != 1 {
				t.Fatalf("bag starting at %d is not a permutation: %v", start, window)
			}
		}
	}
}

func TestSameSeedProducesSameSequence(t *testing.T) {
	a := New(7)
	b := New(7)
	for range 100 {
		if a.Draw() != b.Draw() {
			t.Fatal("bags with identical seeds diverged")
		}
	}
}

func TestRemainingCountsDownAndRefills(t *testing.T) {
	b := New(3)
	if b.Remaining() != 0 {
		t.Fatalf("wanted a fresh bag to report 0 pending before the first draw, got %d", b.Remaining())
	}
	b.Draw()
	if b.Remaining() != 6 {
		t.Fatalf("wanted 6 pending after one draw, got %d", b.Remaining())
	}
	for range 6 {
		b.Draw()
	}
	if b.Remaining() != 0 {
		t.Fatalf("wanted the bag to empty after seven draws, got %d", b.Remaining())
	}
	b.Draw()
	if b.Remaining() != 6 {
		t.Fatalf("wanted the bag to reshuffle on the eighth draw, got %d", b.Remaining())
	}
}
