// Package bag implements the 7-bag tetromino randomizer: a lazy,
// infinite, seed-reproducible sequence of shapes where every run of
// seven draws is a permutation of the seven guideline shapes.
package bag

import (
	"math/rand"

	"tetrion/shapes"
)

// Bag is a stateful 7-bag randomizer. Two bags constructed with the same
// seed produce identical infinite sequences of Draw() results.
type Bag struct {
	rng     *rand.Rand
	pending []shapes.Name
}

// New creates a bag seeded deterministically. The same seed always
// produces the same sequence, including across process restarts.
func New(seed int64) *Bag {
	return &Bag{rng: rand.New(rand.NewSource(seed))}
}

// Draw returns the next shape in the sequence, refilling and reshuffling
// the bag whenever it runs dry.
func (b *Bag) Draw() shapes.Name {
	if len(b.pending) == 0 {
		b.refill()
	}
	n := b.pending[0]
	b.pending = b.pending[1:]
	return n
}

// Remaining reports how many shapes are left in the current bag before
// it reshuffles. Exposed mainly for tests.
func (b *Bag) Remaining() int {
	return len(b.pending)
}

// Rand exposes the bag's own PRNG stream so other deterministic engine
// concerns (notably garbage-hole placement, see playfield.GarbageHolePolicy)
// can share one seed instead of drawing their own unseeded entropy.
func (b *Bag) Rand() *rand.Rand {
	return b.rng
}

func (b *Bag) refill() {
	fresh := append([]shapes.Name(nil), shapes.All()...)
	// Fisher-Yates shuffle, grounded on the reference pack's own 7-bag
	// implementation (HershLalwani-gotris' refillBag).
	for i := len(fresh) - 1; i > 0; i-- {
		j := b.rng.Intn(i + 1)
		fresh[i], fresh[j] = fresh[j], fresh[i]
	}
	b.pending = fresh
}
