package search

import (
	"math/rand"
	"sync"
	"time"
)

// Chooser picks an index in [0, n) among equally good moves. n is always
// at least 1.
type Chooser interface {
	Choose(n int) int
}

// ChooserFunc adapts a function to the Chooser interface.
type ChooserFunc func(n int) int

// Choose calls f(n).
func (f ChooserFunc) Choose(n int) int { return f(n) }

// First always picks the first candidate. It makes bots deterministic.
var First = ChooserFunc(func(int) int { return 0 })

// RandomChooser picks uniformly at random. It is safe for concurrent use.
type RandomChooser struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomChooser returns a chooser seeded with seed.
func NewRandomChooser(seed int64) *RandomChooser {
	return &RandomChooser{rng: rand.New(rand.NewSource(seed))}
}

// NewTimeSeededChooser returns a chooser seeded from the clock.
func NewTimeSeededChooser() *RandomChooser {
	return NewRandomChooser(time.Now().UnixNano())
}

// Choose returns a random index in [0, n).
func (c *RandomChooser) Choose(n int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rng.Intn(n)
}
