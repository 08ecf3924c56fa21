// Package random provides the uniform draw primitive used by the catalog,
// ritual and roll engines, plus deterministic sources for tests.
package random

import (
	"math/rand/v2"
	"sync"
)

// Source draws uniformly from [0, n).
type Source interface {
	IntN(n int) int
}

// New returns a source seeded with seed. The same seed replays the same draws.
func New(seed uint64) Source {
	return &lockedSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Default returns a source backed by the runtime's global generator.
func Default() Source {
	return globalSource{}
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// lockedSource guards a *rand.Rand, which is not safe for concurrent use.
type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (s *lockedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}

// Sequence replays a fixed list of draws, each reduced modulo n.
// It cycles when exhausted. Used to script engines in tests.
type Sequence struct {
	mu     sync.Mutex
	values []int
	next   int
}

// Fixed returns a Sequence over values.
func Fixed(values ...int) *Sequence {
	if len(values) == 0 {
		values = []int{0}
	}
	return &Sequence{values: values}
}

func (s *Sequence) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.values[s.next%len(s.values)]
	s.next++
	if n <= 0 {
		return 0
	}
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// Draws reports how many values have been consumed.
func (s *Sequence) Draws() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}
