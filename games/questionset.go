package games

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"sync"
)

// Sampler picks the per-room question subsets. It is safe for concurrent
// use.
type Sampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSampler returns a Sampler seeded with seed. Tests pass a fixed seed;
// the server uses NewSeed.
func NewSampler(seed uint64) *Sampler {
	return &Sampler{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// NewSeed reads a seed from crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return binary.LittleEndian.Uint64(b[:]), nil
}

// Sample returns up to n ids drawn uniformly without replacement, in
// random order. The input slice is not modified.
func (s *Sampler) Sample(ids []int64, n int) []int64 {
	if n <= 0 || len(ids) == 0 {
		return []int64{}
	}
	if n > len(ids) {
		n = len(ids)
	}

	pool := make([]int64, len(ids))
	copy(pool, ids)

	s.mu.Lock()
	defer s.mu.Unlock()

	// Partial Fisher-Yates: the first n slots end up a uniform sample.
	for i := 0; i < n; i++ {
		j := i + s.rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}

	return pool[:n]
}

// SetSizes maps each category to how many questions a room gets.
type SetSizes map[Category]int

// DefaultSetSizes are the sizes used when nothing is configured.
func DefaultSetSizes() SetSizes {
	return SetSizes{
		CategoryQuiz:           10,
		CategoryThisThat:       5,
		CategoryLikely:         5,
		CategoryWouldYouRather: 5,
		CategoryDare:           3,
	}
}
