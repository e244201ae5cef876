package money

import (
	"math/rand"
	"sync"
	"time"

	"github.com/seehuhn/mt19937"
)

// RandomSource supplies uniform draws in [0, 1) for [Stochastic] rounding and
// [Random] remainder assignment.
// Implementations shared between goroutines must be safe for concurrent use.
type RandomSource interface {
	Float64() float64
}

// MT19937 is a [RandomSource] backed by the 64-bit Mersenne Twister.
// It is safe for concurrent use by multiple goroutines.
type MT19937 struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewMT19937 returns a Mersenne Twister source initialized with seed.
// Sources created with the same seed produce the same sequence.
func NewMT19937(seed int64) *MT19937 {
	mt := mt19937.New()
	mt.Seed(seed)
	return &MT19937{rng: rand.New(mt)} //nolint:gosec
}

// Float64 returns a pseudo-random number in [0, 1).
func (s *MT19937) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// defaultSource returns the process-wide source, created on first use.
var defaultSource = sync.OnceValue(func() RandomSource {
	return NewMT19937(time.Now().UnixNano())
})

// pick returns a uniformly distributed index in [0, n).
func pick(src RandomSource, n int) int {
	i := int(src.Float64() * float64(n))
	return min(max(i, 0), n-1)
}
