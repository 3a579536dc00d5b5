package question

import (
	"math/rand"
	"sync"
	"time"
)

// RandSource draws the quiz selection. Intn returns a value in [0, n).
type RandSource interface {
	Intn(n int) int
}

type lockedRand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandSource returns a goroutine-safe source. A zero seed uses the clock.
func NewRandSource(seed int64) RandSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedRand{rnd: rand.New(rand.NewSource(seed))}
}

func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Intn(n)
}
