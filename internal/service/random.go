package service

import (
	"math/rand"
	"sync"
	"time"
)

// Picker chooses an index in [0, n). Tests inject a fixed sequence.
type Picker interface {
	Intn(n int) int
}

type lockedRand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewPicker returns a goroutine-safe Picker. A zero seed seeds from the clock.
func NewPicker(seed int64) Picker {
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

// choose picks one item uniformly, or "" for an empty slice
func choose(p Picker, items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return items[p.Intn(len(items))]
}
