package random

import (
	"math/rand"
	"sync"
	"time"
)

// Roller picks uniformly random numbers. It is safe for concurrent use.
type Roller struct {
	mu     sync.Mutex
	random *rand.Rand
}

// Config for the roller
type Config struct {
	// Optional seed for testing
	Seed int64
}

// New creates a new roller
func New(cfg *Config) *Roller {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &Roller{
		random: rand.New(rand.NewSource(seed)),
	}
}

// Roll returns a number in [1, sides]. Fewer than one side rolls 1.
func (r *Roller) Roll(sides int) int {
	if sides < 1 {
		return 1
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.random.Intn(sides) + 1
}

// Pick returns a random element of options, or the zero value when empty
func Pick[T any](r *Roller, options []T) T {
	var zero T
	if len(options) == 0 {
		return zero
	}
	return options[r.Roll(len(options))-1]
}
