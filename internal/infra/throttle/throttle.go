// Package throttle suppresses rapid duplicate notifications per
// (region, transition type) pair. State is process-local and in-memory: a
// restart resets every window, which only needs to stop in-process duplicate
// deliveries.
package throttle

import (
	"fmt"
	"sync"
	"time"

	"geocue/internal/domain/entity"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Clock supplies the current time. Injected so tests can advance time
// deterministically.
type Clock func() time.Time

// Throttle allows at most one dispatch per key within the configured window.
type Throttle struct {
	window   time.Duration
	clock    Clock
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// New creates a throttle with the given window. A nil clock defaults to
// time.Now.
func New(window time.Duration, clock Clock) *Throttle {
	if clock == nil {
		clock = time.Now
	}

	return &Throttle{
		window:   window,
		clock:    clock,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Allow reports whether a dispatch for the pair may proceed now, and if so
// consumes the window immediately. Consuming before the caller dispatches
// closes the race against a concurrent duplicate classification: a failed
// dispatch does not reopen the window.
func (t *Throttle) Allow(regionID uuid.UUID, transition entity.TransitionType) bool {
	key := fmt.Sprintf("%s:%s", regionID, transition)

	t.mu.Lock()
	limiter, ok := t.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(t.window), 1)
		t.limiters[key] = limiter
	}
	t.mu.Unlock()

	return limiter.AllowN(t.clock(), 1)
}

// Reset clears all throttle state.
func (t *Throttle) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.limiters = make(map[string]*rate.Limiter)
}
