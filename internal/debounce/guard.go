// Package debounce suppresses button contact bounce with a tick-aged guard.
//
// A Guard is shared between three goroutines: the button edge handler
// (Edge), the periodic timer (Tick) and the main loop (TakePending). Both
// shared fields are atomics, so no handler ever blocks.
package debounce

import (
	"sync/atomic"
	"time"
)

// Reference timing: a 4 Hz tick with a 2 tick guard ignores edges for ~500ms.
const (
	TickPeriod = 250 * time.Millisecond
	GuardTicks = 2
)

// Guard holds the debounce counter and the pending button flag.
type Guard struct {
	guardTicks uint32
	counter    atomic.Uint32
	pending    atomic.Bool
}

// NewGuard creates a Guard that blocks re-triggering for guardTicks ticks
// after an accepted edge.
func NewGuard(guardTicks uint32) *Guard {
	return &Guard{guardTicks: guardTicks}
}

// Edge handles a falling edge of the button.
// Returns true if the edge was accepted and a button event is now pending.
// Edges while the guard is active are ignored.
func (g *Guard) Edge() bool {
	if !g.counter.CompareAndSwap(0, g.guardTicks) {
		return false
	}
	g.pending.Store(true)
	return true
}

// Tick ages the guard by one tick. The counter saturates at 0.
func (g *Guard) Tick() {
	for {
		v := g.counter.Load()
		if v == 0 {
			return
		}
		if g.counter.CompareAndSwap(v, v-1) {
			return
		}
	}
}

// TakePending consumes the pending button event.
// Returns true at most once per accepted edge.
func (g *Guard) TakePending() bool {
	return g.pending.Swap(false)
}

// Remaining returns the number of ticks left before edges are accepted again.
func (g *Guard) Remaining() uint32 {
	return g.counter.Load()
}
