// Package status provides a thread-safe status tracker for the keypad-lock daemon.
// It is written by the main loop and read by HTTP handlers.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/keypad-lock/internal/logic"
)

// Config contains daemon configuration for display.
type Config struct {
	PollMs     int64
	TickMs     int64
	GuardTicks int
	SettleMs   int64
	HTTPAddr   string
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	State       logic.State
	BufferLen   int
	GuardActive bool
	Counts      logic.Counts
	LastOutcome logic.Outcome
	LastChange  time.Time
	StartTime   time.Time
	Now         time.Time
	Config      Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
	now  func() time.Time
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			State:     logic.StateLocked,
			StartTime: startTime,
			Config:    cfg,
		},
		now: time.Now,
	}
}

// Update sets the machine state, buffer length, and counters.
// Called from runLoop on every iteration.
func (t *Tracker) Update(state logic.State, bufferLen int, guardActive bool, counts logic.Counts) {
	t.mu.Lock()
	t.snap.State = state
	t.snap.BufferLen = bufferLen
	t.snap.GuardActive = guardActive
	t.snap.Counts = counts
	t.mu.Unlock()
}

// RecordTransition stores the most recent handled outcome.
// Ignored events are not recorded.
func (t *Tracker) RecordTransition(tr logic.Transition, at time.Time) {
	if tr.Outcome == logic.OutcomeIgnored {
		return
	}
	t.mu.Lock()
	t.snap.State = tr.To
	t.snap.LastOutcome = tr.Outcome
	t.snap.LastChange = at
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = t.now()
	return s
}
