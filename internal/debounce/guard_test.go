package debounce

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestEdgeSetsPendingAndGuard(t *testing.T) {
	g := NewGuard(GuardTicks)

	if g.TakePending() {
		t.Fatal("no event should be pending initially")
	}
	if !g.Edge() {
		t.Fatal("first edge should be accepted")
	}
	if g.Remaining() != GuardTicks {
		t.Errorf("Remaining: got %d, want %d", g.Remaining(), GuardTicks)
	}
	if !g.TakePending() {
		t.Error("expected pending event after edge")
	}
	if g.TakePending() {
		t.Error("pending event should be consumed exactly once")
	}
}

func TestEdgeIgnoredWhileGuardActive(t *testing.T) {
	g := NewGuard(GuardTicks)
	g.Edge()

	// Bounces within the guard window
	for i := 0; i < 10; i++ {
		if g.Edge() {
			t.Fatalf("bounce %d accepted while guard active", i)
		}
	}
	if !g.TakePending() {
		t.Fatal("expected one pending event")
	}
	if g.TakePending() {
		t.Error("bounces must not queue further events")
	}

	// Still guarded after one tick
	g.Tick()
	if g.Edge() {
		t.Error("edge accepted with 1 tick remaining")
	}

	// Guard expires after the second tick
	g.Tick()
	if g.Remaining() != 0 {
		t.Fatalf("Remaining: got %d, want 0", g.Remaining())
	}
	if !g.Edge() {
		t.Error("edge should be accepted after guard expired")
	}
}

func TestTickSaturatesAtZero(t *testing.T) {
	g := NewGuard(GuardTicks)
	for i := 0; i < 5; i++ {
		g.Tick()
	}
	if g.Remaining() != 0 {
		t.Errorf("Remaining: got %d, want 0", g.Remaining())
	}
	if g.TakePending() {
		t.Error("Tick must not set pending")
	}
}

func TestPendingNotQueuedIfUnconsumed(t *testing.T) {
	g := NewGuard(GuardTicks)
	g.Edge()
	g.Tick()
	g.Tick()
	g.Edge() // accepted, but the flag was already set

	if !g.TakePending() {
		t.Fatal("expected pending event")
	}
	if g.TakePending() {
		t.Error("at most one event may be outstanding between clears")
	}
}

func TestConcurrentEdgesQueueOneEvent(t *testing.T) {
	g := NewGuard(GuardTicks)

	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if g.Edge() {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if accepted != 1 {
		t.Errorf("accepted edges: got %d, want 1", accepted)
	}
	if !g.TakePending() || g.TakePending() {
		t.Error("expected exactly one pending event")
	}
}

// Two presses 50ms apart on a 250ms tick produce one event.
func TestEdgesWithinGuardWindowOverTime(t *testing.T) {
	g := NewGuard(GuardTicks)
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	nextTick := start.Add(TickPeriod)

	edges := []time.Duration{0, 50 * time.Millisecond}
	events := 0
	for _, at := range edges {
		now := start.Add(at)
		for !nextTick.After(now) {
			g.Tick()
			nextTick = nextTick.Add(TickPeriod)
		}
		g.Edge()
		if g.TakePending() {
			events++
		}
	}
	if events != 1 {
		t.Errorf("events: got %d, want 1", events)
	}
}

func TestRunTimerAgesGuard(t *testing.T) {
	g := NewGuard(GuardTicks)
	g.Edge()

	tick := make(chan time.Time)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		RunTimer(ctx, g, tick)
		close(done)
	}()

	tick <- time.Now()
	tick <- time.Now()
	cancel()
	<-done

	if g.Remaining() != 0 {
		t.Errorf("Remaining after 2 ticks: got %d, want 0", g.Remaining())
	}
}

func TestStartTimerStop(t *testing.T) {
	g := NewGuard(GuardTicks)
	g.Edge()

	stop := StartTimer(context.Background(), g, time.Millisecond)
	deadline := time.Now().Add(time.Second)
	for g.Remaining() != 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	stop()

	if g.Remaining() != 0 {
		t.Errorf("guard did not expire: remaining %d", g.Remaining())
	}
}
