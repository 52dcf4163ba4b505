package debounce

import (
	"context"
	"time"
)

// RunTimer calls g.Tick on every value received from tick until ctx is done.
// In production tick is a time.Ticker channel at TickPeriod.
func RunTimer(ctx context.Context, g *Guard, tick <-chan time.Time) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick:
			g.Tick()
		}
	}
}

// StartTimer starts a ticker at period driving g in a new goroutine.
// The returned stop function halts the ticker and waits for the goroutine.
func StartTimer(ctx context.Context, g *Guard, period time.Duration) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	ticker := time.NewTicker(period)
	done := make(chan struct{})
	go func() {
		defer close(done)
		RunTimer(ctx, g, ticker.C)
	}()
	return func() {
		cancel()
		ticker.Stop()
		<-done
	}
}
