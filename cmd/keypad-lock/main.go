// Command keypad-lock runs the keypad lock controller: it reads a matrix keypad,
// compares entered keys against a fixed code, and drives the latch servo and status LEDs.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/keypad-lock/internal/actuator"
	"github.com/sweeney/keypad-lock/internal/debounce"
	"github.com/sweeney/keypad-lock/internal/gpio"
	"github.com/sweeney/keypad-lock/internal/keypad"
	"github.com/sweeney/keypad-lock/internal/logic"
	"github.com/sweeney/keypad-lock/internal/status"
	"github.com/sweeney/keypad-lock/internal/web"
)

func main() {
	poll := flag.Duration("poll", 10*time.Millisecond, "Main loop interval")
	httpAddr := flag.String("http", "", "HTTP status address (empty to disable)")
	printState := flag.Bool("print-state", false, "Print keypad and button inputs and exit")

	flag.Parse()

	if err := run(*poll, *httpAddr, *printState); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(poll time.Duration, httpAddr string, printState bool) error {
	guard := debounce.NewGuard(debounce.GuardTicks)

	// Initialize GPIO. Button edges go straight to the guard from the
	// gpiocdev event goroutine.
	board, err := gpio.NewRealBoard(gpio.DefaultPins, func() { guard.Edge() })
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer board.Close()

	// Print state mode
	if printState {
		return printInputs(os.Stdout, board, time.Sleep)
	}

	machine := logic.NewMachine(actuator.New(board), time.Sleep)
	if err := machine.Start(); err != nil {
		return fmt.Errorf("init outputs: %w", err)
	}
	scanner := keypad.NewScanner(board)

	tracker := status.NewTracker(time.Now(), status.Config{
		PollMs:     poll.Milliseconds(),
		TickMs:     debounce.TickPeriod.Milliseconds(),
		GuardTicks: debounce.GuardTicks,
		SettleMs:   keypad.SettleDelay.Milliseconds(),
		HTTPAddr:   httpAddr,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case s := <-sigCh:
			log.Printf("received %v, shutting down", s)
			cancel()
		case <-ctx.Done():
		}
	}()

	// Start HTTP status server
	if httpAddr != "" {
		srv := web.New(httpAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", httpAddr)
	}

	stopTimer := debounce.StartTimer(ctx, guard, debounce.TickPeriod)
	defer stopTimer()

	log.Printf("started: poll=%v tick=%v guard=%d settle=%v", poll, debounce.TickPeriod, debounce.GuardTicks, keypad.SettleDelay)

	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	return runLoop(ctx, guard, scanner, machine, tracker, time.Now, ticker.C)
}

// runLoop is the single consumer of button events and the only writer of
// the state machine. One iteration runs per tick: a pending button event is
// handled first, then one keypad scan if a code is being entered.
func runLoop(ctx context.Context, guard *debounce.Guard, scanner *keypad.Scanner, machine *logic.Machine, tracker *status.Tracker, now func() time.Time, tick <-chan time.Time) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick:
		}

		if guard.TakePending() {
			tr, err := machine.HandleButton()
			report(tracker, machine, tr, err, now())
		}

		if machine.State() == logic.StateEnteringCode {
			key, err := scanner.Scan(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				log.Printf("keypad scan error: %v", err)
			}
			// A key can come back with a row restore error; it still counts.
			if key != keypad.NoKey {
				tr, err := machine.HandleKey(key)
				report(tracker, machine, tr, err, now())
			}
		}

		if tracker != nil {
			tracker.Update(machine.State(), machine.BufferLen(), guard.Remaining() > 0, machine.EventCountsSnapshot())
		}
	}
}

// report logs a transition. Keys are never logged, only how many are buffered.
func report(tracker *status.Tracker, machine *logic.Machine, tr logic.Transition, err error, at time.Time) {
	if err != nil {
		log.Printf("output error during %s: %v", tr.Event, err)
	}
	switch tr.Outcome {
	case logic.OutcomeIgnored:
		log.Printf("ignored %s in %s", tr.Event, tr.From)
		return
	case logic.OutcomeKeyAccepted:
		log.Printf("key accepted (%d/%d)", machine.BufferLen(), logic.CodeLength)
	default:
		log.Printf("transition: %s %s -> %s (%s)", tr.Event, tr.From, tr.To, tr.Outcome)
	}
	if tracker != nil {
		tracker.RecordTransition(tr, at)
	}
}

// printInputs scans every keypad row once without waiting for release and
// prints the pressed keys and the button level.
func printInputs(w io.Writer, board gpio.Board, sleep func(time.Duration)) error {
	var pressed []byte
	for row := 0; row < gpio.NumRows; row++ {
		if err := board.SetRow(row, true); err != nil {
			return fmt.Errorf("select row %d: %w", row, err)
		}
		sleep(keypad.SettleDelay)
		cols, err := board.Columns()
		if rerr := board.SetRow(row, false); rerr != nil && err == nil {
			err = rerr
		}
		if err != nil {
			return fmt.Errorf("read row %d: %w", row, err)
		}
		for col, down := range cols {
			if down {
				pressed = append(pressed, keypad.Layout[row][col])
			}
		}
	}

	button, err := board.ButtonPressed()
	if err != nil {
		return fmt.Errorf("read button: %w", err)
	}

	keys := "none"
	if len(pressed) > 0 {
		keys = string(pressed)
	}
	fmt.Fprintf(w, "Keys: %s, Button: %s\n", keys, pressedString(button))
	return nil
}

func pressedString(down bool) string {
	if down {
		return "PRESSED"
	}
	return "RELEASED"
}
