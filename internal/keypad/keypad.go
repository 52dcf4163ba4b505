// Package keypad scans a 4x3 matrix keypad one row at a time.
package keypad

import (
	"context"
	"fmt"
	"time"

	"github.com/sweeney/keypad-lock/internal/gpio"
)

// NoKey is returned when no key is pressed during a scan.
const NoKey byte = 0

// Layout maps (row, column) to the key character.
var Layout = [gpio.NumRows][gpio.NumCols]byte{
	{'1', '2', '3'},
	{'4', '5', '6'},
	{'7', '8', '9'},
	{'*', '0', '#'},
}

// Reference scan timing.
const (
	SettleDelay = 2 * time.Millisecond
	ReleasePoll = 5 * time.Millisecond
)

// Scanner resolves key presses on a gpio.Keypad.
type Scanner struct {
	pad         gpio.Keypad
	settle      time.Duration
	releasePoll time.Duration
	sleep       func(time.Duration)
}

// NewScanner creates a Scanner with the reference settle delay.
func NewScanner(pad gpio.Keypad) *Scanner {
	return &Scanner{
		pad:         pad,
		settle:      SettleDelay,
		releasePoll: ReleasePoll,
		sleep:       time.Sleep,
	}
}

// WithSleep replaces the delay function. Tests use a no-op.
func (s *Scanner) WithSleep(sleep func(time.Duration)) *Scanner {
	s.sleep = sleep
	return s
}

// Scan selects each row in order, waits for the lines to settle and samples
// the columns. On the first pressed key it blocks until every column is
// released, then returns the key's character. One call therefore returns one
// press-and-release. Scan returns NoKey if no key is down on any row.
//
// The release wait has no timeout. It ends early only when ctx is done, in
// which case NoKey and ctx.Err() are returned.
//
// If the row cannot be returned high after a key was resolved, both the key
// and the error are returned. The key was pressed and released.
func (s *Scanner) Scan(ctx context.Context) (byte, error) {
	for row := 0; row < gpio.NumRows; row++ {
		key, err := s.scanRow(ctx, row)
		if err != nil || key != NoKey {
			return key, err
		}
	}
	return NoKey, nil
}

func (s *Scanner) scanRow(ctx context.Context, row int) (key byte, err error) {
	if err := s.pad.SetRow(row, true); err != nil {
		return NoKey, fmt.Errorf("select row %d: %w", row, err)
	}
	defer func() {
		if rerr := s.pad.SetRow(row, false); rerr != nil && err == nil {
			err = fmt.Errorf("restore row %d: %w", row, rerr)
		}
	}()

	s.sleep(s.settle)

	cols, err := s.pad.Columns()
	if err != nil {
		return NoKey, fmt.Errorf("sample row %d: %w", row, err)
	}
	col := firstPressed(cols)
	if col < 0 {
		return NoKey, nil
	}

	if err := s.waitRelease(ctx); err != nil {
		return NoKey, err
	}
	return Layout[row][col], nil
}

// waitRelease polls until no column reads pressed.
func (s *Scanner) waitRelease(ctx context.Context) error {
	for {
		cols, err := s.pad.Columns()
		if err != nil {
			return fmt.Errorf("wait for release: %w", err)
		}
		if firstPressed(cols) < 0 {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		s.sleep(s.releasePoll)
	}
}

// firstPressed returns the lowest pressed column index, or -1.
func firstPressed(cols [gpio.NumCols]bool) int {
	for i, pressed := range cols {
		if pressed {
			return i
		}
	}
	return -1
}
