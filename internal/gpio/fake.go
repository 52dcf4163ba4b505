package gpio

import (
	"fmt"
	"sync"
)

// Key identifies a keypad switch by matrix position.
type Key struct {
	Row int
	Col int
}

// LEDState is one recorded indicator write.
type LEDState struct {
	Red   bool
	Green bool
}

type heldKey struct {
	key       Key
	auto      bool // released automatically after it has been seen
	seen      bool
	remaining int
}

// FakeBoard is a test double that simulates a keypad matrix and records
// every output write. It is safe for concurrent use.
type FakeBoard struct {
	mu sync.Mutex

	rows    [NumRows]bool // true = row driven low
	current *heldKey
	queue   []Key

	// HoldReads is the number of extra column reads a typed key stays
	// pressed for once the scan has seen it.
	HoldReads int

	// LEDWrites contains every SetLEDs call in order.
	LEDWrites []LEDState

	// ServoWrites contains every SetServoDuty call in order.
	ServoWrites []uint32

	// ColumnReads counts Columns calls.
	ColumnReads int

	// ButtonDown is returned by ButtonPressed.
	ButtonDown bool

	// Errors, if set, are returned by the matching method.
	SetRowError  error
	ColumnsError error
	LEDError     error
	ServoError   error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeBoard creates a FakeBoard with all rows idle and no key pressed.
func NewFakeBoard() *FakeBoard {
	return &FakeBoard{}
}

// Type queues keys that are pressed one after another. Each key is released
// HoldReads column reads after the scan first sees it.
func (f *FakeBoard) Type(keys ...Key) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = append(f.queue, keys...)
}

// Hold presses k until Release is called.
func (f *FakeBoard) Hold(k Key) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = &heldKey{key: k}
}

// Release lets go of the key currently pressed.
func (f *FakeBoard) Release() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = nil
}

// Pending reports how many typed keys have not been released yet.
func (f *FakeBoard) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := len(f.queue)
	if f.current != nil {
		n++
	}
	return n
}

// SetColumnsError sets ColumnsError while other goroutines may be scanning.
func (f *FakeBoard) SetColumnsError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ColumnsError = err
}

// RowActive reports whether a row is currently driven low.
func (f *FakeBoard) RowActive(row int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[row]
}

// SetRow records the row level.
func (f *FakeBoard) SetRow(row int, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SetRowError != nil {
		return f.SetRowError
	}
	if row < 0 || row >= NumRows {
		return fmt.Errorf("row %d out of range", row)
	}
	f.rows[row] = active
	return nil
}

// Columns reports the pressed key's column when its row is selected.
func (f *FakeBoard) Columns() ([NumCols]bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var cols [NumCols]bool
	if f.ColumnsError != nil {
		return cols, f.ColumnsError
	}
	f.ColumnReads++

	if f.current == nil && len(f.queue) > 0 {
		f.current = &heldKey{key: f.queue[0], auto: true, remaining: f.HoldReads}
		f.queue = f.queue[1:]
	}
	if f.current == nil || !f.rows[f.current.key.Row] {
		return cols, nil
	}

	if f.current.auto && f.current.seen {
		if f.current.remaining == 0 {
			f.current = nil
			return cols, nil
		}
		f.current.remaining--
	}
	f.current.seen = true
	cols[f.current.key.Col] = true
	return cols, nil
}

// SetLEDs records the indicator write.
func (f *FakeBoard) SetLEDs(red, green bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.LEDError != nil {
		return f.LEDError
	}
	f.LEDWrites = append(f.LEDWrites, LEDState{Red: red, Green: green})
	return nil
}

// SetServoDuty records the duty write.
func (f *FakeBoard) SetServoDuty(duty uint32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ServoError != nil {
		return f.ServoError
	}
	f.ServoWrites = append(f.ServoWrites, duty)
	return nil
}

// ButtonPressed returns ButtonDown.
func (f *FakeBoard) ButtonPressed() (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ButtonDown, nil
}

// LastLED returns the most recent indicator write and whether there was one.
func (f *FakeBoard) LastLED() (LEDState, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.LEDWrites) == 0 {
		return LEDState{}, false
	}
	return f.LEDWrites[len(f.LEDWrites)-1], true
}

// LastServo returns the most recent duty write and whether there was one.
func (f *FakeBoard) LastServo() (uint32, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.ServoWrites) == 0 {
		return 0, false
	}
	return f.ServoWrites[len(f.ServoWrites)-1], true
}

// Close marks the board as closed.
func (f *FakeBoard) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}

// Reset clears recorded writes and pressed keys.
func (f *FakeBoard) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = [NumRows]bool{}
	f.current = nil
	f.queue = nil
	f.LEDWrites = nil
	f.ServoWrites = nil
	f.ColumnReads = 0
	f.Closed = false
}
