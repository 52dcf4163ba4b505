package gpio

import (
	"errors"
	"testing"
)

func TestFakeBoardKeyVisibleOnlyOnSelectedRow(t *testing.T) {
	f := NewFakeBoard()
	f.Hold(Key{Row: 2, Col: 1})

	cols, err := f.Columns()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cols != [NumCols]bool{} {
		t.Errorf("no row selected: expected no columns, got %v", cols)
	}

	f.SetRow(0, true)
	cols, _ = f.Columns()
	if cols != [NumCols]bool{} {
		t.Errorf("row 0 selected: expected no columns, got %v", cols)
	}
	f.SetRow(0, false)

	f.SetRow(2, true)
	cols, _ = f.Columns()
	if cols != [NumCols]bool{false, true, false} {
		t.Errorf("row 2 selected: expected column 1, got %v", cols)
	}

	// Held keys stay down until released.
	cols, _ = f.Columns()
	if !cols[1] {
		t.Error("held key should still be pressed")
	}
	f.Release()
	cols, _ = f.Columns()
	if cols != [NumCols]bool{} {
		t.Errorf("after release: expected no columns, got %v", cols)
	}
}

func TestFakeBoardTypedKeysAutoRelease(t *testing.T) {
	f := NewFakeBoard()
	f.HoldReads = 2
	f.Type(Key{Row: 0, Col: 0}, Key{Row: 3, Col: 2})

	f.SetRow(0, true)
	for i := 0; i < 3; i++ {
		cols, _ := f.Columns()
		if !cols[0] {
			t.Fatalf("read %d: expected column 0 pressed", i)
		}
	}
	cols, _ := f.Columns()
	if cols[0] {
		t.Error("expected key released after HoldReads")
	}
	f.SetRow(0, false)

	if f.Pending() != 1 {
		t.Errorf("expected 1 pending key, got %d", f.Pending())
	}

	f.SetRow(3, true)
	cols, _ = f.Columns()
	if !cols[2] {
		t.Error("expected second key on column 2")
	}
}

func TestFakeBoardRecordsOutputs(t *testing.T) {
	f := NewFakeBoard()

	if _, ok := f.LastLED(); ok {
		t.Error("expected no LED writes initially")
	}

	f.SetLEDs(true, false)
	f.SetLEDs(false, true)
	f.SetServoDuty(120)

	if len(f.LEDWrites) != 2 {
		t.Fatalf("expected 2 LED writes, got %d", len(f.LEDWrites))
	}
	led, _ := f.LastLED()
	if led != (LEDState{Red: false, Green: true}) {
		t.Errorf("last LED: got %+v", led)
	}
	duty, ok := f.LastServo()
	if !ok || duty != 120 {
		t.Errorf("last servo: got %d (%v), want 120", duty, ok)
	}
}

func TestFakeBoardErrors(t *testing.T) {
	f := NewFakeBoard()
	f.ColumnsError = errors.New("simulated error")
	f.LEDError = errors.New("led error")

	if _, err := f.Columns(); err == nil || err.Error() != "simulated error" {
		t.Errorf("Columns: unexpected error: %v", err)
	}
	if err := f.SetLEDs(true, true); err == nil {
		t.Error("SetLEDs: expected error")
	}
	if len(f.LEDWrites) != 0 {
		t.Error("failed write should not be recorded")
	}
	if err := f.SetRow(NumRows, true); err == nil {
		t.Error("SetRow: expected range error")
	}
}

func TestFakeBoardCloseAndReset(t *testing.T) {
	f := NewFakeBoard()
	f.SetLEDs(true, false)
	f.Hold(Key{Row: 1, Col: 1})

	if err := f.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if !f.Closed {
		t.Error("should be closed after Close()")
	}

	f.Reset()
	if f.Closed || len(f.LEDWrites) != 0 || f.Pending() != 0 {
		t.Error("Reset should clear state")
	}
}
