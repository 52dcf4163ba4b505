//go:build linux

package gpio

import (
	"fmt"

	"github.com/stianeikeland/go-rpio"
	"github.com/warthog618/go-gpiocdev"
)

// RealBoard drives actual hardware: digital lines through the Linux GPIO
// character device, the servo through the SoC PWM peripheral.
type RealBoard struct {
	chip    *gpiocdev.Chip
	rows    *gpiocdev.Lines
	cols    *gpiocdev.Lines
	leds    *gpiocdev.Lines
	button  *gpiocdev.Line
	servo   rpio.Pin
	rpioOn  bool
	rowVals []int
}

// NewRealBoard requests every line in pins and configures the servo PWM.
// onPress is called from the gpiocdev event goroutine on each falling edge of
// the button line. It must not block.
func NewRealBoard(pins Pins, onPress func()) (*RealBoard, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}
	b := &RealBoard{chip: chip, rowVals: []int{1, 1, 1, 1}}

	// Rows idle high; a row is selected by pulling it low.
	b.rows, err = chip.RequestLines(pins.Rows[:], gpiocdev.AsOutput(b.rowVals...))
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("request row pins %v: %w", pins.Rows, err)
	}

	b.cols, err = chip.RequestLines(pins.Cols[:], gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("request column pins %v: %w", pins.Cols, err)
	}

	b.leds, err = chip.RequestLines([]int{pins.RedLED, pins.GreenLED}, gpiocdev.AsOutput(0, 0))
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("request led pins %d,%d: %w", pins.RedLED, pins.GreenLED, err)
	}

	b.button, err = chip.RequestLine(pins.Button,
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithFallingEdge,
		gpiocdev.WithEventHandler(func(gpiocdev.LineEvent) {
			if onPress != nil {
				onPress()
			}
		}))
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("request button pin %d: %w", pins.Button, err)
	}

	if err := rpio.Open(); err != nil {
		b.Close()
		return nil, fmt.Errorf("open pwm registers: %w", err)
	}
	b.rpioOn = true
	b.servo = rpio.Pin(pins.Servo)
	b.servo.Pwm()
	b.servo.Freq(ServoClockHz)

	return b, nil
}

// SetRow drives one row line; active pulls it low.
func (b *RealBoard) SetRow(row int, active bool) error {
	if row < 0 || row >= NumRows {
		return fmt.Errorf("row %d out of range", row)
	}
	v := 1
	if active {
		v = 0
	}
	b.rowVals[row] = v
	if err := b.rows.SetValues(b.rowVals); err != nil {
		return fmt.Errorf("set row %d: %w", row, err)
	}
	return nil
}

// Columns returns logical column states. Inverts raw GPIO: raw 0 = pressed.
func (b *RealBoard) Columns() ([NumCols]bool, error) {
	var pressed [NumCols]bool
	raw := make([]int, NumCols)
	if err := b.cols.Values(raw); err != nil {
		return pressed, fmt.Errorf("read columns: %w", err)
	}
	for i, v := range raw {
		pressed[i] = v == 0
	}
	return pressed, nil
}

// SetLEDs writes both indicator lines.
func (b *RealBoard) SetLEDs(red, green bool) error {
	if err := b.leds.SetValues([]int{boolToLevel(red), boolToLevel(green)}); err != nil {
		return fmt.Errorf("set leds: %w", err)
	}
	return nil
}

// SetServoDuty writes the PWM duty length out of ServoCycleLen.
func (b *RealBoard) SetServoDuty(duty uint32) error {
	if duty > ServoCycleLen {
		return fmt.Errorf("servo duty %d exceeds cycle %d", duty, ServoCycleLen)
	}
	b.servo.DutyCycle(duty, ServoCycleLen)
	return nil
}

// ButtonPressed samples the button line. Raw 0 = pressed.
func (b *RealBoard) ButtonPressed() (bool, error) {
	v, err := b.button.Value()
	if err != nil {
		return false, fmt.Errorf("read button: %w", err)
	}
	return v == 0, nil
}

// Close releases GPIO resources.
// Outputs are reconfigured as inputs before release so the LEDs and keypad
// rows are left undriven. The servo keeps its last duty cycle.
func (b *RealBoard) Close() error {
	var errs []error

	if b.button != nil {
		if err := b.button.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close button pin: %w", err))
		}
	}
	if b.leds != nil {
		if err := b.leds.Reconfigure(gpiocdev.AsInput); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure led pins: %w", err))
		}
		if err := b.leds.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close led pins: %w", err))
		}
	}
	if b.cols != nil {
		if err := b.cols.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close column pins: %w", err))
		}
	}
	if b.rows != nil {
		if err := b.rows.Reconfigure(gpiocdev.AsInput); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure row pins: %w", err))
		}
		if err := b.rows.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close row pins: %w", err))
		}
	}
	if b.chip != nil {
		if err := b.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}
	if b.rpioOn {
		if err := rpio.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close pwm registers: %w", err))
		}
		b.rpioOn = false
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

func boolToLevel(on bool) int {
	if on {
		return 1
	}
	return 0
}
