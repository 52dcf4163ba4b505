// Package actuator drives the latch servo and the two status LEDs.
// Both are open loop: positions and indicator levels are commanded, never read back.
package actuator

import (
	"fmt"

	"github.com/sweeney/keypad-lock/internal/gpio"
)

// Servo duty lengths out of gpio.ServoCycleLen (50 Hz frame).
const (
	DutyLocked   uint32 = 120 // ~1.9ms pulse
	DutyUnlocked uint32 = 75  // ~1.2ms pulse
)

// Hardware is the subset of the board the driver writes to.
type Hardware interface {
	gpio.Servo
	gpio.Indicators
}

// Driver commands latch position and indicators.
type Driver struct {
	hw Hardware
}

// New creates a Driver over hw.
func New(hw Hardware) *Driver {
	return &Driver{hw: hw}
}

// SetActuator moves the latch to the locked or unlocked position.
func (d *Driver) SetActuator(locked bool) error {
	duty := DutyUnlocked
	if locked {
		duty = DutyLocked
	}
	if err := d.hw.SetServoDuty(duty); err != nil {
		return fmt.Errorf("set actuator (locked=%v): %w", locked, err)
	}
	return nil
}

// SetIndicators sets the red (locked) and green (unlocked) LEDs.
// Any combination is allowed here; which one is lit is the caller's policy.
func (d *Driver) SetIndicators(red, green bool) error {
	if err := d.hw.SetLEDs(red, green); err != nil {
		return fmt.Errorf("set indicators (red=%v green=%v): %w", red, green, err)
	}
	return nil
}
