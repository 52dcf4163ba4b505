// Package gpio provides the lock's electrical boundary with hardware abstraction.
// The real implementation uses the Linux GPIO character device for digital lines
// and the BCM2835 PWM peripheral for the servo.
// The fake implementation allows testing without hardware.
package gpio

// Keypad matrix dimensions.
const (
	NumRows = 4
	NumCols = 3
)

// Keypad drives the row-select lines and samples the column lines of a matrix keypad.
type Keypad interface {
	// SetRow drives a row line. active = true pulls the row low (selected),
	// false returns it high.
	SetRow(row int, active bool) error

	// Columns returns the logical column states.
	// The raw lines are active-low with pull-ups: raw 0 = pressed.
	Columns() ([NumCols]bool, error)
}

// Indicators sets the two status LEDs. Lines are active-high.
type Indicators interface {
	SetLEDs(red, green bool) error
}

// Servo writes a duty-cycle length to the actuator PWM output.
// The value is a count out of ServoCycleLen. There is no position readback.
type Servo interface {
	SetServoDuty(duty uint32) error
}

// Board is the complete set of lock peripherals.
type Board interface {
	Keypad
	Indicators
	Servo

	// ButtonPressed samples the lock/unlock button level (raw low = pressed).
	ButtonPressed() (bool, error)

	// Close releases GPIO resources.
	Close() error
}

// Pins holds BCM line offsets for every peripheral.
type Pins struct {
	Rows     [NumRows]int
	Cols     [NumCols]int
	RedLED   int
	GreenLED int
	Button   int
	Servo    int // must be a hardware PWM capable pin (12, 13, 18 or 19)
}

// DefaultPins is the reference wiring (BCM numbering).
var DefaultPins = Pins{
	Rows:     [NumRows]int{10, 3, 4, 27},
	Cols:     [NumCols]int{22, 9, 17},
	RedLED:   23,
	GreenLED: 24,
	Button:   16,
	Servo:    18,
}

// Servo PWM timing: a 64 kHz PWM clock over a 1280-count cycle gives a 50 Hz frame.
const (
	ServoClockHz  = 64000
	ServoCycleLen = 1280
)
