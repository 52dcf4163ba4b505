//go:build !linux

package gpio

import "errors"

// RealBoard is not available on non-Linux platforms.
type RealBoard struct{}

// NewRealBoard returns an error on non-Linux platforms.
func NewRealBoard(pins Pins, onPress func()) (*RealBoard, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

// SetRow is not implemented on non-Linux platforms.
func (b *RealBoard) SetRow(row int, active bool) error {
	return errors.New("gpio: not supported")
}

// Columns is not implemented on non-Linux platforms.
func (b *RealBoard) Columns() ([NumCols]bool, error) {
	return [NumCols]bool{}, errors.New("gpio: not supported")
}

// SetLEDs is not implemented on non-Linux platforms.
func (b *RealBoard) SetLEDs(red, green bool) error {
	return errors.New("gpio: not supported")
}

// SetServoDuty is not implemented on non-Linux platforms.
func (b *RealBoard) SetServoDuty(duty uint32) error {
	return errors.New("gpio: not supported")
}

// ButtonPressed is not implemented on non-Linux platforms.
func (b *RealBoard) ButtonPressed() (bool, error) {
	return false, errors.New("gpio: not supported")
}

// Close is not implemented on non-Linux platforms.
func (b *RealBoard) Close() error {
	return nil
}
