// Package logic contains the lock state machine.
// This package has NO hardware dependencies: outputs and the flash delay are injected.
package logic

import "time"

// State represents the lock's control state.
type State string

const (
	StateLocked       State = "LOCKED"
	StateEnteringCode State = "ENTERING_CODE"
	StateUnlocked     State = "UNLOCKED"
)

// ReferenceCode is the unlock code. Comparison is exact, byte for byte.
const ReferenceCode = "5493"

// CodeLength is the number of keys in one attempt.
const CodeLength = len(ReferenceCode)

// FlashDuration is how long the green LED blinks to acknowledge a key.
const FlashDuration = 100 * time.Millisecond

// EventType represents an input to the state machine.
type EventType string

const (
	EventButton EventType = "BUTTON"
	EventKey    EventType = "KEY"
)

// Outcome describes what handling an event did.
type Outcome string

const (
	OutcomeIgnored      Outcome = "IGNORED"       // no transition for (state, event)
	OutcomeEntryStarted Outcome = "ENTRY_STARTED" // Locked -> EnteringCode
	OutcomeKeyAccepted  Outcome = "KEY_ACCEPTED"  // key buffered, attempt incomplete
	OutcomeUnlocked     Outcome = "UNLOCKED"      // correct code
	OutcomeRejected     Outcome = "REJECTED"      // wrong code
	OutcomeRelocked     Outcome = "RELOCKED"      // Unlocked -> Locked by button
)

// Transition records the result of one event.
type Transition struct {
	Event   EventType
	Outcome Outcome
	From    State
	To      State
}

// Outputs is what the state machine commands. Implemented by actuator.Driver.
type Outputs interface {
	SetActuator(locked bool) error
	SetIndicators(red, green bool) error
}

// Counts tracks handled outcomes since startup. Not persisted.
type Counts struct {
	Buttons  int // button events that changed state
	Keys     int
	Unlocks  int
	Rejected int
	Relocks  int
}
