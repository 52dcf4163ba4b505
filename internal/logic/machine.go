package logic

import "time"

// Machine owns the lock state and the code buffer.
// It is driven from a single goroutine (the main loop) and is not safe for concurrent use.
type Machine struct {
	out    Outputs
	sleep  func(time.Duration)
	code   string
	state  State
	buf    CodeBuffer
	counts Counts
}

// NewMachine creates a machine in StateLocked that commands out.
// sleep is used for the key acknowledge flash; pass time.Sleep in production.
func NewMachine(out Outputs, sleep func(time.Duration)) *Machine {
	return &Machine{
		out:   out,
		sleep: sleep,
		code:  ReferenceCode,
		state: StateLocked,
	}
}

// Start asserts the power-on outputs: latch locked, red on, green off.
func (m *Machine) Start() error {
	var fx effects
	fx.lock(m.out)
	return fx.err
}

// HandleButton processes one debounced button event.
//
// Locked -> EnteringCode clears the buffer and turns both LEDs off; the latch
// is not touched. Unlocked -> Locked clears the buffer and re-locks.
// In EnteringCode the button is ignored and nothing changes, counters included.
//
// Output write failures do not stop the transition; the first one is returned.
func (m *Machine) HandleButton() (Transition, error) {
	tr := Transition{Event: EventButton, From: m.state, To: m.state, Outcome: OutcomeIgnored}
	var fx effects

	switch m.state {
	case StateLocked:
		m.state = StateEnteringCode
		m.buf.Clear()
		fx.do(m.out.SetIndicators(false, false))
		tr.Outcome = OutcomeEntryStarted

	case StateUnlocked:
		m.state = StateLocked
		m.buf.Clear()
		fx.lock(m.out)
		m.counts.Relocks++
		tr.Outcome = OutcomeRelocked

	default:
		return tr, nil
	}

	m.counts.Buttons++
	tr.To = m.state
	return tr, fx.err
}

// HandleKey processes one key press-and-release.
//
// Only EnteringCode accepts keys. Each accepted key is acknowledged with a
// short green flash. The fourth key completes the attempt: a match unlocks,
// anything else re-locks, and the buffer is cleared either way.
// A zero key is treated as no key.
func (m *Machine) HandleKey(key byte) (Transition, error) {
	tr := Transition{Event: EventKey, From: m.state, To: m.state, Outcome: OutcomeIgnored}
	if m.state != StateEnteringCode || key == 0 {
		return tr, nil
	}
	if !m.buf.Append(key) {
		return tr, nil
	}
	m.counts.Keys++

	var fx effects
	fx.do(m.out.SetIndicators(false, true))
	m.sleep(FlashDuration)
	fx.do(m.out.SetIndicators(false, false))
	tr.Outcome = OutcomeKeyAccepted

	if !m.buf.Full() {
		return tr, fx.err
	}

	if m.buf.Matches(m.code) {
		m.state = StateUnlocked
		fx.do(m.out.SetActuator(false))
		fx.do(m.out.SetIndicators(false, true))
		m.counts.Unlocks++
		tr.Outcome = OutcomeUnlocked
	} else {
		// Wrong code always re-asserts the latch, even though it never moved.
		m.state = StateLocked
		fx.lock(m.out)
		m.counts.Rejected++
		tr.Outcome = OutcomeRejected
	}
	m.buf.Clear()

	tr.To = m.state
	return tr, fx.err
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// BufferLen returns how many keys of the current attempt have been entered.
func (m *Machine) BufferLen() int {
	return m.buf.Len()
}

// EventCountsSnapshot returns a copy of the outcome counters.
func (m *Machine) EventCountsSnapshot() Counts {
	return m.counts
}

// effects keeps the first output error while letting later writes proceed.
type effects struct {
	err error
}

func (e *effects) do(err error) {
	if e.err == nil {
		e.err = err
	}
}

func (e *effects) lock(out Outputs) {
	e.do(out.SetActuator(true))
	e.do(out.SetIndicators(true, false))
}
