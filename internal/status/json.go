package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details. The entered keys are never exposed.
type StatusInner struct {
	State         string     `json:"state"`
	KeysEntered   int        `json:"keys_entered"`
	GuardActive   bool       `json:"debounce_active"`
	LastOutcome   string     `json:"last_outcome,omitempty"`
	LastChange    string     `json:"last_change,omitempty"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     string     `json:"start_time"`
	Timestamp     string     `json:"timestamp"`
	Counts        CountsJSON `json:"event_counts"`
	Config        ConfigJSON `json:"config"`
}

// CountsJSON is the JSON representation of outcome counters.
type CountsJSON struct {
	Buttons  int `json:"buttons"`
	Keys     int `json:"keys"`
	Unlocks  int `json:"unlocks"`
	Rejected int `json:"rejected"`
	Relocks  int `json:"relocks"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs     int64  `json:"poll_ms"`
	TickMs     int64  `json:"tick_ms"`
	GuardTicks int    `json:"guard_ticks"`
	SettleMs   int64  `json:"settle_ms"`
	HTTPAddr   string `json:"http_addr"`
}

func buildInner(snap Snapshot) StatusInner {
	inner := StatusInner{
		State:         string(snap.State),
		KeysEntered:   snap.BufferLen,
		GuardActive:   snap.GuardActive,
		LastOutcome:   string(snap.LastOutcome),
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		Counts: CountsJSON{
			Buttons:  snap.Counts.Buttons,
			Keys:     snap.Counts.Keys,
			Unlocks:  snap.Counts.Unlocks,
			Rejected: snap.Counts.Rejected,
			Relocks:  snap.Counts.Relocks,
		},
		Config: ConfigJSON{
			PollMs:     snap.Config.PollMs,
			TickMs:     snap.Config.TickMs,
			GuardTicks: snap.Config.GuardTicks,
			SettleMs:   snap.Config.SettleMs,
			HTTPAddr:   snap.Config.HTTPAddr,
		},
	}
	if inner.State == "" {
		inner.State = "UNKNOWN"
	}
	if !snap.LastChange.IsZero() {
		inner.LastChange = snap.LastChange.UTC().Format(time.RFC3339)
	}
	return inner
}

// FormatJSON returns the indented JSON status for the web endpoint.
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}
