package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sweeney/keypad-lock/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"stateClass": func(s string) string {
		switch s {
		case "LOCKED":
			return "locked"
		case "UNLOCKED":
			return "unlocked"
		case "ENTERING_CODE":
			return "entering"
		}
		return "unknown"
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta http-equiv="refresh" content="5">
<title>Keypad Lock</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.locked { color: red; font-weight: bold; }
.unlocked { color: green; font-weight: bold; }
.entering { color: orange; font-weight: bold; }
.unknown { color: #888; }
</style>
</head>
<body>
<h1>Keypad Lock</h1>

<h2>State</h2>
<table>
<tr><th>Lock</th><td id="lock-state" class="{{stateClass .StateName}}">{{.StateName}}</td></tr>
<tr><th>Keys entered</th><td>{{.BufferLen}}</td></tr>
<tr><th>Button guard</th><td>{{if .GuardActive}}active{{else}}idle{{end}}</td></tr>
{{if .LastOutcome}}<tr><th>Last outcome</th><td>{{.LastOutcome}} at {{.LastChange.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>{{end}}
</table>

<h2>Event Counts</h2>
<table>
<tr><th>Button events</th><td>{{.Counts.Buttons}}</td></tr>
<tr><th>Keys</th><td>{{.Counts.Keys}}</td></tr>
<tr><th>Unlocks</th><td>{{.Counts.Unlocks}}</td></tr>
<tr><th>Rejected codes</th><td>{{.Counts.Rejected}}</td></tr>
<tr><th>Manual re-locks</th><td>{{.Counts.Relocks}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Poll</th><td>{{.Config.PollMs}}ms</td></tr>
<tr><th>Debounce</th><td>{{.Config.GuardTicks}} x {{.Config.TickMs}}ms</td></tr>
<tr><th>Settle</th><td>{{.Config.SettleMs}}ms</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPAddr}}</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Snapshot has Uptime() method but template needs a Duration field.
	stateName := string(snap.State)
	if stateName == "" {
		stateName = "UNKNOWN"
	}
	data := struct {
		status.Snapshot
		Uptime    time.Duration
		StateName string
	}{
		Snapshot:  snap,
		Uptime:    snap.Uptime(),
		StateName: stateName,
	}
	indexTmpl.Execute(w, data)
}
