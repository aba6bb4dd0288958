package nx

import (
	"fmt"

	"github.com/projectdiscovery/gologger"
)

// Diag is a per-call diagnostic handle passed to Match (and used by
// wordlist.Load and the combo engine). Compile takes no Diag; it reports
// problems only through its returned error. Diag replaces the original C engine's global error-log buffer (SPEC_FULL.md
// §A, §C) with an explicit, test-observable collaborator: nil disables
// diagnostics entirely, and a non-nil Diag records every note/warning it
// receives so tests can assert on it without scraping a shared log.
type Diag struct {
	label string
	notes []string
	warns []string
	toLog bool
}

// NewDiag returns a Diag that records messages tagged with label. If toLog
// is true, messages are also emitted through gologger at debug/warning
// level, the way cmd/noodle wires it for -verbose runs.
func NewDiag(label string, toLog bool) *Diag {
	return &Diag{label: label, toLog: toLog}
}

// Note records an informational message (e.g. "compiled to N states").
func (d *Diag) Note(format string, args ...any) {
	if d == nil {
		return
	}
	msg := formatMsg(d.label, format, args...)
	d.notes = append(d.notes, msg)
	if d.toLog {
		gologger.Debug().Msg(msg)
	}
}

// Warn records a warning (e.g. a pruned branch, a suspiciously large
// wordlist). Warnings never stop a call from completing.
func (d *Diag) Warn(format string, args ...any) {
	if d == nil {
		return
	}
	msg := formatMsg(d.label, format, args...)
	d.warns = append(d.warns, msg)
	if d.toLog {
		gologger.Warning().Msg(msg)
	}
}

// Notes returns every message recorded via Note, for test assertions.
func (d *Diag) Notes() []string {
	if d == nil {
		return nil
	}
	return d.notes
}

// Warnings returns every message recorded via Warn, for test assertions.
func (d *Diag) Warnings() []string {
	if d == nil {
		return nil
	}
	return d.warns
}

func formatMsg(label, format string, args ...any) string {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	if label != "" {
		return "[" + label + "] " + msg
	}
	return msg
}
