package combo

import (
	"fmt"
	"time"
)

// Cursor is resumable progress state for Engine.Run (§4.3, §4.5). It is the
// Go-native rendering of noodle.py's Cursor.new(now_ns()+budget, limit): a
// time.Time deadline and an absolute output-index target instead of a raw
// nanosecond counter (SPEC_FULL.md §C).
type Cursor struct {
	deadline        time.Time
	hasDeadline     bool
	outputTarget    int
	hasOutputTarget bool

	outputIndex int
	path        []int
	exhausted   bool
}

// NewCursor returns a fresh cursor with no deadline or output limit set.
func NewCursor() *Cursor {
	return &Cursor{}
}

// SetDeadline sets the wall-clock deadline and the absolute output-index
// target at which Run should suspend (§4.5: "set_deadline"). A zero
// deadline disables the time-based check; a non-positive outputIndex
// disables the output-count check.
func (c *Cursor) SetDeadline(deadline time.Time, outputIndex int) {
	c.deadline = deadline
	c.hasDeadline = !deadline.IsZero()
	c.outputTarget = outputIndex
	c.hasOutputTarget = outputIndex > 0
}

// IsDone reports whether the search has been fully exhausted — every tuple
// the wordlist and N could produce has been visited — as opposed to merely
// suspended on a deadline or output limit (§7: "BUDGET_EXCEEDED... not an
// error per se; cursor.is_done() distinguishes completion from suspension").
func (c *Cursor) IsDone() bool {
	return c.exhausted
}

// OutputIndex returns the number of tuples emitted so far across the
// cursor's lifetime, including prior resumptions.
func (c *Cursor) OutputIndex() int {
	return c.outputIndex
}

// Debug returns a one-line human-readable summary, in the style of
// noodle.py's Cursor.debug().
func (c *Cursor) Debug() string {
	state := "suspended"
	if c.exhausted {
		state = "done"
	} else if len(c.path) == 0 && c.outputIndex == 0 {
		state = "fresh"
	}
	return fmt.Sprintf("cursor(%s, emitted=%d, depth=%d)", state, c.outputIndex, len(c.path))
}

func (c *Cursor) budgetExceeded() bool {
	if c.hasDeadline && !time.Now().Before(c.deadline) {
		return true
	}
	if c.hasOutputTarget && c.outputIndex >= c.outputTarget {
		return true
	}
	return false
}
