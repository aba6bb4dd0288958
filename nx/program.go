package nx

import (
	"fmt"
)

// Flags control how the compiler treats the `.` wildcard and caps the fuzz
// budget callers may request at match time (§3).
type Flags struct {
	// ExplicitSpace makes '_' consumable by '.' only when written literally
	// in the pattern. Defaults to ON.
	ExplicitSpace bool
	// ExplicitPunct is the same restriction for '\''. Defaults to ON.
	ExplicitPunct bool
	// FuzzCap is the maximum edit distance a Match call against this
	// Program may request (k_max, §3). 0 means exact-match only.
	FuzzCap int
}

// DefaultFlags returns the spec-mandated defaults: both explicit flags ON,
// no fuzz budget.
func DefaultFlags() Flags {
	return Flags{ExplicitSpace: true, ExplicitPunct: true, FuzzCap: 0}
}

// Program is an immutable compiled NX automaton (§3: "NX program"). Two
// Compile calls on the same expression and flags produce byte-identical
// state arrays.
type Program struct {
	states  []State
	start   StateID
	expr    string
	flags   Flags
	accept  StateID
	// literals are factors that must appear, verbatim, somewhere in any
	// string this program accepts at k=0 — used by combo's Aho-Corasick
	// prefilter (SPEC_FULL.md §B). Never used for correctness.
	literals []string
}

// State returns the state at id. Panics on an out-of-range id: a caller
// holding a StateID from this Program by definition has a valid one, so an
// out-of-range id is a programmer error (§7: "panics only on programmer
// errors").
func (p *Program) State(id StateID) State {
	return p.states[id]
}

// NumStates returns the number of states in the program.
func (p *Program) NumStates() int {
	return len(p.states)
}

// Start returns the program's single start state.
func (p *Program) Start() StateID {
	return p.start
}

// Accept returns the program's terminal accept state (always NumStates()-1).
func (p *Program) Accept() StateID {
	return p.accept
}

// Expr returns the original source expression this program was compiled
// from.
func (p *Program) Expr() string {
	return p.expr
}

// Flags returns the flags this program was compiled with.
func (p *Program) Flags() Flags {
	return p.flags
}

// RequiredLiterals returns the literal factors extracted at compile time
// for prefilter use (SPEC_FULL.md §B). May be empty if the pattern has no
// mandatory literal run (e.g. it is pure ".*").
func (p *Program) RequiredLiterals() []string {
	return p.literals
}

// Debug returns a one-line human-readable summary, in the spirit of
// noodle.py's Nx.debug() / Filter.debug().
func (p *Program) Debug() string {
	return fmt.Sprintf("nx %q (%d states, fuzz cap %d)", p.expr, len(p.states), p.flags.FuzzCap)
}
