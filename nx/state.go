// Package nx implements the compiled Noodle pattern automaton: a
// non-deterministic finite automaton with explicit epsilon-transitions
// (§4.1), and a bitset-frontier matcher that executes it with a bounded
// edit-distance budget (§4.2).
package nx

import (
	"fmt"

	"github.com/zbanks-noodle/noodle/alphabet"
)

// StateID identifies a state within a Program. The zero value is a valid
// state id (the first state ever allocated); InvalidState marks an
// unpatched or absent reference.
type StateID int32

// InvalidState marks a dangling reference that has not yet been patched.
const InvalidState StateID = -1

// MaxStates is the hard cap on the number of states a single Program may
// contain (§3: "S <= 2^14").
const MaxStates = 1 << 14

// StateKind tags the shape of a State.
type StateKind uint8

const (
	// KindChar consumes one input symbol matching Mask, then goes to Next.
	KindChar StateKind = iota
	// KindSplit takes an epsilon-transition to both Left and Right. Left is
	// tried first — order matters for match-trace stability (§3).
	KindSplit
	// KindJump is an unconditional epsilon-transition to Next, used for
	// group structure and sequencing.
	KindJump
	// KindAnchorStart is an epsilon-transition gated on being at input
	// position 0.
	KindAnchorStart
	// KindAnchorEnd is an epsilon-transition gated on being at the end of
	// input.
	KindAnchorEnd
	// KindAccept is the terminal state. Its index is always len(states)-1.
	KindAccept
)

func (k StateKind) String() string {
	switch k {
	case KindChar:
		return "Char"
	case KindSplit:
		return "Split"
	case KindJump:
		return "Jump"
	case KindAnchorStart:
		return "AnchorStart"
	case KindAnchorEnd:
		return "AnchorEnd"
	case KindAccept:
		return "Accept"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// State is one node of the compiled automaton. Which fields are meaningful
// depends on Kind.
type State struct {
	Kind StateKind

	// KindChar
	Mask alphabet.Class
	Next StateID

	// KindSplit
	Left, Right StateID

	// KindJump, KindAnchorStart, KindAnchorEnd reuse Next.
}

func (s State) String() string {
	switch s.Kind {
	case KindChar:
		return fmt.Sprintf("Char(%s -> %d)", s.Mask, s.Next)
	case KindSplit:
		return fmt.Sprintf("Split(%d, %d)", s.Left, s.Right)
	case KindJump:
		return fmt.Sprintf("Jump(-> %d)", s.Next)
	case KindAnchorStart:
		return fmt.Sprintf("AnchorStart(-> %d)", s.Next)
	case KindAnchorEnd:
		return fmt.Sprintf("AnchorEnd(-> %d)", s.Next)
	case KindAccept:
		return "Accept"
	default:
		return "?"
	}
}
