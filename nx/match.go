package nx

import (
	"github.com/zbanks-noodle/noodle/alphabet"
	"github.com/zbanks-noodle/noodle/internal/bitset"
)

// Result is the outcome of a Match call (§4.2).
type Result struct {
	// Accepted reports whether the program accepts input at or below the
	// requested fuzz budget k.
	Accepted bool
	// Errors is the minimum number of edits (substitution, insertion,
	// deletion) at which acceptance was achieved. Meaningless if !Accepted.
	Errors int
}

// frontier is the k+1-deep bitset of active states (§4.2): layer e holds
// every state reachable having spent exactly e edits so far. A dense bitset
// per layer, not a single set tagged with minimum-error-per-state, matches
// the "prefer dense arrays... over set data structures" design note (§9)
// and keeps each layer's advance a simple word-parallel operation. The
// matcher alternates between two such buffers, allocation-free after
// warm-up (§4.2).
type frontier struct {
	layers []*bitset.Bitset // len == k+1
}

func newFrontier(n, k int) *frontier {
	layers := make([]*bitset.Bitset, k+1)
	for i := range layers {
		layers[i] = bitset.New(n)
	}
	return &frontier{layers: layers}
}

func (f *frontier) clear() {
	for _, l := range f.layers {
		l.Clear()
	}
}

// cloneFrontier returns an independent copy, for DFS-style snapshotting
// (used by nx.Stepper.Clone for the combo engine's recursion stack, §4.3:
// "snapshot the composite frontier onto the stack").
func (f *frontier) cloneFrontier() *frontier {
	layers := make([]*bitset.Bitset, len(f.layers))
	for i, l := range f.layers {
		layers[i] = l.Clone()
	}
	return &frontier{layers: layers}
}

// epsilonClose adds id and its epsilon-closure to layer e. atStart and
// atEnd tell ANCHOR_START/ANCHOR_END states whether they may fire: they
// assert a position, not consume a symbol, so whether they propagate
// depends entirely on where the caller claims to be (§3), not on any
// notion of absolute position the closure tracks itself. This lets the
// same closure serve both Match's fixed-length strings (atStart/atEnd
// derived from pos/length once) and Stepper's open-ended streaming use,
// where "is this the end" is a question asked on demand rather than known
// in advance.
//
// A CHAR state carries one extra edge beyond the ordinary epsilon kinds:
// it also reaches its own Next one error layer deeper, with no input
// consumed — the expected symbol is treated as deleted from the pattern.
// This is the diagonal-epsilon transition of a standard Levenshtein NFA
// (grounded on aaw-levtrie's NFA diagram: "diagonal ε-transitions represent
// deletions"), and it is what lets a missing middle letter (e.g. matching
// "cat" against pattern "cart" at k=1) be found even when the letters on
// either side of the gap differ.
func (p *Program) epsilonClose(f *frontier, e int, id StateID, atStart, atEnd bool) {
	if f.layers[e].Test(int(id)) {
		return
	}
	f.layers[e].Set(int(id))
	s := p.states[id]
	switch s.Kind {
	case KindJump:
		p.epsilonClose(f, e, s.Next, atStart, atEnd)
	case KindSplit:
		p.epsilonClose(f, e, s.Left, atStart, atEnd)
		p.epsilonClose(f, e, s.Right, atStart, atEnd)
	case KindAnchorStart:
		if atStart {
			p.epsilonClose(f, e, s.Next, atStart, atEnd)
		}
	case KindAnchorEnd:
		if atEnd {
			p.epsilonClose(f, e, s.Next, atStart, atEnd)
		}
	case KindChar:
		if e+1 < len(f.layers) {
			p.epsilonClose(f, e+1, s.Next, atStart, atEnd)
		}
	case KindAccept:
		// terminal: no further propagation.
	}
}

// Match runs the bitset-frontier fuzzy matcher (§4.2) of p against input,
// which must already be in canonical form (framed with '_', lowercase,
// diacritic-stripped — see alphabet.Canonicalize). k is the edit-distance
// budget for this call; it is clamped to p.Flags().FuzzCap by the caller's
// contract (Match itself trusts k <= FuzzCap and does not re-validate it,
// matching §7's "panics only on programmer errors" stance for in-process
// misuse — callers crossing a process/API boundary should validate k
// against FuzzCap themselves).
//
// Match never panics on malformed (non-canonical) input; in that case it
// simply returns a rejecting Result and, if diag is non-nil, records an
// InvalidInputError-shaped note rather than returning the error (§7:
// INVALID_INPUT is "debug-only").
func (p *Program) Match(input string, k int, diag *Diag) Result {
	if !isCanonicalASCII(input) {
		if diag != nil {
			diag.Note("%s", (&InvalidInputError{Input: input}).Error())
		}
		return Result{Accepted: false}
	}

	n := len(p.states)
	length := len(input)

	cur := newFrontier(n, k)
	p.epsilonClose(cur, 0, p.start, true, length == 0)

	next := newFrontier(n, k)
	seeds := newFrontier(n, k)
	for pos := 0; pos < length; pos++ {
		sym, _ := alphabet.ByteToSymbol(input[pos])
		next.clear()

		for e := 0; e <= k; e++ {
			cur.layers[e].ForEach(func(id int) {
				s := p.states[StateID(id)]
				if s.Kind != KindChar {
					return
				}
				if s.Mask.Contains(sym) {
					next.layers[e].Set(int(s.Next)) // exact
				} else if e+1 <= k {
					next.layers[e+1].Set(int(s.Next)) // substitution
				}
				if e+1 <= k {
					// insertion: the input holds an extra symbol the
					// pattern doesn't need here; consume it without
					// advancing the automaton.
					next.layers[e+1].Set(id)
				}
			})
		}

		atEnd := pos+1 == length
		for e := 0; e <= k; e++ {
			snapshot := seeds.layers[e]
			snapshot.CopyFrom(next.layers[e])
			snapshot.ForEach(func(id int) {
				// Clear the seed first: epsilonClose stops at states
				// already present in the layer.
				next.layers[e].Unset(id)
				p.epsilonClose(next, e, StateID(id), false, atEnd)
			})
		}

		cur, next = next, cur
	}

	best := -1
	for e := 0; e <= k; e++ {
		if cur.layers[e].Test(int(p.accept)) {
			best = e
			break
		}
	}
	if best < 0 {
		return Result{Accepted: false}
	}
	return Result{Accepted: true, Errors: best}
}

// isCanonicalASCII reports whether s consists only of bytes in the
// canonical alphabet (a-z, '_', '\''). It does not check framing or
// internal-run collapsing — a cheap sanity gate, not a full validator.
func isCanonicalASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if _, ok := alphabet.ByteToSymbol(s[i]); !ok {
			return false
		}
	}
	return true
}
