// Package combo implements the composite multi-NX search over a wordlist
// (spec §4.3–§4.5): given a set of compiled NX programs, a wordlist, a
// maximum tuple length, a cursor, and a sink, it walks the wordlist as a
// depth-first tree and reports every word tuple whose concatenated
// canonical form satisfies every program at its declared fuzz budget.
package combo

import (
	"fmt"

	"github.com/zbanks-noodle/noodle/nx"
	"github.com/zbanks-noodle/noodle/wordlist"
)

// MaxTupleLength is the hard cap on N (§4.3: "N ≤ 10").
const MaxTupleLength = 10

// Engine holds the immutable inputs to a combo search: the active NX
// programs (each with its own fuzz budget), the wordlist to search, and
// the maximum tuple length.
type Engine struct {
	programs []*nx.Program
	ks       []int
	words    *wordlist.Wordlist
	maxLen   int
	filter   *literalFilter
	diag     *nx.Diag

	prefilterSkips int
}

// NewEngine builds an Engine. len(ks) must equal len(programs) — one fuzz
// budget per program, each no greater than that program's compiled
// FuzzCap; mismatched slices are a programmer error (panics, per §7:
// "panics only on programmer errors"). maxLen must be in 1..MaxTupleLength.
func NewEngine(programs []*nx.Program, ks []int, words *wordlist.Wordlist, maxLen int, diag *nx.Diag) (*Engine, error) {
	if len(programs) != len(ks) {
		panic("combo: len(ks) must equal len(programs)")
	}
	if maxLen < 1 || maxLen > MaxTupleLength {
		return nil, fmt.Errorf("combo: max tuple length %d out of range 1..%d", maxLen, MaxTupleLength)
	}
	for i, k := range ks {
		if k > programs[i].Flags().FuzzCap {
			panic("combo: requested k exceeds program's compiled FuzzCap")
		}
	}
	filter, err := newLiteralFilter(programs, ks)
	if err != nil {
		return nil, fmt.Errorf("combo: building literal prefilter: %w", err)
	}
	return &Engine{programs: programs, ks: ks, words: words, maxLen: maxLen, filter: filter, diag: diag}, nil
}

// Debug returns a one-line human-readable summary, in the style of
// noodle.py's engine-adjacent debug() methods (SPEC_FULL.md §C).
func (e *Engine) Debug() string {
	return fmt.Sprintf("combo(programs=%d, words=%d, maxLen=%d, prefilterSkips=%d)",
		len(e.programs), e.words.Len(), e.maxLen, e.prefilterSkips)
}

// Run walks the wordlist and reports every satisfying tuple to sink,
// resuming from cursor's stored progress if any, and suspending cleanly
// at the next recursion boundary once cursor's deadline or output-index
// target is reached (§5). Run never emits a tuple already reported in a
// prior Run call against the same cursor and sink.
func (e *Engine) Run(cursor *Cursor, sink Sink) {
	if cursor.exhausted {
		return
	}

	steppers := e.freshSteppers()
	stream := make([]byte, 0, 64)
	chosen := make([]int, 0, e.maxLen)

	startIdx := 0
	if len(cursor.path) > 0 {
		// Replay every ancestor word except the deepest saved one, then
		// resume the deepest frame's sibling loop one past it.
		for _, idx := range cursor.path[:len(cursor.path)-1] {
			body := bodyOf(e.words.At(idx))
			for i := 0; i < len(body); i++ {
				for _, s := range steppers {
					s.Advance(body[i])
				}
			}
			stream = append(stream, body...)
			chosen = append(chosen, idx)
		}
		startIdx = cursor.path[len(cursor.path)-1] + 1
	}

	suspended := e.dfsLoop(steppers, stream, chosen, startIdx, cursor, sink)
	if !suspended {
		cursor.exhausted = true
		cursor.path = nil
		e.diag.Note("combo search exhausted after %d outputs (%d prefilter skips)", cursor.outputIndex, e.prefilterSkips)
	} else {
		e.diag.Note("combo search suspended at depth %d, %d outputs so far", len(cursor.path), cursor.outputIndex)
	}
}

func bodyOf(w wordlist.Word) string {
	return w.Canonical[:len(w.Canonical)-1]
}

func (e *Engine) freshSteppers() []*nx.Stepper {
	steppers := make([]*nx.Stepper, len(e.programs))
	for i, p := range e.programs {
		steppers[i] = p.NewStepper(e.ks[i])
	}
	return steppers
}

// dfsLoop iterates wordlist indices from startIdx as children of the
// current frame, depth = len(chosen)+1. Returns true if the search
// suspended (cursor budget exhausted) before visiting every remaining
// sibling, in which case cursor.path has been set to resume from here.
func (e *Engine) dfsLoop(steppers []*nx.Stepper, stream []byte, chosen []int, startIdx int, cursor *Cursor, sink Sink) bool {
	depth := len(chosen) + 1
	n := e.words.Len()

	for idx := startIdx; idx < n; idx++ {
		w := e.words.At(idx)
		body := bodyOf(w)

		childSteppers := make([]*nx.Stepper, len(steppers))
		dead := false
		for i, s := range steppers {
			cs := s.Clone()
			for j := 0; j < len(body); j++ {
				cs.Advance(body[j])
			}
			if cs.Dead() {
				dead = true
			}
			childSteppers[i] = cs
		}

		streamLen := len(stream)
		stream = append(stream, body...)
		chosen = append(chosen, idx)

		suspend := false
		if !dead {
			if e.filter.blocksAcceptance(stream) {
				e.prefilterSkips++
			} else if e.acceptsAll(childSteppers) {
				canonical := string(stream) + "_"
				if sink.Add(canonical, chosen) {
					cursor.outputIndex++
				}
			}

			if !suspend && cursor.budgetExceeded() {
				suspend = true
			}
			if !suspend && depth < e.maxLen {
				if e.dfsLoop(childSteppers, stream, chosen, 0, cursor, sink) {
					suspend = true
				}
			}
		}

		if !suspend {
			suspend = cursor.budgetExceeded()
		}

		stream = stream[:streamLen]
		chosen = chosen[:len(chosen)-1]

		if suspend {
			path := make([]int, depth)
			copy(path, chosen)
			path[depth-1] = idx
			cursor.path = path
			return true
		}
	}
	return false
}

func (e *Engine) acceptsAll(steppers []*nx.Stepper) bool {
	for _, s := range steppers {
		// Feed the tuple's closing '_' to a copy, so s itself can still be
		// extended into a longer tuple.
		end := s.Clone()
		end.Advance('_')
		ok, _ := end.AcceptingHere()
		if !ok {
			return false
		}
	}
	return true
}
