package nx

import "github.com/zbanks-noodle/noodle/alphabet"

// Stepper is an incremental, resumable matcher frontier for a Program. The
// combo engine (§4.3) advances one Stepper per active NX one canonical
// byte at a time across a concatenated multi-word stream, rather than
// re-running Match over the whole stream from scratch at every candidate
// tuple boundary. Unlike Match, a Stepper never assumes it knows the total
// input length in advance: whether the stream has reached its end is a
// question the caller asks explicitly via AcceptingHere, at each point a
// tuple could be completed.
type Stepper struct {
	p          *Program
	k          int
	cur, next  *frontier
	query      *frontier
	sawAnyByte bool
}

// NewStepper returns a Stepper seeded at the program's start state, as if
// positioned at the beginning of a fresh word (ANCHOR_START may fire).
func (p *Program) NewStepper(k int) *Stepper {
	n := len(p.states)
	s := &Stepper{
		p:     p,
		k:     k,
		cur:   newFrontier(n, k),
		next:  newFrontier(n, k),
		query: newFrontier(n, k),
	}
	p.epsilonClose(s.cur, 0, p.start, true, false)
	return s
}

// Advance feeds one canonical-alphabet byte into the frontier, applying
// the same exact/substitution/insertion/deletion transition set as Match
// (§4.2). Bytes outside the 28-symbol alphabet never reach a Stepper from
// the combo engine (wordlist canonicalization guarantees this), so Advance
// trusts its input the way Match trusts a pre-validated canonical string.
func (s *Stepper) Advance(b byte) {
	sym, _ := alphabet.ByteToSymbol(b)
	s.sawAnyByte = true
	s.next.clear()

	for e := 0; e <= s.k; e++ {
		s.cur.layers[e].ForEach(func(id int) {
			st := s.p.states[StateID(id)]
			if st.Kind != KindChar {
				return
			}
			if st.Mask.Contains(sym) {
				s.next.layers[e].Set(int(st.Next))
			} else if e+1 <= s.k {
				s.next.layers[e+1].Set(int(st.Next))
			}
			if e+1 <= s.k {
				s.next.layers[e+1].Set(id)
			}
		})
	}

	for e := 0; e <= s.k; e++ {
		snapshot := s.next.layers[e].Clone()
		snapshot.ForEach(func(id int) {
			// Clear the seed first: epsilonClose stops at states already
			// present in the layer.
			s.next.layers[e].Unset(id)
			s.p.epsilonClose(s.next, e, StateID(id), false, false)
		})
	}

	s.cur, s.next = s.next, s.cur
}

// Dead reports whether every error layer is empty, i.e. the branch can
// never accept regardless of what input follows (§4.2: "a frontier is
// dead when every error layer's bitset is empty"). The combo engine
// prunes a DFS branch the moment any active NX's stepper goes dead.
func (s *Stepper) Dead() bool {
	for e := 0; e <= s.k; e++ {
		if !s.cur.layers[e].IsEmpty() {
			return false
		}
	}
	return true
}

// AcceptingHere reports whether the frontier would accept if the stream
// ended at the current position, and if so the minimum edit count. It
// does not mutate the stepper's own frontier — the ANCHOR_END closure is
// computed into a scratch buffer so the stepper can keep consuming bytes
// afterward if the combo engine decides to extend the tuple instead of
// completing it here. It does not feed a closing '_' itself: the combo
// engine's "virtual end-_" check (§4.3) advances a clone through '_' and
// then asks it, at every candidate tuple boundary.
func (s *Stepper) AcceptingHere() (ok bool, errors int) {
	s.query.clear()
	for e := 0; e <= s.k; e++ {
		snapshot := s.cur.layers[e].Clone()
		snapshot.ForEach(func(id int) {
			s.p.epsilonClose(s.query, e, StateID(id), false, true)
		})
	}
	for e := 0; e <= s.k; e++ {
		if s.query.layers[e].Test(int(s.p.accept)) {
			return true, e
		}
	}
	return false, -1
}

// Clone returns an independent copy of the stepper's current state, for
// the combo engine to snapshot onto its recursion stack before descending
// into a child word (§4.3).
func (s *Stepper) Clone() *Stepper {
	n := len(s.p.states)
	return &Stepper{
		p:          s.p,
		k:          s.k,
		cur:        s.cur.cloneFrontier(),
		next:       newFrontier(n, s.k),
		query:      newFrontier(n, s.k),
		sawAnyByte: s.sawAnyByte,
	}
}
