package combo

import (
	"github.com/coregx/ahocorasick"

	"github.com/zbanks-noodle/noodle/nx"
)

// literalFilter is a cheap pre-filter over each active NX's required
// literal factors (SPEC_FULL.md §B, grounded on the teacher's own
// ahocorasick.Builder/Automaton, meta/compile.go's UseAhoCorasick
// strategy). It never affects correctness: the frontier-advance walk
// always runs regardless of what the filter reports. It only lets the
// engine skip the (comparatively expensive) accept check for a branch
// that provably cannot satisfy every active NX — if a pattern requires a
// literal factor and the concatenated stream so far contains none of that
// pattern's factors, the pattern cannot be accepting, by definition of
// "required literal factor" (see Program's literals field: factors that
// appear verbatim somewhere in any string the program accepts at k=0).
//
// A required literal is only guaranteed present verbatim when the program
// is being matched at k=0: a fuzzy edit can alter or remove it entirely.
// So the filter only ever applies to a program whose *requested* k for
// this combo run is 0, regardless of its compiled FuzzCap.
type literalFilter struct {
	// automata[i] is nil when programs[i] has no required literal factors,
	// or ks[i] > 0 (fuzzy matching no longer guarantees the literal
	// appears verbatim) — in either case that program never blocks
	// acceptance.
	automata []*ahocorasick.Automaton
}

func newLiteralFilter(programs []*nx.Program, ks []int) (*literalFilter, error) {
	automata := make([]*ahocorasick.Automaton, len(programs))
	for i, p := range programs {
		if ks[i] > 0 {
			continue
		}
		lits := p.RequiredLiterals()
		if len(lits) == 0 {
			continue
		}
		builder := ahocorasick.NewBuilder()
		for _, lit := range lits {
			builder.AddPattern([]byte(lit))
		}
		auto, err := builder.Build()
		if err != nil {
			return nil, err
		}
		automata[i] = auto
	}
	return &literalFilter{automata: automata}, nil
}

// blocksAcceptance reports whether some active program's required literal
// factors are all absent from path, the concatenated canonical bytes
// assembled so far — in which case that program cannot accept path itself,
// and the engine may skip the accept check at this node. Longer tuples
// that extend path are still explored, since a later word may supply the
// missing literal.
func (lf *literalFilter) blocksAcceptance(path []byte) bool {
	for _, a := range lf.automata {
		if a == nil {
			continue
		}
		if !a.IsMatch(path) {
			return true
		}
	}
	return false
}
