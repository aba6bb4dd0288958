package nx

import (
	"fmt"
	"strconv"

	"github.com/zbanks-noodle/noodle/alphabet"
)

// Compile compiles a Noodle pattern expression into an immutable Program
// (§4.1). The grammar is:
//
//	expr  := alt
//	alt   := seq ('|' seq)*
//	seq   := atom*
//	atom  := group | class | literal | quant
//	group := '(' expr ')'
//	class := '.' | '[' '^'? range+ ']' | '\' escape
//	quant := atom ('?' | '*' | '+' | '{' N [',' [M]] '}')
//
// Anchors are implicit (§4.1): every compiled program is wrapped so that
// matching always runs from the true start to the true end of the input,
// with a `_.*` prefix and `.*_` suffix splicing the user's expression
// against arbitrary surrounding letters — this is what lets a pattern like
// "ell" match anywhere inside "_hello_".
func Compile(expr string, flags Flags) (*Program, error) {
	c := &compiler{expr: expr, flags: flags, b: newBuilder(), literalsValid: true}

	start, outs, err := c.parseAlt()
	if err != nil {
		return nil, err
	}
	if c.pos != len(expr) {
		return nil, c.errorf(c.pos, "unexpected %q", expr[c.pos])
	}
	c.flushLiteralRun()
	if !c.literalsValid {
		c.literals = nil
	}

	wrappedStart, acceptID, err := c.wrapAnchors(start, outs)
	if err != nil {
		return nil, err
	}

	return &Program{
		states:   c.b.states,
		start:    wrappedStart,
		expr:     expr,
		flags:    flags,
		accept:   acceptID,
		literals: c.literals,
	}, nil
}

// compiler holds recursive-descent parser state plus the shared builder.
// A compiler instance is also used, scoped to a substring, to recompile an
// atom multiple times for counted-quantifier unrolling (§4.1).
type compiler struct {
	expr  string
	pos   int
	flags Flags
	b     *builder
	depth int

	literalRun    []byte
	literals      []string
	literalsValid bool
}

type frag struct {
	start StateID
	outs  []patchSlot
}

func (c *compiler) errorf(offset int, format string, args ...any) error {
	return &CompileError{Expr: c.expr, Offset: offset, Message: fmt.Sprintf(format, args...)}
}

func (c *compiler) capacityErrorf(format string, args ...any) error {
	return &CapacityError{Expr: c.expr, Message: fmt.Sprintf(format, args...)}
}

func (c *compiler) checkBudget() error {
	if c.b.len() >= MaxStates {
		return c.capacityErrorf("state budget exceeded (max %d states)", MaxStates)
	}
	return nil
}

func (c *compiler) eof() bool { return c.pos >= len(c.expr) }

func (c *compiler) peek() byte {
	if c.eof() {
		return 0
	}
	return c.expr[c.pos]
}

// --- literal-run tracking for the Aho-Corasick prefilter (SPEC_FULL.md §B) ---

func (c *compiler) flushLiteralRun() {
	if len(c.literalRun) >= 3 {
		c.literals = append(c.literals, string(c.literalRun))
	}
	c.literalRun = nil
}

func (c *compiler) noteLiteralByte(b byte) {
	if c.depth == 0 && c.literalsValid {
		c.literalRun = append(c.literalRun, b)
	}
}

func (c *compiler) noteLiteralBreak() {
	if c.depth == 0 {
		c.flushLiteralRun()
	}
}

func (c *compiler) invalidateLiterals() {
	c.literalsValid = false
	c.literalRun = nil
	c.literals = nil
}

// --- grammar ---

func emptyFrag(c *compiler) frag {
	id := c.b.addJump(InvalidState)
	return frag{start: id, outs: []patchSlot{{id: id, which: 'n'}}}
}

func (c *compiler) parseAlt() (StateID, []patchSlot, error) {
	first, firstEmpty, err := c.parseSeq()
	if err != nil {
		return 0, nil, err
	}
	branches := []frag{first}
	emptiness := []bool{firstEmpty}

	for c.peek() == '|' {
		c.invalidateLiterals()
		c.pos++ // consume '|'
		next, nextEmpty, err := c.parseSeq()
		if err != nil {
			return 0, nil, err
		}
		branches = append(branches, next)
		emptiness = append(emptiness, nextEmpty)
	}

	if len(branches) > 1 {
		for _, e := range emptiness {
			if e {
				return 0, nil, c.errorf(c.pos, "empty alternation branch")
			}
		}
	}

	result := branches[0]
	for _, b := range branches[1:] {
		split := c.b.addSplit(result.start, b.start)
		result = frag{start: split, outs: append(result.outs, b.outs...)}
	}
	return result.start, result.outs, nil
}

// parseSeq parses a (possibly empty) concatenation of atoms, stopping at
// '|', ')', or end of input. The returned bool reports whether the
// sequence had zero atoms (used to detect empty alternation branches).
func (c *compiler) parseSeq() (frag, bool, error) {
	var acc *frag
	empty := true
	for !c.eof() && c.peek() != '|' && c.peek() != ')' {
		f, err := c.parseQuantAtom()
		if err != nil {
			return frag{}, false, err
		}
		empty = false
		if acc == nil {
			acc = &f
		} else {
			c.b.patchAll(acc.outs, f.start)
			acc = &frag{start: acc.start, outs: f.outs}
		}
	}
	if acc == nil {
		return emptyFrag(c), empty, nil
	}
	return *acc, empty, nil
}

// parseQuantAtom parses one atom followed by zero or more quantifier
// suffixes (stacked suffixes like "a?*" are accepted, mirroring how
// Thompson-style compilers treat them — each suffix wraps the previous
// fragment).
func (c *compiler) parseQuantAtom() (frag, error) {
	atomStart := c.pos
	f, bare, err := c.parseAtomBase()
	if err != nil {
		return frag{}, err
	}
	atomText := c.expr[atomStart:c.pos]

	for {
		switch c.peek() {
		case '?':
			c.pos++
			c.noteLiteralBreak()
			f = c.quantOptional(f)
			bare = false
		case '*':
			c.pos++
			c.noteLiteralBreak()
			f = c.quantStar(f)
			bare = false
		case '+':
			c.pos++
			c.noteLiteralBreak()
			f = c.quantPlus(f)
			bare = false
		case '{':
			save := c.pos
			n, m, hasM, ok := c.tryParseCounted()
			if !ok {
				c.pos = save
				return c.finishBareTracking(f, bare, atomText), nil
			}
			c.noteLiteralBreak()
			f, err = c.quantCounted(atomText, n, m, hasM)
			if err != nil {
				return frag{}, err
			}
			bare = false
		default:
			return c.finishBareTracking(f, bare, atomText), nil
		}
		if err := c.checkBudget(); err != nil {
			return frag{}, err
		}
	}
}

// finishBareTracking records the literal byte of a single-character atom
// that was not followed by any quantifier, for the top-level literal-run
// tracker.
func (c *compiler) finishBareTracking(f frag, bare bool, atomText string) frag {
	if bare && len(atomText) == 1 {
		b := atomText[0]
		if b >= 'a' && b <= 'z' {
			c.noteLiteralByte(b)
			return f
		}
	}
	c.noteLiteralBreak()
	return f
}

// parseAtomBase parses a single atom with no quantifier suffix. The bool
// result reports whether the atom is a "bare" single literal letter,
// eligible for literal-run tracking.
func (c *compiler) parseAtomBase() (frag, bool, error) {
	if c.eof() {
		return frag{}, false, c.errorf(c.pos, "unexpected end of pattern")
	}
	switch ch := c.peek(); ch {
	case '(':
		c.pos++
		c.depth++
		start, outs, err := c.parseAlt()
		c.depth--
		if err != nil {
			return frag{}, false, err
		}
		if c.peek() != ')' {
			return frag{}, false, c.errorf(c.pos, "unbalanced '(': missing ')'")
		}
		c.pos++
		return frag{start: start, outs: outs}, false, nil
	case ')':
		return frag{}, false, c.errorf(c.pos, "unbalanced ')'")
	case '.':
		c.pos++
		return c.literalClassFrag(c.dotClass()), false, nil
	case '[':
		f, err := c.parseClass()
		if err != nil {
			return frag{}, false, err
		}
		return f, false, nil
	case '\\':
		return c.parseEscape()
	case '_':
		c.pos++
		return c.literalClassFrag(alphabet.ClassOf(alphabet.SymbolSpace)), false, nil
	case '\'':
		c.pos++
		return c.literalClassFrag(alphabet.ClassOf(alphabet.SymbolPunct)), false, nil
	default:
		if ch >= 'a' && ch <= 'z' {
			c.pos++
			return c.literalClassFrag(alphabet.Range(ch, ch)), true, nil
		}
		if ch >= 'A' && ch <= 'Z' {
			c.pos++
			lower := ch - 'A' + 'a'
			return c.literalClassFrag(alphabet.Range(lower, lower)), true, nil
		}
		return frag{}, false, c.errorf(c.pos, "unexpected character %q", ch)
	}
}

func (c *compiler) literalClassFrag(mask alphabet.Class) frag {
	id := c.b.addChar(mask)
	return frag{start: id, outs: []patchSlot{{id: id, which: 'n'}}}
}

func (c *compiler) dotClass() alphabet.Class {
	mask := alphabet.Letters
	if !c.flags.ExplicitSpace {
		mask = mask.Union(alphabet.ClassOf(alphabet.SymbolSpace))
	}
	if !c.flags.ExplicitPunct {
		mask = mask.Union(alphabet.ClassOf(alphabet.SymbolPunct))
	}
	return mask
}

var escapeLiterals = map[byte]byte{
	'.': '.', '[': '[', ']': ']', '(': '(', ')': ')', '|': '|',
	'?': '?', '*': '*', '+': '+', '{': '{', '}': '}', '\\': '\\',
	'_': '_', '\'': '\'',
}

func (c *compiler) parseEscape() (frag, bool, error) {
	start := c.pos
	c.pos++ // consume '\\'
	if c.eof() {
		return frag{}, false, c.errorf(start, "dangling escape at end of pattern")
	}
	ch := c.expr[c.pos]
	c.pos++

	if ch == 'w' {
		return c.literalClassFrag(alphabet.Letters), false, nil
	}
	if lit, ok := escapeLiterals[ch]; ok {
		mask, inAlphabet := alphabet.ClassOfByte(lit)
		if !inAlphabet {
			// Escaping a regex metacharacter that is not itself part of
			// the 28-symbol alphabet (e.g. "\."): syntactically valid,
			// but the resulting class can never match canonical input.
			mask = 0
		}
		isBareLetter := ch >= 'a' && ch <= 'z'
		return c.literalClassFrag(mask), isBareLetter, nil
	}
	return frag{}, false, c.errorf(start, "unknown escape \\%c", ch)
}

// parseClass parses '[' '^'? range+ ']'.
func (c *compiler) parseClass() (frag, error) {
	start := c.pos
	c.pos++ // consume '['
	negate := false
	if c.peek() == '^' {
		negate = true
		c.pos++
	}

	var mask alphabet.Class
	count := 0
	for {
		if c.eof() {
			return frag{}, c.errorf(start, "unbalanced '[': missing ']'")
		}
		if c.peek() == ']' {
			break
		}
		lo, err := c.parseClassChar()
		if err != nil {
			return frag{}, err
		}
		if c.peek() == '-' && c.pos+1 < len(c.expr) && c.expr[c.pos+1] != ']' {
			c.pos++ // consume '-'
			hi, err := c.parseClassChar()
			if err != nil {
				return frag{}, err
			}
			if lo > hi {
				return frag{}, c.errorf(start, "inverted range [%c-%c]", lo, hi)
			}
			if lo < 'a' || hi > 'z' {
				return frag{}, c.errorf(start, "ranges are only supported over a-z")
			}
			mask = mask.Union(alphabet.Range(lo, hi))
		} else {
			cls, ok := alphabet.ClassOfByte(lo)
			if !ok {
				return frag{}, c.errorf(start, "character %q is not in the alphabet", lo)
			}
			mask = mask.Union(cls)
		}
		count++
	}
	c.pos++ // consume ']'
	if count == 0 {
		return frag{}, c.errorf(start, "empty character class")
	}
	if negate {
		mask = mask.Negate()
	}
	return c.literalClassFrag(mask), nil
}

func (c *compiler) parseClassChar() (byte, error) {
	if c.eof() {
		return 0, c.errorf(c.pos, "unbalanced '[': missing ']'")
	}
	ch := c.expr[c.pos]
	if ch == '\\' {
		c.pos++
		if c.eof() {
			return 0, c.errorf(c.pos, "dangling escape inside character class")
		}
		ch = c.expr[c.pos]
		c.pos++
		return ch, nil
	}
	if ch >= 'A' && ch <= 'Z' {
		ch = ch - 'A' + 'a'
	}
	c.pos++
	return ch, nil
}

// --- quantifiers ---

func (c *compiler) quantOptional(f frag) frag {
	split := c.b.addSplit(f.start, InvalidState)
	outs := append(f.outs, patchSlot{id: split, which: 'r'})
	return frag{start: split, outs: outs}
}

func (c *compiler) quantStar(f frag) frag {
	split := c.b.addSplit(f.start, InvalidState)
	c.b.patchAll(f.outs, split)
	return frag{start: split, outs: []patchSlot{{id: split, which: 'r'}}}
}

func (c *compiler) quantPlus(f frag) frag {
	split := c.b.addSplit(f.start, InvalidState)
	c.b.patchAll(f.outs, split)
	return frag{start: f.start, outs: []patchSlot{{id: split, which: 'r'}}}
}

// tryParseCounted attempts to parse '{' N [',' [M]] '}' at the current
// position. ok is false (with position left untouched by the caller, which
// restores c.pos itself) if the text starting at '{' is not a well-formed
// counted quantifier — in Noodle's grammar a bare '{' with no valid count
// is a compile error, so this is only used to detect the shape before
// committing to the (possibly erroring) full parse.
func (c *compiler) tryParseCounted() (n, m int, hasM, ok bool) {
	if c.peek() != '{' {
		return 0, 0, false, false
	}
	c.pos++
	nStart := c.pos
	for !c.eof() && isDigit(c.peek()) {
		c.pos++
	}
	if c.pos == nStart {
		return 0, 0, false, false
	}
	n64, _ := strconv.Atoi(c.expr[nStart:c.pos])
	n = n64
	if c.peek() == ',' {
		c.pos++
		mStart := c.pos
		for !c.eof() && isDigit(c.peek()) {
			c.pos++
		}
		if c.pos > mStart {
			m64, _ := strconv.Atoi(c.expr[mStart:c.pos])
			m = m64
			hasM = true
		}
	} else {
		m = n
		hasM = true
	}
	if c.peek() != '}' {
		return 0, 0, false, false
	}
	c.pos++
	return n, m, hasM, true
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// quantCounted unrolls {n}, {n,}, and {n,m} by recompiling atomText
// repeatedly (§4.1): n mandatory copies, then either an unbounded '*' tail
// (for {n,}) or (m-n) copies each preceded by its own optional split.
func (c *compiler) quantCounted(atomText string, n, m int, hasM bool) (frag, error) {
	if hasM && m < n {
		return frag{}, c.errorf(c.pos, "invalid repetition {%d,%d}: max less than min", n, m)
	}
	estimate := n
	if hasM {
		estimate += m - n
	} else {
		estimate++
	}
	if c.b.len()+estimate >= MaxStates {
		return frag{}, c.capacityErrorf("repetition {%d,%v} would exceed the state budget", n, m)
	}

	if n == 0 && !hasM {
		// "{0,}" degenerates to '*'.
		f, err := c.recompileAtom(atomText)
		if err != nil {
			return frag{}, err
		}
		return c.quantStar(f), nil
	}

	var result *frag
	for i := 0; i < n; i++ {
		f, err := c.recompileAtom(atomText)
		if err != nil {
			return frag{}, err
		}
		if result == nil {
			result = &f
		} else {
			c.b.patchAll(result.outs, f.start)
			result = &frag{start: result.start, outs: f.outs}
		}
	}

	if !hasM {
		// "{n,}": n mandatory copies, then an unbounded tail.
		tail, err := c.recompileAtom(atomText)
		if err != nil {
			return frag{}, err
		}
		starred := c.quantStar(tail)
		if result == nil {
			return starred, nil
		}
		c.b.patchAll(result.outs, starred.start)
		return frag{start: result.start, outs: starred.outs}, nil
	}

	// "{n,m}": m-n optional tail copies, each independently skippable.
	for i := n; i < m; i++ {
		f, err := c.recompileAtom(atomText)
		if err != nil {
			return frag{}, err
		}
		opt := c.quantOptional(f)
		if result == nil {
			result = &opt
		} else {
			c.b.patchAll(result.outs, opt.start)
			result = &frag{start: result.start, outs: opt.outs}
		}
	}
	if result == nil {
		return emptyFrag(c), nil
	}
	return *result, nil
}

// recompileAtom re-parses src (the exact text of a previously-parsed atom)
// into a fresh fragment of new states, sharing this compiler's builder.
// Used for counted-quantifier unrolling, where the same sub-pattern must be
// compiled multiple times.
func (c *compiler) recompileAtom(src string) (frag, error) {
	sub := &compiler{expr: src, flags: c.flags, b: c.b, literalsValid: false}
	f, _, err := sub.parseAtomBase()
	if err != nil {
		return frag{}, err
	}
	if sub.pos != len(src) {
		return frag{}, c.errorf(c.pos, "internal error re-parsing repeated atom %q", src)
	}
	return f, nil
}

// wrapAnchors splices the compiled user pattern (start, outs) between an
// implicit `_.*` prefix and `.*_` suffix, bounded by true ANCHOR_START and
// ANCHOR_END assertions at the very ends of input (§4.1).
func (c *compiler) wrapAnchors(userStart StateID, userOuts []patchSlot) (StateID, StateID, error) {
	leadUnderscore := c.b.addChar(alphabet.ClassOf(alphabet.SymbolSpace))
	leadStar := c.b.addSplit(InvalidState, InvalidState)
	c.b.patch(patchSlot{id: leadUnderscore, which: 'n'}, leadStar)
	leadWildcard := c.b.addChar(c.dotClass())
	c.b.patch(patchSlot{id: leadStar, which: 'l'}, leadWildcard)
	c.b.patch(patchSlot{id: leadWildcard, which: 'n'}, leadStar)
	c.b.patch(patchSlot{id: leadStar, which: 'r'}, userStart)

	trailWildcard := c.b.addChar(c.dotClass())
	trailStar := c.b.addSplit(trailWildcard, InvalidState)
	c.b.patch(patchSlot{id: trailWildcard, which: 'n'}, trailStar)
	c.b.patchAll(userOuts, trailStar)

	trailUnderscore := c.b.addChar(alphabet.ClassOf(alphabet.SymbolSpace))
	c.b.patch(patchSlot{id: trailStar, which: 'r'}, trailUnderscore)

	anchorEnd := c.b.addAnchorEnd(InvalidState)
	c.b.patch(patchSlot{id: trailUnderscore, which: 'n'}, anchorEnd)

	anchorStart := c.b.addAnchorStart(leadUnderscore)

	accept := c.b.addAccept()
	c.b.patch(patchSlot{id: anchorEnd, which: 'n'}, accept)

	if err := c.checkBudget(); err != nil {
		return 0, 0, err
	}
	return anchorStart, accept, nil
}
