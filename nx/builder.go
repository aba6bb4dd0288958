package nx

import "github.com/zbanks-noodle/noodle/alphabet"

// builder accumulates States during compilation, exactly mirroring the
// append-then-patch style of a Thompson construction: fragments are emitted
// with dangling references, which the caller patches once the successor is
// known.
type builder struct {
	states []State
}

func newBuilder() *builder {
	return &builder{states: make([]State, 0, 32)}
}

func (b *builder) addChar(mask alphabet.Class) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{Kind: KindChar, Mask: mask, Next: InvalidState})
	return id
}

func (b *builder) addSplit(left, right StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{Kind: KindSplit, Left: left, Right: right})
	return id
}

func (b *builder) addJump(next StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{Kind: KindJump, Next: next})
	return id
}

func (b *builder) addAnchorStart(next StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{Kind: KindAnchorStart, Next: next})
	return id
}

func (b *builder) addAnchorEnd(next StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{Kind: KindAnchorEnd, Next: next})
	return id
}

func (b *builder) addAccept() StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{Kind: KindAccept})
	return id
}

// patchSlot identifies one dangling outgoing reference of a fragment: a
// Char/Jump/Anchor state's Next, or a Split's Left/Right.
type patchSlot struct {
	id    StateID
	which byte // 'n' = Next, 'l' = Left, 'r' = Right
}

func (b *builder) patch(p patchSlot, target StateID) {
	s := &b.states[p.id]
	switch p.which {
	case 'n':
		s.Next = target
	case 'l':
		s.Left = target
	case 'r':
		s.Right = target
	}
}

func (b *builder) patchAll(ps []patchSlot, target StateID) {
	for _, p := range ps {
		b.patch(p, target)
	}
}

func (b *builder) len() int {
	return len(b.states)
}
