package combo

import (
	"fmt"
	"io"
)

// Sink is the output capability the engine reports matches through,
// modeled per §9's design note as a small capability rather than a
// callback struct: "accept(canonical, tuple) -> bool".
type Sink interface {
	// Add reports a completed tuple. It returns true if this is the first
	// time the tuple's canonical concatenation has been reported (always
	// true in non-unique mode). tuple is reused by the caller immediately
	// after Add returns; an implementation that retains it must copy.
	Add(canonical string, tuple []int) bool
}

// Entry is one tuple recorded by SetSink.
type Entry struct {
	Canonical string
	Tuple     []int
}

// SetSink is the in-memory sink (§4.5): unique mode suppresses duplicate
// canonical concatenations via a hash set; non-unique mode appends
// unconditionally. Capacity is unbounded — back-pressure is the cursor's
// responsibility, not the sink's.
type SetSink struct {
	unique  bool
	seen    map[string]struct{}
	entries []Entry
}

// NewSetSink returns an empty SetSink. In unique mode, Add rejects a
// canonical concatenation already recorded by a prior Add call.
func NewSetSink(unique bool) *SetSink {
	s := &SetSink{unique: unique}
	if unique {
		s.seen = make(map[string]struct{})
	}
	return s
}

// Add implements Sink.
func (s *SetSink) Add(canonical string, tuple []int) bool {
	if s.unique {
		if _, ok := s.seen[canonical]; ok {
			return false
		}
		s.seen[canonical] = struct{}{}
	}
	s.entries = append(s.entries, Entry{Canonical: canonical, Tuple: append([]int(nil), tuple...)})
	return true
}

// Len returns the number of entries recorded.
func (s *SetSink) Len() int {
	return len(s.entries)
}

// Get returns the entry at index i.
func (s *SetSink) Get(i int) Entry {
	return s.entries[i]
}

// WriterSink prints each accepted tuple's canonical form to an underlying
// writer, the "print to writer" sink capability §9's design note calls
// out alongside the set-backed one.
type WriterSink struct {
	w     io.Writer
	count int
}

// NewWriterSink returns a sink that writes one canonical form per line.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Add implements Sink. WriterSink never suppresses duplicates — it always
// returns true — since it holds no record of what it has already printed.
func (s *WriterSink) Add(canonical string, tuple []int) bool {
	fmt.Fprintln(s.w, canonical)
	s.count++
	return true
}

// Count returns the number of lines written so far.
func (s *WriterSink) Count() int {
	return s.count
}
