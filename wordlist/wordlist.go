// Package wordlist loads and indexes the corpus the combo engine searches
// over (spec §4.4): a read-only, insertion-ordered sequence of words, each
// carrying an original form, a canonical form, and an opaque integer score.
package wordlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/pgzip"
	"github.com/pbnjay/memory"
	errorutil "github.com/projectdiscovery/utils/errors"
	fileutil "github.com/projectdiscovery/utils/file"

	"github.com/zbanks-noodle/noodle/alphabet"
)

// Word is one entry: its original spelling, canonical form, and score. The
// combo engine never inspects Original or Score itself (§3: "the combo
// engine treats words as opaque indices") — they exist for callers that
// render or rank results.
type Word struct {
	Original  string
	Canonical string
	Score     int
}

// Wordlist is a read-only, insertion-ordered collection of Words. Add,
// lookup by index, and Len are the only mutating/indexing primitives the
// combo engine relies on; everything else (sorting, loading) builds views
// on top without disturbing insertion order, which is load-bearing for
// combo-search determinism (§5).
type Wordlist struct {
	words []Word
}

// New returns an empty Wordlist.
func New() *Wordlist {
	return &Wordlist{}
}

// Add canonicalizes original and appends it, returning its index. Words
// whose canonical form carries no letters (e.g. an all-digit string) are
// rejected per §4.4.
func (wl *Wordlist) Add(original string, score int) (int, bool) {
	canonical := alphabet.Canonicalize(original)
	if alphabet.IsEmpty(canonical) {
		return -1, false
	}
	wl.words = append(wl.words, Word{Original: original, Canonical: canonical, Score: score})
	return len(wl.words) - 1, true
}

// Len returns the number of words held.
func (wl *Wordlist) Len() int {
	return len(wl.words)
}

// At returns the word at index i, in insertion order.
func (wl *Wordlist) At(i int) Word {
	return wl.words[i]
}

// Index is a permutation of word indices, e.g. one produced by SortByScore
// or SortByCanonical. It never mutates the Wordlist's own insertion order.
type Index []int

// SortByScore returns an index ordering words by descending score, ties
// broken by ascending insertion order (stable).
func (wl *Wordlist) SortByScore() Index {
	idx := wl.identityIndex()
	sortStableBy(idx, func(a, b int) bool {
		return wl.words[a].Score > wl.words[b].Score
	})
	return idx
}

// SortByCanonical returns an index ordering words lexicographically by
// canonical form, ties broken by ascending insertion order (stable).
func (wl *Wordlist) SortByCanonical() Index {
	idx := wl.identityIndex()
	sortStableBy(idx, func(a, b int) bool {
		return wl.words[a].Canonical < wl.words[b].Canonical
	})
	return idx
}

func (wl *Wordlist) identityIndex() Index {
	idx := make(Index, len(wl.words))
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// sortStableBy is a small insertion sort over index permutations; wordlists
// in Noodle's target use case (constructor corpora, not web-scale crawls)
// run to the low millions of entries at most, so an allocation-free,
// dependency-free stable sort is preferable to pulling in sort.Slice's
// reflection-based comparator for a permutation this narrow.
func sortStableBy(idx Index, less func(a, b int) bool) {
	for i := 1; i < len(idx); i++ {
		v := idx[i]
		j := i - 1
		for j >= 0 && less(v, idx[j]) {
			idx[j+1] = idx[j]
			j--
		}
		idx[j+1] = v
	}
}

// Debug returns a one-line human-readable summary, in the style of the
// original C engine's wordlist debug() (SPEC_FULL.md §C).
func (wl *Wordlist) Debug() string {
	return fmt.Sprintf("wordlist(words=%d)", len(wl.words))
}

// memoryWarnFraction is the fraction of free system memory above which
// Load warns before reading a wordlist file, grounded on the NCBI repo's
// use of pbnjay/memory to size corpus buffers (utils.go).
const memoryWarnFraction = 0.25

// Diag is the subset of *nx.Diag that Load needs, accepted as an interface
// so wordlist does not import nx purely for diagnostics plumbing.
type Diag interface {
	Warn(format string, args ...any)
}

// Load reads a wordlist file (one entry per line; an optional leading
// integer score separated by whitespace, per spec §6) into a new Wordlist.
// A ".gz" suffix is decompressed transparently with parallel gzip
// (grounded on the NCBI repo's poster.go/merge.go use of pgzip for corpus
// I/O). If diag is non-nil and the file is larger than memoryWarnFraction
// of free system memory, Load warns before reading it rather than refusing
// to load, matching the NCBI repo's use of pbnjay/memory to size rather
// than gate I/O.
func Load(path string, diag Diag) (*Wordlist, error) {
	if !fileutil.FileExists(path) {
		return nil, errorutil.NewWithTag("wordlist", "no such file: %s", path)
	}

	if info, err := os.Stat(path); err == nil && diag != nil {
		free := memory.FreeMemory()
		if free > 0 && uint64(info.Size()) > uint64(float64(free)*memoryWarnFraction) {
			diag.Warn("wordlist %s is %d bytes, over %.0f%% of free memory (%d bytes); loading anyway", path, info.Size(), memoryWarnFraction*100, free)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errorutil.NewWithTag("wordlist", "opening %s: %s", path, err)
	}
	defer f.Close()

	var r io.Reader = bufio.NewReader(f)
	if strings.HasSuffix(path, ".gz") {
		zr, err := pgzip.NewReader(r)
		if err != nil {
			return nil, errorutil.NewWithTag("wordlist", "opening gzip stream %s: %s", path, err)
		}
		defer zr.Close()
		r = zr
	}

	return read(r)
}

// read parses a wordlist stream: one entry per line, an optional leading
// integer score separated by tab or space (§6). Blank lines are skipped.
func read(r io.Reader) (*Wordlist, error) {
	wl := New()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		original, score := splitScore(line)
		wl.Add(original, score)
	}
	if err := scanner.Err(); err != nil {
		return nil, errorutil.NewWithTag("wordlist", "reading wordlist: %s", err)
	}
	return wl, nil
}

// splitScore splits a wordlist line into its word and optional leading
// integer score (§6: "optional leading integer score separated by tab or
// space"). A line with no parseable leading integer is treated as having
// no score, and score defaults to 1 (the original engine's Word.new default).
func splitScore(line string) (original string, score int) {
	fields := strings.Fields(line)
	if len(fields) >= 2 {
		if n, err := strconv.Atoi(fields[0]); err == nil {
			return strings.Join(fields[1:], " "), n
		}
	}
	return strings.TrimSpace(line), 1
}
