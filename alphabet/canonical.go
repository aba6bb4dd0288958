package alphabet

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// diacriticStripper decomposes runes to NFD, drops non-spacing marks (the
// accents themselves), then recomposes to NFC. "café" -> "cafe".
var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Canonicalize maps an arbitrary word into Noodle's canonical form: letters
// lowercased and stripped of diacritics, framed by '_' word-boundary
// markers, with any run of internal non-letter characters collapsed to a
// single '\'' marker. Leading and trailing non-letter runs are dropped
// entirely rather than represented.
//
// Example: Canonicalize("Hello, world!") == "_hello'world_".
func Canonicalize(original string) string {
	stripped, _, err := transform.String(diacriticStripper, original)
	if err != nil {
		stripped = original
	}
	lower := strings.ToLower(stripped)

	var b strings.Builder
	b.Grow(len(lower) + 2)
	b.WriteByte('_')

	wroteLetter := false
	pendingPunct := false
	for _, r := range lower {
		if r >= 'a' && r <= 'z' {
			if pendingPunct {
				b.WriteByte('\'')
				pendingPunct = false
			}
			b.WriteByte(byte(r))
			wroteLetter = true
			continue
		}
		if wroteLetter {
			pendingPunct = true
		}
	}
	b.WriteByte('_')
	return b.String()
}

// IsEmpty reports whether a canonical form carries no letters at all (e.g.
// the canonicalization of an all-digit string). Per the wordlist ingest
// contract, such words are rejected.
func IsEmpty(canonical string) bool {
	for i := 0; i < len(canonical); i++ {
		if _, ok := ByteToSymbol(canonical[i]); ok && canonical[i] != '_' && canonical[i] != '\'' {
			return false
		}
	}
	return true
}

// IsCanonical reports whether s is a well-formed canonical string: framed by
// '_' and composed entirely of alphabet bytes.
func IsCanonical(s string) bool {
	if len(s) < 2 || s[0] != '_' || s[len(s)-1] != '_' {
		return false
	}
	for i := 0; i < len(s); i++ {
		if _, ok := ByteToSymbol(s[i]); !ok {
			return false
		}
	}
	return true
}
