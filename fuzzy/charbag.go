package fuzzy

import (
	"github.com/dshills/fuzzyfind/scoring"
)

// CharBag is a cheap precomputed set of the characters present in a string,
// used to reject candidates in O(1) before running the scoring engine.
//
// One bit is assigned to each lowercase letter, digit and a handful of
// separator characters common in paths and command labels. Characters
// outside that alphabet have no bit, so the bag is conservative: a subset
// test may pass for a candidate that ultimately does not match, but never
// fails for one that would.
type CharBag uint64

// MakeCharBag computes the bag for s. Runes are folded the same way the
// scoring engine folds them (lowercased, diacritics stripped) so the bag
// agrees with the engine under both case modes.
func MakeCharBag(s string) CharBag {
	var bag CharBag
	for _, r := range s {
		if bit, ok := charBit(scoring.FoldRune(r, true)); ok {
			bag |= 1 << bit
		}
	}
	return bag
}

// ContainsAll reports whether every charted character of other is present
// in b.
func (b CharBag) ContainsAll(other CharBag) bool {
	return b&other == other
}

func charBit(r rune) (uint, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return uint(r - 'a'), true
	case r >= '0' && r <= '9':
		return 26 + uint(r-'0'), true
	}
	switch r {
	case '-':
		return 36, true
	case '_':
		return 37, true
	case '.':
		return 38, true
	case '/':
		return 39, true
	case '\\':
		return 40, true
	case ' ':
		return 41, true
	}
	return 0, false
}
