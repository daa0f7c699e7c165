// Package scoring implements the low-level substring scoring engine that
// backs the fuzzy matchers.
//
// A Matcher holds a mutable Config and a pair of reusable rune buffers so
// that scanning thousands of candidates per keystroke does not allocate.
// Instances are not safe for concurrent use; callers that scan in parallel
// check out one Matcher per worker (see the fuzzy package's MatcherPool).
//
// The engine matches a contiguous needle against candidate text. Both sides
// are folded rune-by-rune: diacritics are stripped via NFD decomposition and,
// in case-insensitive mode, letters are lowercased. Folding is strictly
// one rune to one rune, so every reported index maps back to the same rune
// in the original text.
package scoring

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Score weights. A match is worth scoreMatch per rune plus a bonus for the
// boundary class where the occurrence starts. The bonuses depend only on the
// occurrence's immediate left neighbor, never on its absolute offset or the
// candidate's total length, so identical hits in different candidates tie
// exactly and ranking falls through to the documented tie-break keys.
const (
	scoreMatch        = 16.0
	bonusTextStart    = 8.0
	bonusPathSep      = 7.0
	bonusPathSepPaths = 8.0
	bonusWordSep      = 6.0
	bonusCamelCase    = 5.0
)

// Config controls how a Matcher folds and scores text. It is rebound on
// every pool checkout.
type Config struct {
	// CaseSensitive disables lowercasing during folding.
	CaseSensitive bool

	// MatchPaths promotes path separators to the strongest boundary class,
	// so a hit at the start of a filename scores like a hit at the start of
	// the string.
	MatchPaths bool
}

// Matcher is a single scoring engine instance.
type Matcher struct {
	cfg     Config
	foldBuf []rune
	origBuf []rune
}

// New creates a Matcher bound to the given config.
func New(cfg Config) *Matcher {
	return &Matcher{
		cfg:     cfg,
		foldBuf: make([]rune, 0, 256),
		origBuf: make([]rune, 0, 256),
	}
}

// SetConfig rebinds the matcher. Any state from previous searches is
// irrelevant after this; only the buffers are retained.
func (m *Matcher) SetConfig(cfg Config) {
	m.cfg = cfg
}

// Config returns the currently bound config.
func (m *Matcher) Config() Config {
	return m.cfg
}

// Match scores text against needle and reports the matched rune indices.
//
// The needle must have been folded with FoldQuery using the same case mode
// as the matcher's config. In positive mode the best-scoring occurrence
// wins; its indices are consecutive and ascending. In negated mode the
// match succeeds only if the needle occurs nowhere in the text, and carries
// no score or indices. An empty needle matches any text at score zero.
func (m *Matcher) Match(needle []rune, negated bool, text string) (float64, []int, bool) {
	if len(needle) == 0 {
		return 0, nil, true
	}

	lower := !m.cfg.CaseSensitive
	m.foldBuf = m.foldBuf[:0]
	m.origBuf = m.origBuf[:0]
	for _, r := range text {
		m.origBuf = append(m.origBuf, r)
		m.foldBuf = append(m.foldBuf, FoldRune(r, lower))
	}

	bestScore := -1.0
	bestStart := -1
	for i := 0; i+len(needle) <= len(m.foldBuf); i++ {
		if m.foldBuf[i] != needle[0] {
			continue
		}
		if !runesEqual(m.foldBuf[i:i+len(needle)], needle) {
			continue
		}
		if negated {
			// One occurrence is enough to reject the candidate.
			return 0, nil, false
		}
		if score := m.scoreOccurrence(i, len(needle)); score > bestScore {
			bestScore = score
			bestStart = i
		}
	}

	if negated {
		return 0, nil, true
	}
	if bestStart < 0 {
		return 0, nil, false
	}

	indices := make([]int, len(needle))
	for j := range indices {
		indices[j] = bestStart + j
	}
	return bestScore, indices, true
}

// scoreOccurrence scores a needle occurrence beginning at rune index start.
func (m *Matcher) scoreOccurrence(start, length int) float64 {
	score := scoreMatch * float64(length)
	if start == 0 {
		return score + bonusTextStart
	}

	prev := m.origBuf[start-1]
	curr := m.origBuf[start]
	switch {
	case prev == '/' || prev == '\\':
		if m.cfg.MatchPaths {
			score += bonusPathSepPaths
		} else {
			score += bonusPathSep
		}
	case unicode.IsSpace(prev) || unicode.IsPunct(prev):
		score += bonusWordSep
	case unicode.IsLower(prev) && unicode.IsUpper(curr):
		score += bonusCamelCase
	}
	return score
}

func runesEqual(a, b []rune) bool {
	for i := range b {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// FoldQuery folds a query string for matching. When caseSensitive is false
// the result is lowercased; diacritics are stripped in both modes.
func FoldQuery(query string, caseSensitive bool) []rune {
	folded := make([]rune, 0, len(query))
	for _, r := range query {
		folded = append(folded, FoldRune(r, !caseSensitive))
	}
	return folded
}

// FoldRune folds a single rune: diacritics are stripped by taking the base
// rune of the NFD decomposition, and letters are lowercased when lower is
// set. The mapping is always one rune to one rune.
func FoldRune(r rune, lower bool) rune {
	if r < utf8.RuneSelf {
		if lower && r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}
	if d := norm.NFD.String(string(r)); d != "" {
		base, _ := utf8.DecodeRuneInString(d)
		if base != utf8.RuneError && !unicode.Is(unicode.Mn, base) {
			r = base
		}
	}
	if lower {
		r = unicode.ToLower(r)
	}
	return r
}
