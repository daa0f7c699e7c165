package fuzzy

import (
	"strings"
	"unicode"

	"github.com/dshills/fuzzyfind/scoring"
)

// PatternMode selects between substring and negated-substring matching.
type PatternMode int

const (
	// PatternSubstring matches candidates containing the query.
	PatternSubstring PatternMode = iota
	// PatternNegated matches candidates that do not contain the query.
	PatternNegated
)

// Pattern is a parsed query, built once per search call and shared read-only
// across all parallel shards.
type Pattern struct {
	Mode          PatternMode
	CaseSensitive bool

	needle []rune
	bag    CharBag
}

// BuildPattern parses a raw query. A leading '!' selects negated-substring
// mode. With smartCase, matching is case-sensitive only if the query
// contains an uppercase letter; otherwise case is always ignored. The query
// text is folded so visually equivalent but differently encoded characters
// match. Every input is valid, including the empty string.
func BuildPattern(query string, smartCase bool) Pattern {
	mode := PatternSubstring
	if rest, ok := strings.CutPrefix(query, "!"); ok {
		mode = PatternNegated
		query = rest
	}

	caseSensitive := smartCase && strings.ContainsFunc(query, unicode.IsUpper)
	needle := scoring.FoldQuery(query, caseSensitive)

	return Pattern{
		Mode:          mode,
		CaseSensitive: caseSensitive,
		needle:        needle,
		bag:           MakeCharBag(string(needle)),
	}
}

// IsEmpty reports whether the pattern has no text to match.
func (p Pattern) IsEmpty() bool {
	return len(p.needle) == 0
}

func (p Pattern) config(matchPaths bool) scoring.Config {
	return scoring.Config{
		CaseSensitive: p.CaseSensitive,
		MatchPaths:    matchPaths,
	}
}

// match scores one candidate on the given engine. The candidate's char bag
// short-circuits text that cannot possibly contain the needle; negated
// patterns skip the bag since absence is what they are looking for.
func (p Pattern) match(m *scoring.Matcher, text string, bag CharBag) (float64, []int, bool) {
	if p.Mode == PatternSubstring && !p.IsEmpty() && !bag.ContainsAll(p.bag) {
		return 0, nil, false
	}
	return m.Match(p.needle, p.Mode == PatternNegated, text)
}
