package fuzzy

import (
	"sync/atomic"
)

// StringMatchCandidate is a single matchable text item. Candidates are
// immutable and constructed fresh by the caller for each search call; the
// engine never caches or mutates them.
type StringMatchCandidate struct {
	ID     int
	String string
	Chars  CharBag
}

// NewStringMatchCandidate builds a candidate with its char bag precomputed.
func NewStringMatchCandidate(id int, s string) StringMatchCandidate {
	return StringMatchCandidate{
		ID:     id,
		String: s,
		Chars:  MakeCharBag(s),
	}
}

// StringMatch is one ranked result from MatchStrings. Positions are
// strictly ascending byte offsets into String, each on a rune boundary,
// sufficient for the caller to render highlighted spans without re-running
// the match.
type StringMatch struct {
	CandidateID int
	Score       float64
	Positions   []int
	String      string
}

// Ranges coalesces Positions into contiguous highlight ranges.
func (m *StringMatch) Ranges() []Range {
	return coalesceRanges(m.String, m.Positions)
}

func betterStringMatch(a, b StringMatch) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.CandidateID < b.CandidateID
}

// MatchStrings matches candidates against query in parallel and returns the
// best maxResults matches ordered by score descending, candidate id
// ascending.
//
// An empty query matches every candidate with score zero and no positions,
// in original order, without building a pattern or spawning workers. The
// penalizeLength flag is reserved and currently inert. The cancel flag is
// polled at candidate granularity; if it trips at any point the call
// returns nothing rather than partial results.
func MatchStrings(
	pool *MatcherPool,
	candidates []StringMatchCandidate,
	query string,
	smartCase bool,
	penalizeLength bool,
	maxResults int,
	cancel *atomic.Bool,
	executor Executor,
) []StringMatch {
	_ = penalizeLength // reserved

	if len(candidates) == 0 || maxResults <= 0 {
		return nil
	}

	if query == "" {
		n := min(len(candidates), maxResults)
		matches := make([]StringMatch, 0, n)
		for _, c := range candidates[:n] {
			matches = append(matches, StringMatch{
				CandidateID: c.ID,
				Score:       0,
				String:      c.String,
			})
		}
		return matches
	}

	pattern := BuildPattern(query, smartCase)

	shards := min(executor.WorkerCount(), len(candidates))
	if shards < 1 {
		shards = 1
	}
	segmentSize := (len(candidates) + shards - 1) / shards

	matchers := pool.AcquireN(shards, pattern.config(false))
	defer pool.ReleaseN(matchers)

	shardResults := make([][]StringMatch, shards)
	executor.Scoped(shards, func(shard int) {
		m := matchers[shard]
		start := min(shard*segmentSize, len(candidates))
		end := min(start+segmentSize, len(candidates))

		matches := make([]StringMatch, 0, min(maxResults, end-start))
		for i := start; i < end; i++ {
			if cancel != nil && cancel.Load() {
				return
			}
			c := &candidates[i]
			score, indices, ok := pattern.match(m, c.String, c.Chars)
			if !ok {
				continue
			}
			matches = append(matches, StringMatch{
				CandidateID: c.ID,
				Score:       score,
				Positions:   runeIndicesToByteOffsets(c.String, indices),
				String:      c.String,
			})
		}
		shardResults[shard] = matches
	})

	if cancel != nil && cancel.Load() {
		return nil
	}

	total := 0
	for _, r := range shardResults {
		total += len(r)
	}
	matches := make([]StringMatch, 0, total)
	for _, r := range shardResults {
		matches = append(matches, r...)
	}

	return truncateToTopK(matches, maxResults, betterStringMatch)
}
