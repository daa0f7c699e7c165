package fuzzy

import (
	"iter"
	"math"
	"sort"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"github.com/dshills/fuzzyfind/scoring"
)

// PathStyle is the separator convention of a candidate set's paths.
type PathStyle int

const (
	// PathStylePosix displays paths with forward slashes.
	PathStylePosix PathStyle = iota
	// PathStyleWindows displays paths with backslashes. Queries are
	// normalized so users can type either separator.
	PathStyleWindows
)

// Separator returns the style's primary separator.
func (s PathStyle) Separator() string {
	if s == PathStyleWindows {
		return "\\"
	}
	return "/"
}

// IsWindows reports whether the style uses backslash separators.
func (s PathStyle) IsWindows() bool {
	return s == PathStyleWindows
}

// PathMatchCandidate is one relative path inside a candidate set. Relative
// paths always use forward slashes internally regardless of PathStyle.
type PathMatchCandidate struct {
	Path  string
	IsDir bool
	Chars CharBag
}

// NewPathMatchCandidate builds a candidate with its char bag precomputed.
func NewPathMatchCandidate(path string, isDir bool) PathMatchCandidate {
	return PathMatchCandidate{
		Path:  path,
		IsDir: isDir,
		Chars: MakeCharBag(path),
	}
}

// PathMatchCandidateSet is an externally owned, ordinal-indexed source of
// path candidates. It decouples the matchers from any concrete project or
// filesystem model: the engine only ever walks a lazy candidate sequence
// starting at an arbitrary offset, which is what makes sharding possible
// without materializing the whole set.
type PathMatchCandidateSet interface {
	// ID is a stable numeric identifier for the set; it participates in
	// ranking, so callers should keep it consistent across searches.
	ID() int
	// Len is the total candidate count.
	Len() int
	// RootIsFile reports whether the set's root is itself a single file
	// rather than a directory tree.
	RootIsFile() bool
	// Prefix is prepended (with a separator) to every member's relative
	// path for display and matching.
	Prefix() string
	// Candidates yields the set's candidates beginning at offset start.
	Candidates(start int) iter.Seq[PathMatchCandidate]
	// PathStyle is the separator convention for display and query
	// normalization.
	PathStyle() PathStyle
}

// UnrelatedAncestor is the DistanceToRelativeAncestor sentinel assigned
// when no reference path is supplied, making the ranking term inert.
const UnrelatedAncestor = math.MaxInt

// PathMatch is one ranked result from the path matchers. Positions are
// ascending byte offsets into the full display string (PathPrefix,
// separator, Path), each on a rune boundary.
type PathMatch struct {
	Score      float64
	Positions  []int
	SetID      int
	Path       string
	PathPrefix string
	IsDir      bool

	// DistanceToRelativeAncestor is the number of steps separating Path
	// from a shared parent with the caller's reference path, or
	// UnrelatedAncestor when no reference was supplied.
	DistanceToRelativeAncestor int

	// Ranking terms precomputed at construction; see Compare.
	distanceFromEnd float64
	pathRuneLen     int
}

// Display returns the full string the match positions index into.
func (m *PathMatch) Display(style PathStyle) string {
	if m.PathPrefix == "" {
		return m.Path
	}
	return m.PathPrefix + style.Separator() + m.Path
}

// Ranges coalesces Positions into contiguous highlight ranges over the
// match's display string.
func (m *PathMatch) Ranges(style PathStyle) []Range {
	return coalesceRanges(m.Display(style), m.Positions)
}

// Compare defines the total ranking order. It returns a negative value
// when m ranks before other:
//
//  1. score, descending
//  2. source set id, ascending
//  3. distance to the relative ancestor: paths sharing a longer common
//     prefix with the reference path rank first
//  4. distance from end, ascending: sum over matched positions p of
//     (full length - p) / 1000, rewarding hits concentrated in the
//     filename rather than the directory prefix
//  5. path length in runes, ascending
//  6. lexicographic path order
func (m *PathMatch) Compare(other *PathMatch) int {
	switch {
	case m.Score > other.Score:
		return -1
	case m.Score < other.Score:
		return 1
	}
	if m.SetID != other.SetID {
		if m.SetID < other.SetID {
			return -1
		}
		return 1
	}
	if m.DistanceToRelativeAncestor != other.DistanceToRelativeAncestor {
		if m.DistanceToRelativeAncestor < other.DistanceToRelativeAncestor {
			return -1
		}
		return 1
	}
	switch {
	case m.distanceFromEnd < other.distanceFromEnd:
		return -1
	case m.distanceFromEnd > other.distanceFromEnd:
		return 1
	}
	if m.pathRuneLen != other.pathRuneLen {
		if m.pathRuneLen < other.pathRuneLen {
			return -1
		}
		return 1
	}
	return strings.Compare(m.Path, other.Path)
}

func betterPathMatch(a, b PathMatch) bool {
	return a.Compare(&b) < 0
}

// MatchFixedPathSet synchronously matches a small, local path enumeration
// (for example one directory listing) on a single pooled engine. rootName,
// when non-empty, is prepended to every candidate for display and matching.
func MatchFixedPathSet(
	pool *MatcherPool,
	candidates []PathMatchCandidate,
	setID int,
	rootName string,
	query string,
	smartCase bool,
	maxResults int,
	style PathStyle,
) []PathMatch {
	if len(candidates) == 0 || maxResults <= 0 {
		return nil
	}

	if style.IsWindows() {
		query = strings.ReplaceAll(query, "\\", "/")
	}
	pattern := BuildPattern(query, smartCase)
	m := pool.Acquire(pattern.config(true))
	defer pool.Release(m)

	matches := make([]PathMatch, 0, len(candidates))
	scanPathCandidates(m, pattern, sliceSeq(candidates), setID, rootName, "", nil, &matches)

	matches = truncateToTopK(matches, maxResults, betterPathMatch)
	for i := range matches {
		sort.Ints(matches[i].Positions)
	}
	return matches
}

// MatchPathSets matches across many independently owned candidate sets in
// parallel. Each shard owns a contiguous range of the logical concatenation
// of all sets and walks only the slice of each set overlapping that range.
//
// relativeTo, when non-empty, is a reference path; candidates nearer to it
// in the directory tree rank first among equal scores. The cancel flag is
// polled per candidate; if it trips, the whole call returns nothing.
func MatchPathSets(
	pool *MatcherPool,
	candidateSets []PathMatchCandidateSet,
	query string,
	relativeTo string,
	smartCase bool,
	maxResults int,
	cancel *atomic.Bool,
	executor Executor,
) []PathMatch {
	pathCount := 0
	for _, set := range candidateSets {
		pathCount += set.Len()
	}
	if pathCount == 0 || maxResults <= 0 {
		return nil
	}

	style := candidateSets[0].PathStyle()
	if style.IsWindows() {
		query = strings.ReplaceAll(query, "\\", "/")
	}
	pattern := BuildPattern(query, smartCase)

	shards := min(executor.WorkerCount(), pathCount)
	if shards < 1 {
		shards = 1
	}
	segmentSize := (pathCount + shards - 1) / shards

	matchers := pool.AcquireN(shards, pattern.config(true))
	defer pool.ReleaseN(matchers)

	// Each shard walks one segment of the logical concatenation of every
	// candidate set. Segments do not overlap, so no candidate is scored
	// twice and no shard shares mutable state with another.
	shardResults := make([][]PathMatch, shards)
	executor.Scoped(shards, func(shard int) {
		segmentStart := shard * segmentSize
		segmentEnd := segmentStart + segmentSize

		var matches []PathMatch
		treeStart := 0
		for _, set := range candidateSets {
			treeEnd := treeStart + set.Len()
			if treeStart < segmentEnd && segmentStart < treeEnd {
				start := max(treeStart, segmentStart) - treeStart
				end := min(treeEnd, segmentEnd) - treeStart
				candidates := limitSeq(set.Candidates(start), end-start)
				if !scanPathCandidates(matchers[shard], pattern, candidates,
					set.ID(), set.Prefix(), relativeTo, cancel, &matches) {
					break
				}
			}
			if treeEnd >= segmentEnd {
				break
			}
			treeStart = treeEnd
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
	matches := make([]PathMatch, 0, total)
	for _, r := range shardResults {
		matches = append(matches, r...)
	}

	matches = truncateToTopK(matches, maxResults, betterPathMatch)
	for i := range matches {
		sort.Ints(matches[i].Positions)
	}
	return matches
}

// scanPathCandidates scores a candidate sequence on one engine, appending
// matches to out. The full candidate string is assembled per candidate into
// a reused buffer, never pre-materialized. Matching always joins prefix and
// path with a forward slash; queries against Windows-style sets are
// normalized to slashes before they get here, and since both separators are
// one byte the reported offsets stay valid for either display style.
// Returns false if the cancel flag tripped mid-scan.
func scanPathCandidates(
	m *scoring.Matcher,
	pattern Pattern,
	candidates iter.Seq[PathMatchCandidate],
	setID int,
	prefix string,
	relativeTo string,
	cancel *atomic.Bool,
	out *[]PathMatch,
) bool {
	buf := make([]byte, 0, 256)
	var prefixBag CharBag
	if prefix != "" {
		buf = append(buf, prefix...)
		buf = append(buf, '/')
		prefixBag = MakeCharBag(prefix) | MakeCharBag("/")
	}
	base := len(buf)
	prefixRuneLen := utf8.RuneCountInString(prefix)

	for c := range candidates {
		if cancel != nil && cancel.Load() {
			return false
		}

		buf = append(buf[:base], c.Path...)
		candidate := string(buf)

		score, indices, ok := pattern.match(m, candidate, prefixBag|c.Chars)
		if !ok {
			continue
		}

		pathRuneLen := utf8.RuneCountInString(c.Path)
		// Hits far from the end of the path weigh more, so matches
		// concentrated in the filename sort ahead of matches buried in
		// the directory prefix.
		fullLen := prefixRuneLen + 1 + pathRuneLen
		distanceFromEnd := 0.0
		for _, idx := range indices {
			distanceFromEnd += float64(fullLen-idx) / 1000.0
		}

		distance := UnrelatedAncestor
		if relativeTo != "" {
			distance = distanceBetweenPaths(c.Path, relativeTo)
		}

		*out = append(*out, PathMatch{
			Score:                      score,
			Positions:                  runeIndicesToByteOffsets(candidate, indices),
			SetID:                      setID,
			Path:                       c.Path,
			PathPrefix:                 prefix,
			IsDir:                      c.IsDir,
			DistanceToRelativeAncestor: distance,
			distanceFromEnd:            distanceFromEnd,
			pathRuneLen:                pathRuneLen,
		})
	}
	return true
}

// distanceBetweenPaths walks both paths' components in lockstep while they
// are equal; the result is the count of remaining components on both sides
// plus one.
func distanceBetweenPaths(path, relativeTo string) int {
	pathParts := splitPath(path)
	relativeParts := splitPath(relativeTo)

	shared := 0
	for shared < len(pathParts) && shared < len(relativeParts) &&
		pathParts[shared] == relativeParts[shared] {
		shared++
	}
	return (len(pathParts) - shared) + (len(relativeParts) - shared) + 1
}

func splitPath(p string) []string {
	var parts []string
	for part := range strings.SplitSeq(p, "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

func sliceSeq(candidates []PathMatchCandidate) iter.Seq[PathMatchCandidate] {
	return func(yield func(PathMatchCandidate) bool) {
		for _, c := range candidates {
			if !yield(c) {
				return
			}
		}
	}
}

func limitSeq(candidates iter.Seq[PathMatchCandidate], n int) iter.Seq[PathMatchCandidate] {
	return func(yield func(PathMatchCandidate) bool) {
		if n <= 0 {
			return
		}
		taken := 0
		for c := range candidates {
			if !yield(c) {
				return
			}
			taken++
			if taken == n {
				return
			}
		}
	}
}
