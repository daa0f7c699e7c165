package fuzzy

import (
	"fmt"
	"iter"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/fuzzyfind/background"
)

// testPathSet is an in-memory PathMatchCandidateSet.
type testPathSet struct {
	id         int
	prefix     string
	style      PathStyle
	rootIsFile bool
	paths      []string
}

func (s *testPathSet) ID() int              { return s.id }
func (s *testPathSet) Len() int             { return len(s.paths) }
func (s *testPathSet) RootIsFile() bool     { return s.rootIsFile }
func (s *testPathSet) Prefix() string       { return s.prefix }
func (s *testPathSet) PathStyle() PathStyle { return s.style }

func (s *testPathSet) Candidates(start int) iter.Seq[PathMatchCandidate] {
	return func(yield func(PathMatchCandidate) bool) {
		for _, p := range s.paths[start:] {
			if !yield(NewPathMatchCandidate(p, false)) {
				return
			}
		}
	}
}

func matchPaths(t *testing.T, sets []PathMatchCandidateSet, query, relativeTo string, maxResults, workers int) []PathMatch {
	t.Helper()
	pool := NewMatcherPool()
	var cancel atomic.Bool
	return MatchPathSets(pool, sets, query, relativeTo, true, maxResults,
		&cancel, background.NewWithWorkers(workers))
}

func pathsOf(matches []PathMatch) []string {
	out := make([]string, len(matches))
	for i := range matches {
		out[i] = matches[i].Path
	}
	return out
}

func TestMatchPathSetsRelativeAncestor(t *testing.T) {
	sets := []PathMatchCandidateSet{&testPathSet{
		id:    0,
		paths: []string{"src/main.rs", "src/lib.rs", "tests/main.rs"},
	}}

	matches := matchPaths(t, sets, "main", "src/", 10, 4)
	require.Len(t, matches, 2)
	assert.Equal(t, []string{"src/main.rs", "tests/main.rs"}, pathsOf(matches))
	assert.Equal(t, matches[0].Score, matches[1].Score,
		"filename hits in the same boundary context must tie on score")
	assert.Less(t, matches[0].DistanceToRelativeAncestor,
		matches[1].DistanceToRelativeAncestor)
}

func TestMatchPathSetsNoReferencePath(t *testing.T) {
	sets := []PathMatchCandidateSet{&testPathSet{
		id:    0,
		paths: []string{"src/main.rs", "tests/main.rs"},
	}}

	matches := matchPaths(t, sets, "main", "", 10, 4)
	require.Len(t, matches, 2)
	for _, m := range matches {
		assert.Equal(t, UnrelatedAncestor, m.DistanceToRelativeAncestor)
	}
}

func TestMatchPathSetsShorterPathWins(t *testing.T) {
	sets := []PathMatchCandidateSet{&testPathSet{
		id:    0,
		paths: []string{"a/bb/x.rs", "a/b/x.rs"},
	}}

	// Equal scores, equal offsets from the end of the path; the shorter
	// path must rank first.
	matches := matchPaths(t, sets, "x.rs", "", 10, 4)
	require.Len(t, matches, 2)
	assert.Equal(t, []string{"a/b/x.rs", "a/bb/x.rs"}, pathsOf(matches))
	assert.Equal(t, matches[0].Score, matches[1].Score)
}

func TestMatchPathSetsFilenameOverPrefix(t *testing.T) {
	sets := []PathMatchCandidateSet{&testPathSet{
		id:    0,
		paths: []string{"editor/src/theme.rs", "theme/src/editor.rs"},
	}}

	// Both paths contain "editor" after a boundary; the match inside the
	// filename is closer to the end and must rank first.
	matches := matchPaths(t, sets, "editor", "", 10, 4)
	require.Len(t, matches, 2)
	assert.Equal(t, "theme/src/editor.rs", matches[0].Path)
}

func TestMatchPathSetsSetOrder(t *testing.T) {
	sets := []PathMatchCandidateSet{
		&testPathSet{id: 7, paths: []string{"pkg/one.go"}},
		&testPathSet{id: 3, paths: []string{"pkg/one.go"}},
	}

	// Identical paths in different sets tie on every other key; the lower
	// set id must rank first.
	matches := matchPaths(t, sets, "one", "", 10, 4)
	require.Len(t, matches, 2)
	assert.Equal(t, 3, matches[0].SetID)
	assert.Equal(t, 7, matches[1].SetID)
}

func TestMatchPathSetsMultiSetSharding(t *testing.T) {
	var a, b, c []string
	for i := range 40 {
		a = append(a, fmt.Sprintf("alpha/dir_%02d/handler.go", i))
		b = append(b, fmt.Sprintf("beta/note_%02d.md", i))
		c = append(c, fmt.Sprintf("gamma/handler_%02d.go", i))
	}
	sets := []PathMatchCandidateSet{
		&testPathSet{id: 0, prefix: "alpha-root", paths: a},
		&testPathSet{id: 1, paths: b},
		&testPathSet{id: 2, paths: c},
	}

	serial := matchPaths(t, sets, "handler", "", 200, 1)
	require.NotEmpty(t, serial)

	for _, workers := range []int{2, 4, 8} {
		t.Run(fmt.Sprintf("workers_%d", workers), func(t *testing.T) {
			parallel := matchPaths(t, sets, "handler", "", 200, workers)
			require.Len(t, parallel, len(serial))
			for i := range serial {
				assert.Equal(t, serial[i].SetID, parallel[i].SetID)
				assert.Equal(t, serial[i].Path, parallel[i].Path)
				assert.Equal(t, serial[i].Score, parallel[i].Score)
				assert.Equal(t, serial[i].Positions, parallel[i].Positions)
			}
		})
	}
}

func TestMatchPathSetsCancelledBeforeStart(t *testing.T) {
	sets := []PathMatchCandidateSet{&testPathSet{
		id:    0,
		paths: []string{"src/main.rs", "src/lib.rs"},
	}}

	pool := NewMatcherPool()
	var cancel atomic.Bool
	cancel.Store(true)

	matches := MatchPathSets(pool, sets, "main", "", true, 10,
		&cancel, background.NewWithWorkers(4))
	assert.Empty(t, matches)
}

func TestMatchPathSetsEmptyQuery(t *testing.T) {
	sets := []PathMatchCandidateSet{&testPathSet{
		id:    0,
		paths: []string{"b/two.go", "a/one.go", "a/three.go"},
	}}

	matches := matchPaths(t, sets, "", "", 2, 4)
	require.Len(t, matches, 2)
	for _, m := range matches {
		assert.Zero(t, m.Score)
		assert.Empty(t, m.Positions)
	}
	// All keys tie except path length and lexicographic order.
	assert.Equal(t, []string{"a/one.go", "b/two.go"}, pathsOf(matches))
}

func TestMatchPathSetsPrefixIncludedInMatch(t *testing.T) {
	sets := []PathMatchCandidateSet{&testPathSet{
		id:     0,
		prefix: "zed",
		paths:  []string{"crates/editor.rs"},
	}}

	matches := matchPaths(t, sets, "zed/crates", "", 10, 4)
	require.Len(t, matches, 1)

	m := matches[0]
	assert.Equal(t, "zed", m.PathPrefix)
	display := m.Display(PathStylePosix)
	assert.Equal(t, "zed/crates/editor.rs", display)

	ranges := m.Ranges(PathStylePosix)
	require.NotEmpty(t, ranges)
	assert.Equal(t, Range{0, len("zed/crates")}, ranges[0])
}

func TestMatchPathSetsWindowsQuery(t *testing.T) {
	sets := []PathMatchCandidateSet{&testPathSet{
		id:    0,
		style: PathStyleWindows,
		paths: []string{"src/main.rs", "src/lib.rs"},
	}}

	// Backslash queries are normalized to the internal separator.
	matches := matchPaths(t, sets, `src\main`, "", 10, 4)
	require.Len(t, matches, 1)
	assert.Equal(t, "src/main.rs", matches[0].Path)
}

func TestMatchFixedPathSet(t *testing.T) {
	candidates := []PathMatchCandidate{
		NewPathMatchCandidate("assets/icon.svg", false),
		NewPathMatchCandidate("src/icons.rs", false),
		NewPathMatchCandidate("readme.md", false),
	}

	pool := NewMatcherPool()
	matches := MatchFixedPathSet(pool, candidates, 5, "project", "icon",
		true, 10, PathStylePosix)
	require.Len(t, matches, 2)

	for _, m := range matches {
		assert.Equal(t, 5, m.SetID)
		assert.Equal(t, "project", m.PathPrefix)
		assert.Equal(t, UnrelatedAncestor, m.DistanceToRelativeAncestor)
	}
	assert.Equal(t, 1, pool.Idle(), "the single matcher must be released")
}

func TestMatchFixedPathSetNegation(t *testing.T) {
	candidates := []PathMatchCandidate{
		NewPathMatchCandidate("src/main.rs", false),
		NewPathMatchCandidate("src/main_test.rs", false),
		NewPathMatchCandidate("src/lib.rs", false),
	}

	pool := NewMatcherPool()
	matches := MatchFixedPathSet(pool, candidates, 0, "", "!test",
		true, 10, PathStylePosix)
	require.Len(t, matches, 2)
	assert.Equal(t, []string{"src/lib.rs", "src/main.rs"}, pathsOf(matches))
}

func TestDistanceBetweenPaths(t *testing.T) {
	tests := []struct {
		path       string
		relativeTo string
		want       int
	}{
		{"a/b/c", "a/b/d", 3},
		{"a/b", "a/b", 1},
		{"a/b/c", "a/b", 2},
		{"x", "y", 3},
		{"src/main.rs", "src", 2},
		{"tests/main.rs", "src", 4},
		{"", "", 1},
	}

	for _, tt := range tests {
		t.Run(tt.path+"_vs_"+tt.relativeTo, func(t *testing.T) {
			assert.Equal(t, tt.want, distanceBetweenPaths(tt.path, tt.relativeTo))
		})
	}
}
