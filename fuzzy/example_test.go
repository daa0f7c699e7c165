package fuzzy_test

import (
	"fmt"
	"sync/atomic"

	"github.com/dshills/fuzzyfind/background"
	"github.com/dshills/fuzzyfind/fuzzy"
)

func ExampleMatchStrings() {
	pool := fuzzy.NewMatcherPool()
	candidates := []fuzzy.StringMatchCandidate{
		fuzzy.NewStringMatchCandidate(0, "editor: backspace"),
		fuzzy.NewStringMatchCandidate(1, "editor: move up"),
		fuzzy.NewStringMatchCandidate(2, "terminal: clear"),
	}

	var cancel atomic.Bool
	matches := fuzzy.MatchStrings(pool, candidates, "back", true, false, 10,
		&cancel, background.NewWithWorkers(1))

	for _, m := range matches {
		fmt.Printf("%s (%.0f)\n", m.String, m.Score)
	}
	// Output:
	// editor: backspace (70)
}
