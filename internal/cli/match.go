package cli

import (
	"fmt"
	"sync/atomic"

	"github.com/spf13/cobra"

	"github.com/dshills/fuzzyfind/background"
	"github.com/dshills/fuzzyfind/fuzzy"
)

var matchCmd = &cobra.Command{
	Use:   "match <query> [file]",
	Short: "Match free-text candidates (commands, symbols, labels)",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	file := ""
	if len(args) > 1 {
		file = args[1]
	}
	lines, err := readLines(file)
	if err != nil {
		return err
	}

	candidates := make([]fuzzy.StringMatchCandidate, len(lines))
	for i, line := range lines {
		candidates[i] = fuzzy.NewStringMatchCandidate(i, line)
	}

	pool := fuzzy.NewMatcherPool()
	executor := background.NewWithWorkers(jobs)
	var cancel atomic.Bool

	matches := fuzzy.MatchStrings(pool, candidates, args[0],
		smartCase, false, maxResults, &cancel, executor)

	out := cmd.OutOrStdout()
	for i := range matches {
		m := &matches[i]
		fmt.Fprintf(out, "%s  %s\n",
			renderHighlights(m.String, m.Ranges()),
			muted.Render(fmt.Sprintf("(%.0f)", m.Score)))
	}
	return nil
}
