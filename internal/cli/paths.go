package cli

import (
	"fmt"
	"iter"
	"sync/atomic"

	"github.com/spf13/cobra"

	"github.com/dshills/fuzzyfind/background"
	"github.com/dshills/fuzzyfind/fuzzy"
)

var (
	relativeTo string
	pathPrefix string
	windows    bool
)

var pathsCmd = &cobra.Command{
	Use:   "paths <query> [file]",
	Short: "Match path candidates with ancestor and filename ranking",
	Long: `paths treats each input line as a relative path (forward slashes) and
ranks matches the way a file finder does: among equal scores, paths close to
--relative-to sort first, then matches concentrated in the filename, then
shorter paths.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runPaths,
}

func init() {
	pathsCmd.Flags().StringVar(&relativeTo, "relative-to", "", "reference path; nearer candidates rank first")
	pathsCmd.Flags().StringVar(&pathPrefix, "prefix", "", "display prefix prepended to every candidate")
	pathsCmd.Flags().BoolVar(&windows, "windows", false, "use backslash separators for display and query input")
	rootCmd.AddCommand(pathsCmd)
}

// lineSet adapts a slice of path strings to fuzzy.PathMatchCandidateSet.
type lineSet struct {
	id     int
	prefix string
	style  fuzzy.PathStyle
	paths  []string
}

func (s *lineSet) ID() int                    { return s.id }
func (s *lineSet) Len() int                   { return len(s.paths) }
func (s *lineSet) RootIsFile() bool           { return false }
func (s *lineSet) Prefix() string             { return s.prefix }
func (s *lineSet) PathStyle() fuzzy.PathStyle { return s.style }

func (s *lineSet) Candidates(start int) iter.Seq[fuzzy.PathMatchCandidate] {
	return func(yield func(fuzzy.PathMatchCandidate) bool) {
		for _, p := range s.paths[start:] {
			if !yield(fuzzy.NewPathMatchCandidate(p, false)) {
				return
			}
		}
	}
}

func runPaths(cmd *cobra.Command, args []string) error {
	file := ""
	if len(args) > 1 {
		file = args[1]
	}
	lines, err := readLines(file)
	if err != nil {
		return err
	}

	style := fuzzy.PathStylePosix
	if windows {
		style = fuzzy.PathStyleWindows
	}
	sets := []fuzzy.PathMatchCandidateSet{
		&lineSet{id: 0, prefix: pathPrefix, style: style, paths: lines},
	}

	pool := fuzzy.NewMatcherPool()
	executor := background.NewWithWorkers(jobs)
	var cancel atomic.Bool

	matches := fuzzy.MatchPathSets(pool, sets, args[0], relativeTo,
		smartCase, maxResults, &cancel, executor)

	out := cmd.OutOrStdout()
	for i := range matches {
		m := &matches[i]
		fmt.Fprintf(out, "%s  %s\n",
			renderHighlights(m.Display(style), m.Ranges(style)),
			muted.Render(fmt.Sprintf("(%.0f)", m.Score)))
	}
	return nil
}
