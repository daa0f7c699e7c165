package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dshills/fuzzyfind/fuzzy"
)

// Color palette
// - Default: candidate text
// - Accent (soft purple): matched spans
// - Muted (gray): scores and per-result metadata
var (
	accent = lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA")).Bold(true)
	muted  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
)

// renderHighlights re-emits s with each matched range styled. Ranges are
// sorted, non-overlapping byte spans on rune boundaries, so plain slicing
// is safe.
func renderHighlights(s string, ranges []fuzzy.Range) string {
	if len(ranges) == 0 {
		return s
	}

	var b strings.Builder
	last := 0
	for _, r := range ranges {
		b.WriteString(s[last:r.Start])
		b.WriteString(accent.Render(s[r.Start:r.End]))
		last = r.End
	}
	b.WriteString(s[last:])
	return b.String()
}
