package fuzzy

import (
	"log/slog"
	"unicode/utf8"
)

// Range is a renderable [Start, End) byte span within a matched string.
type Range struct {
	Start int
	End   int
}

// runeIndicesToByteOffsets maps ascending rune indices from the scoring
// engine to byte offsets in s. Indices out of range are dropped.
func runeIndicesToByteOffsets(s string, indices []int) []int {
	if len(indices) == 0 {
		return nil
	}
	offsets := make([]int, 0, len(indices))
	next := 0
	runeIdx := 0
	for byteIdx := range s {
		if next == len(indices) {
			break
		}
		if runeIdx == indices[next] {
			offsets = append(offsets, byteIdx)
			next++
		}
		runeIdx++
	}
	return offsets
}

// coalesceRanges turns sorted byte positions into contiguous highlight
// ranges over s. A position that is out of range or not on a rune boundary
// violates the match invariant; it is logged and dropped so rendering omits
// that highlight instead of corrupting the string.
func coalesceRanges(s string, positions []int) []Range {
	ranges := make([]Range, 0, len(positions))
	for _, pos := range positions {
		n := charLenAt(s, pos)
		if n == 0 {
			slog.Error("match position out of range or not on a rune boundary",
				"position", pos,
				"string", s)
			continue
		}
		if len(ranges) > 0 && ranges[len(ranges)-1].End == pos {
			ranges[len(ranges)-1].End = pos + n
		} else {
			ranges = append(ranges, Range{Start: pos, End: pos + n})
		}
	}
	return ranges
}

// charLenAt returns the byte length of the rune starting at byte offset i,
// or 0 if i is out of range or not on a rune boundary.
func charLenAt(s string, i int) int {
	if i < 0 || i >= len(s) || !utf8.RuneStart(s[i]) {
		return 0
	}
	_, n := utf8.DecodeRuneInString(s[i:])
	return n
}
