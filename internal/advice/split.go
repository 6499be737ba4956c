package advice

import (
	"regexp"
	"strings"
)

// issueMarkerRe matches issue boundaries such as "Issue 2:", "## Issue 2",
// "Analysis for Issue 2 -" in any case.
var issueMarkerRe = regexp.MustCompile(`(?i)(?:^|\n)\s*(?:#{1,4}\s*)?(?:\*\*)?(?:analysis\s+(?:for|of)\s+)?issue\s+\d{1,3}\s*(?:[:.\-—)]|\*\*|$)`)

// SplitByIssues divides a combined response into exactly n blocks, one per
// issue. When at least n boundary markers are present the text is sliced at
// the first n of them; otherwise it falls back to n near-equal slices, which
// is best-effort and carries no guarantee of semantic alignment. The result
// always has length n, padded with empty strings when the text runs short.
func SplitByIssues(text string, n int) []string {
	if n <= 0 {
		return nil
	}
	out := make([]string, n)
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return out
	}
	if n == 1 {
		out[0] = trimmed
		return out
	}

	marks := issueMarkerRe.FindAllStringIndex(text, -1)
	if len(marks) >= n {
		for i := 0; i < n; i++ {
			start := marks[i][0]
			end := len(text)
			if i+1 < n {
				end = marks[i+1][0]
			}
			out[i] = strings.TrimSpace(text[start:end])
		}
		return out
	}

	return splitEven(text, n)
}

// splitEven cuts the text into n contiguous slices of roughly equal length.
// Each cut snaps to the nearest line boundary so the degraded mode does not
// sever a sentence mid-word; single-line input still cuts at exact offsets.
func splitEven(text string, n int) []string {
	out := make([]string, n)
	length := len(text)
	prev := 0
	for i := 0; i < n; i++ {
		end := length
		if i < n-1 {
			ideal := (i + 1) * length / n
			end = snapToLineBreak(text, ideal, prev)
		}
		if end < prev {
			end = prev
		}
		out[i] = strings.TrimSpace(text[prev:end])
		prev = end
	}
	return out
}

// snapToLineBreak moves a cut point to the closest newline, preferring
// whichever direction is nearer, without crossing back over the previous cut.
func snapToLineBreak(text string, ideal, floor int) int {
	if ideal >= len(text) {
		return len(text)
	}
	before := strings.LastIndexByte(text[:ideal], '\n')
	after := strings.IndexByte(text[ideal:], '\n')
	if after >= 0 {
		after += ideal
	}

	switch {
	case before > floor && after >= 0:
		if ideal-before <= after-ideal {
			return before + 1
		}
		return after + 1
	case before > floor:
		return before + 1
	case after >= 0:
		return after + 1
	default:
		return ideal
	}
}
