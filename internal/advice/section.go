package advice

import (
	"regexp"
	"sort"
	"strings"
)

// sectionLabels are the headings the analysis parser understands. They are
// matched longest-first so "Clause Explanations" is never cut short by a
// heading that shares its prefix.
var sectionLabels = []string{
	"Detailed Analysis",
	"Legal Context",
	"Relevant Clauses",
	"Relevant Contract Clauses",
	"Clause Explanations",
	"Recommendations",
	"Recommended Actions",
	"Potential Outcomes",
	"Timeline Suggestions",
	"Risk Assessment",
	"Next Steps",
	"Summary",
}

var (
	// e.g. "1. Detailed Analysis" or "2) Legal Context"
	numberedHeadingRe = regexp.MustCompile(`^\s*\d{1,2}[.)]\s+(\S.*)$`)
	// short capitalized heading lines such as "Legal Context:" or "Risk Assessment"
	capitalizedHeadingRe = regexp.MustCompile(`^\s*(?:#{1,4}\s*)?(?:\*\*)?[A-Z][A-Za-z]*(?:\s+[A-Z][A-Za-z]*){1,2}(?:\*\*)?\s*:?\s*$`)
	bulletItemRe         = regexp.MustCompile(`^\s*(?:[-*•]|\d{1,3}[.)])\s+(.+)$`)
)

// ExtractSection isolates the body of the named section: the text after the
// first occurrence of the label (with or without a trailing colon, tolerating
// markdown decoration) up to the next recognizable heading or end of input.
// The second return reports whether the label was found at all, so callers
// can tell a miss from a legitimately empty section.
func ExtractSection(text, name string) (string, bool) {
	if strings.TrimSpace(text) == "" || strings.TrimSpace(name) == "" {
		return "", false
	}

	re := labelPattern(name)
	loc := re.FindStringIndex(text)
	if loc == nil {
		return "", false
	}

	rest := text[loc[1]:]
	lines := strings.Split(rest, "\n")
	var body []string
	for i, line := range lines {
		// Content on the same line as the heading belongs to the section.
		if i > 0 && isHeadingLine(line) {
			break
		}
		body = append(body, line)
	}
	return strings.TrimSpace(strings.Join(body, "\n")), true
}

// ExtractSectionAny tries each candidate label, longest first, and returns
// the first section found.
func ExtractSectionAny(text string, names ...string) (string, bool) {
	ordered := make([]string, len(names))
	copy(ordered, names)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i]) > len(ordered[j])
	})
	for _, name := range ordered {
		if body, ok := ExtractSection(text, name); ok {
			return body, true
		}
	}
	return "", false
}

// ExtractListItems pulls ordered items out of the named section. Items
// introduced by "-", "*", "•" or "<n>." are recognized; if none are present,
// every non-empty non-heading line counts as one item. Duplicates are kept:
// dropping them would misrepresent the source text. A missing section yields
// an empty slice.
func ExtractListItems(text, name string) []string {
	body, ok := ExtractSection(text, name)
	if !ok || body == "" {
		return nil
	}
	return ListItems(body)
}

// ListItems applies the item heuristics to an already-isolated block.
func ListItems(body string) []string {
	lines := strings.Split(body, "\n")

	var items []string
	for _, line := range lines {
		if m := bulletItemRe.FindStringSubmatch(line); m != nil {
			item := strings.TrimSpace(m[1])
			if item != "" {
				items = append(items, item)
			}
		}
	}
	if len(items) > 0 {
		return items
	}

	// Fallback: line-delimited items.
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || isHeadingLine(line) {
			continue
		}
		items = append(items, trimmed)
	}
	return items
}

func labelPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:^|\n)\s*(?:#{1,4}\s*)?(?:\*\*)?` +
		regexp.QuoteMeta(name) + `(?:\*\*)?\s*:?[ \t]*`)
}

// isHeadingLine reports whether a line looks like the start of another
// section: a known label, a numbered heading, or a short capitalized heading.
func isHeadingLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if bulletItemRe.MatchString(line) && !numberedHeadingLooksLikeSection(trimmed) {
		return false
	}
	stripped := strings.Trim(trimmed, "#* \t")
	for _, label := range labelsByLength {
		if strings.EqualFold(stripped, label) || strings.EqualFold(stripped, label+":") {
			return true
		}
	}
	if numberedHeadingLooksLikeSection(trimmed) {
		return true
	}
	return capitalizedHeadingRe.MatchString(trimmed)
}

// numberedHeadingLooksLikeSection distinguishes "1. Detailed Analysis" from a
// numbered list item like "1. Submit the notice today.": a heading carries a
// known section label or a short capitalized title after the number.
func numberedHeadingLooksLikeSection(line string) bool {
	m := numberedHeadingRe.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	content := strings.TrimSuffix(strings.TrimSpace(m[1]), ":")
	for _, label := range labelsByLength {
		if strings.EqualFold(content, label) {
			return true
		}
	}
	return capitalizedHeadingRe.MatchString(content)
}

// Built eagerly: parsing runs on concurrent requests, so a lazy fill here
// would race.
var labelsByLength = sortedByLength(sectionLabels)

func sortedByLength(labels []string) []string {
	out := make([]string, len(labels))
	copy(out, labels)
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i]) > len(out[j])
	})
	return out
}
