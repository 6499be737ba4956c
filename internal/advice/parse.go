package advice

import (
	"regexp"
	"strings"
)

// ParseAnalysis extracts the structured fields for one issue from a block of
// generated text. Missing sections degrade to empty values; this function
// never fails.
func ParseAnalysis(text string, issue Issue) IssueAnalysis {
	detailed, _ := ExtractSectionAny(text, "Detailed Analysis", "Analysis")
	legal, _ := ExtractSectionAny(text, "Legal Context", "Legal Position")
	outcomes, _ := ExtractSectionAny(text, "Potential Outcomes", "Possible Outcomes")
	timeline, _ := ExtractSectionAny(text, "Timeline Suggestions", "Suggested Timeline", "Timeline")
	risk, _ := ExtractSection(text, "Risk Assessment")

	clauses := extractListAny(text, "Relevant Contract Clauses", "Relevant Clauses")
	explanations := extractListAny(text, "Clause Explanations", "Clause Explanation")
	recommendations := extractListAny(text, "Recommendations", "Recommended Actions", "Next Steps")

	return IssueAnalysis{
		Issue:               issue.Description,
		ActionsTaken:        issue.ActionsTaken,
		DetailedAnalysis:    detailed,
		LegalContext:        legal,
		RelevantClauses:     clauses,
		ClauseExplanations:  explanations,
		Recommendations:     recommendations,
		PotentialOutcomes:   outcomes,
		TimelineSuggestions: timeline,
		RiskAssessment:      risk,
	}
}

// ParseGenerated splits a combined generated document across the given issues
// and parses each block. The result is always index-aligned with issues.
func ParseGenerated(text string, issues []Issue) []IssueAnalysis {
	blocks := SplitByIssues(text, len(issues))
	out := make([]IssueAnalysis, len(issues))
	for i, issue := range issues {
		out[i] = ParseAnalysis(blocks[i], issue)
	}
	return out
}

func extractListAny(text string, names ...string) []string {
	for _, name := range orderedByLength(names) {
		if items := ExtractListItems(text, name); len(items) > 0 {
			return items
		}
	}
	return nil
}

func orderedByLength(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && len(out[j]) > len(out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

var (
	toLineRe      = regexp.MustCompile(`(?im)^\s*to:\s*(.+)$`)
	subjectLineRe = regexp.MustCompile(`(?im)^\s*(?:subject|re):\s*(.+)$`)
	greetingRe    = regexp.MustCompile(`(?im)^\s*dear\b[^\n]*`)
)

// ParseLetter maps an externally generated letter document onto the fixed
// DraftLetter fields. Every piece that cannot be located falls back to the
// template default for the report; the function never fails outright.
func ParseLetter(text string, report Report, opts LetterOptions) DraftLetter {
	defaults := AssembleLetter(report, opts)
	if strings.TrimSpace(text) == "" {
		return defaults
	}

	letter := defaults

	if m := toLineRe.FindStringSubmatch(text); m != nil {
		letter.To = strings.TrimSpace(m[1])
	}
	if m := subjectLineRe.FindStringSubmatch(text); m != nil {
		letter.Subject = strings.TrimSpace(m[1])
	}

	bodyStart := 0
	if loc := greetingRe.FindStringIndex(text); loc != nil {
		letter.Greeting = strings.TrimSpace(text[loc[0]:loc[1]])
		bodyStart = loc[1]
	}

	closingIdx, closingPhrase := findClosing(text, bodyStart)
	if closingIdx >= 0 {
		body := strings.TrimSpace(text[bodyStart:closingIdx])
		if body != "" {
			letter.Body = body
		}
		rest := text[closingIdx:]
		if lineEnd := strings.IndexByte(rest, '\n'); lineEnd >= 0 {
			letter.Closing = strings.TrimSpace(rest[:lineEnd])
			if sender := strings.TrimSpace(rest[lineEnd:]); sender != "" {
				letter.Sender = sender
			}
		} else {
			letter.Closing = closingPhrase + ","
		}
	} else if bodyStart > 0 {
		if body := strings.TrimSpace(text[bodyStart:]); body != "" {
			letter.Body = body
		}
	}

	return letter
}

// findClosing locates the earliest closing phrase at or after start and
// returns its index, or -1 when none of the fixed phrases appears.
func findClosing(text string, start int) (int, string) {
	lowered := strings.ToLower(text)
	best := -1
	bestPhrase := ""
	for _, phrase := range closingPhrases {
		idx := strings.Index(lowered[start:], strings.ToLower(phrase))
		if idx < 0 {
			continue
		}
		idx += start
		if best < 0 || idx < best {
			best = idx
			bestPhrase = phrase
		}
	}
	return best, bestPhrase
}
