package advice

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode"
)

// Report is a persisted snapshot of project details plus per-issue analyses.
// The analyses are index-aligned with the project's issues; producers must
// never emit a report that breaks that alignment.
type Report struct {
	ID        string          `json:"id"`
	UserID    string          `json:"-"`
	CreatedAt time.Time       `json:"date"`
	Project   ProjectDetails  `json:"projectDetails"`
	Analyses  []IssueAnalysis `json:"analysis"`
}

// LetterOptions carries the injectable dependencies of letter assembly: the
// sender identity, the clock, and the randomness source for the reference
// number. Tests supply a seeded Rand for byte-identical output.
type LetterOptions struct {
	SenderName string
	Now        func() time.Time
	Rand       *rand.Rand
}

func (o LetterOptions) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now().UTC()
}

func (o LetterOptions) intn(n int) int {
	if o.Rand != nil {
		return o.Rand.Intn(n)
	}
	return rand.Intn(n)
}

// RecipientForRole maps the sender's organizational role to the letter's
// addressee. Unrecognized roles write to the contract administrator.
func RecipientForRole(role OrgRole) string {
	switch role {
	case RoleClient:
		return "The Contractor"
	case RoleMainContractor:
		return "The Employer/Client"
	case RoleSubcontractor:
		return "The Main Contractor"
	case RoleContractAdministrator, RoleArchitect:
		return "The Relevant Party"
	default:
		return "The Contract Administrator"
	}
}

// professional-role recipients are greeted by title; party recipients get the
// formal salutation.
var professionalRecipients = map[string]bool{
	"The Contract Administrator": true,
	"The Architect":              true,
	"The Engineer":               true,
}

// closingPhrases are the sign-offs recognized when parsing an externally
// generated letter, and the pool the template path draws from.
var closingPhrases = []string{
	"Yours sincerely",
	"Yours faithfully",
	"Regards",
	"Kind regards",
	"Best regards",
	"Yours truly",
}

// AssembleLetter builds the formal draft letter for a report using the
// deterministic template path.
func AssembleLetter(report Report, opts LetterOptions) DraftLetter {
	recipient := RecipientForRole(report.Project.OrganizationRole)

	var body strings.Builder
	fmt.Fprintf(&body, "We write in connection with the %s project", fallback(report.Project.ProjectName, "above"))
	if report.Project.ContractType != FormUnknown {
		fmt.Fprintf(&body, ", carried out under the %s", report.Project.ContractType)
	}
	body.WriteString(", to raise the following contractual matters formally.\n\n")

	for i, analysis := range report.Analyses {
		fmt.Fprintf(&body, "%d. %s\n", i+1, fallback(analysis.Issue, "Contractual issue"))
		if len(analysis.RelevantClauses) > 0 {
			fmt.Fprintf(&body, "This matter engages %s.\n", strings.Join(analysis.RelevantClauses, ", "))
		}
		if strings.TrimSpace(analysis.ActionsTaken) != "" {
			fmt.Fprintf(&body, "To date we have %s.\n", lowerFirst(strings.TrimRight(analysis.ActionsTaken, ". ")))
		}
		if summary := firstSentence(analysis.DetailedAnalysis); summary != "" {
			body.WriteString(summary)
			body.WriteString("\n")
		}
		for _, rec := range requestPhrases(analysis.Recommendations, 2) {
			body.WriteString(rec)
			body.WriteString("\n")
		}
		body.WriteString("\n")
	}

	return DraftLetter{
		To:       recipient,
		Subject:  letterSubject(report.Project),
		Greeting: greetingFor(recipient),
		Body:     strings.TrimSpace(body.String()),
		Closing:  defaultClosing(),
		Sender:   signatureBlock(report.Project, opts),
	}
}

func letterSubject(project ProjectDetails) string {
	name := fallback(project.ProjectName, "Construction Project")
	return fmt.Sprintf("%s — Notification of Contractual Issues", name)
}

func greetingFor(recipient string) string {
	if professionalRecipients[recipient] {
		return "Dear " + strings.TrimPrefix(recipient, "The ") + ","
	}
	return "Dear Sir/Madam,"
}

func defaultClosing() string {
	return "We should be grateful for your written response within 14 days of the date of this letter. " +
		"This letter is written expressly without prejudice to our rights and remedies under the contract and at law, all of which are reserved.\n\n" +
		"Yours faithfully,"
}

func signatureBlock(project ProjectDetails, opts LetterOptions) string {
	sender := fallback(opts.SenderName, project.OrganizationRole.String())
	ref := referenceNumber(project.ProjectName, opts)
	return sender + "\n" + project.OrganizationRole.String() + "\nRef: " + ref
}

// referenceNumber builds "ABC-2026-042": project prefix, year, random
// zero-padded 3-digit suffix from the injected source.
func referenceNumber(projectName string, opts LetterOptions) string {
	prefix := projectPrefix(projectName)
	year := opts.now().Year()
	return fmt.Sprintf("%s-%d-%03d", prefix, year, opts.intn(1000))
}

func projectPrefix(name string) string {
	var letters []rune
	for _, r := range name {
		if unicode.IsLetter(r) {
			letters = append(letters, unicode.ToUpper(r))
			if len(letters) == 3 {
				break
			}
		}
	}
	if len(letters) == 0 {
		return "REF"
	}
	return string(letters)
}

// requestPhrases turns up to max advisory recommendations into direct
// second-person requests.
func requestPhrases(recommendations []string, max int) []string {
	var out []string
	for _, rec := range recommendations {
		if len(out) == max {
			break
		}
		phrased := toDirectRequest(rec)
		if phrased != "" {
			out = append(out, phrased)
		}
	}
	return out
}

// possessiveRewrites maps third-person advisory phrasing onto direct address.
// Order matters: longer patterns run before their substrings.
var possessiveRewrites = [][2]string{
	{"the sub-contractor's", "your"},
	{"the subcontractor's", "your"},
	{"the main contractor's", "your"},
	{"the contractor's", "your"},
	{"the employer's", "your"},
	{"the sub-contractor", "you"},
	{"the main contractor", "you"},
	{"the contractor", "you"},
	{"the employer", "you"},
}

// requestVerbs are imperative openers that read as instructions to the
// adviser's own client; in a letter they become polite requests.
var requestVerbs = []string{
	"submit", "serve", "issue", "provide", "confirm", "notify",
	"ensure", "assemble", "record", "preserve", "calculate", "instruct",
}

func toDirectRequest(rec string) string {
	s := strings.TrimSpace(rec)
	if s == "" {
		return ""
	}
	lowered := strings.ToLower(s)
	for _, pair := range possessiveRewrites {
		if strings.Contains(lowered, pair[0]) {
			s = replaceFold(s, pair[0], pair[1])
			lowered = strings.ToLower(s)
		}
	}
	for _, verb := range requestVerbs {
		if strings.HasPrefix(lowered, verb+" ") {
			return "Please " + lowerFirst(s)
		}
	}
	return "We request that you " + lowerFirst(strings.TrimRight(s, ". ")) + "."
}

// replaceFold replaces all case-insensitive occurrences of old with new.
func replaceFold(s, old, new string) string {
	var b strings.Builder
	lowered := strings.ToLower(s)
	oldLower := strings.ToLower(old)
	for {
		idx := strings.Index(lowered, oldLower)
		if idx < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:idx])
		b.WriteString(new)
		s = s[idx+len(old):]
		lowered = lowered[idx+len(oldLower):]
	}
}

// firstSentence returns the text up to and including the first period, or the
// whole string when no period is present.
func firstSentence(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}
	if idx := strings.Index(trimmed, ". "); idx >= 0 {
		return trimmed[:idx+1]
	}
	if strings.HasSuffix(trimmed, ".") {
		return trimmed
	}
	return trimmed + "."
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}
