package llm

import (
	"fmt"
	"strings"
)

// Message is a provider-neutral chat message.
type Message struct {
	Role    string
	Content string
}

const analysisSystemPrompt = `You are an experienced construction contract consultant advising on standard
forms of building contract (JCT, NEC, FIDIC). Answer in plain prose, not JSON.
For each issue, produce exactly these sections with these headings:

Issue N: <restate the issue briefly>
Detailed Analysis:
Legal Context:
Relevant Clauses:
Clause Explanations:
Recommendations:
Potential Outcomes:
Timeline Suggestions:
Risk Assessment:

Use "- " bullets for Relevant Clauses, Clause Explanations and
Recommendations. Cite only clauses that exist in the stated contract form.`

// BuildAnalysisMessages assembles the chat messages for a report generation
// call. The headings in the system prompt are the same labels the advice
// parser extracts, so generation and extraction stay in lockstep.
func BuildAnalysisMessages(input AnalysisInput) []Message {
	var b strings.Builder
	p := input.Project
	fmt.Fprintf(&b, "Project: %s\n", p.ProjectName)
	if strings.TrimSpace(p.ProjectDescription) != "" {
		fmt.Fprintf(&b, "Description: %s\n", p.ProjectDescription)
	}
	fmt.Fprintf(&b, "Contract form: %s\n", p.ContractType)
	fmt.Fprintf(&b, "Our role: %s\n", p.OrganizationRole)
	fmt.Fprintf(&b, "\nThere are %d issues. Address each under its own \"Issue N:\" heading.\n", len(p.Issues))
	for i, issue := range p.Issues {
		fmt.Fprintf(&b, "\nIssue %d: %s\n", i+1, issue.Description)
		if strings.TrimSpace(issue.ActionsTaken) != "" {
			fmt.Fprintf(&b, "Actions taken so far: %s\n", issue.ActionsTaken)
		}
	}
	if strings.TrimSpace(input.ContractText) != "" {
		fmt.Fprintf(&b, "\nRelevant extract from the contract documents:\n%s\n", truncate(input.ContractText, 8000))
	}

	return []Message{
		{Role: "system", Content: analysisSystemPrompt},
		{Role: "user", Content: b.String()},
	}
}

const letterSystemPrompt = `You are an experienced construction contract consultant drafting a formal
letter on behalf of a client. Write a complete letter with a "To:" line, a
"Subject:" line, a salutation beginning "Dear", a body addressing each issue
with its clause references, and a closing such as "Yours sincerely" followed
by the sender's name. Keep the tone firm, professional and courteous.`

// BuildLetterMessages assembles the chat messages for a letter generation
// call from an existing report.
func BuildLetterMessages(input LetterInput) []Message {
	var b strings.Builder
	p := input.Report.Project
	fmt.Fprintf(&b, "Draft a formal letter to %s regarding the %s project (%s).\n", input.Recipient, p.ProjectName, p.ContractType)
	fmt.Fprintf(&b, "The letter is sent by %s acting as %s.\n\nIssues and analysis:\n", senderOrRole(input), p.OrganizationRole)
	for i, analysis := range input.Report.Analyses {
		fmt.Fprintf(&b, "\nIssue %d: %s\n", i+1, analysis.Issue)
		if len(analysis.RelevantClauses) > 0 {
			fmt.Fprintf(&b, "Clauses: %s\n", strings.Join(analysis.RelevantClauses, ", "))
		}
		if summary := strings.TrimSpace(analysis.DetailedAnalysis); summary != "" {
			fmt.Fprintf(&b, "Position: %s\n", truncate(summary, 600))
		}
		for _, rec := range analysis.Recommendations {
			fmt.Fprintf(&b, "- %s\n", rec)
		}
	}

	return []Message{
		{Role: "system", Content: letterSystemPrompt},
		{Role: "user", Content: b.String()},
	}
}

func senderOrRole(input LetterInput) string {
	if strings.TrimSpace(input.Sender) != "" {
		return input.Sender
	}
	return input.Report.Project.OrganizationRole.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
