package advice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const generatedAnalysisDoc = `Issue 1: Late certification

Detailed Analysis:
The certificate was due on 5 March and was not issued. This engages the payment machinery.

Legal Context:
Statutory payment rules imply a notice regime.

Relevant Clauses:
- Clause 4.9
- Clause 4.12

Clause Explanations:
- Clause 4.9: the certificate must be issued within five days.
- Clause 4.12: pay less notices must be timely.

Recommendations:
- Serve a formal demand for the notified sum.
- Reserve the right to suspend performance.

Potential Outcomes:
Payment of the notified sum with interest.

Timeline Suggestions:
Act within the current payment cycle.

Risk Assessment:
Moderate, cash-flow driven.

Issue 2: Defective cladding

Detailed Analysis:
The cladding does not meet the specification.

Relevant Clauses:
- Clause 2.38

Recommendations:
- Record the defects against the specification.
`

func TestParseAnalysisAllSections(t *testing.T) {
	blocks := SplitByIssues(generatedAnalysisDoc, 2)
	analysis := ParseAnalysis(blocks[0], Issue{Description: "Late certification", ActionsTaken: "emailed the CA"})

	assert.Equal(t, "Late certification", analysis.Issue)
	assert.Equal(t, "emailed the CA", analysis.ActionsTaken)
	assert.Contains(t, analysis.DetailedAnalysis, "5 March")
	assert.Contains(t, analysis.LegalContext, "notice regime")
	assert.Equal(t, []string{"Clause 4.9", "Clause 4.12"}, analysis.RelevantClauses)
	assert.Len(t, analysis.ClauseExplanations, 2)
	assert.Len(t, analysis.Recommendations, 2)
	assert.Contains(t, analysis.PotentialOutcomes, "notified sum")
	assert.Contains(t, analysis.TimelineSuggestions, "payment cycle")
	assert.Contains(t, analysis.RiskAssessment, "Moderate")
}

func TestParseAnalysisMissingSectionsDegrade(t *testing.T) {
	analysis := ParseAnalysis("free prose with no headings at all", Issue{Description: "x"})

	assert.Equal(t, "", analysis.DetailedAnalysis)
	assert.Equal(t, "", analysis.RiskAssessment)
	assert.Empty(t, analysis.RelevantClauses)
	assert.Empty(t, analysis.Recommendations)
}

func TestParseGeneratedAlignment(t *testing.T) {
	issues := []Issue{
		{Description: "Late certification"},
		{Description: "Defective cladding"},
	}
	analyses := ParseGenerated(generatedAnalysisDoc, issues)

	require.Len(t, analyses, len(issues))
	assert.Contains(t, analyses[0].DetailedAnalysis, "certificate")
	assert.Contains(t, analyses[1].DetailedAnalysis, "cladding")
	assert.Equal(t, []string{"Clause 2.38"}, analyses[1].RelevantClauses)
}

const generatedLetterDoc = `To: The Employer/Client
Subject: Riverside Apartments — Formal Notice

Dear Sir/Madam,

We write further to our payment application of 1 March. The certified sum
remains outstanding and we require payment without further delay.

Yours sincerely,
J Bloggs
Commercial Director
`

func TestParseLetterFullDocument(t *testing.T) {
	letter := ParseLetter(generatedLetterDoc, sampleReport(RoleMainContractor), fixedLetterOpts())

	assert.Equal(t, "The Employer/Client", letter.To)
	assert.Equal(t, "Riverside Apartments — Formal Notice", letter.Subject)
	assert.Equal(t, "Dear Sir/Madam,", letter.Greeting)
	assert.Contains(t, letter.Body, "payment application of 1 March")
	assert.NotContains(t, letter.Body, "Yours sincerely")
	assert.Equal(t, "Yours sincerely,", letter.Closing)
	assert.Contains(t, letter.Sender, "J Bloggs")
}

func TestParseLetterFallsBackPerField(t *testing.T) {
	report := sampleReport(RoleMainContractor)
	letter := ParseLetter("no recognizable letter structure here", report, fixedLetterOpts())
	template := AssembleLetter(report, fixedLetterOpts())

	assert.Equal(t, template.To, letter.To)
	assert.Equal(t, template.Subject, letter.Subject)
	assert.Equal(t, template.Greeting, letter.Greeting)
	assert.Equal(t, template.Body, letter.Body)
}

func TestParseLetterEmptyInputUsesTemplate(t *testing.T) {
	report := sampleReport(RoleClient)
	letter := ParseLetter("", report, fixedLetterOpts())
	assert.Equal(t, "The Contractor", letter.To)
	assert.NotEmpty(t, letter.Body)
}
