package advice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyIssueOrderedRules(t *testing.T) {
	cases := []struct {
		description string
		want        IssueCategory
	}{
		{"Payment has not been certified on time", CategoryPayment},
		{"The works are running late due to weather", CategoryDelay},
		{"We were instructed to carry out additional work", CategoryVariation},
		{"Workmanship on level 3 is poor quality", CategoryDefects},
		{"The design coordination between drawings is flawed", CategoryDesign},
		{"We disagree about what the contract means", CategoryGeneral},
		// Payment outranks delay when both keyword sets match.
		{"Payment of the delay costs has been withheld", CategoryPayment},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyIssue(tc.description), tc.description)
	}
}

func TestRenderAnalysisDeterministic(t *testing.T) {
	first := RenderAnalysis("Payment has not been certified on time", "Chased twice by email", FormJCTStandard, RoleMainContractor)
	second := RenderAnalysis("Payment has not been certified on time", "Chased twice by email", FormJCTStandard, RoleMainContractor)
	assert.Equal(t, first, second)
}

func TestRenderAnalysisJCTPayment(t *testing.T) {
	analysis := RenderAnalysis("Payment has not been certified on time", "", FormJCTStandard, RoleMainContractor)

	assert.Contains(t, analysis.RelevantClauses, "Clause 4.8")
	require.NotEmpty(t, analysis.Recommendations)
	assert.Len(t, analysis.ClauseExplanations, len(analysis.RelevantClauses))
	assert.NotEmpty(t, analysis.DetailedAnalysis)
	assert.NotEmpty(t, analysis.LegalContext)
	assert.NotEmpty(t, analysis.RiskAssessment)
	assert.Equal(t, "Payment has not been certified on time", analysis.Issue)
}

func TestRenderAnalysisRoleBranching(t *testing.T) {
	contractor := RenderAnalysis("Payment withheld without notice", "", FormJCTStandard, RoleMainContractor)
	employer := RenderAnalysis("Payment withheld without notice", "", FormJCTStandard, RoleClient)

	assert.NotEqual(t, contractor.DetailedAnalysis, employer.DetailedAnalysis)
	assert.NotEqual(t, contractor.Recommendations, employer.Recommendations)
	// Clause catalog depends on form and category only, not role.
	assert.Equal(t, contractor.RelevantClauses, employer.RelevantClauses)
}

func TestRenderAnalysisUnknownFormUsesGenericCatalog(t *testing.T) {
	analysis := RenderAnalysis("Payment is overdue", "", FormUnknown, RoleMainContractor)
	assert.Contains(t, analysis.RelevantClauses, "Payment terms clause")
}

func TestRenderAnalysisNECDelay(t *testing.T) {
	analysis := RenderAnalysis("We are in delay and need an extension of time", "", FormNEC4ECC, RoleSubcontractor)
	assert.Contains(t, analysis.RelevantClauses, "Clause 61.3")
	assert.Contains(t, analysis.LegalContext, "compensation event")
}
