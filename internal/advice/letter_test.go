package advice

import (
	"math/rand"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedLetterOpts() LetterOptions {
	return LetterOptions{
		SenderName: "A N Example",
		Now:        func() time.Time { return time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC) },
		Rand:       rand.New(rand.NewSource(42)),
	}
}

func sampleReport(role OrgRole) Report {
	project := ProjectDetails{
		ProjectName:      "Riverside Apartments",
		ContractType:     FormJCTStandard,
		OrganizationRole: role,
		Issues: []Issue{
			{Description: "Payment has not been certified on time", ActionsTaken: "Sent two reminder emails"},
		},
	}
	return Report{
		ID:        "report-1",
		UserID:    "user-1",
		CreatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Project:   project,
		Analyses: []IssueAnalysis{
			RenderAnalysis(project.Issues[0].Description, project.Issues[0].ActionsTaken, project.ContractType, role),
		},
	}
}

func TestRecipientForRole(t *testing.T) {
	cases := []struct {
		role OrgRole
		want string
	}{
		{RoleMainContractor, "The Employer/Client"},
		{RoleClient, "The Contractor"},
		{RoleSubcontractor, "The Main Contractor"},
		{RoleContractAdministrator, "The Relevant Party"},
		{RoleUnknown, "The Contract Administrator"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, RecipientForRole(tc.role), tc.role.String())
	}
}

func TestAssembleLetterStructure(t *testing.T) {
	letter := AssembleLetter(sampleReport(RoleMainContractor), fixedLetterOpts())

	assert.Equal(t, "The Employer/Client", letter.To)
	assert.Equal(t, "Dear Sir/Madam,", letter.Greeting)
	assert.Contains(t, letter.Subject, "Riverside Apartments")
	assert.Contains(t, letter.Body, "Payment has not been certified on time")
	assert.Contains(t, letter.Body, "Clause 4.8")
	assert.Contains(t, letter.Body, "sent two reminder emails")
	assert.Contains(t, letter.Closing, "reserved")
	assert.Contains(t, letter.Sender, "A N Example")
}

func TestAssembleLetterProfessionalGreeting(t *testing.T) {
	letter := AssembleLetter(sampleReport(RoleEngineer), fixedLetterOpts())
	assert.Equal(t, "The Contract Administrator", letter.To)
	assert.Equal(t, "Dear Contract Administrator,", letter.Greeting)
}

func TestReferenceNumberFormatAndDeterminism(t *testing.T) {
	refRe := regexp.MustCompile(`^RIV-2026-\d{3}$`)

	first := referenceNumber("Riverside Apartments", fixedLetterOpts())
	second := referenceNumber("Riverside Apartments", fixedLetterOpts())

	require.Regexp(t, refRe, first)
	assert.Equal(t, first, second, "seeded rand must make the reference reproducible")
}

func TestReferenceNumberShortProjectName(t *testing.T) {
	opts := fixedLetterOpts()
	assert.Regexp(t, regexp.MustCompile(`^AB-2026-\d{3}$`), referenceNumber("ab", opts))
	assert.Regexp(t, regexp.MustCompile(`^REF-2026-\d{3}$`), referenceNumber("  ", fixedLetterOpts()))
}

func TestToDirectRequestPhrasing(t *testing.T) {
	assert.Equal(t,
		"Please submit the valuation with supporting build-ups.",
		toDirectRequest("Submit the valuation with supporting build-ups."))
	assert.Equal(t,
		"We request that you check your payment trail.",
		toDirectRequest("Check the contractor's payment trail."))
}

func TestFirstSentence(t *testing.T) {
	assert.Equal(t, "One.", firstSentence("One. Two. Three."))
	assert.Equal(t, "No trailing stop.", firstSentence("No trailing stop"))
	assert.Equal(t, "", firstSentence("   "))
}
