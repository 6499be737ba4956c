package advice

import (
	"encoding/json"
	"strings"
)

// ContractForm identifies the standard form of contract a project is let
// under. It is a closed enum; free-text inputs go through ParseContractForm.
type ContractForm int

const (
	FormUnknown ContractForm = iota
	FormJCTStandard
	FormJCTDesignBuild
	FormJCTIntermediate
	FormJCTMinorWorks
	FormNEC4ECC
	FormNEC4Subcontract
	FormNEC3ECC
	FormFIDICRed
	FormFIDICYellow
	FormFIDICSilver
	FormBespoke
)

// Family groups contract forms that share a clause catalog.
type Family int

const (
	FamilyGeneric Family = iota
	FamilyJCT
	FamilyNEC
	FamilyFIDIC
)

var contractFormNames = map[ContractForm]string{
	FormUnknown:         "Unknown",
	FormJCTStandard:     "JCT Standard Building Contract",
	FormJCTDesignBuild:  "JCT Design and Build Contract",
	FormJCTIntermediate: "JCT Intermediate Building Contract",
	FormJCTMinorWorks:   "JCT Minor Works Building Contract",
	FormNEC4ECC:         "NEC4 Engineering and Construction Contract",
	FormNEC4Subcontract: "NEC4 Engineering and Construction Subcontract",
	FormNEC3ECC:         "NEC3 Engineering and Construction Contract",
	FormFIDICRed:        "FIDIC Red Book",
	FormFIDICYellow:     "FIDIC Yellow Book",
	FormFIDICSilver:     "FIDIC Silver Book",
	FormBespoke:         "Bespoke Contract",
}

func (f ContractForm) String() string {
	if name, ok := contractFormNames[f]; ok {
		return name
	}
	return "Unknown"
}

// Family returns the clause-catalog family for the form.
func (f ContractForm) Family() Family {
	switch f {
	case FormJCTStandard, FormJCTDesignBuild, FormJCTIntermediate, FormJCTMinorWorks:
		return FamilyJCT
	case FormNEC4ECC, FormNEC4Subcontract, FormNEC3ECC:
		return FamilyNEC
	case FormFIDICRed, FormFIDICYellow, FormFIDICSilver:
		return FamilyFIDIC
	default:
		return FamilyGeneric
	}
}

// ParseContractForm maps a catalog display string to its ContractForm.
// Unrecognized input yields FormUnknown, which downstream code treats as the
// generic clause catalog rather than an error.
func ParseContractForm(raw string) ContractForm {
	key := normalizeKey(raw)
	for form, name := range contractFormNames {
		if form == FormUnknown {
			continue
		}
		if normalizeKey(name) == key {
			return form
		}
	}
	switch {
	case strings.HasPrefix(key, "jct standard"):
		return FormJCTStandard
	case strings.HasPrefix(key, "jct design"):
		return FormJCTDesignBuild
	case strings.HasPrefix(key, "jct intermediate"):
		return FormJCTIntermediate
	case strings.HasPrefix(key, "jct minor"):
		return FormJCTMinorWorks
	case strings.HasPrefix(key, "nec4") && strings.Contains(key, "subcontract"):
		return FormNEC4Subcontract
	case strings.HasPrefix(key, "nec4"):
		return FormNEC4ECC
	case strings.HasPrefix(key, "nec3"):
		return FormNEC3ECC
	case strings.HasPrefix(key, "fidic red"):
		return FormFIDICRed
	case strings.HasPrefix(key, "fidic yellow"):
		return FormFIDICYellow
	case strings.HasPrefix(key, "fidic silver"):
		return FormFIDICSilver
	case strings.HasPrefix(key, "bespoke"), strings.HasPrefix(key, "custom"):
		return FormBespoke
	default:
		return FormUnknown
	}
}

// MarshalJSON emits the catalog display string so persisted reports stay
// readable JSON.
func (f ContractForm) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

func (f *ContractForm) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*f = ParseContractForm(raw)
	return nil
}

// OrgRole identifies the user's organizational role on the project.
type OrgRole int

const (
	RoleUnknown OrgRole = iota
	RoleClient
	RoleMainContractor
	RoleSubcontractor
	RoleContractAdministrator
	RoleArchitect
	RoleEngineer
)

var orgRoleNames = map[OrgRole]string{
	RoleUnknown:               "Unknown",
	RoleClient:                "Client/Employer",
	RoleMainContractor:        "Main Contractor",
	RoleSubcontractor:         "Sub-contractor",
	RoleContractAdministrator: "Contract Administrator",
	RoleArchitect:             "Architect",
	RoleEngineer:              "Engineer",
}

func (r OrgRole) String() string {
	if name, ok := orgRoleNames[r]; ok {
		return name
	}
	return "Unknown"
}

// ParseOrgRole maps a catalog display string to its OrgRole. The lookup is an
// exact normalized match, so "Sub-contractor" can never be misread as
// "Main Contractor" the way substring matching would allow.
func ParseOrgRole(raw string) OrgRole {
	switch normalizeKey(raw) {
	case "client/employer", "client", "employer", "developer":
		return RoleClient
	case "main contractor", "contractor", "general contractor":
		return RoleMainContractor
	case "sub-contractor", "subcontractor", "specialist sub-contractor":
		return RoleSubcontractor
	case "contract administrator", "employer's agent":
		return RoleContractAdministrator
	case "architect":
		return RoleArchitect
	case "engineer", "project manager":
		return RoleEngineer
	default:
		return RoleUnknown
	}
}

func (r OrgRole) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *OrgRole) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = ParseOrgRole(raw)
	return nil
}

func normalizeKey(raw string) string {
	return strings.ToLower(strings.Join(strings.Fields(strings.TrimSpace(raw)), " "))
}

// Issue is one contractual problem described by the user.
type Issue struct {
	Description  string `json:"description"`
	ActionsTaken string `json:"actionsTaken"`
}

// ProjectDetails is the user's description of the project under advice.
// It is mutable while being edited and snapshotted into a Report at
// generation time.
type ProjectDetails struct {
	ProjectName        string       `json:"projectName"`
	ProjectDescription string       `json:"projectDescription"`
	ContractType       ContractForm `json:"contractType"`
	OrganizationRole   OrgRole      `json:"organizationRole"`
	Issues             []Issue      `json:"issues"`
}

// IssueAnalysis is the structured analysis produced for one issue. Any field
// may be empty when extraction from generated text misses; that is a degraded
// state, not an error.
type IssueAnalysis struct {
	Issue               string   `json:"issue"`
	ActionsTaken        string   `json:"actionsTaken"`
	DetailedAnalysis    string   `json:"detailedAnalysis"`
	LegalContext        string   `json:"legalContext"`
	RelevantClauses     []string `json:"relevantClauses"`
	ClauseExplanations  []string `json:"clauseExplanations"`
	Recommendations     []string `json:"recommendations"`
	PotentialOutcomes   string   `json:"potentialOutcomes"`
	TimelineSuggestions string   `json:"timelineSuggestions"`
	RiskAssessment      string   `json:"riskAssessment"`
}

// DraftLetter is a generated formal letter derived from a report. It is
// regenerable on demand and never persisted.
type DraftLetter struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	Greeting string `json:"greeting"`
	Body     string `json:"body"`
	Closing  string `json:"closing"`
	Sender   string `json:"sender"`
}

// IssueCategory is the deterministic classification of an issue description.
type IssueCategory int

const (
	CategoryGeneral IssueCategory = iota
	CategoryPayment
	CategoryDelay
	CategoryVariation
	CategoryDefects
	CategoryDesign
)

var issueCategoryNames = map[IssueCategory]string{
	CategoryGeneral:   "contract interpretation",
	CategoryPayment:   "payment",
	CategoryDelay:     "delay and extension of time",
	CategoryVariation: "variations",
	CategoryDefects:   "defects and quality",
	CategoryDesign:    "design responsibility",
}

func (c IssueCategory) String() string {
	if name, ok := issueCategoryNames[c]; ok {
		return name
	}
	return "contract interpretation"
}

// categoryRules are checked in order; the first whose keyword set matches
// wins, so a description mentioning both payment and delay classifies as
// payment. The order is part of the observable contract.
var categoryRules = []struct {
	category IssueCategory
	keywords []string
}{
	{CategoryPayment, []string{"payment", "certif", "invoice", "pay less", "retention", "withheld", "unpaid"}},
	{CategoryDelay, []string{"delay", "extension of time", "eot", "late", "overrun", "prolongation", "liquidated damages"}},
	{CategoryVariation, []string{"variation", "change order", "instruct", "additional work", "omission", "scope change"}},
	{CategoryDefects, []string{"defect", "quality", "workmanship", "snag", "remedial", "non-conform"}},
	{CategoryDesign, []string{"design", "drawing", "specification error", "information release", "coordination"}},
}

// ClassifyIssue runs the ordered keyword classifier over a description.
func ClassifyIssue(description string) IssueCategory {
	lowered := strings.ToLower(description)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lowered, kw) {
				return rule.category
			}
		}
	}
	return CategoryGeneral
}
