package advice

// clauseRef pairs a clause reference with its one-line explanation. The
// catalogs below are fixed per contract-form family; the renderer never
// invents clause numbers outside them.
type clauseRef struct {
	ref         string
	explanation string
}

var clauseCatalog = map[Family]map[IssueCategory][]clauseRef{
	FamilyJCT: {
		CategoryPayment: {
			{"Clause 4.8", "Sets the due dates for interim payments and the valuation mechanism."},
			{"Clause 4.9", "Requires the interim certificate to be issued within five days of the due date."},
			{"Clause 4.10", "Entitles the contractor to the certified sum by the final date for payment."},
			{"Clause 4.11", "Allows suspension of performance for non-payment after seven days' notice."},
			{"Clause 4.12", "Governs pay less notices, including timing and required content."},
		},
		CategoryDelay: {
			{"Clause 2.26", "Defines the Relevant Events that qualify for an extension of time."},
			{"Clause 2.27", "Requires the contractor to give notice of delay forthwith, with particulars."},
			{"Clause 2.28", "Obliges the contract administrator to assess and fix a new completion date."},
			{"Clause 4.20", "Provides for loss and expense where regular progress is materially affected."},
		},
		CategoryVariation: {
			{"Clause 3.14", "Empowers the contract administrator to instruct variations to the works."},
			{"Clause 3.15", "Covers instructions to postpone work."},
			{"Clause 3.16", "Requires instructions to be in writing before the contractor must comply."},
			{"Clause 5.6", "Sets the valuation rules for varied work, including pro-rata rates."},
		},
		CategoryDefects: {
			{"Clause 2.38", "Establishes the rectification period and the schedule of defects procedure."},
			{"Clause 3.18", "Permits instructions to remove non-compliant work from site."},
			{"Clause 3.19", "Allows acceptance of non-compliant work with an appropriate deduction."},
		},
		CategoryDesign: {
			{"Clause 2.1", "Defines the contractor's obligation to carry out the works per the contract documents."},
			{"Clause 2.13", "Deals with discrepancies in or divergences between documents."},
			{"Clause 2.17", "Sets the design liability standard for contractor's designed portions."},
		},
		CategoryGeneral: {
			{"Clause 1.7", "Prescribes how notices and other communications must be given."},
			{"Clause 2.1", "Defines the contractor's primary obligation to carry out and complete the works."},
			{"Clause 9.2", "Provides for adjudication as a contractual dispute resolution route."},
		},
	},
	FamilyNEC: {
		CategoryPayment: {
			{"Clause 50.1", "Fixes the assessment dates for amounts due."},
			{"Clause 50.4", "Sets out what the project manager considers in each assessment."},
			{"Clause 51.1", "Requires certification within one week of each assessment date."},
			{"Clause 51.2", "Sets the time for payment and interest on late payment."},
		},
		CategoryDelay: {
			{"Clause 60.1", "Lists the compensation events, including employer-caused delay."},
			{"Clause 61.3", "Imposes the eight-week time bar for notifying compensation events."},
			{"Clause 62.2", "Requires quotations covering time and cost effects."},
			{"Clause 63.5", "Assesses delay by reference to planned Completion on the Accepted Programme."},
		},
		CategoryVariation: {
			{"Clause 60.1(1)", "Makes an instruction changing the Scope a compensation event."},
			{"Clause 27.3", "Obliges the contractor to obey instructions given in accordance with the contract."},
			{"Clause 63.1", "Values changes by their effect on Defined Cost plus the Fee."},
		},
		CategoryDefects: {
			{"Clause 43.1", "Requires defects to be corrected within the defect correction period."},
			{"Clause 44.1", "Allows the parties to accept a defect by agreeing a change to the Scope and Prices."},
			{"Clause 45.1", "Permits assessment of the cost of uncorrected defects."},
		},
		CategoryDesign: {
			{"Clause 21.1", "Requires the contractor to design the parts of the works the Scope states."},
			{"Clause 21.2", "Submittal and acceptance procedure for design particulars."},
			{"Clause 14.1", "Acceptance of a communication does not transfer design responsibility."},
		},
		CategoryGeneral: {
			{"Clause 10.1", "The obligation to act as stated in the contract and in a spirit of mutual trust."},
			{"Clause 13.1", "Requires each communication to be in a form that can be read, copied and recorded."},
			{"Clause 15.1", "Early warning obligations for matters that could affect cost, time or quality."},
		},
	},
	FamilyFIDIC: {
		CategoryPayment: {
			{"Sub-Clause 14.3", "Application for interim payment certificates."},
			{"Sub-Clause 14.6", "Issue of the interim payment certificate by the engineer."},
			{"Sub-Clause 14.7", "Time for the employer to make payment."},
			{"Sub-Clause 14.8", "Financing charges for delayed payment."},
		},
		CategoryDelay: {
			{"Sub-Clause 8.4", "Entitlement to extension of time for completion."},
			{"Sub-Clause 8.5", "Effect of delays caused by authorities."},
			{"Sub-Clause 20.2", "Claims procedure, including the 28-day notice requirement."},
		},
		CategoryVariation: {
			{"Sub-Clause 13.1", "Right to vary the works before the taking-over certificate."},
			{"Sub-Clause 13.3", "Variation procedure and valuation."},
			{"Sub-Clause 3.3", "Instructions of the engineer."},
		},
		CategoryDefects: {
			{"Sub-Clause 7.5", "Rejection of defective plant, materials or workmanship."},
			{"Sub-Clause 7.6", "Remedial work instructions."},
			{"Sub-Clause 11.1", "Completion of outstanding work and remedying defects."},
		},
		CategoryDesign: {
			{"Sub-Clause 4.1", "Contractor's general obligations, including design where specified."},
			{"Sub-Clause 5.1", "General design obligations (Yellow/Silver Books)."},
			{"Sub-Clause 1.9", "Delayed drawings or instructions."},
		},
		CategoryGeneral: {
			{"Sub-Clause 1.3", "Notices and other communications."},
			{"Sub-Clause 3.7", "Agreement or determination by the engineer."},
			{"Sub-Clause 20.1", "Claims of either party."},
		},
	},
	// Unrecognized contract types fall back to descriptive clause names
	// rather than numbered references.
	FamilyGeneric: {
		CategoryPayment: {
			{"Payment terms clause", "Check the stated payment application, certification and final-date provisions."},
			{"Interest on late payment clause", "Late payment typically attracts contractual or statutory interest."},
			{"Suspension rights clause", "Statutory rights to suspend for non-payment may apply in addition."},
		},
		CategoryDelay: {
			{"Extension of time clause", "Identifies which delay events entitle the contractor to more time."},
			{"Notice provisions", "Delay claims normally require prompt written notice."},
			{"Liquidated damages clause", "Sets the agreed rate payable for culpable delay."},
		},
		CategoryVariation: {
			{"Variation/change clause", "Defines who may order changes and how they are valued."},
			{"Instruction requirements clause", "Oral instructions usually need written confirmation."},
		},
		CategoryDefects: {
			{"Defects liability clause", "Sets the rectification period and making-good obligations."},
			{"Quality and workmanship clause", "Defines the standard the works must meet."},
		},
		CategoryDesign: {
			{"Design responsibility clause", "Allocates design duties and the applicable standard of care."},
			{"Discrepancy clause", "Governs conflicts between contract documents."},
		},
		CategoryGeneral: {
			{"Notice provisions", "Formal communications must follow the stated method and addresses."},
			{"Dispute resolution clause", "Identifies the agreed escalation route before proceedings."},
		},
	},
}

// RelevantClauses returns the fixed clause reference list for the form family
// and category. The returned slice is a copy.
func RelevantClauses(form ContractForm, category IssueCategory) []string {
	refs := catalogFor(form, category)
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = r.ref
	}
	return out
}

// ClauseExplanations returns explanations index-aligned with RelevantClauses.
func ClauseExplanations(form ContractForm, category IssueCategory) []string {
	refs := catalogFor(form, category)
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = r.ref + ": " + r.explanation
	}
	return out
}

func catalogFor(form ContractForm, category IssueCategory) []clauseRef {
	family := clauseCatalog[form.Family()]
	if family == nil {
		family = clauseCatalog[FamilyGeneric]
	}
	if refs, ok := family[category]; ok {
		return refs
	}
	return family[CategoryGeneral]
}
