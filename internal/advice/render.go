package advice

import (
	"fmt"
	"strings"
)

// stance collapses the role enum into the four branches the boilerplate
// actually differs on.
type stance int

const (
	stanceNeutral stance = iota
	stanceContractor
	stanceSubcontractor
	stanceEmployer
	stanceAdministrator
)

func roleStance(role OrgRole) stance {
	switch role {
	case RoleMainContractor:
		return stanceContractor
	case RoleSubcontractor:
		return stanceSubcontractor
	case RoleClient:
		return stanceEmployer
	case RoleContractAdministrator, RoleArchitect, RoleEngineer:
		return stanceAdministrator
	default:
		return stanceNeutral
	}
}

func (s stance) counterparty() string {
	switch s {
	case stanceContractor:
		return "the employer"
	case stanceSubcontractor:
		return "the main contractor"
	case stanceEmployer:
		return "the contractor"
	case stanceAdministrator:
		return "the parties"
	default:
		return "the other party"
	}
}

// RenderAnalysis produces the structured analysis for one issue without any
// external call. Output is pure string assembly: the same three inputs always
// yield byte-identical output.
func RenderAnalysis(description, actionsTaken string, form ContractForm, role OrgRole) IssueAnalysis {
	category := ClassifyIssue(description)
	return IssueAnalysis{
		Issue:               description,
		ActionsTaken:        actionsTaken,
		DetailedAnalysis:    detailedAnalysis(category, form, role),
		LegalContext:        legalContext(category, form),
		RelevantClauses:     RelevantClauses(form, category),
		ClauseExplanations:  ClauseExplanations(form, category),
		Recommendations:     Recommendations(category, role),
		PotentialOutcomes:   potentialOutcomes(category, role),
		TimelineSuggestions: timelineSuggestions(category),
		RiskAssessment:      riskAssessment(category, role),
	}
}

func detailedAnalysis(category IssueCategory, form ContractForm, role OrgRole) string {
	s := roleStance(role)
	var b strings.Builder
	fmt.Fprintf(&b, "This issue falls under %s provisions of the %s.", category, formLabel(form))

	switch category {
	case CategoryPayment:
		b.WriteString(" The contractual payment cycle turns on the due date, the certificate, and any pay less notice; a failure at any of those stages changes who holds the risk.")
		switch s {
		case stanceContractor, stanceSubcontractor:
			b.WriteString(" If no valid certificate or pay less notice was issued in time, the notified or applied-for sum becomes payable in full and interest runs from the final date for payment. A statutory right to suspend performance may also be available after notice.")
		case stanceEmployer:
			b.WriteString(" Any intention to pay less than the certified sum must be captured in a compliant pay less notice served within the contractual window; an informal deduction exposes the paying party to a smash-and-grab claim for the full amount.")
		case stanceAdministrator:
			b.WriteString(" The certifier's duty is to value and certify within the contractual timetable regardless of funding pressure; late or absent certificates shift the payment obligation onto the notified sum.")
		default:
			b.WriteString(" The first step is to reconstruct the payment timetable for the affected application and identify which notice, if any, was missed.")
		}
	case CategoryDelay:
		b.WriteString(" Entitlement to additional time depends on the cause of delay matching a contractual delay event and on notice having been given in the required form.")
		switch s {
		case stanceContractor, stanceSubcontractor:
			b.WriteString(" Records are decisive: programme updates, site diaries and correspondence contemporaneous with the delay will carry far more weight than retrospective reconstruction. Serve or perfect the delay notice now if there is any doubt it was given.")
		case stanceEmployer:
			b.WriteString(" The assessment should separate concurrent causes: culpable delay does not excuse the certifier from awarding time for qualifying events, but it preserves the right to liquidated damages for the contractor-risk period.")
		case stanceAdministrator:
			b.WriteString(" The assessment must be made within the contractual period using the current accepted programme; silence risks time becoming at large.")
		default:
			b.WriteString(" Establish the critical path impact before taking a position on entitlement.")
		}
	case CategoryVariation:
		b.WriteString(" The central questions are whether the work was validly instructed and how it falls to be valued.")
		switch s {
		case stanceContractor, stanceSubcontractor:
			b.WriteString(" Work done without a written instruction is the classic recovery gap: seek written confirmation of any oral instruction before or immediately after compliance, and keep the valuation trail separate from the base scope.")
		case stanceEmployer:
			b.WriteString(" Confirm that the person giving the instruction had authority under the contract; an unauthorized direction may not bind the paying party, but conduct can create an implied instruction.")
		case stanceAdministrator:
			b.WriteString(" Instructions should identify the changed work precisely and trigger the valuation mechanism promptly, or the account will be contested at final account stage.")
		default:
			b.WriteString(" Trace each disputed item back to an instruction and a valuation rule before negotiating.")
		}
	case CategoryDefects:
		b.WriteString(" Liability turns on what standard the contract sets for the work and whether the rectification machinery was operated correctly.")
		switch s {
		case stanceContractor, stanceSubcontractor:
			b.WriteString(" The right to return and rectify is valuable: if it is denied, the claimable cost is generally capped at what rectification would have cost the original contractor, not a third party's premium.")
		case stanceEmployer:
			b.WriteString(" Defects should be notified through the contractual schedule-of-defects route within the rectification period; outside that machinery the claim becomes a common-law damages claim with a duty to mitigate.")
		case stanceAdministrator:
			b.WriteString(" Distinguish patent defects recorded at practical completion from latent matters emerging later, and instruct rectification through the contractual mechanism.")
		default:
			b.WriteString(" The inspection record and the specification are the starting points for any position on liability.")
		}
	case CategoryDesign:
		b.WriteString(" The allocation of design responsibility and the applicable standard of care govern this dispute.")
		switch s {
		case stanceContractor, stanceSubcontractor:
			b.WriteString(" Check whether the design obligation is reasonable skill and care or fitness for purpose; the difference determines whether a fault-free design that fails still creates liability. Flag design information that arrived late or incomplete.")
		case stanceEmployer:
			b.WriteString(" Where design was transferred, confirm the novation or design submission trail actually passed responsibility; gaps between the consultant's scope and the contractor's scope are a recurring source of uninsured risk.")
		case stanceAdministrator:
			b.WriteString(" Review of design submissions does not usually transfer responsibility to the reviewer, but commenting outside the agreed procedure can blur that line.")
		default:
			b.WriteString(" Map each design deliverable to the party contractually responsible for it before attributing the failure.")
		}
	default:
		b.WriteString(" Where no specific regime applies, the dispute resolves to interpretation of the agreement as a whole, with the contractual notice and dispute provisions framing how the position should be advanced.")
		if s == stanceContractor || s == stanceSubcontractor {
			b.WriteString(" Preserve the contractual position in writing now; informal discussion does not stop time bars running.")
		}
	}
	return b.String()
}

func legalContext(category IssueCategory, form ContractForm) string {
	family := form.Family()
	var base string
	switch category {
	case CategoryPayment:
		base = "Construction contracts are subject to statutory payment rules requiring a compliant notice regime; where the contract is silent or non-compliant, statutory default provisions are implied. Adjudication is available at any time for payment disputes."
	case CategoryDelay:
		base = "Extension of time provisions protect both parties: they keep a completion date alive for liquidated damages and give the contractor relief for qualifying events. Failure to operate the machinery can put time at large."
	case CategoryVariation:
		base = "A variation must be authorized under the contract to be payable as such; work outside any instruction may still be recoverable on a quantum meruit, but at materially higher evidential cost."
	case CategoryDefects:
		base = "Defects claims sit on the boundary of contract and tort; the contractual rectification regime generally provides the cheaper remedy and limits recoverable cost to the contractual measure."
	case CategoryDesign:
		base = "Design liability defaults to reasonable skill and care for professionals, but design-and-build contracts can impose stricter fitness-for-purpose obligations, which many professional indemnity policies exclude."
	default:
		base = "The issue is governed by the express terms read against the contract as a whole, supplemented by implied terms of cooperation and non-prevention."
	}

	switch family {
	case FamilyJCT:
		return base + " Under the JCT forms the contract administrator's certificates and the clause 4 payment machinery are the procedural backbone for this kind of issue."
	case FamilyNEC:
		return base + " Under NEC the early warning and compensation event procedures are conditions precedent in practice; the eight-week notification bar in clause 61.3 is enforced strictly."
	case FamilyFIDIC:
		return base + " Under FIDIC the Sub-Clause 20 claims procedure and its 28-day notice requirement frame the entitlement; the engineer's determination under Sub-Clause 3.7 is the first formal decision point."
	default:
		return base + " As this is not a recognized standard form, the precise wording of the bespoke conditions must be checked before relying on any standard-form assumption."
	}
}

// Recommendations returns the fixed recommendation set for the category,
// branched on the caller's role.
func Recommendations(category IssueCategory, role OrgRole) []string {
	s := roleStance(role)
	var recs []string
	switch category {
	case CategoryPayment:
		recs = append(recs, "Assemble the payment trail for the affected application: application, certificate, any pay less notice, and the contractual due dates.")
		switch s {
		case stanceContractor, stanceSubcontractor:
			recs = append(recs,
				"Submit a formal written demand for the notified sum, reserving the right to suspend performance and to adjudicate.",
				"Calculate and claim interest from the final date for payment.")
		case stanceEmployer:
			recs = append(recs,
				"Serve a compliant pay less notice before the deadline if a deduction is intended.",
				"Ensure the certifier issues certificates on time to avoid default-payment exposure.")
		default:
			recs = append(recs,
				"Issue or chase the outstanding certificate within the contractual period.",
				"Record the valuation basis so any later dispute has a contemporaneous paper trail.")
		}
	case CategoryDelay:
		recs = append(recs, "Preserve contemporaneous delay records: programme revisions, site diaries, photographs and correspondence.")
		switch s {
		case stanceContractor, stanceSubcontractor:
			recs = append(recs,
				"Serve or update the delay notice with particulars of cause and expected effect without waiting for full quantification.",
				"Prepare a critical-path analysis against the accepted programme to support the extension claimed.")
		case stanceEmployer:
			recs = append(recs,
				"Require substantiation of cause and critical-path effect before awarding time.",
				"Check the concurrency position before deducting liquidated damages.")
		default:
			recs = append(recs,
				"Assess the notified delay within the contractual window and confirm the revised completion date in writing.")
		}
	case CategoryVariation:
		recs = append(recs, "Reconcile each disputed item against a written instruction; confirm any oral instruction in writing immediately.")
		switch s {
		case stanceContractor, stanceSubcontractor:
			recs = append(recs,
				"Submit the valuation with supporting build-ups under the contractual rules rather than as a lump-sum claim.",
				"Keep varied work costs segregated from base-scope costs as they are incurred.")
		case stanceEmployer:
			recs = append(recs,
				"Verify the instructing party's authority under the contract before accepting the account.",
				"Instruct omissions formally rather than by silence.")
		default:
			recs = append(recs,
				"Issue instructions that identify the changed work precisely and trigger the valuation procedure promptly.")
		}
	case CategoryDefects:
		recs = append(recs, "Record the alleged defects with photographs and against the specification clause said to be breached.")
		switch s {
		case stanceContractor, stanceSubcontractor:
			recs = append(recs,
				"Assert the contractual right to return and rectify before third-party costs are incurred.",
				"Investigate whether the alleged defect stems from design or from employer-supplied materials.")
		case stanceEmployer:
			recs = append(recs,
				"Notify defects through the contractual schedule within the rectification period.",
				"Obtain a costed rectification scope before considering engaging others.")
		default:
			recs = append(recs,
				"Instruct rectification through the contractual machinery and keep the record of compliance.")
		}
	case CategoryDesign:
		recs = append(recs, "Map the defective element to the party carrying design responsibility for it under the contract documents.")
		switch s {
		case stanceContractor, stanceSubcontractor:
			recs = append(recs,
				"Confirm the design standard owed (skill and care versus fitness for purpose) before conceding liability.",
				"Log any late or incomplete design information releases that contributed to the problem.")
		case stanceEmployer:
			recs = append(recs,
				"Check the novation and appointment documents for gaps between consultant and contractor design scopes.",
				"Notify professional indemnity insurers where a design failure is alleged.")
		default:
			recs = append(recs,
				"Keep design review comments within the agreed submission procedure to avoid blurring responsibility.")
		}
	default:
		recs = append(recs,
			"Set out the contractual position in a formal letter citing the relevant clauses.",
			"Follow the contractual notice provisions precisely; time bars are applied strictly.",
			"Consider the agreed dispute escalation route before commencing proceedings.")
	}
	return recs
}

func potentialOutcomes(category IssueCategory, role OrgRole) string {
	s := roleStance(role)
	switch category {
	case CategoryPayment:
		if s == stanceEmployer {
			return "If the notice regime was not operated correctly, the full notified sum is likely to be payable on adjudication regardless of the true value, with the merits argued later in a subsequent valuation cycle or final account."
		}
		return "Likely outcomes range from prompt payment of the notified sum with interest, through a negotiated certification correction, to a short adjudication which payment claims of this kind usually resolve in under six weeks."
	case CategoryDelay:
		return "Outcomes range from an agreed extension of time with or without loss and expense, to a disputed assessment resolved by adjudication; where the machinery was ignored entirely, time may be at large and liquidated damages unenforceable."
	case CategoryVariation:
		return "Most variation accounts settle at final account stage once instructions and valuations are reconciled; unresolved items typically proceed to adjudication on discrete valuation questions."
	case CategoryDefects:
		return "Expect either rectification by the original contractor at its own cost, a negotiated deduction reflecting the contractual measure of loss, or a damages claim if the rectification machinery has been exhausted."
	case CategoryDesign:
		return "Design disputes commonly resolve by allocation between the professional team and the contractor, frequently involving insurers; the standard of care finding drives the split."
	default:
		return "The realistic outcomes are a negotiated resolution guided by the contractual wording, or a formal determination through the contract's dispute resolution route."
	}
}

func timelineSuggestions(category IssueCategory) string {
	switch category {
	case CategoryPayment:
		return "Act within the current payment cycle: check notice deadlines immediately, issue the formal demand within 7 days, and treat adjudication as available from day one if payment is not forthcoming."
	case CategoryDelay:
		return "Serve or perfect delay notices now; contractual notice periods are typically 14 days or shorter from awareness, and NEC-style time bars extinguish the claim after 8 weeks."
	case CategoryVariation:
		return "Confirm oral instructions in writing within 7 days and submit valuations in the same assessment period as the work; leaving items to final account weakens the evidential position."
	case CategoryDefects:
		return "Notify defects as they are identified and agree a rectification programme within 14 days; the rectification period end date is the key deadline to diarize."
	case CategoryDesign:
		return "Raise design queries through the formal information-request procedure with response deadlines; allow 28 days for insurers to be notified and respond before positions harden."
	default:
		return "Raise the issue formally within 14 days and follow the contractual escalation timetable; unexplained delay in asserting a position is routinely held against the claiming party."
	}
}

func riskAssessment(category IssueCategory, role OrgRole) string {
	s := roleStance(role)
	switch category {
	case CategoryPayment:
		if s == stanceContractor || s == stanceSubcontractor {
			return "Risk: moderate. Cash-flow exposure is immediate, but the statutory payment framework strongly favors the payee where notices were missed. The main residual risk is insolvency of the paying party."
		}
		return "Risk: high if the notice regime was not operated correctly — the notified sum becomes payable in full irrespective of the true valuation. Procedural compliance going forward removes most of this exposure."
	case CategoryDelay:
		if s == stanceEmployer {
			return "Risk: moderate. An over-generous assessment surrenders liquidated damages; an unduly strict one risks time at large. The concurrency analysis is the pivot."
		}
		return "Risk: moderate to high. Missed or late notices can bar otherwise meritorious claims entirely, and weak contemporaneous records are the most common reason delay claims fail."
	case CategoryVariation:
		return "Risk: moderate. Unconfirmed instructions and unsegregated costs are recoverable only with difficulty; documented items normally settle close to the contractual valuation."
	case CategoryDefects:
		return "Risk: moderate. Programmatic exposure is small if the rectification machinery is used; bypassing it inflates cost and converts a managed process into contested litigation."
	case CategoryDesign:
		return "Risk: high where fitness-for-purpose obligations or insurance exclusions may apply; otherwise moderate, with the outcome turning on the documented allocation of design duties."
	default:
		return "Risk: low to moderate pending clarification of the contractual position; the principal exposure is procedural (missed notices) rather than substantive."
	}
}

func formLabel(form ContractForm) string {
	if form == FormUnknown {
		return "contract conditions"
	}
	return form.String()
}
