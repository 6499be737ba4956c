package reports

import "advisor-backend/internal/advice"

// Report is the persisted advisory report. The shape lives in the advice
// package so the core pipeline stays free of storage concerns.
type Report = advice.Report

// Validate checks the report invariant: one analysis per issue, index aligned.
func Validate(report Report) error {
	if len(report.Analyses) != len(report.Project.Issues) {
		return ErrAlignmentMismatch
	}
	return nil
}
