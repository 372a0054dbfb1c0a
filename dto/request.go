package dto

import "mime/multipart"

// AnalyzeReportRequest is the multipart payload for report analysis. Either
// a report file (PDF or image) or pre-extracted text must be supplied.
type AnalyzeReportRequest struct {
	File       *multipart.FileHeader `form:"file"`
	Text       string                `form:"text"`
	Password   string                `form:"password"`
	SourceHint string                `form:"source_hint"`
}

// Validate performs basic validation on the request.
func (r *AnalyzeReportRequest) Validate() error {
	if r.File == nil && r.Text == "" {
		return ErrNoReportInput
	}
	return nil
}

// EvaluateEligibilityRequest is the JSON payload for eligibility evaluation.
// A previously extracted profile may be passed back in; otherwise ReportText
// is extracted inline before evaluation.
type EvaluateEligibilityRequest struct {
	Profile    *StructuredProfile `json:"profile,omitempty"`
	ReportText string             `json:"report_text,omitempty"`
	SourceHint string             `json:"source_hint,omitempty"`
	Customer   CustomerProfile    `json:"customer" binding:"required"`
	Loan       LoanRequest        `json:"loan"`
}

// Validate performs basic validation on the request.
func (r *EvaluateEligibilityRequest) Validate() error {
	if r.Profile == nil && r.ReportText == "" {
		return ErrNoReportInput
	}
	if r.Customer.MonthlySalary <= 0 {
		return ErrMissingSalary
	}
	return nil
}
