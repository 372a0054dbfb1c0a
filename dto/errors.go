package dto

import "errors"

// Custom errors
var (
	// ErrNoReportInput is returned when neither a file nor report text was supplied.
	ErrNoReportInput = errors.New("report file or text is required")

	// ErrUnrecognizedReport is returned when the input carries neither a
	// usable score nor identifiable personal details.
	ErrUnrecognizedReport = errors.New("input does not look like a credit bureau report")

	// ErrMissingSalary is returned before any lender is evaluated when the
	// customer profile lacks a monthly salary.
	ErrMissingSalary = errors.New("customer monthly salary is required")

	// ErrNoActivePolicies is returned when the policy table holds no active lender.
	ErrNoActivePolicies = errors.New("no active lender policies configured")
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
