package dto

// CustomerProfile carries applicant data the report does not. MonthlySalary
// is mandatory for evaluation.
type CustomerProfile struct {
	MonthlySalary   float64 `json:"monthly_salary"`
	Age             int     `json:"age"`
	CompanyCategory string  `json:"company_category,omitempty"`
	SalaryMode      string  `json:"salary_mode,omitempty"` // BANK_TRANSFER or CASH
}

const SalaryModeBankTransfer = "BANK_TRANSFER"

// LoanRequest names what the applicant is asking for. Defaults are applied
// when fields are absent.
type LoanRequest struct {
	ProductCode  string `json:"product_code,omitempty"`  // PL, HL, AL, BT
	TenureMonths int    `json:"tenure_months,omitempty"` // preferred tenure
}

// BankEligibilityResult is one lender's verdict. RejectionReasons is empty
// iff Eligible; it lists every violated hard rule, not just the first.
type BankEligibilityResult struct {
	BankName            string             `json:"bank_name"`
	Eligible            bool               `json:"eligible"`
	RejectionReasons    []string           `json:"rejection_reasons"`
	AvailableEMI        float64            `json:"available_emi"`
	AppliedFOIRPercent  float64            `json:"applied_foir_percent"`
	EligibleAmounts     map[string]float64 `json:"eligible_amounts"` // product key -> amount
	ApprovalProbability int                `json:"approval_probability"`
	Recommended         bool               `json:"recommended"`
}

// EvaluationSnapshot records the key inputs an evaluation ran with, for
// traceability.
type EvaluationSnapshot struct {
	MonthlySalary    float64 `json:"monthly_salary"`
	NetObligation    float64 `json:"net_obligation"`
	Score            int     `json:"score"`
	RiskBand         string  `json:"risk_band"`
	ProductCode      string  `json:"product_code"`
	TenureMonths     int     `json:"tenure_months"`
	LendersEvaluated int     `json:"lenders_evaluated"`
}

// EligibilityReport is the ranked multi-lender outcome.
type EligibilityReport struct {
	Profile        NormalizedCreditProfile `json:"profile"`
	Results        []BankEligibilityResult `json:"results"`
	BestOption     *BankEligibilityResult  `json:"best_option,omitempty"`
	Snapshot       EvaluationSnapshot      `json:"snapshot"`
	GeneratedAtUTC string                  `json:"generated_at_utc"`
}
