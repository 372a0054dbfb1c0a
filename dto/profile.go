package dto

// ObligationBreakdown is the lender-neutral monthly obligation computed from
// LIVE accounts. TotalMonthlyEMI and NetObligationForFOIR are computed
// independently: overdraft/flexi accounts contribute a derived 1%-of-
// outstanding figure to the net that can exceed their stated EMI of zero.
type ObligationBreakdown struct {
	TotalMonthlyEMI         float64 `json:"total_monthly_emi"`
	ExcludedSmallLimitCards float64 `json:"excluded_small_limit_cards"`
	ExcludedGoldLoans       float64 `json:"excluded_gold_loans"`
	ExcludedNearPayoff      float64 `json:"excluded_near_payoff"`
	ODFlexiObligation       float64 `json:"od_flexi_obligation"`
	NetObligationForFOIR    float64 `json:"net_obligation_for_foir"`
}

// Risk bands used by the snapshot and the normalized profile.
const (
	RiskLow        = "LOW"
	RiskMedium     = "MEDIUM"
	RiskMediumHigh = "MEDIUM_HIGH"
	RiskHigh       = "HIGH"
)

// CreditProfileSnapshot is the derived summary shown alongside the raw
// extracted sections.
type CreditProfileSnapshot struct {
	Score                   int     `json:"score"`
	RiskBand                string  `json:"risk_band"`
	LiveLoanCount           int     `json:"live_loan_count"`
	NetObligation           float64 `json:"net_obligation"`
	CreditAgeMonths         int     `json:"credit_age_months"`
	BalanceTransferEligible bool    `json:"balance_transfer_eligible"`
}

// StructuredProfile is the full output of report extraction. Missing fields
// carry typed sentinels; ConfidenceScore communicates completeness.
type StructuredProfile struct {
	Personal        PersonalDetails       `json:"personal"`
	Addresses       []Address             `json:"addresses"`
	ScoreSummary    CreditScoreSummary    `json:"score_summary"`
	Accounts        []CreditAccount       `json:"accounts"`
	Repayment       RepaymentBehavior     `json:"repayment"`
	Enquiries       EnquirySummary        `json:"enquiries"`
	Obligation      ObligationBreakdown   `json:"obligation"`
	Snapshot        CreditProfileSnapshot `json:"snapshot"`
	ConfidenceScore float64               `json:"confidence_score"`
	HasScore        bool                  `json:"has_score"`
	HasAccounts     bool                  `json:"has_accounts"`
	SourceHint      string                `json:"source_hint,omitempty"`
	PageCount       int                   `json:"page_count"`
}

// NormalizedCreditProfile is the compact lender-agnostic input to policy
// evaluation.
type NormalizedCreditProfile struct {
	Score                int     `json:"score"`
	RiskBand             string  `json:"risk_band"`
	CreditAgeMonths      int     `json:"credit_age_months"`
	LiveLoanCount        int     `json:"live_loan_count"`
	NetMonthlyObligation float64 `json:"net_monthly_obligation"`
	MaxDPD12M            int     `json:"max_dpd_12m"`
	Enquiries30d         int     `json:"enquiries_30d"`
	Enquiries90d         int     `json:"enquiries_90d"`
	Enquiries12M         int     `json:"enquiries_12m"`
	HasHomeLoan          bool    `json:"has_home_loan"`
	HasODFlexi           bool    `json:"has_od_flexi"`
	IsNewToCredit        bool    `json:"is_new_to_credit"`
	HasWriteOff          bool    `json:"has_write_off"`
	HasSettlement        bool    `json:"has_settlement"`
	HasRestructured      bool    `json:"has_restructured"`
	HasLegalAction       bool    `json:"has_legal_action"`
}
