package dto

// HardRules are the optional pass/fail preconditions a lender checks before
// any sizing. A nil pointer means the lender does not configure that rule.
type HardRules struct {
	MinCibilScore      *int     `json:"min_cibil_score,omitempty"`
	MinMonthlySalary   *float64 `json:"min_monthly_salary,omitempty"`
	AllowedCategories  []string `json:"allowed_categories,omitempty"`
	MinCreditAgeMonths *int     `json:"min_credit_age_months,omitempty"`
	AllowNTC           *bool    `json:"allow_ntc,omitempty"`
	MaxDPDAllowed      *int     `json:"max_dpd_allowed,omitempty"`
	AllowWriteOff      *bool    `json:"allow_write_off,omitempty"`
	AllowSettlement    *bool    `json:"allow_settlement,omitempty"`
	AllowLegalAction   *bool    `json:"allow_legal_action,omitempty"`
	MaxEnquiries30d    *int     `json:"max_enquiries_30d,omitempty"`
	MinAge             *int     `json:"min_age,omitempty"`
	MaxAge             *int     `json:"max_age,omitempty"`
}

// BankPolicy is one lender's underwriting configuration. Policies are loaded
// once at process start and treated as read-only thereafter.
type BankPolicy struct {
	BankName            string             `json:"bank_name"`
	Active              bool               `json:"active"`
	Rules               HardRules          `json:"rules"`
	DefaultFOIRPercent  float64            `json:"default_foir_percent"`
	FOIRByCategory      map[string]float64 `json:"foir_by_category,omitempty"`
	FOIRByScoreBand     map[string]float64 `json:"foir_by_score_band,omitempty"`
	LoanCaps            map[string]float64 `json:"loan_caps,omitempty"` // product key -> max amount
	SalaryMultiplierCap *float64           `json:"salary_multiplier_cap,omitempty"`
	PreferredCategories []string           `json:"preferred_categories,omitempty"`
}
