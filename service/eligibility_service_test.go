package service

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loanwise/credit-bureau-engine/dto"
)

func intP(v int) *int { return &v }

func f64P(v float64) *float64 { return &v }

func boolP(v bool) *bool { return &v }

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func cleanProfile(score, vintageMonths, liveLoans int, netObligation float64) *dto.StructuredProfile {
	return &dto.StructuredProfile{
		ScoreSummary: dto.CreditScoreSummary{
			Score:         score,
			VintageMonths: vintageMonths,
		},
		Snapshot: dto.CreditProfileSnapshot{
			LiveLoanCount: liveLoans,
		},
		Obligation: dto.ObligationBreakdown{
			NetObligationForFOIR: netObligation,
		},
	}
}

func TestNormalizeRiskBands(t *testing.T) {
	cases := []struct {
		name    string
		profile *dto.StructuredProfile
		band    string
	}{
		{"high score clean record", cleanProfile(780, 60, 2, 0), dto.RiskLow},
		{"good score", cleanProfile(710, 60, 2, 0), dto.RiskMedium},
		{"fair score", cleanProfile(660, 60, 2, 0), dto.RiskMediumHigh},
		{"low score", cleanProfile(540, 60, 2, 0), dto.RiskHigh},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			norm := Normalize(tc.profile)
			assert.Equal(t, tc.band, norm.RiskBand)
		})
	}
}

func TestNormalizeWriteOffEscalatesToHigh(t *testing.T) {
	profile := cleanProfile(790, 60, 2, 0)
	profile.Repayment.HasWriteOff = true

	norm := Normalize(profile)
	assert.Equal(t, dto.RiskHigh, norm.RiskBand)
}

func TestNormalizeNewToCredit(t *testing.T) {
	// Under six months of history.
	norm := Normalize(cleanProfile(0, 3, 1, 0))
	assert.True(t, norm.IsNewToCredit)

	// No live loans at all.
	norm = Normalize(cleanProfile(720, 48, 0, 0))
	assert.True(t, norm.IsNewToCredit)

	norm = Normalize(cleanProfile(720, 48, 2, 0))
	assert.False(t, norm.IsNewToCredit)
}

func TestNormalizeAccountFlags(t *testing.T) {
	profile := cleanProfile(720, 48, 2, 0)
	profile.Accounts = []dto.CreditAccount{
		{AccountType: dto.TypeHomeLoan, Status: dto.StatusClosed},
		{AccountType: dto.TypeOverdraft, Status: dto.StatusLive},
		{AccountType: dto.TypeFlexiLoan, Status: dto.StatusClosed},
	}

	norm := Normalize(profile)
	assert.True(t, norm.HasHomeLoan)
	assert.True(t, norm.HasODFlexi)

	// A closed overdraft alone does not set the flag.
	profile.Accounts = []dto.CreditAccount{
		{AccountType: dto.TypeOverdraft, Status: dto.StatusClosed},
	}
	norm = Normalize(profile)
	assert.False(t, norm.HasODFlexi)
}

func TestEvaluateMissingSalary(t *testing.T) {
	svc := NewEligibilityService(testLogger(), []dto.BankPolicy{
		{BankName: "HDFC Bank", Active: true, DefaultFOIRPercent: 55},
	})

	_, err := svc.Evaluate(cleanProfile(720, 48, 2, 0), dto.CustomerProfile{}, dto.LoanRequest{})
	assert.ErrorIs(t, err, dto.ErrMissingSalary)
}

func TestEvaluateNoActivePolicies(t *testing.T) {
	svc := NewEligibilityService(testLogger(), []dto.BankPolicy{
		{BankName: "Yes Bank", Active: false, DefaultFOIRPercent: 55},
	})

	_, err := svc.Evaluate(cleanProfile(720, 48, 2, 0), dto.CustomerProfile{MonthlySalary: 50000}, dto.LoanRequest{})
	assert.ErrorIs(t, err, dto.ErrNoActivePolicies)
}

func TestEvaluateLoanSizing(t *testing.T) {
	svc := NewEligibilityService(testLogger(), []dto.BankPolicy{
		{BankName: "HDFC Bank", Active: true, DefaultFOIRPercent: 60},
	})

	customer := dto.CustomerProfile{MonthlySalary: 65000, Age: 32}
	report, err := svc.Evaluate(cleanProfile(720, 48, 2, 10000), customer, dto.LoanRequest{})
	require.NoError(t, err)
	require.Len(t, report.Results, 1)

	result := report.Results[0]
	assert.True(t, result.Eligible)
	assert.Equal(t, 60.0, result.AppliedFOIRPercent)
	// 65000 * 60% = 39000 allowed, minus 10000 obligated leaves 29000.
	assert.Equal(t, 29000.0, result.AvailableEMI)
	assert.Equal(t, 1487179.0, result.EligibleAmounts["PL_5Y"])
	assert.Equal(t, 906250.0, result.EligibleAmounts["PL_3Y"])
}

func TestEvaluateSingleRuleSingleReason(t *testing.T) {
	svc := NewEligibilityService(testLogger(), []dto.BankPolicy{
		{
			BankName:           "ICICI Bank",
			Active:             true,
			Rules:              dto.HardRules{MinCibilScore: intP(700)},
			DefaultFOIRPercent: 55,
		},
	})

	customer := dto.CustomerProfile{MonthlySalary: 50000, Age: 30}
	report, err := svc.Evaluate(cleanProfile(680, 40, 1, 0), customer, dto.LoanRequest{})
	require.NoError(t, err)
	require.Len(t, report.Results, 1)

	result := report.Results[0]
	assert.False(t, result.Eligible)
	require.Len(t, result.RejectionReasons, 1)
	assert.Contains(t, result.RejectionReasons[0], "680")
	assert.Contains(t, result.RejectionReasons[0], "700")
	assert.Nil(t, report.BestOption)
}

func TestEvaluateReportsEveryViolation(t *testing.T) {
	svc := NewEligibilityService(testLogger(), []dto.BankPolicy{
		{
			BankName: "Axis Bank",
			Active:   true,
			Rules: dto.HardRules{
				MinCibilScore:    intP(700),
				MinMonthlySalary: f64P(40000),
				MaxDPDAllowed:    intP(0),
				AllowWriteOff:    boolP(false),
			},
			DefaultFOIRPercent: 50,
		},
	})

	profile := cleanProfile(630, 48, 2, 0)
	profile.Repayment.MaxDPD = 45
	profile.Repayment.HasWriteOff = true

	customer := dto.CustomerProfile{MonthlySalary: 25000, Age: 30}
	report, err := svc.Evaluate(profile, customer, dto.LoanRequest{})
	require.NoError(t, err)
	require.Len(t, report.Results, 1)

	result := report.Results[0]
	assert.False(t, result.Eligible)
	assert.Len(t, result.RejectionReasons, 4)
	// Sizing never runs for an ineligible lender.
	assert.Equal(t, 0.0, result.AvailableEMI)
	assert.Empty(t, result.EligibleAmounts)
}

func TestEvaluateNTCLenderSkipsScoreRule(t *testing.T) {
	svc := NewEligibilityService(testLogger(), []dto.BankPolicy{
		{
			BankName: "Bajaj Finance",
			Active:   true,
			Rules: dto.HardRules{
				MinCibilScore: intP(700),
				AllowNTC:      boolP(true),
			},
			DefaultFOIRPercent: 65,
		},
	})

	// New to credit: no score, no history.
	customer := dto.CustomerProfile{MonthlySalary: 45000, Age: 26}
	report, err := svc.Evaluate(cleanProfile(0, 0, 0, 0), customer, dto.LoanRequest{})
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.True(t, report.Results[0].Eligible)
}

// A scored applicant is held to the score minimum even when all accounts
// are closed and the lender accepts new-to-credit applicants.
func TestEvaluateScoredApplicantNotExemptFromScoreRule(t *testing.T) {
	svc := NewEligibilityService(testLogger(), []dto.BankPolicy{
		{
			BankName: "Bajaj Finance",
			Active:   true,
			Rules: dto.HardRules{
				MinCibilScore: intP(700),
				AllowNTC:      boolP(true),
			},
			DefaultFOIRPercent: 65,
		},
	})

	customer := dto.CustomerProfile{MonthlySalary: 50000, Age: 30}
	report, err := svc.Evaluate(cleanProfile(680, 48, 0, 0), customer, dto.LoanRequest{})
	require.NoError(t, err)
	require.Len(t, report.Results, 1)

	result := report.Results[0]
	assert.False(t, result.Eligible)
	require.Len(t, result.RejectionReasons, 1)
	assert.Contains(t, result.RejectionReasons[0], "680")
	assert.Contains(t, result.RejectionReasons[0], "700")
}

func TestEvaluateNTCRejectedWhenDisallowed(t *testing.T) {
	svc := NewEligibilityService(testLogger(), []dto.BankPolicy{
		{
			BankName:           "Axis Bank",
			Active:             true,
			Rules:              dto.HardRules{AllowNTC: boolP(false)},
			DefaultFOIRPercent: 50,
		},
	})

	customer := dto.CustomerProfile{MonthlySalary: 45000, Age: 26}
	report, err := svc.Evaluate(cleanProfile(0, 0, 0, 0), customer, dto.LoanRequest{})
	require.NoError(t, err)

	result := report.Results[0]
	assert.False(t, result.Eligible)
	require.Len(t, result.RejectionReasons, 1)
	assert.Contains(t, result.RejectionReasons[0], "new-to-credit")
}

func TestEvaluateFOIROverridesTakeMax(t *testing.T) {
	svc := NewEligibilityService(testLogger(), []dto.BankPolicy{
		{
			BankName:           "HDFC Bank",
			Active:             true,
			DefaultFOIRPercent: 55,
			FOIRByCategory:     map[string]float64{"CAT_A": 50}, // lower than default, ignored
			FOIRByScoreBand:    map[string]float64{"GOOD": 62},
		},
	})

	customer := dto.CustomerProfile{MonthlySalary: 60000, Age: 35, CompanyCategory: "CAT_A"}
	report, err := svc.Evaluate(cleanProfile(720, 48, 2, 0), customer, dto.LoanRequest{})
	require.NoError(t, err)

	assert.Equal(t, 62.0, report.Results[0].AppliedFOIRPercent)
}

func TestEvaluateCapsClampAmounts(t *testing.T) {
	svc := NewEligibilityService(testLogger(), []dto.BankPolicy{
		{
			BankName:            "HDFC Bank",
			Active:              true,
			DefaultFOIRPercent:  60,
			LoanCaps:            map[string]float64{"PL_5Y": 1000000},
			SalaryMultiplierCap: f64P(24),
		},
	})

	customer := dto.CustomerProfile{MonthlySalary: 65000, Age: 32}
	report, err := svc.Evaluate(cleanProfile(720, 48, 2, 10000), customer, dto.LoanRequest{})
	require.NoError(t, err)

	result := report.Results[0]
	// Uncapped PL_5Y would be 1487179; the product cap wins.
	assert.Equal(t, 1000000.0, result.EligibleAmounts["PL_5Y"])
	// Uncapped HL_20Y would be well above 24x salary.
	assert.Equal(t, 1560000.0, result.EligibleAmounts["HL_20Y"])
}

func TestEvaluateRanksByProbability(t *testing.T) {
	svc := NewEligibilityService(testLogger(), []dto.BankPolicy{
		{BankName: "Plain Bank", Active: true, DefaultFOIRPercent: 55},
		{
			BankName:            "Preferring Bank",
			Active:              true,
			DefaultFOIRPercent:  55,
			PreferredCategories: []string{"CAT_A"},
		},
	})

	customer := dto.CustomerProfile{MonthlySalary: 60000, Age: 35, CompanyCategory: "CAT_A"}
	report, err := svc.Evaluate(cleanProfile(760, 48, 2, 0), customer, dto.LoanRequest{})
	require.NoError(t, err)
	require.Len(t, report.Results, 2)

	assert.Equal(t, "Preferring Bank", report.Results[0].BankName)
	assert.Greater(t, report.Results[0].ApprovalProbability, report.Results[1].ApprovalProbability)
	require.NotNil(t, report.BestOption)
	assert.Equal(t, "Preferring Bank", report.BestOption.BankName)
}

func TestEvaluateStableOrderOnProbabilityTie(t *testing.T) {
	svc := NewEligibilityService(testLogger(), []dto.BankPolicy{
		{BankName: "Bank B", Active: true, DefaultFOIRPercent: 55},
		{BankName: "Bank A", Active: true, DefaultFOIRPercent: 55},
	})

	customer := dto.CustomerProfile{MonthlySalary: 60000, Age: 35}
	report, err := svc.Evaluate(cleanProfile(760, 48, 2, 0), customer, dto.LoanRequest{})
	require.NoError(t, err)
	require.Len(t, report.Results, 2)

	assert.Equal(t, report.Results[0].ApprovalProbability, report.Results[1].ApprovalProbability)
	assert.Equal(t, "Bank B", report.Results[0].BankName)
	assert.Equal(t, "Bank A", report.Results[1].BankName)
}

func TestEvaluateSnapshotAndDefaults(t *testing.T) {
	svc := NewEligibilityService(testLogger(), []dto.BankPolicy{
		{BankName: "HDFC Bank", Active: true, DefaultFOIRPercent: 55},
		{BankName: "Yes Bank", Active: false, DefaultFOIRPercent: 55},
	})

	customer := dto.CustomerProfile{MonthlySalary: 60000, Age: 35}
	report, err := svc.Evaluate(cleanProfile(720, 48, 2, 5000), customer, dto.LoanRequest{})
	require.NoError(t, err)

	// The inactive lender never appears in the output.
	require.Len(t, report.Results, 1)
	assert.Equal(t, "PL", report.Snapshot.ProductCode)
	assert.Equal(t, 60, report.Snapshot.TenureMonths)
	assert.Equal(t, 60000.0, report.Snapshot.MonthlySalary)
	assert.Equal(t, 5000.0, report.Snapshot.NetObligation)
	assert.Equal(t, 1, report.Snapshot.LendersEvaluated)
	assert.NotEmpty(t, report.GeneratedAtUTC)
}

func TestApprovalProbabilityClamped(t *testing.T) {
	norm := &dto.NormalizedCreditProfile{
		Score:        540,
		MaxDPD12M:    120,
		Enquiries30d: 8,
		HasWriteOff:  true, HasSettlement: true, HasRestructured: true,
	}
	customer := &dto.CustomerProfile{}
	policy := &dto.BankPolicy{}

	assert.Equal(t, 0, approvalProbability(norm, customer, policy))

	best := &dto.NormalizedCreditProfile{Score: 790, CreditAgeMonths: 120}
	bestCustomer := &dto.CustomerProfile{CompanyCategory: "CAT_A", SalaryMode: dto.SalaryModeBankTransfer}
	bestPolicy := &dto.BankPolicy{PreferredCategories: []string{"CAT_A"}}
	p := approvalProbability(best, bestCustomer, bestPolicy)
	assert.LessOrEqual(t, p, 100)
	assert.GreaterOrEqual(t, p, recommendedProbability)
}
