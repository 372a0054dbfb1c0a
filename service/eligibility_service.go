package service

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/loanwise/credit-bureau-engine/dto"
	"github.com/loanwise/credit-bureau-engine/utils"
)

// emiPerLakhFactors converts available EMI into a principal amount per
// product/tenure combination: EMI in rupees per ₹1,00,000 of loan.
var emiPerLakhFactors = map[string]float64{
	"PL_3Y":  3200,
	"PL_5Y":  1950,
	"HL_15Y": 950,
	"HL_20Y": 850,
	"AL_5Y":  2050,
	"BT_5Y":  1900,
}

const lakh = 100000.0

// Loan request defaults applied when the caller leaves them out.
const (
	defaultProductCode  = "PL"
	defaultTenureMonths = 60
)

const recommendedProbability = 70

// probabilityAdjustments is the approval-probability heuristic as a data
// table: base 50, each applicable row added, result clamped to [0,100].
var probabilityAdjustments = []struct {
	name    string
	delta   int
	applies func(n *dto.NormalizedCreditProfile, c *dto.CustomerProfile, p *dto.BankPolicy) bool
}{
	{"score_excellent", 20, func(n *dto.NormalizedCreditProfile, _ *dto.CustomerProfile, _ *dto.BankPolicy) bool {
		return n.Score >= 750
	}},
	{"score_good", 12, func(n *dto.NormalizedCreditProfile, _ *dto.CustomerProfile, _ *dto.BankPolicy) bool {
		return n.Score >= 700 && n.Score < 750
	}},
	{"score_fair", 5, func(n *dto.NormalizedCreditProfile, _ *dto.CustomerProfile, _ *dto.BankPolicy) bool {
		return n.Score >= 650 && n.Score < 700
	}},
	{"zero_dpd", 10, func(n *dto.NormalizedCreditProfile, _ *dto.CustomerProfile, _ *dto.BankPolicy) bool {
		return n.MaxDPD12M == 0
	}},
	{"low_dpd", 4, func(n *dto.NormalizedCreditProfile, _ *dto.CustomerProfile, _ *dto.BankPolicy) bool {
		return n.MaxDPD12M > 0 && n.MaxDPD12M <= 30
	}},
	{"preferred_category", 8, func(_ *dto.NormalizedCreditProfile, c *dto.CustomerProfile, p *dto.BankPolicy) bool {
		return containsFold(p.PreferredCategories, c.CompanyCategory)
	}},
	{"long_vintage", 5, func(n *dto.NormalizedCreditProfile, _ *dto.CustomerProfile, _ *dto.BankPolicy) bool {
		return n.CreditAgeMonths >= 36
	}},
	{"salary_bank_transfer", 5, func(_ *dto.NormalizedCreditProfile, c *dto.CustomerProfile, _ *dto.BankPolicy) bool {
		return strings.EqualFold(c.SalaryMode, dto.SalaryModeBankTransfer)
	}},
	{"write_off", -25, func(n *dto.NormalizedCreditProfile, _ *dto.CustomerProfile, _ *dto.BankPolicy) bool {
		return n.HasWriteOff
	}},
	{"settlement", -20, func(n *dto.NormalizedCreditProfile, _ *dto.CustomerProfile, _ *dto.BankPolicy) bool {
		return n.HasSettlement
	}},
	{"restructured", -15, func(n *dto.NormalizedCreditProfile, _ *dto.CustomerProfile, _ *dto.BankPolicy) bool {
		return n.HasRestructured
	}},
	{"high_enquiries", -10, func(n *dto.NormalizedCreditProfile, _ *dto.CustomerProfile, _ *dto.BankPolicy) bool {
		return n.Enquiries30d >= 4
	}},
}

// EligibilityService evaluates a normalized credit profile against the
// configured lender policies. Policies are injected once at construction
// and never mutated.
type EligibilityService struct {
	logger   *logrus.Logger
	policies []dto.BankPolicy
}

func NewEligibilityService(logger *logrus.Logger, policies []dto.BankPolicy) *EligibilityService {
	return &EligibilityService{
		logger:   logger,
		policies: policies,
	}
}

// Normalize maps a structured profile into the compact lender-agnostic
// shape. Risk banding here is stricter than the snapshot's: write-off,
// settlement, or legal action escalates straight to HIGH regardless of
// score.
func Normalize(p *dto.StructuredProfile) dto.NormalizedCreditProfile {
	norm := dto.NormalizedCreditProfile{
		Score:                p.ScoreSummary.Score,
		CreditAgeMonths:      p.ScoreSummary.VintageMonths,
		LiveLoanCount:        p.Snapshot.LiveLoanCount,
		NetMonthlyObligation: p.Obligation.NetObligationForFOIR,
		MaxDPD12M:            p.Repayment.MaxDPD,
		Enquiries30d:         p.Enquiries.Last30Days,
		Enquiries90d:         p.Enquiries.Last90Days,
		Enquiries12M:         p.Enquiries.Last12Month,
		HasWriteOff:          p.Repayment.HasWriteOff,
		HasSettlement:        p.Repayment.HasSettlement,
		HasRestructured:      p.Repayment.HasRestructured,
		HasLegalAction:       p.Repayment.HasLegalAction,
	}

	for _, account := range p.Accounts {
		if account.AccountType == dto.TypeHomeLoan {
			norm.HasHomeLoan = true
		}
		if account.Status == dto.StatusLive &&
			(account.AccountType == dto.TypeOverdraft || account.AccountType == dto.TypeFlexiLoan) {
			norm.HasODFlexi = true
		}
	}

	norm.IsNewToCredit = norm.CreditAgeMonths < 6 || norm.LiveLoanCount == 0

	switch {
	case norm.HasWriteOff || norm.HasSettlement || norm.HasLegalAction:
		norm.RiskBand = dto.RiskHigh
	case norm.Score >= 750 && norm.MaxDPD12M == 0:
		norm.RiskBand = dto.RiskLow
	case norm.Score >= 700 && norm.MaxDPD12M <= 30:
		norm.RiskBand = dto.RiskMedium
	case norm.Score >= 650 && norm.MaxDPD12M <= 60:
		norm.RiskBand = dto.RiskMediumHigh
	default:
		norm.RiskBand = dto.RiskHigh
	}

	return norm
}

// Evaluate runs every active lender policy against the profile and ranks the
// results by approval probability, stable on ties. The missing-salary check
// fails the whole call before any lender is looked at.
func (s *EligibilityService) Evaluate(profile *dto.StructuredProfile, customer dto.CustomerProfile, loan dto.LoanRequest) (*dto.EligibilityReport, error) {
	if customer.MonthlySalary <= 0 {
		return nil, dto.ErrMissingSalary
	}

	if loan.ProductCode == "" {
		loan.ProductCode = defaultProductCode
	}
	if loan.TenureMonths == 0 {
		loan.TenureMonths = defaultTenureMonths
	}

	var active []dto.BankPolicy
	for _, policy := range s.policies {
		if policy.Active {
			active = append(active, policy)
		}
	}
	if len(active) == 0 {
		return nil, dto.ErrNoActivePolicies
	}

	norm := Normalize(profile)

	results := make([]dto.BankEligibilityResult, 0, len(active))
	for i := range active {
		results = append(results, evaluatePolicy(&active[i], &norm, &customer))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].ApprovalProbability > results[j].ApprovalProbability
	})

	report := &dto.EligibilityReport{
		Profile: norm,
		Results: results,
		Snapshot: dto.EvaluationSnapshot{
			MonthlySalary:    customer.MonthlySalary,
			NetObligation:    norm.NetMonthlyObligation,
			Score:            norm.Score,
			RiskBand:         norm.RiskBand,
			ProductCode:      loan.ProductCode,
			TenureMonths:     loan.TenureMonths,
			LendersEvaluated: len(results),
		},
		GeneratedAtUTC: time.Now().UTC().Format(time.RFC3339),
	}

	for i := range results {
		if results[i].Eligible {
			report.BestOption = &results[i]
			break
		}
	}

	s.logger.WithFields(logrus.Fields{
		"lenders":  len(results),
		"eligible": countEligible(results),
		"score":    norm.Score,
	}).Info("eligibility evaluated")

	return report, nil
}

// evaluatePolicy is the per-lender state machine: the gate phase checks
// every configured hard rule (no short-circuit, so the caller sees all
// violations), then sizing and scoring run only when the gate passed.
func evaluatePolicy(policy *dto.BankPolicy, norm *dto.NormalizedCreditProfile, customer *dto.CustomerProfile) dto.BankEligibilityResult {
	result := dto.BankEligibilityResult{
		BankName:         policy.BankName,
		RejectionReasons: []string{},
		EligibleAmounts:  map[string]float64{},
	}

	result.RejectionReasons = gateReasons(&policy.Rules, norm, customer)
	result.Eligible = len(result.RejectionReasons) == 0

	if result.Eligible {
		sizeLoan(policy, norm, customer, &result)
	}

	result.ApprovalProbability = approvalProbability(norm, customer, policy)
	result.Recommended = result.Eligible && result.ApprovalProbability >= recommendedProbability

	return result
}

// gateReasons evaluates all configured hard rules and returns every failure.
func gateReasons(rules *dto.HardRules, norm *dto.NormalizedCreditProfile, customer *dto.CustomerProfile) []string {
	reasons := []string{}

	ntcAllowed := rules.AllowNTC != nil && *rules.AllowNTC

	if rules.MinCibilScore != nil && norm.Score < *rules.MinCibilScore {
		// A lender that accepts new-to-credit applicants does not demand a
		// score from those who have none. An applicant who does carry a
		// score is held to the minimum even when new to credit.
		if !(norm.Score == 0 && norm.IsNewToCredit && ntcAllowed) {
			reasons = append(reasons, fmt.Sprintf("CIBIL score %d below minimum %d", norm.Score, *rules.MinCibilScore))
		}
	}
	if rules.MinMonthlySalary != nil && customer.MonthlySalary < *rules.MinMonthlySalary {
		reasons = append(reasons, fmt.Sprintf("monthly salary %.0f below minimum %.0f", customer.MonthlySalary, *rules.MinMonthlySalary))
	}
	if len(rules.AllowedCategories) > 0 && !containsFold(rules.AllowedCategories, customer.CompanyCategory) {
		reasons = append(reasons, fmt.Sprintf("company category %q not accepted", customer.CompanyCategory))
	}
	if rules.MinCreditAgeMonths != nil && norm.CreditAgeMonths < *rules.MinCreditAgeMonths {
		reasons = append(reasons, fmt.Sprintf("credit age %d months below minimum %d", norm.CreditAgeMonths, *rules.MinCreditAgeMonths))
	}
	if rules.AllowNTC != nil && !*rules.AllowNTC && norm.IsNewToCredit {
		reasons = append(reasons, "new-to-credit applicants not accepted")
	}
	if rules.MaxDPDAllowed != nil && norm.MaxDPD12M > *rules.MaxDPDAllowed {
		reasons = append(reasons, fmt.Sprintf("max DPD %d exceeds allowed %d", norm.MaxDPD12M, *rules.MaxDPDAllowed))
	}
	if rules.AllowWriteOff != nil && !*rules.AllowWriteOff && norm.HasWriteOff {
		reasons = append(reasons, "written-off account on record")
	}
	if rules.AllowSettlement != nil && !*rules.AllowSettlement && norm.HasSettlement {
		reasons = append(reasons, "settled account on record")
	}
	if rules.AllowLegalAction != nil && !*rules.AllowLegalAction && norm.HasLegalAction {
		reasons = append(reasons, "legal action on record")
	}
	if rules.MaxEnquiries30d != nil && norm.Enquiries30d > *rules.MaxEnquiries30d {
		reasons = append(reasons, fmt.Sprintf("%d enquiries in 30 days exceeds allowed %d", norm.Enquiries30d, *rules.MaxEnquiries30d))
	}
	if rules.MinAge != nil && customer.Age < *rules.MinAge {
		reasons = append(reasons, fmt.Sprintf("age %d below minimum %d", customer.Age, *rules.MinAge))
	}
	if rules.MaxAge != nil && customer.Age > *rules.MaxAge {
		reasons = append(reasons, fmt.Sprintf("age %d above maximum %d", customer.Age, *rules.MaxAge))
	}

	return reasons
}

// sizeLoan resolves the effective FOIR (overrides only ever raise it),
// derives the available EMI, and converts it into per-product amounts
// clamped by the lender's caps.
func sizeLoan(policy *dto.BankPolicy, norm *dto.NormalizedCreditProfile, customer *dto.CustomerProfile, result *dto.BankEligibilityResult) {
	foir := policy.DefaultFOIRPercent
	if override, ok := lookupFold(policy.FOIRByCategory, customer.CompanyCategory); ok && override > foir {
		foir = override
	}
	if override, ok := policy.FOIRByScoreBand[utils.ScoreBand(norm.Score)]; ok && override > foir {
		foir = override
	}

	allowedEMI := customer.MonthlySalary * foir / 100
	availableEMI := math.Max(0, allowedEMI-norm.NetMonthlyObligation)

	result.AppliedFOIRPercent = foir
	result.AvailableEMI = availableEMI

	for key, factor := range emiPerLakhFactors {
		amount := availableEMI / factor * lakh
		if maxAmount, ok := policy.LoanCaps[key]; ok && amount > maxAmount {
			amount = maxAmount
		}
		if policy.SalaryMultiplierCap != nil {
			if salaryCap := customer.MonthlySalary * *policy.SalaryMultiplierCap; amount > salaryCap {
				amount = salaryCap
			}
		}
		result.EligibleAmounts[key] = math.Round(amount)
	}
}

func approvalProbability(norm *dto.NormalizedCreditProfile, customer *dto.CustomerProfile, policy *dto.BankPolicy) int {
	probability := 50
	for _, adj := range probabilityAdjustments {
		if adj.applies(norm, customer, policy) {
			probability += adj.delta
		}
	}
	if probability < 0 {
		probability = 0
	}
	if probability > 100 {
		probability = 100
	}
	return probability
}

func containsFold(list []string, value string) bool {
	for _, item := range list {
		if strings.EqualFold(item, value) {
			return true
		}
	}
	return false
}

func lookupFold(m map[string]float64, key string) (float64, bool) {
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return 0, false
}

func countEligible(results []dto.BankEligibilityResult) int {
	n := 0
	for _, r := range results {
		if r.Eligible {
			n++
		}
	}
	return n
}
