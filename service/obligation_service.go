package service

import (
	"github.com/loanwise/credit-bureau-engine/dto"
)

// Obligation rule constants.
const (
	// Revolving instruments with a limit at or under this are ignored for
	// affordability.
	smallLimitThreshold = 50000.0

	// OD/flexi accounts are re-priced at this share of current outstanding
	// regardless of stated EMI.
	odFlexiOutstandingRate = 0.01

	// Installment loans with this many or fewer EMIs left are treated as
	// near-payoff and excluded.
	nearPayoffRemainingEMIs = 6
)

// ObligationCalculator computes the lender-neutral net monthly obligation
// from the parsed accounts.
type ObligationCalculator struct{}

func NewObligationCalculator() *ObligationCalculator {
	return &ObligationCalculator{}
}

// Compute walks the LIVE accounts through the exclusion rules in order and
// returns the breakdown. Accounts are annotated in place with IsObligated.
// Rule order matters: OD/flexi repricing takes precedence over the
// near-payoff exclusion, so a flexi loan with one EMI left still contributes
// 1% of its outstanding.
func (c *ObligationCalculator) Compute(accounts []dto.CreditAccount) dto.ObligationBreakdown {
	var breakdown dto.ObligationBreakdown

	for i := range accounts {
		account := &accounts[i]
		account.IsObligated = false

		if account.Status != dto.StatusLive {
			continue
		}

		switch {
		case account.AccountType == dto.TypeCreditCard && account.CreditLimit > 0 &&
			account.CreditLimit <= smallLimitThreshold:
			breakdown.ExcludedSmallLimitCards += account.EMI

		case account.AccountType == dto.TypeGoldLoan:
			breakdown.ExcludedGoldLoans += account.EMI

		case account.AccountType == dto.TypeOverdraft || account.AccountType == dto.TypeFlexiLoan:
			derived := account.CurrentBalance * odFlexiOutstandingRate
			breakdown.ODFlexiObligation += derived
			breakdown.TotalMonthlyEMI += account.EMI
			breakdown.NetObligationForFOIR += derived
			account.IsObligated = true

		case account.EMI > 0 && account.CurrentBalance/account.EMI <= nearPayoffRemainingEMIs:
			breakdown.ExcludedNearPayoff += account.EMI

		default:
			breakdown.TotalMonthlyEMI += account.EMI
			breakdown.NetObligationForFOIR += account.EMI
			account.IsObligated = true
		}
	}

	return breakdown
}
