package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/loanwise/credit-bureau-engine/dto"
)

func TestComputeObligationStandardAccounts(t *testing.T) {
	calc := NewObligationCalculator()

	accounts := []dto.CreditAccount{
		{BankName: "HDFC Bank", AccountType: dto.TypePersonalLoan, Status: dto.StatusLive, CurrentBalance: 350000, EMI: 12500},
		{BankName: "ICICI Bank", AccountType: dto.TypeHomeLoan, Status: dto.StatusLive, CurrentBalance: 2500000, EMI: 22000},
	}

	breakdown := calc.Compute(accounts)

	assert.Equal(t, 34500.0, breakdown.TotalMonthlyEMI)
	assert.Equal(t, 34500.0, breakdown.NetObligationForFOIR)
	assert.True(t, accounts[0].IsObligated)
	assert.True(t, accounts[1].IsObligated)
}

func TestComputeObligationClosedAccountIgnored(t *testing.T) {
	calc := NewObligationCalculator()

	accounts := []dto.CreditAccount{
		{BankName: "HDFC Bank", AccountType: dto.TypePersonalLoan, Status: dto.StatusClosed, CurrentBalance: 0, EMI: 0},
	}

	breakdown := calc.Compute(accounts)

	assert.Equal(t, 0.0, breakdown.NetObligationForFOIR)
	assert.False(t, accounts[0].IsObligated)
}

func TestComputeObligationSmallLimitCardExcluded(t *testing.T) {
	calc := NewObligationCalculator()

	accounts := []dto.CreditAccount{
		{BankName: "ICICI Bank", AccountType: dto.TypeCreditCard, Status: dto.StatusLive, CreditLimit: 30000, EMI: 1500},
		{BankName: "HDFC Bank", AccountType: dto.TypeCreditCard, Status: dto.StatusLive, CreditLimit: 200000, CurrentBalance: 900000, EMI: 4000},
	}

	breakdown := calc.Compute(accounts)

	assert.Equal(t, 1500.0, breakdown.ExcludedSmallLimitCards)
	assert.Equal(t, 4000.0, breakdown.TotalMonthlyEMI)
	assert.Equal(t, 4000.0, breakdown.NetObligationForFOIR)
	assert.False(t, accounts[0].IsObligated)
	assert.True(t, accounts[1].IsObligated)
}

func TestComputeObligationGoldLoanExcluded(t *testing.T) {
	calc := NewObligationCalculator()

	accounts := []dto.CreditAccount{
		{BankName: "Axis Bank", AccountType: dto.TypeGoldLoan, Status: dto.StatusLive, CurrentBalance: 150000, EMI: 5000},
	}

	breakdown := calc.Compute(accounts)

	assert.Equal(t, 5000.0, breakdown.ExcludedGoldLoans)
	assert.Equal(t, 0.0, breakdown.NetObligationForFOIR)
}

func TestComputeObligationODFlexiRepriced(t *testing.T) {
	calc := NewObligationCalculator()

	accounts := []dto.CreditAccount{
		{BankName: "Bajaj Finance", AccountType: dto.TypeFlexiLoan, Status: dto.StatusLive, CurrentBalance: 200000, EMI: 0},
	}

	breakdown := calc.Compute(accounts)

	assert.Equal(t, 2000.0, breakdown.ODFlexiObligation)
	assert.Equal(t, 2000.0, breakdown.NetObligationForFOIR)
	assert.Equal(t, 0.0, breakdown.TotalMonthlyEMI)
	assert.True(t, accounts[0].IsObligated)
}

// An OD/flexi account with few EMIs left is still repriced at 1% of
// outstanding, never dropped by the near-payoff rule.
func TestComputeObligationODFlexiPrecedesNearPayoff(t *testing.T) {
	calc := NewObligationCalculator()

	accounts := []dto.CreditAccount{
		{BankName: "HDFC Bank", AccountType: dto.TypeOverdraft, Status: dto.StatusLive, CurrentBalance: 50000, EMI: 10000},
	}

	breakdown := calc.Compute(accounts)

	assert.Equal(t, 500.0, breakdown.ODFlexiObligation)
	assert.Equal(t, 500.0, breakdown.NetObligationForFOIR)
	assert.Equal(t, 0.0, breakdown.ExcludedNearPayoff)
}

// The small-limit exclusion applies to credit cards only; an overdraft with
// a small limit is still repriced at 1% of outstanding.
func TestComputeObligationSmallLimitODStillRepriced(t *testing.T) {
	calc := NewObligationCalculator()

	accounts := []dto.CreditAccount{
		{BankName: "RBL Bank", AccountType: dto.TypeOverdraft, Status: dto.StatusLive, CreditLimit: 30000, CurrentBalance: 20000, EMI: 0},
	}

	breakdown := calc.Compute(accounts)

	assert.Equal(t, 0.0, breakdown.ExcludedSmallLimitCards)
	assert.Equal(t, 200.0, breakdown.ODFlexiObligation)
	assert.Equal(t, 200.0, breakdown.NetObligationForFOIR)
	assert.True(t, accounts[0].IsObligated)
}

func TestComputeObligationNearPayoffExcluded(t *testing.T) {
	calc := NewObligationCalculator()

	accounts := []dto.CreditAccount{
		{BankName: "HDFC Bank", AccountType: dto.TypePersonalLoan, Status: dto.StatusLive, CurrentBalance: 50000, EMI: 10000},
	}

	breakdown := calc.Compute(accounts)

	assert.Equal(t, 10000.0, breakdown.ExcludedNearPayoff)
	assert.Equal(t, 0.0, breakdown.NetObligationForFOIR)
}

func TestComputeObligationNetNeverNegative(t *testing.T) {
	calc := NewObligationCalculator()

	breakdown := calc.Compute(nil)
	assert.GreaterOrEqual(t, breakdown.NetObligationForFOIR, 0.0)

	breakdown = calc.Compute([]dto.CreditAccount{
		{BankName: "HDFC Bank", AccountType: dto.TypeGoldLoan, Status: dto.StatusLive, EMI: 9000},
		{BankName: "ICICI Bank", AccountType: dto.TypeCreditCard, Status: dto.StatusLive, CreditLimit: 20000, EMI: 700},
	})
	assert.GreaterOrEqual(t, breakdown.NetObligationForFOIR, 0.0)
}
