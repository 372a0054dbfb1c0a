package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/loanwise/credit-bureau-engine/dto"
)

func TestExtractAccountsTabular(t *testing.T) {
	text := `ACCOUNT INFORMATION
Member Name      Account Type      Date Opened    Sanctioned     Current Balance    EMI        Status
HDFC BANK        Personal Loan     12/03/2019     5,00,000       3,50,000           12,500     Live
ICICI BANK       Credit Card       05/01/2020     1,00,000       25,000             0          Live
JUNK
`

	accounts := ExtractAccounts(text)

	assert.Len(t, accounts, 2)

	assert.Equal(t, "HDFC Bank", accounts[0].BankName)
	assert.Equal(t, dto.TypePersonalLoan, accounts[0].AccountType)
	assert.Equal(t, dto.StatusLive, accounts[0].Status)
	assert.Equal(t, "2019-03-12", accounts[0].OpenedDate)
	assert.Equal(t, 500000.0, accounts[0].SanctionAmount)
	assert.Equal(t, 350000.0, accounts[0].CurrentBalance)
	assert.Equal(t, 12500.0, accounts[0].EMI)

	assert.Equal(t, dto.TypeCreditCard, accounts[1].AccountType)
	assert.Equal(t, 100000.0, accounts[1].CreditLimit)
}

func TestExtractAccountsLooseRows(t *testing.T) {
	text := `
HDFC Bank Personal Loan Live 12/03/2019 5,00,000 3,50,000 12,500
Bajaj Finance Consumer Loan Closed 05/06/2021 80,000 0
`

	accounts := ExtractAccounts(text)

	assert.Len(t, accounts, 2)
	assert.Equal(t, "HDFC Bank", accounts[0].BankName)
	assert.Equal(t, dto.TypePersonalLoan, accounts[0].AccountType)
	assert.Equal(t, dto.StatusLive, accounts[0].Status)
	assert.Equal(t, 12500.0, accounts[0].EMI)

	assert.Equal(t, "Bajaj Finance", accounts[1].BankName)
	assert.Equal(t, dto.StatusClosed, accounts[1].Status)
}

func TestExtractAccountsBlocks(t *testing.T) {
	text := `Account Information:
Member Name: HDFC BANK
Type: Personal Loan
Status: Live
Ownership: Individual
Opened: 12/03/2019
Sanctioned Amount: 5,00,000
Current Balance: 3,50,000
EMI: 12,500
Max DPD: 0

Account Information:
Member Name: AXIS BANK
Type: Gold Loan
Status: Closed
Opened: 01/02/2018
Sanctioned Amount: 2,00,000
`

	accounts := ExtractAccounts(text)

	assert.Len(t, accounts, 2)
	assert.Equal(t, "HDFC Bank", accounts[0].BankName)
	assert.Equal(t, dto.TypePersonalLoan, accounts[0].AccountType)
	assert.Equal(t, "INDIVIDUAL", accounts[0].Ownership)
	assert.Equal(t, 12500.0, accounts[0].EMI)

	assert.Equal(t, "Axis Bank", accounts[1].BankName)
	assert.Equal(t, dto.TypeGoldLoan, accounts[1].AccountType)
	assert.Equal(t, dto.StatusClosed, accounts[1].Status)
}

func TestExtractAccountsRejectsInvalid(t *testing.T) {
	// No resolvable account type: candidate dropped, not kept partial.
	text := `Account Information:
Member Name: HDFC BANK
Status: Live
`
	assert.Empty(t, ExtractAccounts(text))

	// Bank name too short.
	text = `Account Information:
Member Name: AB
Type: Personal Loan
`
	assert.Empty(t, ExtractAccounts(text))
}

func TestExtractAccountsRejectsEnquiryBlocks(t *testing.T) {
	text := `Member Name: HDFC BANK
Type: Personal Loan
Enquiry Purpose: Personal Loan
Enquiry Date: 05/01/2024
`
	assert.Empty(t, ExtractAccounts(text))
}

func TestExtractRepaymentBehavior(t *testing.T) {
	accounts := []dto.CreditAccount{
		{BankName: "HDFC Bank", AccountType: dto.TypePersonalLoan, Status: dto.StatusLive, MaxDPD12M: 30},
		{BankName: "Axis Bank", AccountType: dto.TypeGoldLoan, Status: dto.StatusSettled},
	}

	behavior := ExtractRepaymentBehavior("account restructured under scheme", accounts)

	assert.Equal(t, 30, behavior.MaxDPD)
	assert.True(t, behavior.HasSettlement)
	assert.True(t, behavior.HasRestructured)
	assert.False(t, behavior.HasWriteOff)
	assert.False(t, behavior.HasLegalAction)
}

func TestExtractAccountsEmptyText(t *testing.T) {
	assert.Empty(t, ExtractAccounts(""))
}
