package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/loanwise/credit-bureau-engine/dto"
)

func TestExtractScoreSummary(t *testing.T) {
	text := `
		CIBIL TRANSUNION SCORE
		CIBIL Score: 765
		Credit Vintage: 84 months
		Live Accounts: 4
		Closed Accounts: 2
		Enquiries in last 30 days: 1
	`

	summary := ExtractScoreSummary(text)

	assert.Equal(t, 765, summary.Score)
	assert.Equal(t, dto.BandExcellent, summary.ScoreBand)
	assert.Equal(t, 84, summary.VintageMonths)
	assert.Equal(t, 4, summary.LiveAccounts)
	assert.Equal(t, 2, summary.ClosedAccounts)
	assert.Equal(t, 1, summary.Enquiries30d)
}

func TestExtractScoreProximityFallback(t *testing.T) {
	summary := ExtractScoreSummary("your score stands at 712 as of this report")
	assert.Equal(t, 712, summary.Score)
	assert.Equal(t, dto.BandGood, summary.ScoreBand)
}

func TestExtractScoreRejectsOutOfRange(t *testing.T) {
	assert.Equal(t, 0, ExtractScoreSummary("Credit Score: 999").Score)
	assert.Equal(t, 0, ExtractScoreSummary("Credit Score: 150").Score)
	assert.Equal(t, 0, ExtractScoreSummary("no score anywhere").Score)
}

func TestExtractScoreBoundaries(t *testing.T) {
	assert.Equal(t, 300, ExtractScoreSummary("Credit Score: 300").Score)
	assert.Equal(t, 900, ExtractScoreSummary("Credit Score: 900").Score)
}

func TestExtractScoreVintageYearsForm(t *testing.T) {
	summary := ExtractScoreSummary("Score: 740 with 7 years 2 months of credit history")
	assert.Equal(t, 86, summary.VintageMonths)
}

func TestExtractEnquirySummary(t *testing.T) {
	text := `
		ENQUIRY INFORMATION
		Enquiries in last 30 days: 2
		Enquiries in last 90 days: 5
		Enquiries in last 12 months: 9
	`

	summary := ExtractEnquirySummary(text)

	assert.Equal(t, 2, summary.Last30Days)
	assert.Equal(t, 5, summary.Last90Days)
	assert.Equal(t, 9, summary.Last12Month)
}

func TestExtractEnquirySummaryWindowConsistency(t *testing.T) {
	summary := ExtractEnquirySummary("Enquiries in last 30 days: 6")
	assert.Equal(t, 6, summary.Last30Days)
	assert.GreaterOrEqual(t, summary.Last90Days, summary.Last30Days)
	assert.GreaterOrEqual(t, summary.Last12Month, summary.Last90Days)
}
