package utils

import (
	"regexp"

	"github.com/loanwise/credit-bureau-engine/dto"
)

// Labeled score patterns, tried in priority order. The proximity pattern at
// the end is the loosest: any 3-digit number within a few tokens of the word
// "score".
var scorePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)cibil\s*(?:transunion\s*)?score\s*[:\-]?\s*(\d{3})`),
	regexp.MustCompile(`(?i)(?:credit|bureau)\s*score\s*[:\-]?\s*(\d{3})`),
	regexp.MustCompile(`(?i)score\s*(?:value)?\s*[:\-]?\s*(\d{3})\b`),
	regexp.MustCompile(`(?i)score\b.{0,30}?\b(\d{3})\b`),
}

var (
	vintageMonthsPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)credit\s*(?:vintage|age|history)\s*[:\-]?\s*(\d{1,3})\s*months`),
		regexp.MustCompile(`(?i)(?:vintage|history)\s*of\s*(\d{1,3})\s*months`),
	}
	vintageYearsRe   = regexp.MustCompile(`(?i)(\d{1,2})\s*years?(?:\s*(\d{1,2})\s*months?)?\s*of\s*credit`)
	liveAccountsRe   = regexp.MustCompile(`(?i)(?:live|active|open)\s*accounts?\s*[:\-]?\s*(\d{1,3})`)
	closedAccountsRe = regexp.MustCompile(`(?i)closed\s*accounts?\s*[:\-]?\s*(\d{1,3})`)
)

// ExtractScoreSummary reads the bureau score and summary counters. A score
// is accepted only in 300-900; out-of-range or absent matches yield 0 with
// the VERY_POOR band.
func ExtractScoreSummary(text string) dto.CreditScoreSummary {
	summary := dto.CreditScoreSummary{}

	for _, re := range scorePatterns {
		if m := re.FindStringSubmatch(text); len(m) > 1 {
			score := ParseIntOr(m[1], 0)
			if score >= 300 && score <= 900 {
				summary.Score = score
				break
			}
		}
	}
	summary.ScoreBand = ScoreBand(summary.Score)

	for _, re := range vintageMonthsPatterns {
		if m := re.FindStringSubmatch(text); len(m) > 1 {
			if months := ParseIntOr(m[1], 0); months > 0 {
				summary.VintageMonths = months
				break
			}
		}
	}
	if summary.VintageMonths == 0 {
		if m := vintageYearsRe.FindStringSubmatch(text); len(m) > 1 {
			summary.VintageMonths = ParseIntOr(m[1], 0)*12 + ParseIntOr(m[2], 0)
		}
	}

	if m := liveAccountsRe.FindStringSubmatch(text); len(m) > 1 {
		summary.LiveAccounts = ParseIntOr(m[1], 0)
	}
	if m := closedAccountsRe.FindStringSubmatch(text); len(m) > 1 {
		summary.ClosedAccounts = ParseIntOr(m[1], 0)
	}
	summary.Enquiries30d = ExtractEnquirySummary(text).Last30Days

	return summary
}
