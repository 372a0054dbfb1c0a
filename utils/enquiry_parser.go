package utils

import (
	"regexp"

	"github.com/loanwise/credit-bureau-engine/dto"
)

// Window-labeled enquiry counters, one ordered pattern list per window.
var (
	enquiry30Patterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)enquir(?:y|ies)\s*(?:in\s*)?(?:the\s*)?last\s*30\s*days\s*[:\-]?\s*(\d{1,3})`),
		regexp.MustCompile(`(?i)30\s*days?\s*enquir(?:y|ies)\s*[:\-]?\s*(\d{1,3})`),
	}
	enquiry90Patterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)enquir(?:y|ies)\s*(?:in\s*)?(?:the\s*)?last\s*90\s*days\s*[:\-]?\s*(\d{1,3})`),
		regexp.MustCompile(`(?i)90\s*days?\s*enquir(?:y|ies)\s*[:\-]?\s*(\d{1,3})`),
	}
	enquiry12MPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)enquir(?:y|ies)\s*(?:in\s*)?(?:the\s*)?last\s*12\s*months?\s*[:\-]?\s*(\d{1,3})`),
		regexp.MustCompile(`(?i)total\s*enquir(?:y|ies)\s*[:\-]?\s*(\d{1,3})`),
	}

	enquiryRowRe = regexp.MustCompile(`(?im)^.*enquiry\s*(?:date|purpose).*$`)
)

// ExtractEnquirySummary reads labeled enquiry counters for the 30/90-day and
// 12-month windows. When no 12-month counter is printed, the number of
// enquiry rows in the document is used as a floor.
func ExtractEnquirySummary(text string) dto.EnquirySummary {
	summary := dto.EnquirySummary{
		Last30Days:  firstCount(enquiry30Patterns, text),
		Last90Days:  firstCount(enquiry90Patterns, text),
		Last12Month: firstCount(enquiry12MPatterns, text),
	}

	if summary.Last12Month == 0 {
		if rows := len(enquiryRowRe.FindAllString(text, -1)); rows > 1 {
			// header counts as one row
			summary.Last12Month = rows - 1
		}
	}
	if summary.Last90Days < summary.Last30Days {
		summary.Last90Days = summary.Last30Days
	}
	if summary.Last12Month < summary.Last90Days {
		summary.Last12Month = summary.Last90Days
	}
	return summary
}

func firstCount(patterns []*regexp.Regexp, text string) int {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(text); len(m) > 1 {
			return ParseIntOr(m[1], 0)
		}
	}
	return 0
}
