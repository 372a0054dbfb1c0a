package utils

import (
	"regexp"
	"strings"

	"github.com/loanwise/credit-bureau-engine/dto"
)

// sectionSignatures lists the keyword signatures tested per section role.
// Matching is deliberately permissive (keyword presence after punctuation
// folding) because bureau vendors share no layout: the classifier trades
// false positives for recall, and every caller tolerates empty role lists.
var sectionSignatures = []struct {
	role     dto.SectionRole
	keywords []string
}{
	{dto.SectionPersonal, []string{
		"consumer information", "personal information", "personal details",
		"applicant information", "date of birth",
	}},
	{dto.SectionAddress, []string{
		"address information", "addresses", "address",
	}},
	{dto.SectionScore, []string{
		"cibil transunion score", "cibil score", "credit score",
		"score information", "bureau score",
	}},
	{dto.SectionAccountSummary, []string{
		"summary credit facilities", "account summary", "summary of accounts",
		"all accounts", "accounts summary",
	}},
	{dto.SectionAccountDetail, []string{
		"account information", "account details", "credit facility details",
		"loan details", "tradeline",
	}},
	{dto.SectionEnquiry, []string{
		"enquiry information", "enquiry details", "enquiries", "enquiry",
	}},
}

var punctFoldRe = regexp.MustCompile(`[:\-_/().,|]+`)

// ClassifySections tags every page with the section roles its text
// signatures match. A page may carry several roles; a role may match no
// page.
func ClassifySections(pages []dto.Page) dto.SectionMap {
	sections := make(dto.SectionMap)
	for _, page := range pages {
		folded := punctFoldRe.ReplaceAllString(strings.ToLower(page.Text), " ")
		folded = strings.Join(strings.Fields(folded), " ")
		for _, sig := range sectionSignatures {
			for _, kw := range sig.keywords {
				if strings.Contains(folded, kw) {
					sections[sig.role] = append(sections[sig.role], page.Index)
					break
				}
			}
		}
	}
	return sections
}

// SectionText concatenates the text of the pages classified under role.
// When classification found nothing the fallback indices are used instead,
// so extractors always have something to scan.
func SectionText(pages []dto.Page, sections dto.SectionMap, role dto.SectionRole, fallback []int) string {
	indices := sections[role]
	if len(indices) == 0 {
		indices = fallback
	}

	var b strings.Builder
	for _, idx := range indices {
		if idx < 0 || idx >= len(pages) {
			continue
		}
		b.WriteString(pages[idx].Text)
		b.WriteString("\n")
	}
	return b.String()
}

// AllPageIndices is the fallback set for extractors that scan the whole
// document when their section is unclassified.
func AllPageIndices(pages []dto.Page) []int {
	indices := make([]int, len(pages))
	for i := range pages {
		indices[i] = i
	}
	return indices
}
