package utils

import (
	"regexp"
	"strings"

	"github.com/loanwise/credit-bureau-engine/dto"
)

var (
	formFeedRe   = regexp.MustCompile(`\f`)
	pageMarkerRe = regexp.MustCompile(`(?i)page\s*[:\-]?\s*\d+\s*(?:of|/)\s*\d+`)
	ruleLineRe   = regexp.MustCompile(`(?m)^[\-_=*]{25,}\s*$`)
)

// SplitPages divides raw report text into page-indexed chunks. PDF text
// extraction emits form feeds between pages; OCR output usually keeps the
// vendor's "Page N of M" footer; some vendors only draw long separator
// rules. When none of the markers appear the whole document is one page.
// Empty input yields an empty list; any non-empty input yields at least one
// page.
func SplitPages(text string) []dto.Page {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var chunks []string
	switch {
	case formFeedRe.MatchString(text):
		chunks = formFeedRe.Split(text, -1)
	case pageMarkerRe.MatchString(text):
		chunks = splitAfterMarkers(text)
	case ruleLineRe.MatchString(text):
		chunks = ruleLineRe.Split(text, -1)
	default:
		chunks = []string{text}
	}

	pages := make([]dto.Page, 0, len(chunks))
	for _, chunk := range chunks {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		pages = append(pages, dto.Page{Index: len(pages), Text: chunk})
	}
	if len(pages) == 0 {
		pages = append(pages, dto.Page{Index: 0, Text: text})
	}
	return pages
}

// splitAfterMarkers cuts the document immediately after each page footer so
// the footer stays with the page it closes.
func splitAfterMarkers(text string) []string {
	locs := pageMarkerRe.FindAllStringIndex(text, -1)
	var chunks []string
	start := 0
	for _, loc := range locs {
		chunks = append(chunks, text[start:loc[1]])
		start = loc[1]
	}
	if start < len(text) {
		chunks = append(chunks, text[start:])
	}
	return chunks
}
