package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/loanwise/credit-bureau-engine/dto"
)

func TestClassifySections(t *testing.T) {
	pages := []dto.Page{
		{Index: 0, Text: "CONSUMER INFORMATION\nName: Rahul Sharma\nDate of Birth: 15/08/1990\nAddress: 12 MG Road Bangalore 560001"},
		{Index: 1, Text: "CIBIL TRANSUNION SCORE\nScore: 760"},
		{Index: 2, Text: "ACCOUNT INFORMATION\nMember Name: HDFC Bank"},
		{Index: 3, Text: "ENQUIRY INFORMATION\nEnquiry Date: 01/02/2024"},
	}

	sections := ClassifySections(pages)

	assert.Equal(t, []int{0}, sections[dto.SectionPersonal])
	assert.Equal(t, []int{0}, sections[dto.SectionAddress])
	assert.Equal(t, []int{1}, sections[dto.SectionScore])
	assert.Equal(t, []int{2}, sections[dto.SectionAccountDetail])
	assert.Equal(t, []int{3}, sections[dto.SectionEnquiry])
}

func TestClassifySectionsMultiRole(t *testing.T) {
	pages := []dto.Page{
		{Index: 0, Text: "Personal Information\nCredit Score: 712\nAddress: somewhere"},
	}

	sections := ClassifySections(pages)

	assert.Contains(t, sections[dto.SectionPersonal], 0)
	assert.Contains(t, sections[dto.SectionScore], 0)
	assert.Contains(t, sections[dto.SectionAddress], 0)
}

func TestClassifySectionsNoMatch(t *testing.T) {
	pages := []dto.Page{{Index: 0, Text: "nothing recognizable here"}}
	sections := ClassifySections(pages)
	assert.Empty(t, sections[dto.SectionScore])
}

func TestSectionTextFallback(t *testing.T) {
	pages := []dto.Page{
		{Index: 0, Text: "first"},
		{Index: 1, Text: "second"},
	}
	sections := dto.SectionMap{}

	text := SectionText(pages, sections, dto.SectionScore, []int{0})
	assert.Contains(t, text, "first")
	assert.NotContains(t, text, "second")

	all := SectionText(pages, sections, dto.SectionEnquiry, AllPageIndices(pages))
	assert.Contains(t, all, "first")
	assert.Contains(t, all, "second")
}
