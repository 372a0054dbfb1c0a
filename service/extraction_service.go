package service

import (
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/loanwise/credit-bureau-engine/dto"
	"github.com/loanwise/credit-bureau-engine/utils"
)

// vendorCleanupRules strips cosmetic noise per source vendor before the
// pipeline runs. The hint never changes the extraction logic itself; unknown
// hints fall back to the generic rule set.
var vendorCleanupRules = map[string][]*regexp.Regexp{
	"cibil": {
		regexp.MustCompile(`(?im)^.*CIBIL.*all rights reserved.*$`),
		regexp.MustCompile(`(?im)^\s*CONSUMER CIR\s*$`),
	},
	"experian": {
		regexp.MustCompile(`(?im)^.*experian credit information company.*$`),
	},
	"equifax": {
		regexp.MustCompile(`(?im)^.*equifax credit information services.*$`),
	},
	"crif": {
		regexp.MustCompile(`(?im)^.*CRIF high mark.*$`),
	},
}

var genericCleanupRules = []*regexp.Regexp{
	regexp.MustCompile(`(?im)^\s*this report is confidential.*$`),
	regexp.MustCompile(`[\x00\x0b]`),
}

// confidenceWeights is the completeness scoring table: each entry adds its
// weight when present. Kept as data so the weights are testable and tunable
// in one place.
var confidenceWeights = []struct {
	name    string
	weight  float64
	present func(p *dto.StructuredProfile) bool
}{
	{"name", 0.10, func(p *dto.StructuredProfile) bool { return p.Personal.Name != dto.UnknownField }},
	{"pan", 0.10, func(p *dto.StructuredProfile) bool { return p.Personal.PAN != "" }},
	{"dob", 0.10, func(p *dto.StructuredProfile) bool { return p.Personal.DateOfBirth != "" }},
	{"score", 0.25, func(p *dto.StructuredProfile) bool { return p.ScoreSummary.Score > 0 }},
	{"accounts", 0.15, func(p *dto.StructuredProfile) bool { return len(p.Accounts) >= 1 }},
	{"accounts_3plus", 0.10, func(p *dto.StructuredProfile) bool { return len(p.Accounts) >= 3 }},
	{"address", 0.10, func(p *dto.StructuredProfile) bool { return len(p.Addresses) >= 1 }},
	{"obligation", 0.10, func(p *dto.StructuredProfile) bool {
		return p.Obligation.TotalMonthlyEMI > 0 || p.Obligation.NetObligationForFOIR > 0
	}},
}

// ExtractionService turns raw report text into a StructuredProfile.
// Stateless: every call is a pure function of its input.
type ExtractionService struct {
	logger     *logrus.Logger
	obligation *ObligationCalculator
}

func NewExtractionService(logger *logrus.Logger, obligation *ObligationCalculator) *ExtractionService {
	return &ExtractionService{
		logger:     logger,
		obligation: obligation,
	}
}

// Extract runs the full pipeline: cleanup, page segmentation, section
// classification, per-section field extraction, obligation computation, and
// the derived snapshot. Missing fields degrade to sentinels; the only
// terminal failure is input with neither a usable score nor identifiable
// personal details.
func (s *ExtractionService) Extract(text, sourceHint string) (*dto.StructuredProfile, error) {
	text = s.cleanup(text, sourceHint)

	pages := utils.SplitPages(text)
	sections := utils.ClassifySections(pages)

	firstPage := []int{0}
	allPages := utils.AllPageIndices(pages)

	personalText := utils.SectionText(pages, sections, dto.SectionPersonal, firstPage)
	addressText := utils.SectionText(pages, sections, dto.SectionAddress, firstPage)
	scoreText := utils.SectionText(pages, sections, dto.SectionScore, firstPage)
	accountText := utils.SectionText(pages, sections, dto.SectionAccountDetail, allPages)
	enquiryText := utils.SectionText(pages, sections, dto.SectionEnquiry, allPages)

	profile := &dto.StructuredProfile{
		Personal:   utils.ExtractPersonalDetails(personalText),
		Addresses:  utils.ExtractAddresses(addressText),
		Accounts:   utils.ExtractAccounts(accountText),
		Enquiries:  utils.ExtractEnquirySummary(enquiryText),
		SourceHint: sourceHint,
		PageCount:  len(pages),
	}
	profile.ScoreSummary = utils.ExtractScoreSummary(scoreText)
	if profile.ScoreSummary.Score == 0 {
		// Score section missed or unclassified; rescan the whole document
		// with the same pattern chain before giving up.
		profile.ScoreSummary = utils.ExtractScoreSummary(text)
	}
	profile.Repayment = utils.ExtractRepaymentBehavior(accountText, profile.Accounts)

	profile.Obligation = s.obligation.Compute(profile.Accounts)
	profile.HasScore = profile.ScoreSummary.Score > 0
	profile.HasAccounts = len(profile.Accounts) > 0
	profile.Snapshot = buildSnapshot(profile)
	profile.ConfidenceScore = confidenceScore(profile)

	if !profile.HasScore && profile.Personal.Name == dto.UnknownField && profile.Personal.PAN == "" {
		return nil, dto.ErrUnrecognizedReport
	}

	s.logger.WithFields(logrus.Fields{
		"pages":      profile.PageCount,
		"accounts":   len(profile.Accounts),
		"score":      profile.ScoreSummary.Score,
		"confidence": profile.ConfidenceScore,
	}).Info("report extracted")

	return profile, nil
}

func (s *ExtractionService) cleanup(text, sourceHint string) string {
	var rules []*regexp.Regexp
	if vendorRules, ok := vendorCleanupRules[strings.ToLower(sourceHint)]; ok {
		rules = append(rules, vendorRules...)
	}
	rules = append(rules, genericCleanupRules...)
	for _, re := range rules {
		text = re.ReplaceAllString(text, "")
	}
	return text
}

func buildSnapshot(p *dto.StructuredProfile) dto.CreditProfileSnapshot {
	score := p.ScoreSummary.Score

	riskBand := dto.RiskHigh
	switch {
	case score >= 750:
		riskBand = dto.RiskLow
	case score >= 700:
		riskBand = dto.RiskMedium
	}

	liveLoans := 0
	for _, account := range p.Accounts {
		if account.Status == dto.StatusLive {
			liveLoans++
		}
	}

	btEligible := score >= 700 &&
		!p.Repayment.HasSettlement && !p.Repayment.HasWriteOff &&
		p.Repayment.MaxDPD == 0

	return dto.CreditProfileSnapshot{
		Score:                   score,
		RiskBand:                riskBand,
		LiveLoanCount:           liveLoans,
		NetObligation:           p.Obligation.NetObligationForFOIR,
		CreditAgeMonths:         p.ScoreSummary.VintageMonths,
		BalanceTransferEligible: btEligible,
	}
}

func confidenceScore(p *dto.StructuredProfile) float64 {
	score := 0.0
	for _, check := range confidenceWeights {
		if check.present(p) {
			score += check.weight
		}
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}
