package utils

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/loanwise/credit-bureau-engine/dto"
)

// monthNumbers maps three-letter month names to their zero-padded numbers.
var monthNumbers = map[string]string{
	"jan": "01", "feb": "02", "mar": "03", "apr": "04",
	"may": "05", "jun": "06", "jul": "07", "aug": "08",
	"sep": "09", "oct": "10", "nov": "11", "dec": "12",
}

var (
	isoDateRe     = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	numericDateRe = regexp.MustCompile(`(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{4})`)
	shortYearRe   = regexp.MustCompile(`(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{2})$`)
	namedMonthRe  = regexp.MustCompile(`(?i)(\d{1,2})[\s\-/]*([a-z]{3})[a-z]*[\s\-/,]*(\d{4})`)
)

// NormalizeDate converts a date token in any supported report format to
// YYYY-MM-DD. Already normalized input passes through unchanged. Returns ""
// when the token cannot be read as a date.
func NormalizeDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	if m := isoDateRe.FindStringSubmatch(s); m != nil {
		return s
	}

	// DD/MM/YYYY and punctuation variants. Bureau reports print day first.
	if m := numericDateRe.FindStringSubmatch(s); m != nil {
		return m[3] + "-" + pad2(m[2]) + "-" + pad2(m[1])
	}

	// DD-Mon-YYYY, "12 Mar 2019", "12 March, 2019"
	if m := namedMonthRe.FindStringSubmatch(s); m != nil {
		if num, ok := monthNumbers[strings.ToLower(m[2])]; ok {
			return m[3] + "-" + num + "-" + pad2(m[1])
		}
	}

	// DD/MM/YY with a pivot: 2-digit years below 50 are 20xx.
	if m := shortYearRe.FindStringSubmatch(s); m != nil {
		yy, _ := strconv.Atoi(m[3])
		century := "19"
		if yy < 50 {
			century = "20"
		}
		return century + m[3] + "-" + pad2(m[2]) + "-" + pad2(m[1])
	}

	return ""
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

var amountCleanRe = regexp.MustCompile(`(?i)rs\.?|inr|₹|,|\s`)

// ParseAmount reads a numeric token with currency/thousands noise tolerated.
// Malformed tokens degrade to 0, never an error.
func ParseAmount(raw string) float64 {
	cleaned := amountCleanRe.ReplaceAllString(raw, "")
	if cleaned == "" || cleaned == "-" {
		return 0
	}
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return amount
}

// ParseIntOr reads an integer token, returning def on failure.
func ParseIntOr(raw string, def int) int {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	n, err := strconv.Atoi(cleaned)
	if err != nil {
		return def
	}
	return n
}

// ScoreBand maps a bureau score to its band label.
func ScoreBand(score int) string {
	switch {
	case score >= 750:
		return dto.BandExcellent
	case score >= 700:
		return dto.BandGood
	case score >= 650:
		return dto.BandFair
	case score >= 550:
		return dto.BandPoor
	default:
		return dto.BandVeryPoor
	}
}

// bankAliases maps recognizable substrings to canonical lender names.
// Longer, more specific keys are listed first so e.g. "idfc first" wins
// before a generic match.
var bankAliases = []struct {
	key  string
	name string
}{
	{"state bank of india", "State Bank of India"},
	{"sbi", "State Bank of India"},
	{"hdfc", "HDFC Bank"},
	{"icici", "ICICI Bank"},
	{"axis", "Axis Bank"},
	{"kotak", "Kotak Mahindra Bank"},
	{"idfc", "IDFC First Bank"},
	{"indusind", "IndusInd Bank"},
	{"yes bank", "Yes Bank"},
	{"punjab national", "Punjab National Bank"},
	{"pnb", "Punjab National Bank"},
	{"bank of baroda", "Bank of Baroda"},
	{"canara", "Canara Bank"},
	{"union bank", "Union Bank of India"},
	{"federal", "Federal Bank"},
	{"rbl", "RBL Bank"},
	{"au small", "AU Small Finance Bank"},
	{"bajaj", "Bajaj Finance"},
	{"hdb", "HDB Financial Services"},
	{"tata capital", "Tata Capital"},
	{"aditya birla", "Aditya Birla Finance"},
	{"fullerton", "Fullerton India"},
	{"indian bank", "Indian Bank"},
	{"bank of india", "Bank of India"},
	{"citibank", "Citibank"},
	{"citi", "Citibank"},
	{"standard chartered", "Standard Chartered Bank"},
}

var embeddedIDRe = regexp.MustCompile(`\b[0-9Xx*]{4,}\b`)

// NormalizeBankName resolves a raw member/lender label to a canonical name
// and strips embedded account IDs. Returns "" when no usable name remains.
func NormalizeBankName(raw string) string {
	cleaned := embeddedIDRe.ReplaceAllString(raw, " ")
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	lower := strings.ToLower(cleaned)

	for _, alias := range bankAliases {
		if strings.Contains(lower, alias.key) {
			return alias.name
		}
	}

	cleaned = strings.Trim(cleaned, " .:-")
	if len(cleaned) < 3 {
		return ""
	}
	return titleCase(cleaned)
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// accountTypeKeywords is scanned in order; the first matching key decides
// the category. Specific products come before generic ones so "two wheeler
// loan" never resolves as AUTO_LOAN.
var accountTypeKeywords = []struct {
	key string
	typ dto.AccountType
}{
	{"two wheeler", dto.TypeTwoWheelerLoan},
	{"two-wheeler", dto.TypeTwoWheelerLoan},
	{"credit card", dto.TypeCreditCard},
	{"creditcard", dto.TypeCreditCard},
	{"gold", dto.TypeGoldLoan},
	{"housing", dto.TypeHomeLoan},
	{"home loan", dto.TypeHomeLoan},
	{"mortgage", dto.TypeHomeLoan},
	{"property", dto.TypePropertyLoan},
	{"loan against property", dto.TypePropertyLoan},
	{"auto loan", dto.TypeAutoLoan},
	{"car loan", dto.TypeAutoLoan},
	{"vehicle", dto.TypeAutoLoan},
	{"education", dto.TypeEducationLoan},
	{"student loan", dto.TypeEducationLoan},
	{"business", dto.TypeBusinessLoan},
	{"commercial", dto.TypeBusinessLoan},
	{"consumer", dto.TypeConsumerLoan},
	{"consumer durable", dto.TypeConsumerLoan},
	{"overdraft", dto.TypeOverdraft},
	{"od account", dto.TypeOverdraft},
	{"flexi", dto.TypeFlexiLoan},
	{"personal", dto.TypePersonalLoan},
}

// NormalizeAccountType maps a free-text product label to its category.
// Unmatched but loan-like text maps to OTHER_LOAN; anything else is rejected.
func NormalizeAccountType(raw string) (dto.AccountType, bool) {
	lower := strings.ToLower(raw)
	for _, kw := range accountTypeKeywords {
		if strings.Contains(lower, kw.key) {
			return kw.typ, true
		}
	}
	if strings.Contains(lower, "loan") {
		return dto.TypeOtherLoan, true
	}
	return "", false
}

// NormalizeStatus maps a free-text account status to its enumeration.
func NormalizeStatus(raw string) dto.AccountStatus {
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "written off"), strings.Contains(lower, "write-off"),
		strings.Contains(lower, "write off"), strings.Contains(lower, "wilful default"):
		return dto.StatusWrittenOff
	case strings.Contains(lower, "settled"), strings.Contains(lower, "settlement"):
		return dto.StatusSettled
	case strings.Contains(lower, "closed"):
		return dto.StatusClosed
	default:
		return dto.StatusLive
	}
}
