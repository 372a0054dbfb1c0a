package utils

import (
	"regexp"
	"strings"

	"github.com/loanwise/credit-bureau-engine/dto"
)

// accountFormat is one entry in the format-resolver strategy table: a
// detector plus the parser it dispatches to.
type accountFormat struct {
	name   string
	detect func(text string) bool
	parse  func(text string) []dto.CreditAccount
}

// accountFormats is tried in fixed priority order; the first entry whose
// parser yields at least one valid account wins. New vendor layouts are
// supported by appending entries, not by editing the loop.
var accountFormats = []accountFormat{
	{"tabular", detectTabularHeader, parseTabularRows},
	{"loose_row", detectLooseRows, parseLooseRows},
	{"block", func(string) bool { return true }, parseAccountBlocks},
}

// ExtractAccounts resolves which account layout the vendor used and parses
// it. Candidates that fail validation are dropped silently; an empty result
// means no recognizable accounts, not an error.
func ExtractAccounts(text string) []dto.CreditAccount {
	for _, format := range accountFormats {
		if !format.detect(text) {
			continue
		}
		if accounts := format.parse(text); len(accounts) > 0 {
			return accounts
		}
	}
	return nil
}

// --- tabular layout ---

var tabularHeaderTokens = []string{
	"member name", "lender", "account type", "ownership", "date opened",
	"opened", "sanctioned", "current balance", "credit limit", "emi",
	"status", "overdue",
}

var cellSplitRe = regexp.MustCompile(`\s{2,}|\t+|\s*\|\s*`)

// detectTabularHeader looks for an explicit column-header line: at least
// three known header tokens on one line.
func detectTabularHeader(text string) bool {
	return findTabularHeaderLine(strings.Split(text, "\n")) >= 0
}

func findTabularHeaderLine(lines []string) int {
	for i, line := range lines {
		lower := strings.ToLower(line)
		hits := 0
		for _, token := range tabularHeaderTokens {
			if strings.Contains(lower, token) {
				hits++
			}
		}
		if hits >= 3 {
			return i
		}
	}
	return -1
}

// parseTabularRows reads the rows below the header, splitting each into
// cells on column gaps or pipes and resolving fields cell by cell.
func parseTabularRows(text string) []dto.CreditAccount {
	lines := strings.Split(text, "\n")
	header := findTabularHeaderLine(lines)
	if header < 0 {
		return nil
	}

	var accounts []dto.CreditAccount
	for _, line := range lines[header+1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		cells := cellSplitRe.Split(line, -1)
		if len(cells) < 3 {
			continue
		}
		if account, ok := accountFromCells(cells, line); ok {
			accounts = append(accounts, account)
		}
	}
	return accounts
}

func accountFromCells(cells []string, raw string) (dto.CreditAccount, bool) {
	account := dto.CreditAccount{Status: dto.StatusLive}

	account.BankName = NormalizeBankName(cells[0])

	var amounts []float64
	for i, cell := range cells {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		if account.AccountType == "" {
			if typ, ok := NormalizeAccountType(cell); ok {
				account.AccountType = typ
				continue
			}
		}
		if account.OpenedDate == "" {
			if iso := NormalizeDate(cell); iso != "" {
				account.OpenedDate = iso
				continue
			}
		}
		if i > 0 && looksNumeric(cell) {
			amounts = append(amounts, ParseAmount(cell))
			continue
		}
		if hasStatusKeyword(cell) {
			account.Status = NormalizeStatus(cell)
		}
	}

	// Column convention across tabular vendors: sanction, balance, EMI.
	assignAmounts(&account, amounts)
	account.MaxDPD12M = extractDPD(raw)

	return validateAccount(account, raw)
}

// --- loose rows: table rows flattened to single lines upstream ---

var statusKeywordRe = regexp.MustCompile(`(?i)\b(live|active|open|current|closed|settled|written\s*off|write-?off)\b`)

func hasStatusKeyword(s string) bool {
	return statusKeywordRe.MatchString(s)
}

var anyDateRe = regexp.MustCompile(`\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4}|\d{1,2}[\s\-/][A-Za-z]{3}[\s\-/,]*\d{4}`)

// detectLooseRows fires when a status keyword and a date co-occur on one
// line without a tabular header anywhere.
func detectLooseRows(text string) bool {
	if detectTabularHeader(text) {
		return false
	}
	for _, line := range strings.Split(text, "\n") {
		if statusKeywordRe.MatchString(line) && anyDateRe.MatchString(line) {
			return true
		}
	}
	return false
}

// parseLooseRows scrapes each qualifying line for the account fields.
func parseLooseRows(text string) []dto.CreditAccount {
	var accounts []dto.CreditAccount
	for _, line := range strings.Split(text, "\n") {
		if !statusKeywordRe.MatchString(line) || !anyDateRe.MatchString(line) {
			continue
		}

		account := dto.CreditAccount{
			Status:     NormalizeStatus(statusKeywordRe.FindString(line)),
			OpenedDate: NormalizeDate(anyDateRe.FindString(line)),
			MaxDPD12M:  extractDPD(line),
		}

		typ, ok := NormalizeAccountType(line)
		if !ok {
			continue
		}
		account.AccountType = typ

		account.BankName = NormalizeBankName(bankPortion(line))

		// Dates are removed first so their year digits are not read as money.
		moneyLine := anyDateRe.ReplaceAllString(line, " ")
		var amounts []float64
		for _, m := range amountTokenRe.FindAllString(moneyLine, -1) {
			amounts = append(amounts, ParseAmount(m))
		}
		assignAmounts(&account, amounts)

		if valid, ok := validateAccount(account, line); ok {
			accounts = append(accounts, valid)
		}
	}
	return accounts
}

// amountTokenRe matches money tokens only: grouped thousands or values with
// at least four digits, so years and DPD counters are not mistaken for
// amounts.
var amountTokenRe = regexp.MustCompile(`\b\d{1,3}(?:,\d{2,3})+(?:\.\d+)?\b|\b\d{4,9}(?:\.\d+)?\b`)

var typeKeywordPosRe = regexp.MustCompile(`(?i)\b(personal|housing|home|auto|car|vehicle|two.wheeler|credit\s*card|gold|business|education|consumer|overdraft|flexi|property|loan)\b`)

// bankPortion returns the lead of the line up to the first product keyword,
// where loose rows print the lender name.
func bankPortion(line string) string {
	if loc := typeKeywordPosRe.FindStringIndex(line); loc != nil {
		return line[:loc[0]]
	}
	return line
}

// --- generic blocks ---

// blockHeaderPatterns are the alternative per-account header phrasings,
// tried in sequence; the first one that splits the text into two or more
// blocks is used. Failing all, blank-line paragraphs are the blocks.
var blockHeaderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)^\s*account\s*(?:information|details|#?\d*)\s*[:\-]?\s*$`),
	regexp.MustCompile(`(?im)^\s*credit\s*facility\b.*$`),
	regexp.MustCompile(`(?im)^\s*(?:member|lender)\s*name\s*[:\-]`),
}

var blankLineRe = regexp.MustCompile(`\n\s*\n`)

func splitAccountBlocks(text string) []string {
	for _, re := range blockHeaderPatterns {
		locs := re.FindAllStringIndex(text, -1)
		if len(locs) == 0 {
			continue
		}
		var blocks []string
		for i, loc := range locs {
			end := len(text)
			if i+1 < len(locs) {
				end = locs[i+1][0]
			}
			blocks = append(blocks, text[loc[0]:end])
		}
		return blocks
	}
	return blankLineRe.Split(text, -1)
}

var (
	blockBankRe      = regexp.MustCompile(`(?i)(?:member|lender|bank)\s*(?:name)?\s*[:\-]\s*([^\n]+)`)
	blockTypeRe      = regexp.MustCompile(`(?im)^\s*(?:account\s*|loan\s*)?type\s*[:\-]\s*([^\n]+)`)
	blockStatusRe    = regexp.MustCompile(`(?i)status\s*[:\-]\s*([^\n]+)`)
	blockOwnershipRe = regexp.MustCompile(`(?i)ownership\s*[:\-]\s*([^\n]+)`)
	blockOpenedRe    = regexp.MustCompile(`(?i)(?:date\s*)?opene?d?\s*(?:date|on)?\s*[:\-]\s*([^\n]+)`)
	blockSanctionRe  = regexp.MustCompile(`(?i)(?:sanctioned?(?:\s*amount)?|loan\s*amount|high\s*credit)\s*[:\-]\s*([^\n]+)`)
	blockBalanceRe   = regexp.MustCompile(`(?i)(?:current\s*balance|outstanding(?:\s*balance)?)\s*[:\-]\s*([^\n]+)`)
	blockEMIRe       = regexp.MustCompile(`(?i)\bemi(?:\s*amount)?\s*[:\-]\s*([^\n]+)`)
	blockLimitRe     = regexp.MustCompile(`(?i)credit\s*limit\s*[:\-]\s*([^\n]+)`)
	blockTenureRe    = regexp.MustCompile(`(?i)tenure\s*(?:\(months\))?\s*[:\-]\s*(\d{1,3})`)
	blockRateRe      = regexp.MustCompile(`(?i)(?:interest\s*rate|roi)\s*[:\-]\s*([0-9.]+)`)
)

// parseAccountBlocks reads label:value pairs out of each free-text block.
func parseAccountBlocks(text string) []dto.CreditAccount {
	var accounts []dto.CreditAccount
	for _, block := range splitAccountBlocks(text) {
		if strings.TrimSpace(block) == "" {
			continue
		}

		account := dto.CreditAccount{Status: dto.StatusLive}

		if m := blockBankRe.FindStringSubmatch(block); len(m) > 1 {
			account.BankName = NormalizeBankName(m[1])
		}
		if m := blockTypeRe.FindStringSubmatch(block); len(m) > 1 {
			if typ, ok := NormalizeAccountType(m[1]); ok {
				account.AccountType = typ
			}
		}
		if account.AccountType == "" {
			// Some vendors skip the type label and print the product in
			// the block header instead.
			if typ, ok := NormalizeAccountType(firstLine(block)); ok {
				account.AccountType = typ
			}
		}
		if m := blockStatusRe.FindStringSubmatch(block); len(m) > 1 {
			account.Status = NormalizeStatus(m[1])
		}
		if m := blockOwnershipRe.FindStringSubmatch(block); len(m) > 1 {
			account.Ownership = strings.ToUpper(strings.TrimSpace(m[1]))
		}
		if m := blockOpenedRe.FindStringSubmatch(block); len(m) > 1 {
			account.OpenedDate = NormalizeDate(strings.TrimSpace(m[1]))
		}
		if m := blockSanctionRe.FindStringSubmatch(block); len(m) > 1 {
			account.SanctionAmount = ParseAmount(m[1])
		}
		if m := blockBalanceRe.FindStringSubmatch(block); len(m) > 1 {
			account.CurrentBalance = ParseAmount(m[1])
		}
		if m := blockEMIRe.FindStringSubmatch(block); len(m) > 1 {
			account.EMI = ParseAmount(m[1])
		}
		if m := blockLimitRe.FindStringSubmatch(block); len(m) > 1 {
			account.CreditLimit = ParseAmount(m[1])
		}
		if m := blockTenureRe.FindStringSubmatch(block); len(m) > 1 {
			account.TenureMonths = ParseIntOr(m[1], 0)
		}
		if m := blockRateRe.FindStringSubmatch(block); len(m) > 1 {
			account.InterestRate = ParseAmount(m[1])
		}
		account.MaxDPD12M = extractDPD(block)

		if valid, ok := validateAccount(account, block); ok {
			accounts = append(accounts, valid)
		}
	}
	return accounts
}

func firstLine(block string) string {
	for _, line := range strings.Split(block, "\n") {
		if strings.TrimSpace(line) != "" {
			return line
		}
	}
	return ""
}

// --- shared helpers ---

var dpdRe = regexp.MustCompile(`(?i)(?:max\s*)?(?:dpd|days\s*past\s*due)[^0-9]{0,15}(\d{1,3})`)

func extractDPD(s string) int {
	if m := dpdRe.FindStringSubmatch(s); len(m) > 1 {
		return ParseIntOr(m[1], 0)
	}
	return 0
}

var looksNumericRe = regexp.MustCompile(`^[0-9][0-9,.\s]*$`)

func looksNumeric(s string) bool {
	return looksNumericRe.MatchString(strings.TrimSpace(s))
}

func assignAmounts(account *dto.CreditAccount, amounts []float64) {
	switch len(amounts) {
	case 0:
	case 1:
		account.CurrentBalance = amounts[0]
	case 2:
		account.SanctionAmount = amounts[0]
		account.CurrentBalance = amounts[1]
	default:
		account.SanctionAmount = amounts[0]
		account.CurrentBalance = amounts[1]
		account.EMI = amounts[2]
	}
	if account.AccountType == dto.TypeCreditCard && account.CreditLimit == 0 {
		account.CreditLimit = account.SanctionAmount
	}
}

// validateAccount enforces the inclusion rules: both bank name and account
// type resolved, bank name at least 3 characters, and the source text not
// actually an enquiry row that leaked into account parsing.
func validateAccount(account dto.CreditAccount, source string) (dto.CreditAccount, bool) {
	if len(account.BankName) < 3 || account.AccountType == "" {
		return account, false
	}
	if strings.Contains(strings.ToLower(source), "enquiry") {
		return account, false
	}
	return account, true
}

// ExtractRepaymentBehavior derives the delinquency picture from the parsed
// accounts plus document-level flags the account rows do not carry.
func ExtractRepaymentBehavior(text string, accounts []dto.CreditAccount) dto.RepaymentBehavior {
	behavior := dto.RepaymentBehavior{}
	for _, account := range accounts {
		if account.MaxDPD12M > behavior.MaxDPD {
			behavior.MaxDPD = account.MaxDPD12M
		}
		switch account.Status {
		case dto.StatusWrittenOff:
			behavior.HasWriteOff = true
		case dto.StatusSettled:
			behavior.HasSettlement = true
		}
	}

	lower := strings.ToLower(text)
	if strings.Contains(lower, "written off") || strings.Contains(lower, "write-off") {
		behavior.HasWriteOff = true
	}
	if strings.Contains(lower, "settled") || strings.Contains(lower, "post (wo) settled") {
		behavior.HasSettlement = true
	}
	if strings.Contains(lower, "suit filed") || strings.Contains(lower, "wilful default") {
		behavior.HasLegalAction = true
	}
	if strings.Contains(lower, "restructured") || strings.Contains(lower, "restructuring") {
		behavior.HasRestructured = true
	}
	if dpd := extractDPD(text); dpd > behavior.MaxDPD {
		behavior.MaxDPD = dpd
	}
	return behavior
}
