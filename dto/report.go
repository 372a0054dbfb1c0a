package dto

// Page is one page of extracted report text.
type Page struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// SectionRole tags a page with the kind of report section it carries.
type SectionRole string

const (
	SectionPersonal       SectionRole = "personal"
	SectionAddress        SectionRole = "address"
	SectionScore          SectionRole = "score"
	SectionAccountSummary SectionRole = "account_summary"
	SectionAccountDetail  SectionRole = "account_detail"
	SectionEnquiry        SectionRole = "enquiry"
)

// SectionMap maps a section role to the ordered page indices that carry it.
// A page may satisfy multiple roles; a role may match no page at all.
type SectionMap map[SectionRole][]int

// UnknownField is the sentinel for string fields the extractor could not locate.
const UnknownField = "UNKNOWN"

type PersonalDetails struct {
	Name        string   `json:"name"`
	DateOfBirth string   `json:"date_of_birth"` // YYYY-MM-DD, empty when absent
	PAN         string   `json:"pan"`
	Phones      []string `json:"phones"`
	Emails      []string `json:"emails"`
	Gender      string   `json:"gender"`
}

type Address struct {
	Type    string `json:"type"` // current/permanent/office/residential
	Line    string `json:"line"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

type CreditScoreSummary struct {
	Score          int    `json:"score"` // 0 or 300-900
	ScoreBand      string `json:"score_band"`
	VintageMonths  int    `json:"vintage_months"`
	LiveAccounts   int    `json:"live_accounts"`
	ClosedAccounts int    `json:"closed_accounts"`
	Enquiries30d   int    `json:"enquiries_30d"`
}

// Score bands derived from the bureau score.
const (
	BandExcellent = "EXCELLENT"
	BandGood      = "GOOD"
	BandFair      = "FAIR"
	BandPoor      = "POOR"
	BandVeryPoor  = "VERY_POOR"
)

type AccountType string

const (
	TypePersonalLoan   AccountType = "PERSONAL_LOAN"
	TypeHomeLoan       AccountType = "HOME_LOAN"
	TypeAutoLoan       AccountType = "AUTO_LOAN"
	TypeCreditCard     AccountType = "CREDIT_CARD"
	TypeGoldLoan       AccountType = "GOLD_LOAN"
	TypeBusinessLoan   AccountType = "BUSINESS_LOAN"
	TypeEducationLoan  AccountType = "EDUCATION_LOAN"
	TypeTwoWheelerLoan AccountType = "TWO_WHEELER_LOAN"
	TypeConsumerLoan   AccountType = "CONSUMER_LOAN"
	TypeOverdraft      AccountType = "OVERDRAFT"
	TypeFlexiLoan      AccountType = "FLEXI_LOAN"
	TypePropertyLoan   AccountType = "PROPERTY_LOAN"
	TypeOtherLoan      AccountType = "OTHER_LOAN"
)

type AccountStatus string

const (
	StatusLive       AccountStatus = "LIVE"
	StatusClosed     AccountStatus = "CLOSED"
	StatusSettled    AccountStatus = "SETTLED"
	StatusWrittenOff AccountStatus = "WRITTEN_OFF"
)

// CreditAccount is one tradeline parsed from the report. BankName and
// AccountType are mandatory: candidates missing either are discarded during
// parsing rather than kept as partial records.
type CreditAccount struct {
	BankName       string        `json:"bank_name"`
	AccountType    AccountType   `json:"account_type"`
	Status         AccountStatus `json:"status"`
	OpenedDate     string        `json:"opened_date,omitempty"` // YYYY-MM-DD
	Ownership      string        `json:"ownership,omitempty"`
	SanctionAmount float64       `json:"sanction_amount"`
	CurrentBalance float64       `json:"current_balance"`
	EMI            float64       `json:"emi"`
	CreditLimit    float64       `json:"credit_limit,omitempty"`
	TenureMonths   int           `json:"tenure_months,omitempty"`
	InterestRate   float64       `json:"interest_rate,omitempty"`
	MaxDPD12M      int           `json:"max_dpd_12m"`
	IsObligated    bool          `json:"is_obligated"`
}

type RepaymentBehavior struct {
	MaxDPD          int  `json:"max_dpd"`
	HasWriteOff     bool `json:"has_write_off"`
	HasSettlement   bool `json:"has_settlement"`
	HasLegalAction  bool `json:"has_legal_action"`
	HasRestructured bool `json:"has_restructured"`
}

type EnquirySummary struct {
	Last30Days  int `json:"last_30_days"`
	Last90Days  int `json:"last_90_days"`
	Last12Month int `json:"last_12_months"`
}
