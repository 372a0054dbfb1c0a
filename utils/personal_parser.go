package utils

import (
	"regexp"
	"strings"

	"github.com/loanwise/credit-bureau-engine/dto"
)

var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)consumer\s*name\s*[:\-]\s*([A-Za-z][A-Za-z .]{2,60})`),
	regexp.MustCompile(`(?i)(?:^|\n)\s*name\s*[:\-]\s*([A-Za-z][A-Za-z .]{2,60})`),
	regexp.MustCompile(`(?m)^\s*(?:MR|MRS|MS|SHRI|SMT)\.?\s+([A-Z][A-Z .]{2,60})$`),
}

var dobPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)date\s*of\s*birth\s*[:\-]?\s*([0-9]{1,2}[/\-.][0-9]{1,2}[/\-.][0-9]{2,4})`),
	regexp.MustCompile(`(?i)\bdob\b\s*[:\-]?\s*([0-9]{1,2}[/\-.][0-9]{1,2}[/\-.][0-9]{2,4})`),
	regexp.MustCompile(`(?i)date\s*of\s*birth\s*[:\-]?\s*([0-9]{1,2}[\s\-/]*[A-Za-z]{3,9}[\s\-/,]*[0-9]{4})`),
}

var (
	panRe    = regexp.MustCompile(`\b([A-Z]{5}[0-9]{4}[A-Z])\b`)
	phoneRe  = regexp.MustCompile(`\b([6-9][0-9]{9})\b`)
	emailRe  = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	genderRe = regexp.MustCompile(`(?i)gender\s*[:\-]?\s*(male|female|transgender)`)
)

// Tokens that regularly follow the name on the same OCR line.
var nameStopWords = map[string]bool{
	"date": true, "dob": true, "gender": true, "pan": true,
	"report": true, "member": true, "account": true, "address": true,
	"consumer": true, "cibil": true,
}

// ExtractPersonalDetails scans the personal section (or its fallback pages)
// with ordered candidate patterns per field. Missing fields resolve to the
// UNKNOWN sentinel or empty sets, never an error.
func ExtractPersonalDetails(text string) dto.PersonalDetails {
	details := dto.PersonalDetails{
		Name:        dto.UnknownField,
		DateOfBirth: "",
		PAN:         "",
		Gender:      dto.UnknownField,
		Phones:      []string{},
		Emails:      []string{},
	}

	for _, re := range namePatterns {
		if m := re.FindStringSubmatch(text); len(m) > 1 {
			if name := cleanPersonName(m[1]); name != "" {
				details.Name = name
				break
			}
		}
	}

	for _, re := range dobPatterns {
		if m := re.FindStringSubmatch(text); len(m) > 1 {
			if iso := NormalizeDate(m[1]); iso != "" {
				details.DateOfBirth = iso
				break
			}
		}
	}

	if m := panRe.FindStringSubmatch(text); len(m) > 1 {
		details.PAN = m[1]
	}

	seen := map[string]bool{}
	for _, m := range phoneRe.FindAllString(text, -1) {
		if !seen[m] {
			seen[m] = true
			details.Phones = append(details.Phones, m)
		}
	}

	seen = map[string]bool{}
	for _, m := range emailRe.FindAllString(text, -1) {
		lower := strings.ToLower(m)
		if !seen[lower] {
			seen[lower] = true
			details.Emails = append(details.Emails, lower)
		}
	}

	if m := genderRe.FindStringSubmatch(text); len(m) > 1 {
		details.Gender = strings.ToUpper(m[1])
	}

	return details
}

func cleanPersonName(raw string) string {
	var kept []string
	for _, word := range strings.Fields(raw) {
		if nameStopWords[strings.ToLower(strings.Trim(word, ".:"))] {
			break
		}
		kept = append(kept, word)
		if len(kept) == 4 {
			break
		}
	}
	name := strings.TrimSpace(strings.Join(kept, " "))
	if len(name) < 3 {
		return ""
	}
	return titleCase(name)
}

var addressPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(permanent|current|office|residence|residential)?\s*address\s*[:\-]\s*([^\n]{10,160})`),
}

var (
	pincodeRe  = regexp.MustCompile(`\b([1-9][0-9]{5})\b`)
	cityWordRe = regexp.MustCompile(`^[A-Za-z]{3,}$`)
)

var indianStates = []string{
	"andhra pradesh", "arunachal pradesh", "assam", "bihar", "chhattisgarh",
	"goa", "gujarat", "haryana", "himachal pradesh", "jharkhand", "karnataka",
	"kerala", "madhya pradesh", "maharashtra", "manipur", "meghalaya",
	"mizoram", "nagaland", "odisha", "punjab", "rajasthan", "sikkim",
	"tamil nadu", "telangana", "tripura", "uttar pradesh", "uttarakhand",
	"west bengal", "delhi", "chandigarh", "puducherry", "jammu",
}

// ExtractAddresses pulls zero or more labeled address lines. City falls out
// of the token before the pincode; state comes from a fixed lookup.
func ExtractAddresses(text string) []dto.Address {
	var addresses []dto.Address
	for _, re := range addressPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			line := strings.TrimSpace(m[2])
			if len(line) < 10 {
				continue
			}

			addr := dto.Address{
				Type: strings.ToLower(strings.TrimSpace(m[1])),
				Line: line,
			}
			if addr.Type == "" {
				addr.Type = "current"
			}
			if addr.Type == "residence" {
				addr.Type = "residential"
			}

			if pm := pincodeRe.FindStringSubmatch(line); pm != nil {
				addr.Pincode = pm[1]
			}

			lower := strings.ToLower(line)
			for _, state := range indianStates {
				if strings.Contains(lower, state) {
					addr.State = titleCase(state)
					break
				}
			}

			addr.City = guessCity(line, addr.Pincode, addr.State)
			addresses = append(addresses, addr)
		}
	}
	return addresses
}

// guessCity takes the word immediately before the pincode, skipping the
// state name when the line prints "city state pincode".
func guessCity(line, pincode, state string) string {
	if pincode == "" {
		return ""
	}
	head := line[:strings.Index(line, pincode)]
	head = strings.Trim(head, " ,-")
	fields := strings.Fields(head)
	for i := len(fields) - 1; i >= 0; i-- {
		word := strings.Trim(fields[i], ",.")
		if word == "" || strings.EqualFold(word, state) {
			continue
		}
		if state != "" && strings.Contains(strings.ToLower(state), strings.ToLower(word)) {
			continue
		}
		if cityWordRe.MatchString(word) {
			return titleCase(word)
		}
	}
	return ""
}
