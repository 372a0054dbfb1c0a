package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/loanwise/credit-bureau-engine/dto"
)

// LoadPolicies reads the lender policy table from a JSON file. Policies are
// loaded once at process start and treated as read-only for the lifetime of
// the process.
func LoadPolicies(path string) ([]dto.BankPolicy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file %s: %w", path, err)
	}

	var policies []dto.BankPolicy
	if err := json.Unmarshal(data, &policies); err != nil {
		return nil, fmt.Errorf("failed to parse policy file %s: %w", path, err)
	}

	for i, policy := range policies {
		if policy.BankName == "" {
			return nil, fmt.Errorf("policy %d has no bank_name", i)
		}
		if policy.DefaultFOIRPercent <= 0 || policy.DefaultFOIRPercent > 100 {
			return nil, fmt.Errorf("policy %s has invalid default_foir_percent %.1f", policy.BankName, policy.DefaultFOIRPercent)
		}
	}

	return policies, nil
}
