package common

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	vinPattern          = regexp.MustCompile(`^[A-HJ-NPR-Z0-9]{11,17}$`)
	billingMonthPattern = regexp.MustCompile(`^(19|20)\d{2}-(0[1-9]|1[0-2])$`)
	nipPattern          = regexp.MustCompile(`^\d{10}$`)
)

// NormalizeVIN uppercases and validates a VIN. VINs never contain I, O or Q.
func NormalizeVIN(vin string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(vin))
	if !vinPattern.MatchString(normalized) {
		return "", fmt.Errorf("invalid VIN %q", vin)
	}
	return normalized, nil
}

// ValidateUUID parses an identifier from a path or body parameter.
func ValidateUUID(value, fieldName string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s must be a valid UUID", fieldName)
	}
	return id, nil
}

// ValidateBillingMonth checks the YYYY-MM ledger month format.
func ValidateBillingMonth(month string) error {
	if !billingMonthPattern.MatchString(month) {
		return fmt.Errorf("month must be in YYYY-MM format")
	}
	return nil
}

// ValidateNIP checks the 10-digit Polish tax identifier format. Only the
// shape is verified; registry correctness is out of scope.
func ValidateNIP(nip string) error {
	if !nipPattern.MatchString(nip) {
		return fmt.Errorf("NIP must be exactly 10 digits")
	}
	return nil
}

// ValidateDateFormat validates an optional YYYY-MM-DD date string.
func ValidateDateFormat(dateStr, fieldName string) error {
	if strings.TrimSpace(dateStr) == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", dateStr); err != nil {
		return fmt.Errorf("%s must be in YYYY-MM-DD format", fieldName)
	}
	return nil
}

// SanitizeSearchQuery strips LIKE wildcards from user search input and caps
// its length. Queries are parameterized regardless.
func SanitizeSearchQuery(query string) string {
	query = strings.ReplaceAll(query, "%", "")
	query = strings.ReplaceAll(query, "_", "")
	if len(query) > 100 {
		query = query[:100]
	}
	return strings.TrimSpace(query)
}
