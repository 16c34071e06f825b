// Package validate provides pure input validation for form answers.
package validate

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// amountRegex matches a claim amount: optional dollar sign, one or more
// digits, optionally a dot followed by up to two decimal digits.
var amountRegex = regexp.MustCompile(`\$?\d+(\.\d{0,2})?`)

// NormalizeAmount cleans a user-supplied claim amount. A missing dollar
// sign is prepended, then the leading valid span is extracted, so
// "12.5" becomes "$12.5" and "$20 for taxi" becomes "$20". Returns ""
// when no valid amount can be extracted; callers must treat that as
// invalid and re-prompt rather than store an empty amount.
func NormalizeAmount(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "$") {
		raw = "$" + raw
	}

	match := amountRegex.FindString(raw)
	if match == "" {
		return ""
	}

	// A trailing dot ("$12.") is within the pattern but not a usable
	// amount; drop the dot and keep the digits.
	match = strings.TrimSuffix(match, ".")

	// The matched span can start past the dollar sign ("$-12" matches
	// "12"); the stored amount always carries the sign.
	if !strings.HasPrefix(match, "$") {
		match = "$" + match
	}

	if _, err := decimal.NewFromString(strings.TrimPrefix(match, "$")); err != nil {
		return ""
	}

	return match
}

// NewSubmissionID generates the opaque claim ID used to name the
// uploaded receipt and to key later status lookups. Random UUID v4,
// shortened for easier copy-paste from the confirmation message.
func NewSubmissionID() string {
	id := uuid.NewString()
	return id[:len(id)-3]
}
