// Package contacts provides email normalization, CSV ingestion with schema
// reshaping, and the contact lifecycle state machine.
package contacts

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// emailPattern extracts an address even when it is surrounded by a display
// name or stray text. Exported spreadsheets frequently carry values like
// "Jane Doe <jane@acme.com>" or UTF-7 mangled addresses.
var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

var validate = validator.New()

// NormalizeEmail canonicalizes a recipient address: trims, repairs the UTF-7
// "+AEA-" artifact some sheet exports produce for '@', extracts the address
// from surrounding text, and lower-cases it. Returns "" when no valid
// address is present. Idempotent: normalizing a normalized address is a
// no-op.
func NormalizeEmail(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "+AEA-", "@")

	match := emailPattern.FindString(s)
	if match == "" {
		return ""
	}
	match = strings.ToLower(match)

	if err := validate.Var(match, "email"); err != nil {
		return ""
	}
	return match
}
