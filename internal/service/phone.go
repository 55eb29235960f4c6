package service

import (
	"strings"
	"unicode"
)

// NormalizePhone strips whitespace and hyphens for comparison. No other
// normalization is applied (no country-code handling): "0711 234-456" and
// "0711234456" compare equal, nothing else is rewritten.
func NormalizePhone(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		if unicode.IsSpace(r) || r == '-' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// PhonesMatch compares two phone numbers after normalization.
func PhonesMatch(a, b string) bool {
	return NormalizePhone(a) == NormalizePhone(b)
}

// ValidSubmissionPhone reports whether a phone is acceptable on the public
// form: exactly 10 digits once every non-digit character is stripped.
func ValidSubmissionPhone(phone string) bool {
	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits == 10
}
