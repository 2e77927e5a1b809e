// Package telephony holds the NANP lookup data and the pure rules that turn raw
// phone strings into subscriber numbers, jurisdictions and customers.
package telephony

import "strings"

// Normalize reduces raw to a 10-digit subscriber number. A leading country code 1
// on an 11-digit number is dropped and longer inputs are truncated. Inputs with
// fewer than 10 digits come back as whatever digits they had.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	if len(digits) == 11 && digits[0] == '1' {
		return digits[1:]
	}
	if len(digits) >= 10 {
		return digits[:10]
	}
	return digits
}

// AreaCode returns the NPA of raw, or "" when fewer than three digits survive normalization.
func AreaCode(raw string) string {
	n := Normalize(raw)
	if len(n) < 3 {
		return ""
	}
	return n[:3]
}
