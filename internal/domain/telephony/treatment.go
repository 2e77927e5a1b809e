package telephony

import "strings"

// nonBillableTreatments are inventory treatments that never appear on an invoice:
// unassigned numbers, fax endpoints, on-hold lines and off-network numbers.
var nonBillableTreatments = map[string]struct{}{
	"Available Number": {},
	"FaxSFATA":         {},
	"vFaxSFATA":        {},
	"iFax":             {},
	"vFax":             {},
	"vOn-Hold":         {},
	"vOffNet":          {},
}

// IsNonBillableTreatment reports whether a number with this treatment is excluded
// from billable counts. Any treatment mentioning fax or hold is excluded too.
func IsNonBillableTreatment(treatment string) bool {
	treatment = strings.TrimSpace(treatment)
	if _, ok := nonBillableTreatments[treatment]; ok {
		return true
	}
	lower := strings.ToLower(treatment)
	return strings.Contains(lower, "fax") || strings.Contains(lower, "hold")
}
