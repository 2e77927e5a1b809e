package entity

import "time"

// BillingReport gathers everything one run produced. Sections that were not
// generated (missing optional input) stay nil.
type BillingReport struct {
	GeneratedAt        time.Time `json:"generated_at"`
	VoiceRatePerMinute float64   `json:"voice_rate_per_minute"`
	SMSRatePerMessage  float64   `json:"sms_rate_per_message"`

	Customers []*CustomerStats `json:"customers,omitempty"`
	Ratio     *CallRatio       `json:"call_ratio,omitempty"`
	CallerIDs []NamedCount     `json:"caller_ids,omitempty"`

	BillablePhones  []NamedCount          `json:"billable_phones,omitempty"`
	ExcludedPhones  []NamedCount          `json:"excluded_phones,omitempty"`
	ExcludedEntries []PhoneInventoryEntry `json:"excluded_entries,omitempty"`

	SMS        []*SMSStats `json:"sms,omitempty"`
	SMSOverall *SMSStats   `json:"sms_overall,omitempty"`

	Combined      []*CustomerStats `json:"combined,omitempty"`
	CombinedRatio *CallRatio       `json:"combined_call_ratio,omitempty"`

	Seats []SeatStats      `json:"seats,omitempty"`
	Pivot *DepartmentPivot `json:"department_pivot,omitempty"`
}
