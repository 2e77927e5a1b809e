package entity

import "strings"

// Record origins, carried for export and diagnostics.
const (
	OriginCSV         = "csv"
	OriginSpreadsheet = "spreadsheet"
)

// Customer names produced by attribution when nothing better is known.
const (
	UnknownCustomer    = "Unknown"
	UnassignedCustomer = "Unassigned"
)

// CallRecord is one voice CDR row.
type CallRecord struct {
	Source      string  `json:"source"`
	Destination string  `json:"destination"`
	Seconds     float64 `json:"seconds"`
	Cost        float64 `json:"cost"`
	// Customer is set only by sources that know the owning domain themselves.
	Customer string `json:"customer,omitempty"`
	Origin   string `json:"origin"`
}

// MessageRecord is one SMS log row.
type MessageRecord struct {
	Source      string  `json:"source"`
	Destination string  `json:"destination"`
	Direction   string  `json:"direction"`
	Cost        float64 `json:"cost"`
}

// Incoming reports whether the message was received; anything else counts as outgoing.
func (m MessageRecord) Incoming() bool {
	return strings.EqualFold(strings.TrimSpace(m.Direction), "incoming")
}

// PhoneInventoryEntry is one row of the provisioning inventory.
type PhoneInventoryEntry struct {
	PhoneNumber string `json:"phone_number"`
	Domain      string `json:"domain"`
	Treatment   string `json:"treatment"`
	Destination string `json:"destination"`
	Notes       string `json:"notes"`
	Enable      string `json:"enable"`
}
