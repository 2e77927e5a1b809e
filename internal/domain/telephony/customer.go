package telephony

import (
	"strings"

	"github.com/diillson/cdr-billing/internal/domain/entity"
)

// CustomerName derives the customer from a provisioning domain:
// "AdamsCoIL.20507.service" becomes "AdamsCoIL".
func CustomerName(domain string) string {
	if domain == "" {
		return entity.UnknownCustomer
	}
	name, _, _ := strings.Cut(domain, ".")
	return name
}

// CustomerMap resolves normalized phone numbers to customer names.
type CustomerMap struct {
	byPhone map[string]string
}

// NewCustomerMap builds the map from an inventory. Entries missing a phone number
// or a domain are skipped and a repeated number keeps its last customer.
func NewCustomerMap(entries []entity.PhoneInventoryEntry) *CustomerMap {
	m := &CustomerMap{byPhone: make(map[string]string, len(entries))}
	for _, e := range entries {
		phone := Normalize(e.PhoneNumber)
		if phone == "" || e.Domain == "" {
			continue
		}
		m.byPhone[phone] = CustomerName(e.Domain)
	}
	return m
}

// Len is the number of mapped phone numbers.
func (m *CustomerMap) Len() int { return len(m.byPhone) }

// Lookup returns the customer of raw's normalized number.
func (m *CustomerMap) Lookup(raw string) (string, bool) {
	c, ok := m.byPhone[Normalize(raw)]
	return c, ok
}

// Contains reports whether raw's normalized number is provisioned.
func (m *CustomerMap) Contains(raw string) bool {
	_, ok := m.Lookup(raw)
	return ok
}

// Resolve attributes a call or message: the source number's customer first,
// then the destination's, else "Unassigned".
func (m *CustomerMap) Resolve(source, destination string) string {
	if c, ok := m.Lookup(source); ok && c != "" {
		return c
	}
	if c, ok := m.Lookup(destination); ok && c != "" {
		return c
	}
	return entity.UnassignedCustomer
}
