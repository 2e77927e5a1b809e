package entity

import "sort"

// CustomerStats accumulates voice usage attributed to one customer.
// Totals always equal the sum of the four jurisdiction buckets.
type CustomerStats struct {
	Name         string  `json:"customer"`
	TotalCalls   int     `json:"total_calls"`
	TotalSeconds float64 `json:"total_seconds"`
	// TotalCost is the cost reported by the source systems, not the billable amount.
	TotalCost float64 `json:"cdr_cost"`

	InterstateCalls   int     `json:"interstate_calls"`
	InterstateSeconds float64 `json:"interstate_seconds"`
	IntrastateCalls   int     `json:"intrastate_calls"`
	IntrastateSeconds float64 `json:"intrastate_seconds"`
	TollFreeCalls     int     `json:"toll_free_calls"`
	TollFreeSeconds   float64 `json:"toll_free_seconds"`
	UnknownCalls      int     `json:"unknown_calls"`
	UnknownSeconds    float64 `json:"unknown_seconds"`

	PhoneNumbers map[string]struct{} `json:"-"`
}

// NewCustomerStats returns an empty accumulator for name.
func NewCustomerStats(name string) *CustomerStats {
	return &CustomerStats{Name: name, PhoneNumbers: make(map[string]struct{})}
}

// AddCall records one call in exactly one jurisdiction bucket.
func (s *CustomerStats) AddCall(j Jurisdiction, seconds, cost float64) {
	s.TotalCalls++
	s.TotalSeconds += seconds
	s.TotalCost += cost

	switch j {
	case Interstate:
		s.InterstateCalls++
		s.InterstateSeconds += seconds
	case Intrastate:
		s.IntrastateCalls++
		s.IntrastateSeconds += seconds
	case TollFree:
		s.TollFreeCalls++
		s.TollFreeSeconds += seconds
	default:
		s.UnknownCalls++
		s.UnknownSeconds += seconds
	}
}

// AddPhone remembers a provisioned number seen on this customer's traffic.
func (s *CustomerStats) AddPhone(number string) {
	if s.PhoneNumbers == nil {
		s.PhoneNumbers = make(map[string]struct{})
	}
	s.PhoneNumbers[number] = struct{}{}
}

// PhoneCount is the number of distinct provisioned numbers observed.
func (s *CustomerStats) PhoneCount() int {
	return len(s.PhoneNumbers)
}

// Merge adds every counter of o into s and unions the phone sets.
func (s *CustomerStats) Merge(o *CustomerStats) {
	s.TotalCalls += o.TotalCalls
	s.TotalSeconds += o.TotalSeconds
	s.TotalCost += o.TotalCost
	s.InterstateCalls += o.InterstateCalls
	s.InterstateSeconds += o.InterstateSeconds
	s.IntrastateCalls += o.IntrastateCalls
	s.IntrastateSeconds += o.IntrastateSeconds
	s.TollFreeCalls += o.TollFreeCalls
	s.TollFreeSeconds += o.TollFreeSeconds
	s.UnknownCalls += o.UnknownCalls
	s.UnknownSeconds += o.UnknownSeconds
	for n := range o.PhoneNumbers {
		s.AddPhone(n)
	}
}

// Calls returns the call count of bucket j.
func (s *CustomerStats) Calls(j Jurisdiction) int {
	switch j {
	case Interstate:
		return s.InterstateCalls
	case Intrastate:
		return s.IntrastateCalls
	case TollFree:
		return s.TollFreeCalls
	default:
		return s.UnknownCalls
	}
}

// Seconds returns the duration of bucket j.
func (s *CustomerStats) Seconds(j Jurisdiction) float64 {
	switch j {
	case Interstate:
		return s.InterstateSeconds
	case Intrastate:
		return s.IntrastateSeconds
	case TollFree:
		return s.TollFreeSeconds
	default:
		return s.UnknownSeconds
	}
}

func (s *CustomerStats) TotalMinutes() float64      { return s.TotalSeconds / 60 }
func (s *CustomerStats) InterstateMinutes() float64 { return s.InterstateSeconds / 60 }
func (s *CustomerStats) IntrastateMinutes() float64 { return s.IntrastateSeconds / 60 }
func (s *CustomerStats) TollFreeMinutes() float64   { return s.TollFreeSeconds / 60 }
func (s *CustomerStats) UnknownMinutes() float64    { return s.UnknownSeconds / 60 }

// BillableCost prices the total minutes at ratePerMinute.
func (s *CustomerStats) BillableCost(ratePerMinute float64) float64 {
	return s.TotalMinutes() * ratePerMinute
}

// JurisdictionalSeconds is the interstate plus intrastate duration, the base for ratios.
func (s *CustomerStats) JurisdictionalSeconds() float64 {
	return s.InterstateSeconds + s.IntrastateSeconds
}

// InterstatePercent is the interstate share of jurisdictional seconds, 0 when there are none.
func (s *CustomerStats) InterstatePercent() float64 {
	if j := s.JurisdictionalSeconds(); j > 0 {
		return s.InterstateSeconds / j * 100
	}
	return 0
}

// IntrastatePercent is the intrastate share of jurisdictional seconds, 0 when there are none.
func (s *CustomerStats) IntrastatePercent() float64 {
	if j := s.JurisdictionalSeconds(); j > 0 {
		return s.IntrastateSeconds / j * 100
	}
	return 0
}

// CustomerStatsSet is an insertion-ordered mapping of customer name to accumulator.
type CustomerStatsSet struct {
	order  []string
	byName map[string]*CustomerStats
}

// NewCustomerStatsSet returns an empty set.
func NewCustomerStatsSet() *CustomerStatsSet {
	return &CustomerStatsSet{byName: make(map[string]*CustomerStats)}
}

// GetOrCreate returns the accumulator for name, creating it on first use.
func (cs *CustomerStatsSet) GetOrCreate(name string) *CustomerStats {
	if s, ok := cs.byName[name]; ok {
		return s
	}
	s := NewCustomerStats(name)
	cs.byName[name] = s
	cs.order = append(cs.order, name)
	return s
}

// Get looks up an existing accumulator.
func (cs *CustomerStatsSet) Get(name string) (*CustomerStats, bool) {
	s, ok := cs.byName[name]
	return s, ok
}

// Len is the number of customers.
func (cs *CustomerStatsSet) Len() int { return len(cs.order) }

// Names returns customer names in first-seen order.
func (cs *CustomerStatsSet) Names() []string {
	return append([]string(nil), cs.order...)
}

// Merge folds other into cs, keyed by exact customer name.
func (cs *CustomerStatsSet) Merge(other *CustomerStatsSet) {
	for _, name := range other.order {
		cs.GetOrCreate(name).Merge(other.byName[name])
	}
}

// Ranked returns the accumulators by descending total seconds; ties keep first-seen order.
func (cs *CustomerStatsSet) Ranked() []*CustomerStats {
	out := make([]*CustomerStats, 0, len(cs.order))
	for _, name := range cs.order {
		out = append(out, cs.byName[name])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalSeconds > out[j].TotalSeconds })
	return out
}

// Totals sums every customer into a single accumulator named "Total".
func (cs *CustomerStatsSet) Totals() *CustomerStats {
	total := NewCustomerStats("Total")
	for _, name := range cs.order {
		total.Merge(cs.byName[name])
	}
	return total
}
