package entity

import "sort"

// SMSStats accumulates message counts for a customer or for the whole file.
type SMSStats struct {
	Name             string  `json:"customer,omitempty"`
	TotalMessages    int     `json:"total_messages"`
	IncomingMessages int     `json:"incoming"`
	OutgoingMessages int     `json:"outgoing"`
	TotalCost        float64 `json:"cdr_cost"`
}

// Add counts one message.
func (s *SMSStats) Add(incoming bool, cost float64) {
	s.TotalMessages++
	s.TotalCost += cost
	if incoming {
		s.IncomingMessages++
	} else {
		s.OutgoingMessages++
	}
}

// Merge adds o into s.
func (s *SMSStats) Merge(o *SMSStats) {
	s.TotalMessages += o.TotalMessages
	s.IncomingMessages += o.IncomingMessages
	s.OutgoingMessages += o.OutgoingMessages
	s.TotalCost += o.TotalCost
}

// BillableCost prices every message at ratePerMessage.
func (s *SMSStats) BillableCost(ratePerMessage float64) float64 {
	return float64(s.TotalMessages) * ratePerMessage
}

// SMSStatsSet is an insertion-ordered mapping of customer name to SMS accumulator.
type SMSStatsSet struct {
	order  []string
	byName map[string]*SMSStats
}

func NewSMSStatsSet() *SMSStatsSet {
	return &SMSStatsSet{byName: make(map[string]*SMSStats)}
}

// GetOrCreate returns the accumulator for name, creating it on first use.
func (ss *SMSStatsSet) GetOrCreate(name string) *SMSStats {
	if s, ok := ss.byName[name]; ok {
		return s
	}
	s := &SMSStats{Name: name}
	ss.byName[name] = s
	ss.order = append(ss.order, name)
	return s
}

func (ss *SMSStatsSet) Get(name string) (*SMSStats, bool) {
	s, ok := ss.byName[name]
	return s, ok
}

func (ss *SMSStatsSet) Len() int { return len(ss.order) }

// Ranked orders customers by descending message count, stable on first-seen order.
func (ss *SMSStatsSet) Ranked() []*SMSStats {
	out := make([]*SMSStats, 0, len(ss.order))
	for _, name := range ss.order {
		out = append(out, ss.byName[name])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalMessages > out[j].TotalMessages })
	return out
}
