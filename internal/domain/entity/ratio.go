package entity

// SafeHarborInterstatePercent is the regulatory reference interstate share.
const SafeHarborInterstatePercent = 64.9

// CallRatio is the overall jurisdictional split of a set of calls.
type CallRatio struct {
	Totals          *CustomerStats `json:"totals"`
	InterstateRatio float64        `json:"interstate_ratio"`
	IntrastateRatio float64        `json:"intrastate_ratio"`
}

// SafeHarborDelta is the interstate share minus the safe harbor share, in percentage points.
func (r CallRatio) SafeHarborDelta() float64 {
	return r.InterstateRatio*100 - SafeHarborInterstatePercent
}
