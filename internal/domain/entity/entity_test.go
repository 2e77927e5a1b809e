package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerStatsMergeIsOrderIndependent(t *testing.T) {
	build := func(name string, calls ...float64) *CustomerStats {
		s := NewCustomerStats(name)
		for i, secs := range calls {
			s.AddCall(Jurisdictions[i%len(Jurisdictions)], secs, secs/100)
			s.AddPhone(name + "-phone")
		}
		return s
	}
	a, b, c := build("a", 10, 20), build("b", 30), build("c", 40, 50, 60)

	left := NewCustomerStats("x")
	left.Merge(a)
	left.Merge(b)
	left.Merge(c)

	bc := NewCustomerStats("x")
	bc.Merge(c)
	bc.Merge(b)
	right := NewCustomerStats("x")
	right.Merge(bc)
	right.Merge(a)

	assert.Equal(t, left.TotalCalls, right.TotalCalls)
	assert.InDelta(t, left.TotalSeconds, right.TotalSeconds, 1e-9)
	assert.InDelta(t, left.TotalCost, right.TotalCost, 1e-12)
	for _, j := range Jurisdictions {
		assert.Equal(t, left.Calls(j), right.Calls(j), string(j))
		assert.InDelta(t, left.Seconds(j), right.Seconds(j), 1e-9, string(j))
	}
	assert.Equal(t, 3, right.PhoneCount())
}

func TestCustomerStatsPercentagesWithoutJurisdictionalTraffic(t *testing.T) {
	s := NewCustomerStats("tf")
	s.AddCall(TollFree, 60, 0)
	assert.Zero(t, s.InterstatePercent())
	assert.Zero(t, s.IntrastatePercent())
	assert.InDelta(t, 1.0, s.TollFreeMinutes(), 1e-9)
}

func TestCustomerStatsSetRankedIsStable(t *testing.T) {
	set := NewCustomerStatsSet()
	set.GetOrCreate("first").AddCall(Interstate, 60, 0)
	set.GetOrCreate("second").AddCall(Intrastate, 120, 0)
	set.GetOrCreate("third").AddCall(Unknown, 60, 0)

	var names []string
	for _, s := range set.Ranked() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"second", "first", "third"}, names)

	totals := set.Totals()
	assert.Equal(t, "Total", totals.Name)
	assert.Equal(t, 3, totals.TotalCalls)
	assert.InDelta(t, 240, totals.TotalSeconds, 1e-9)
}

func TestCountSet(t *testing.T) {
	c := NewCountSet()
	c.Inc("b")
	c.Inc("a")
	c.Inc("a")
	c.Inc("c")

	assert.Equal(t, 4, c.Total())
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []NamedCount{{"a", 2}, {"b", 1}, {"c", 1}}, c.Ranked())
}

func TestSMSStats(t *testing.T) {
	set := NewSMSStatsSet()
	set.GetOrCreate("a").Add(true, 0.001)
	set.GetOrCreate("b").Add(false, 0.001)
	set.GetOrCreate("b").Add(true, 0.001)

	ranked := set.Ranked()
	require.Len(t, ranked, 2)
	assert.Equal(t, "b", ranked[0].Name)

	total := &SMSStats{}
	for _, s := range ranked {
		total.Merge(s)
	}
	assert.Equal(t, 3, total.TotalMessages)
	assert.Equal(t, 2, total.IncomingMessages)
	assert.InDelta(t, 0.015, total.BillableCost(0.005), 1e-12)
}

func TestMessageRecordIncoming(t *testing.T) {
	assert.True(t, MessageRecord{Direction: " INCOMING "}.Incoming())
	assert.False(t, MessageRecord{Direction: "outgoing"}.Incoming())
	assert.False(t, MessageRecord{}.Incoming())
}

func TestDepartmentPivot(t *testing.T) {
	p := NewDepartmentPivot()
	assert.True(t, p.Empty())

	for _, r := range []DepartmentRow{
		{"Sales", "u"}, {"Sales", "u"}, {"Sales", "nb"},
		{"Admin", "vm only"}, {"Admin", "nu"}, {"Admin", "faxata"}, {"Admin", "guest"},
	} {
		p.Add(r.Department, r.UserType)
	}

	assert.Equal(t, []string{"Admin", "Sales"}, p.Departments())
	assert.Equal(t, 3, p.RowTotal("Admin"))
	assert.Equal(t, 6, p.GrandTotal())
	assert.Equal(t, 3, p.Billable())
	assert.Equal(t, 4, p.Active())

	data, err := json.Marshal(p)
	require.NoError(t, err)
	var decoded struct {
		Rows []struct {
			Department string         `json:"department"`
			Counts     map[string]int `json:"counts"`
			Total      int            `json:"total"`
		} `json:"rows"`
		GrandTotal int `json:"grand_total"`
		Billable   int `json:"billable_lines"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Rows, 2)
	assert.Equal(t, "Admin", decoded.Rows[0].Department)
	assert.Equal(t, 1, decoded.Rows[0].Counts["faxata"])
	assert.Equal(t, 6, decoded.GrandTotal)
	assert.Equal(t, 3, decoded.Billable)
}

func TestCallRatioSafeHarborDelta(t *testing.T) {
	r := CallRatio{InterstateRatio: 0.649}
	assert.InDelta(t, 0, r.SafeHarborDelta(), 1e-9)
	r.InterstateRatio = 0.7
	assert.InDelta(t, 5.1, r.SafeHarborDelta(), 1e-9)
}
