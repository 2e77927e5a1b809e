package export

import (
	"fmt"

	"github.com/diillson/cdr-billing/internal/domain/entity"
)

// table is one report laid out as rows of cells, shared by the CSV and XLSX writers.
type table struct {
	sheet  string
	header []string
	rows   [][]string
}

func minutes(m float64) string { return fmt.Sprintf("%.2f", m) }
func money(v float64) string   { return fmt.Sprintf("%.4f", v) }
func percent(v float64) string { return fmt.Sprintf("%.2f%%", v) }
func count(n int) string       { return fmt.Sprintf("%d", n) }

func cdrTable(stats []*entity.CustomerStats, rate float64) table {
	t := table{
		sheet: "CDR",
		header: []string{
			"Customer", "Total Calls", "Total Minutes", "CDR Cost", "Billable Cost",
			"Interstate Calls", "Interstate Min", "Intrastate Calls", "Intrastate Min",
			"Interstate %", "Intrastate %", "Phone Numbers",
		},
	}
	for _, s := range stats {
		t.rows = append(t.rows, []string{
			s.Name,
			count(s.TotalCalls),
			minutes(s.TotalMinutes()),
			money(s.TotalCost),
			money(s.BillableCost(rate)),
			count(s.InterstateCalls),
			minutes(s.InterstateMinutes()),
			count(s.IntrastateCalls),
			minutes(s.IntrastateMinutes()),
			percent(s.InterstatePercent()),
			percent(s.IntrastatePercent()),
			count(s.PhoneCount()),
		})
	}
	return t
}

// combinedTable omits the source cost and phone columns: costs from the two
// sources are not comparable and the workbook carries no inventory numbers.
func combinedTable(stats []*entity.CustomerStats, rate float64) table {
	t := table{
		sheet: "Combined CDR",
		header: []string{
			"Customer", "Total Calls", "Total Minutes", "Billable Cost",
			"Interstate Calls", "Interstate Min", "Intrastate Calls", "Intrastate Min",
			"Interstate %", "Intrastate %",
		},
	}
	for _, s := range stats {
		t.rows = append(t.rows, []string{
			s.Name,
			count(s.TotalCalls),
			minutes(s.TotalMinutes()),
			money(s.BillableCost(rate)),
			count(s.InterstateCalls),
			minutes(s.InterstateMinutes()),
			count(s.IntrastateCalls),
			minutes(s.IntrastateMinutes()),
			percent(s.InterstatePercent()),
			percent(s.IntrastatePercent()),
		})
	}
	return t
}

func callRatioTable(r entity.CallRatio) table {
	totals := r.Totals
	if totals == nil {
		totals = entity.NewCustomerStats("Total")
	}
	return table{
		sheet:  "Call Ratio",
		header: []string{"Metric", "Value"},
		rows: [][]string{
			{"Total Calls", count(totals.TotalCalls)},
			{"Total Minutes", minutes(totals.TotalMinutes())},
			{"Interstate Calls", count(totals.InterstateCalls)},
			{"Interstate Min", minutes(totals.InterstateMinutes())},
			{"Intrastate Calls", count(totals.IntrastateCalls)},
			{"Intrastate Min", minutes(totals.IntrastateMinutes())},
			{"Toll-Free Calls", count(totals.TollFreeCalls)},
			{"Toll-Free Min", minutes(totals.TollFreeMinutes())},
			{"Unknown Calls", count(totals.UnknownCalls)},
			{"Unknown Min", minutes(totals.UnknownMinutes())},
			{"Interstate %", percent(r.InterstateRatio * 100)},
			{"Intrastate %", percent(r.IntrastateRatio * 100)},
			{"Safe Harbor Interstate %", percent(entity.SafeHarborInterstatePercent)},
			{"Difference from Safe Harbor", fmt.Sprintf("%+.2f", r.SafeHarborDelta())},
		},
	}
}

func namedCountTable(sheet, nameHeader, countHeader string, counts []entity.NamedCount) table {
	t := table{sheet: sheet, header: []string{nameHeader, countHeader}}
	for _, c := range counts {
		t.rows = append(t.rows, []string{c.Name, count(c.Count)})
	}
	return t
}

func phoneCountsTable(counts []entity.NamedCount) table {
	return namedCountTable("Phones", "Customer", "Billable Phone Count", counts)
}

func callerIDTable(counts []entity.NamedCount) table {
	return namedCountTable("CallerID", "Phone Number", "Call Count", counts)
}

func excludedPhonesTable(entries []entity.PhoneInventoryEntry) table {
	t := table{
		sheet:  "Excluded Phones",
		header: []string{"Phone Number", "Domain", "Treatment", "Destination", "Notes", "Enable"},
	}
	for _, e := range entries {
		t.rows = append(t.rows, []string{e.PhoneNumber, e.Domain, e.Treatment, e.Destination, e.Notes, e.Enable})
	}
	return t
}

func smsTable(stats []*entity.SMSStats, rate float64) table {
	t := table{
		sheet:  "SMS",
		header: []string{"Customer", "Total Messages", "Incoming", "Outgoing", "CDR Cost", "Billable Cost"},
	}
	for _, s := range stats {
		t.rows = append(t.rows, []string{
			s.Name,
			count(s.TotalMessages),
			count(s.IncomingMessages),
			count(s.OutgoingMessages),
			money(s.TotalCost),
			money(s.BillableCost(rate)),
		})
	}
	return t
}

func seatsTable(seats []entity.SeatStats) table {
	t := table{
		sheet: "Seats",
		header: []string{
			"Customer", "PBX Users (Seats)", "Call Center", "Call Recording", "SIP Trunks",
			"Meeting Rooms", "VM Transcription", "Phone Numbers", "Teams Connectors", "Video Connectors",
		},
	}
	for _, s := range seats {
		t.rows = append(t.rows, []string{
			s.Customer,
			count(s.PBXUsers),
			count(s.CallCenter),
			count(s.CallRecording),
			count(s.SIPTrunks),
			count(s.MeetingRooms),
			count(s.VMTranscription),
			count(s.PhoneNumbers),
			count(s.TeamsConnectors),
			count(s.VideoConnectors),
		})
	}
	return t
}

// pivotTable mirrors a spreadsheet pivot: zero department cells are left blank and
// the two summary figures sit under the fourth user-type column.
func pivotTable(p *entity.DepartmentPivot) table {
	header := append([]string{"Department"}, entity.UserTypes...)
	header = append(header, "Grand Total")
	t := table{sheet: "Department Pivot", header: header}

	for _, d := range p.Departments() {
		row := []string{d}
		for _, ut := range entity.UserTypes {
			row = append(row, blankZero(p.Count(d, ut)))
		}
		t.rows = append(t.rows, append(row, count(p.RowTotal(d))))
	}

	totals := p.GrandTotals()
	row := []string{"Grand Total"}
	for _, ut := range entity.UserTypes {
		row = append(row, count(totals[ut]))
	}
	t.rows = append(t.rows,
		append(row, count(p.GrandTotal())),
		[]string{},
		[]string{"Lines Calculation", "", "", "", count(p.Billable())},
		[]string{"High Value for Month Users", "", "", "", count(p.Active())},
	)
	return t
}

func blankZero(n int) string {
	if n == 0 {
		return ""
	}
	return count(n)
}
