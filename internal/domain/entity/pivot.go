package entity

import (
	"encoding/json"
	"sort"
)

// UserTypes is the closed list of user-type codes reported as pivot columns.
var UserTypes = []string{"u", "nu", "nb", "vm only", "faxata"}

// DepartmentRow is one user export line reduced to the two pivot dimensions.
type DepartmentRow struct {
	Department string
	UserType   string
}

// DepartmentPivot counts extensions by department and user type.
type DepartmentPivot struct {
	counts map[string]map[string]int
}

func NewDepartmentPivot() *DepartmentPivot {
	return &DepartmentPivot{counts: make(map[string]map[string]int)}
}

// Add counts one extension.
func (p *DepartmentPivot) Add(department, userType string) {
	row, ok := p.counts[department]
	if !ok {
		row = make(map[string]int)
		p.counts[department] = row
	}
	row[userType]++
}

func (p *DepartmentPivot) Empty() bool { return len(p.counts) == 0 }

// Departments returns department names in lexical order.
func (p *DepartmentPivot) Departments() []string {
	out := make([]string, 0, len(p.counts))
	for d := range p.counts {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// Count returns the extensions of userType in department.
func (p *DepartmentPivot) Count(department, userType string) int {
	return p.counts[department][userType]
}

// RowTotal sums department over the reported user types only.
func (p *DepartmentPivot) RowTotal(department string) int {
	total := 0
	for _, ut := range UserTypes {
		total += p.counts[department][ut]
	}
	return total
}

// GrandTotals sums each reported user type over all departments.
func (p *DepartmentPivot) GrandTotals() map[string]int {
	totals := make(map[string]int, len(UserTypes))
	for _, ut := range UserTypes {
		totals[ut] = 0
	}
	for _, row := range p.counts {
		for _, ut := range UserTypes {
			totals[ut] += row[ut]
		}
	}
	return totals
}

// GrandTotal is the sum of every reported cell.
func (p *DepartmentPivot) GrandTotal() int {
	total := 0
	for _, n := range p.GrandTotals() {
		total += n
	}
	return total
}

// Billable counts lines that are invoiced: users plus voicemail-only boxes.
func (p *DepartmentPivot) Billable() int {
	t := p.GrandTotals()
	return t["u"] + t["vm only"]
}

// Active counts users, not-used users and voicemail-only boxes.
func (p *DepartmentPivot) Active() int {
	t := p.GrandTotals()
	return t["u"] + t["nu"] + t["vm only"]
}

type pivotRowJSON struct {
	Department string         `json:"department"`
	Counts     map[string]int `json:"counts"`
	Total      int            `json:"total"`
}

// MarshalJSON renders the pivot as the same table the CSV export shows.
func (p *DepartmentPivot) MarshalJSON() ([]byte, error) {
	rows := make([]pivotRowJSON, 0, len(p.counts))
	for _, d := range p.Departments() {
		counts := make(map[string]int, len(UserTypes))
		for _, ut := range UserTypes {
			counts[ut] = p.Count(d, ut)
		}
		rows = append(rows, pivotRowJSON{Department: d, Counts: counts, Total: p.RowTotal(d)})
	}
	return json.Marshal(struct {
		Rows        []pivotRowJSON `json:"rows"`
		GrandTotals map[string]int `json:"grand_totals"`
		GrandTotal  int            `json:"grand_total"`
		Billable    int            `json:"billable_lines"`
		Active      int            `json:"active_users"`
	}{rows, p.GrandTotals(), p.GrandTotal(), p.Billable(), p.Active()})
}
