package workbook

import (
	"iter"
	"math"
	"strconv"
	"strings"

	"github.com/diillson/cdr-billing/internal/domain/entity"
	"github.com/diillson/cdr-billing/internal/domain/telephony"
)

// Column layout of the switch CDR export sheet.
const (
	cdrFromColumn     = "D"
	cdrDialedColumn   = "E"
	cdrToColumn       = "F"
	cdrDurationColumn = "I"
	cdrDomainColumn   = "J"
)

// Column layout of the user export sheet used for the department pivot.
const (
	departmentColumn = "I"
	userTypeColumn   = "AA"
)

// seatColumns lists the domain statistics counters in sheet order, starting at B.
var seatColumns = []string{"B", "C", "D", "E", "F", "G", "H", "I", "J"}

// CallRecords maps CDR export rows to call records. The customer comes from the
// row's own domain column; calls without a positive duration are dropped.
func CallRecords(rows iter.Seq[Row]) iter.Seq[entity.CallRecord] {
	return func(yield func(entity.CallRecord) bool) {
		for row := range rows {
			seconds := parseFloat(row.Get(cdrDurationColumn))
			if seconds <= 0 {
				continue
			}

			destination := row.Get(cdrToColumn)
			if destination == "" {
				destination = row.Get(cdrDialedColumn)
			}

			rec := entity.CallRecord{
				Source:      row.Get(cdrFromColumn),
				Destination: destination,
				Seconds:     seconds,
				Customer:    telephony.CustomerName(row.Get(cdrDomainColumn)),
				Origin:      entity.OriginSpreadsheet,
			}
			if !yield(rec) {
				return
			}
		}
	}
}

// SeatStats maps domain statistics rows to per-domain seat counts. The "Total"
// row, rows without a domain and rows with a non-integer counter are skipped.
func SeatStats(rows iter.Seq[Row]) iter.Seq[entity.SeatStats] {
	return func(yield func(entity.SeatStats) bool) {
		for row := range rows {
			domain := row.Get("A")
			if domain == "" || domain == "Total" {
				continue
			}

			counts := make([]int, len(seatColumns))
			valid := true
			for i, col := range seatColumns {
				n, err := parseCount(row.Get(col))
				if err != nil {
					valid = false
					break
				}
				counts[i] = n
			}
			if !valid {
				continue
			}

			s := entity.SeatStats{
				Customer:        telephony.CustomerName(domain),
				Domain:          domain,
				PBXUsers:        counts[0],
				CallCenter:      counts[1],
				CallRecording:   counts[2],
				SIPTrunks:       counts[3],
				MeetingRooms:    counts[4],
				VMTranscription: counts[5],
				PhoneNumbers:    counts[6],
				TeamsConnectors: counts[7],
				VideoConnectors: counts[8],
			}
			if !yield(s) {
				return
			}
		}
	}
}

// DepartmentRows maps user export rows to department/user-type pairs.
func DepartmentRows(rows iter.Seq[Row]) iter.Seq[entity.DepartmentRow] {
	return func(yield func(entity.DepartmentRow) bool) {
		for row := range rows {
			dept := strings.TrimSpace(row.Get(departmentColumn))
			if dept == "" {
				continue
			}
			r := entity.DepartmentRow{
				Department: dept,
				UserType:   strings.TrimSpace(row.Get(userTypeColumn)),
			}
			if !yield(r) {
				return
			}
		}
	}
}

// IsDepartmentHeader recognizes the user export sheet by a "Department" header cell.
func IsDepartmentHeader(header Row) bool {
	for _, v := range header.Cells {
		if strings.EqualFold(strings.TrimSpace(v), "department") {
			return true
		}
	}
	return false
}

func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func parseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
