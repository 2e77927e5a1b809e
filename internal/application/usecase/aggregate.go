package usecase

import (
	"iter"
	"sort"

	"github.com/diillson/cdr-billing/internal/domain/entity"
	"github.com/diillson/cdr-billing/internal/domain/telephony"
	"github.com/diillson/cdr-billing/internal/shared/types"
)

// Aggregator turns normalized, classified and attributed usage into per-customer statistics.
type Aggregator struct {
	customers *telephony.CustomerMap
	rates     types.Rates
}

// NewAggregator creates an aggregator bound to one customer map and rate card.
func NewAggregator(customers *telephony.CustomerMap, rates types.Rates) *Aggregator {
	return &Aggregator{customers: customers, rates: rates}
}

// AggregateCalls accumulates a CDR stream using the cost each record carries.
func (a *Aggregator) AggregateCalls(calls iter.Seq[entity.CallRecord]) *entity.CustomerStatsSet {
	set := entity.NewCustomerStatsSet()
	a.addCalls(set, calls, false)
	return set
}

// AggregateRatedCalls accumulates a CDR stream whose native cost is not billing
// authoritative: cost is recomputed from duration at the voice rate.
func (a *Aggregator) AggregateRatedCalls(calls iter.Seq[entity.CallRecord]) *entity.CustomerStatsSet {
	set := entity.NewCustomerStatsSet()
	a.addCalls(set, calls, true)
	return set
}

// AggregateCombined folds the primary CSV CDR stream and the spreadsheet CDR
// stream into one set keyed by exact customer name.
func (a *Aggregator) AggregateCombined(primary, secondary iter.Seq[entity.CallRecord]) *entity.CustomerStatsSet {
	set := entity.NewCustomerStatsSet()
	a.addCalls(set, primary, false)
	a.addCalls(set, secondary, true)
	return set
}

func (a *Aggregator) addCalls(set *entity.CustomerStatsSet, calls iter.Seq[entity.CallRecord], rated bool) {
	for rec := range calls {
		if rec.Seconds <= 0 {
			continue
		}

		cost := rec.Cost
		if rated {
			cost = rec.Seconds / 60 * a.rates.Voice()
		}

		stats := set.GetOrCreate(a.attribute(rec))
		stats.AddCall(telephony.Classify(rec.Source, rec.Destination), rec.Seconds, cost)

		for _, number := range []string{rec.Source, rec.Destination} {
			if a.customers.Contains(number) {
				stats.AddPhone(telephony.Normalize(number))
			}
		}
	}
}

// attribute trusts a customer the source already resolved from its own domain;
// otherwise the phone numbers decide.
func (a *Aggregator) attribute(rec entity.CallRecord) string {
	if rec.Customer != "" && rec.Customer != entity.UnknownCustomer {
		return rec.Customer
	}
	return a.customers.Resolve(rec.Source, rec.Destination)
}

// AggregateMessages accumulates an SMS stream per customer and overall.
func (a *Aggregator) AggregateMessages(msgs iter.Seq[entity.MessageRecord]) (*entity.SMSStatsSet, *entity.SMSStats) {
	set := entity.NewSMSStatsSet()
	overall := &entity.SMSStats{}

	for m := range msgs {
		customer := a.customers.Resolve(m.Source, m.Destination)
		set.GetOrCreate(customer).Add(m.Incoming(), m.Cost)
		overall.Add(m.Incoming(), m.Cost)
	}
	return set, overall
}

// CountPhones splits the inventory into billable and excluded numbers per customer.
func CountPhones(entries iter.Seq[entity.PhoneInventoryEntry]) *entity.PhoneCountReport {
	report := &entity.PhoneCountReport{
		Billable: entity.NewCountSet(),
		Excluded: entity.NewCountSet(),
	}
	for e := range entries {
		customer := telephony.CustomerName(e.Domain)
		if telephony.IsNonBillableTreatment(e.Treatment) {
			report.Excluded.Inc(customer)
			report.ExcludedEntries = append(report.ExcludedEntries, e)
			continue
		}
		report.Billable.Inc(customer)
	}
	return report
}

// CountCallerIDs counts calls per normalized destination number, zero-duration calls included.
func CountCallerIDs(calls iter.Seq[entity.CallRecord]) *entity.CountSet {
	counts := entity.NewCountSet()
	for rec := range calls {
		if dest := telephony.Normalize(rec.Destination); dest != "" {
			counts.Inc(dest)
		}
	}
	return counts
}

// CollectSeats keeps the last row seen per customer, in first-seen position,
// ranked by descending PBX users.
func CollectSeats(rows iter.Seq[entity.SeatStats]) []entity.SeatStats {
	var out []entity.SeatStats
	pos := make(map[string]int)
	for s := range rows {
		if i, ok := pos[s.Customer]; ok {
			out[i] = s
			continue
		}
		pos[s.Customer] = len(out)
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PBXUsers > out[j].PBXUsers })
	return out
}

// BuildPivot counts extensions by department and user type.
func BuildPivot(rows iter.Seq[entity.DepartmentRow]) *entity.DepartmentPivot {
	p := entity.NewDepartmentPivot()
	for r := range rows {
		p.Add(r.Department, r.UserType)
	}
	return p
}

// CallRatio computes the overall interstate/intrastate split of set.
func CallRatio(set *entity.CustomerStatsSet) entity.CallRatio {
	totals := set.Totals()
	ratio := entity.CallRatio{Totals: totals}
	if j := totals.JurisdictionalSeconds(); j > 0 {
		ratio.InterstateRatio = totals.InterstateSeconds / j
		ratio.IntrastateRatio = totals.IntrastateSeconds / j
	}
	return ratio
}
