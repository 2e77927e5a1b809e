package entity

import "sort"

// NamedCount is one ranked entry of a CountSet.
type NamedCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CountSet is an insertion-ordered tally keyed by name (customer or phone number).
type CountSet struct {
	order  []string
	counts map[string]int
}

func NewCountSet() *CountSet {
	return &CountSet{counts: make(map[string]int)}
}

// Inc adds one to name.
func (c *CountSet) Inc(name string) {
	if _, ok := c.counts[name]; !ok {
		c.order = append(c.order, name)
	}
	c.counts[name]++
}

func (c *CountSet) Get(name string) int { return c.counts[name] }

func (c *CountSet) Len() int { return len(c.order) }

// Total sums all counts.
func (c *CountSet) Total() int {
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// Ranked orders entries by descending count; ties keep first-seen order.
func (c *CountSet) Ranked() []NamedCount {
	out := make([]NamedCount, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, NamedCount{Name: name, Count: c.counts[name]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// PhoneCountReport splits the inventory into billable and excluded numbers per customer.
type PhoneCountReport struct {
	Billable        *CountSet
	Excluded        *CountSet
	ExcludedEntries []PhoneInventoryEntry
}
