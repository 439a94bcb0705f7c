package core

import (
	"sort"

	"github.com/montanaflynn/stats"
)

// Select returns the records that pass f, in table order.
func Select(records []Record, f Filter) []Record {
	if f.IsZero() {
		return records
	}
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Aggregate computes the dashboard counters over the records that pass f.
// The result depends only on subset membership, not on record order.
func Aggregate(records []Record, f Filter) Metrics {
	subset := Select(records, f)

	m := Metrics{
		TotalRecords: len(subset),
		StatusCounts: make(map[Status]int, len(AllStatuses)),
	}
	for _, s := range AllStatuses {
		m.StatusCounts[s] = 0
	}

	ytd := make(stats.Float64Data, 0, len(subset))
	mtd := make(stats.Float64Data, 0, len(subset))
	agents := make(map[string]struct{})

	for _, r := range subset {
		// Canonical labels classify to themselves; anything else lands in
		// the right bucket instead of an unknown key.
		m.StatusCounts[Classify(string(r.Status))]++

		ytd = append(ytd, r.ActiveYTD)
		mtd = append(mtd, r.ActiveMTD)

		if r.AgentID != "" {
			agents[r.AgentID] = struct{}{}
		}
	}

	m.ActiveYTD = sum(ytd)
	m.ActiveMTD = sum(mtd)
	m.UniqueAgents = len(agents)
	return m
}

// sum adds values; an empty input sums to 0.
func sum(values stats.Float64Data) float64 {
	if len(values) == 0 {
		return 0
	}
	total, err := stats.Sum(values)
	if err != nil {
		return 0
	}
	return total
}

// BuildFilterOptions returns the sorted distinct non-empty values for each
// filterable column.
func BuildFilterOptions(records []Record) FilterOptions {
	states := make(map[string]struct{})
	districts := make(map[string]struct{})
	types := make(map[string]struct{})

	for _, r := range records {
		if r.State != "" {
			states[r.State] = struct{}{}
		}
		if r.District != "" {
			districts[r.District] = struct{}{}
		}
		if r.RetailerType != "" {
			types[r.RetailerType] = struct{}{}
		}
	}

	return FilterOptions{
		States:        sortedKeys(states),
		Districts:     sortedKeys(districts),
		RetailerTypes: sortedKeys(types),
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
