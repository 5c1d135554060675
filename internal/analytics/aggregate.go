// Package analytics holds the pure aggregation functions feeding the admin
// charts. All functions are deterministic, side-effect free, and keep the
// first-seen order of their input so chart series are reproducible.
package analytics

import "jobboard/internal/domain/application"

type CityCount struct {
	CityName string `json:"city_name"`
	Count    int    `json:"count"`
}

// ByCity groups records by their embedded city name and counts occurrences.
// Cities with zero matching records are omitted; the city-statistics endpoint
// is the one that backfills zeros. Blank city names are skipped.
func ByCity[T any](items []T, cityOf func(T) string) []CityCount {
	index := make(map[string]int, len(items))
	out := make([]CityCount, 0, len(items))

	for _, it := range items {
		name := cityOf(it)
		if name == "" {
			continue
		}
		if i, ok := index[name]; ok {
			out[i].Count++
			continue
		}
		index[name] = len(out)
		out = append(out, CityCount{CityName: name, Count: 1})
	}
	return out
}

type StatusCounts struct {
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
	Hold     int `json:"hold"`
}

// StatusBreakdown counts applications per terminal-or-initial status for the
// three-way pie view. next_step and final_step are deliberately excluded from
// this particular breakdown, so the counted total can be less than len(statuses).
func StatusBreakdown(statuses []application.Status) StatusCounts {
	var c StatusCounts
	for _, s := range statuses {
		switch s {
		case application.StatusAccepted:
			c.Accepted++
		case application.StatusRejected:
			c.Rejected++
		case application.StatusHold:
			c.Hold++
		}
	}
	return c
}

// MatchingSkills returns the members of jobSkills that also appear in
// candidateSkills, in jobSkills order, deduplicated. Membership only, no
// ranking or weighting.
func MatchingSkills[K comparable](jobSkills, candidateSkills []K) []K {
	have := make(map[K]struct{}, len(candidateSkills))
	for _, s := range candidateSkills {
		have[s] = struct{}{}
	}

	seen := make(map[K]struct{}, len(jobSkills))
	out := make([]K, 0, len(jobSkills))
	for _, s := range jobSkills {
		if _, ok := have[s]; !ok {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
