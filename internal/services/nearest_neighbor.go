package services

import (
	"math"

	"depot-router/internal/domain"
)

// NearestLocation picks the candidate address index closest to current.
//
// Selection is a greedy step: strict less-than, so among equal distances the
// candidate that appears first wins. Duplicate candidates are allowed.
// It reports false when there are no candidates.
func NearestLocation(table *domain.AddressTable, current int, candidates []int) (int, bool) {
	best := -1
	minMiles := math.Inf(1)

	for _, c := range candidates {
		if d := table.Distance(current, c); d < minMiles {
			minMiles = d
			best = c
		}
	}

	return best, best >= 0
}

// removeFirst drops the first occurrence of v from s in place.
func removeFirst(s []int, v int) []int {
	for i, x := range s {
		if x == v {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}
