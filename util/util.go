package util

import (
	"math"
	"sort"
)

// SafeRatio divides num by den, yielding NaN on a zero denominator.
// Zero-volume stages are expected in sliced views and must stay visible
// as undefined rather than collapsing to zero.
func SafeRatio(num, den float64) float64 {
	if den == 0 {
		return math.NaN()
	}
	return num / den
}

func StringValueIn(value string, list []string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

// DistinctCount counts distinct non-empty values.
func DistinctCount(values []string) int {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		seen[v] = struct{}{}
	}
	return len(seen)
}

// SortedKeys returns the map's keys in ascending order. Aggregation tables
// are emitted in key order so reruns produce identical output.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
