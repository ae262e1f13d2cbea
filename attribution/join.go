package attribution

import (
	"sort"
	"time"
)

// ScopeKey bounds the nearest-prior join: a candidate can only serve an
// outcome from the same user, same session and same calendar day.
type ScopeKey struct {
	PseudoID  string
	SessionID string
	EventDate string
}

// ScopedRow is one joinable row: its scope, its event time and its position
// in the source table. Index doubles as the deterministic tie-break key.
type ScopedRow struct {
	Scope ScopeKey
	At    time.Time
	Index int
}

// NearestPriorIndexes resolves, for every outcome, the candidate in the same
// scope with the latest time still strictly earlier than the outcome's time.
// Among candidates sharing that time the one latest in source order wins.
// The result maps outcome positions to candidate Index values, -1 when no
// candidate qualifies.
//
// This is a generic "attribute outcome to preceding cause" primitive; the
// entry-point attribution below is one instantiation of it.
func NearestPriorIndexes(candidates, outcomes []ScopedRow) []int {
	byScope := make(map[ScopeKey][]ScopedRow)
	for _, c := range candidates {
		byScope[c.Scope] = append(byScope[c.Scope], c)
	}
	for _, rows := range byScope {
		sort.Slice(rows, func(i, j int) bool {
			if !rows[i].At.Equal(rows[j].At) {
				return rows[i].At.Before(rows[j].At)
			}
			return rows[i].Index < rows[j].Index
		})
	}

	resolved := make([]int, len(outcomes))
	for i, o := range outcomes {
		resolved[i] = -1
		rows := byScope[o.Scope]
		// Latest candidate strictly before the outcome; rows are sorted by
		// (time, source order), so the last qualifying one is the winner.
		n := sort.Search(len(rows), func(k int) bool { return !rows[k].At.Before(o.At) })
		if n > 0 {
			resolved[i] = rows[n-1].Index
		}
	}
	return resolved
}
