package analytics

import (
	"sort"

	"deliverylens/model"
	"deliverylens/util"
)

const metricFunnelSessions = "funnel_sessions"

// VersionEntryShare compares, per week and app version, total session volume
// against sessions that entered the food-delivery funnel. A version whose
// share drops points at a release-level cause.
type VersionEntryShare struct {
	Week           string
	AppVersion     string
	Sessions       int
	FunnelSessions int
	EntryShare     float64
}

// WeeklyVersionEntryShares aggregates sessions by (week, app version) and
// computes the funnel-entry share. EntryShare is NaN when the version has no
// sessions in the week.
func WeeklyVersionEntryShares(events []model.Event) []VersionEntryShare {
	type key struct{ week, version string }
	buckets := make(map[key]distinctCounter)
	for i := range events {
		e := &events[i]
		k := key{e.EventWeek, e.AppVersion}
		counter, ok := buckets[k]
		if !ok {
			counter = newDistinctCounter()
			buckets[k] = counter
		}
		counter.add(metricSessions, e.SessionID)
		if e.FunnelOrder == model.FunnelOrderEnter {
			counter.add(metricFunnelSessions, e.SessionID)
		}
	}

	rows := make([]VersionEntryShare, 0, len(buckets))
	for k, counter := range buckets {
		sessions := counter.count(metricSessions)
		funnelSessions := counter.count(metricFunnelSessions)
		rows = append(rows, VersionEntryShare{
			Week:           k.week,
			AppVersion:     k.version,
			Sessions:       sessions,
			FunnelSessions: funnelSessions,
			EntryShare:     util.SafeRatio(float64(funnelSessions), float64(sessions)),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Week != rows[j].Week {
			return rows[i].Week < rows[j].Week
		}
		return rows[i].AppVersion < rows[j].AppVersion
	})
	return rows
}

// EntryPointUsage counts, per (week, app version, entry point), the distinct
// users and sessions starting the funnel there. A tile missing from a
// release shows up as a vanished entry point.
type EntryPointUsage struct {
	Week       string
	AppVersion string
	EntryPoint string
	Users      int
	Sessions   int
}

// WeeklyEntryPointUsage aggregates stage-1 rows carrying an entry-point
// label. Stage-1 rows with an unknown button are excluded here but remain in
// the funnel aggregations.
func WeeklyEntryPointUsage(events []model.Event) []EntryPointUsage {
	type key struct{ week, version, entry string }
	buckets := make(map[key]distinctCounter)
	for i := range events {
		e := &events[i]
		if e.EntryPoint == "" {
			continue
		}
		k := key{e.EventWeek, e.AppVersion, e.EntryPoint}
		counter, ok := buckets[k]
		if !ok {
			counter = newDistinctCounter()
			buckets[k] = counter
		}
		counter.add(metricUsers, e.PseudoID)
		counter.add(metricSessions, e.SessionID)
	}

	rows := make([]EntryPointUsage, 0, len(buckets))
	for k, counter := range buckets {
		rows = append(rows, EntryPointUsage{
			Week:       k.week,
			AppVersion: k.version,
			EntryPoint: k.entry,
			Users:      counter.count(metricUsers),
			Sessions:   counter.count(metricSessions),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Week != rows[j].Week {
			return rows[i].Week < rows[j].Week
		}
		if rows[i].AppVersion != rows[j].AppVersion {
			return rows[i].AppVersion < rows[j].AppVersion
		}
		return rows[i].EntryPoint < rows[j].EntryPoint
	})
	return rows
}
