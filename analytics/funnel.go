package analytics

import (
	"sort"

	"deliverylens/model"
	"deliverylens/util"
)

// FunnelStage is one row of the aggregate funnel: distinct volume at the
// stage plus conversion ratios against stage 1 and against the immediately
// preceding populated stage. Ratios are NaN when the denominator is zero.
type FunnelStage struct {
	Order          int
	Label          string
	Sessions       int
	Users          int
	SessionsCR1st  float64
	UsersCR1st     float64
	SessionsCRPrev float64
	UsersCRPrev    float64
}

// FunnelSummary is the aggregate funnel plus the audit count of rows that
// matched no funnel rule (excluded from the stages by policy, not error).
type FunnelSummary struct {
	Stages        []FunnelStage
	UnmatchedRows int
}

// SummarizeFunnel builds the aggregate funnel over rows carrying a stage
// assignment. Only populated stages appear; ordering follows the fixed stage
// order, never timestamps.
func SummarizeFunnel(events []model.Event) FunnelSummary {
	type stageKey struct {
		order int
		label string
	}
	buckets := make(map[stageKey]distinctCounter)
	unmatched := 0
	for i := range events {
		e := &events[i]
		if e.FunnelOrder == 0 {
			unmatched++
			continue
		}
		k := stageKey{e.FunnelOrder, e.Funnel}
		counter, ok := buckets[k]
		if !ok {
			counter = newDistinctCounter()
			buckets[k] = counter
		}
		counter.add(metricSessions, e.SessionID)
		counter.add(metricUsers, e.PseudoID)
	}

	stages := make([]FunnelStage, 0, len(buckets))
	for k, counter := range buckets {
		stages = append(stages, FunnelStage{
			Order:    k.order,
			Label:    k.label,
			Sessions: counter.count(metricSessions),
			Users:    counter.count(metricUsers),
		})
	}
	sort.Slice(stages, func(i, j int) bool { return stages[i].Order < stages[j].Order })

	var firstSessions, firstUsers int
	for _, s := range stages {
		if s.Order == model.FunnelOrderEnter {
			firstSessions, firstUsers = s.Sessions, s.Users
			break
		}
	}
	for i := range stages {
		stages[i].SessionsCR1st = util.SafeRatio(float64(stages[i].Sessions), float64(firstSessions))
		stages[i].UsersCR1st = util.SafeRatio(float64(stages[i].Users), float64(firstUsers))
		prevSessions, prevUsers := 0, 0
		if i > 0 {
			prevSessions, prevUsers = stages[i-1].Sessions, stages[i-1].Users
		}
		stages[i].SessionsCRPrev = util.SafeRatio(float64(stages[i].Sessions), float64(prevSessions))
		stages[i].UsersCRPrev = util.SafeRatio(float64(stages[i].Users), float64(prevUsers))
	}

	return FunnelSummary{Stages: stages, UnmatchedRows: unmatched}
}

// WeeklyStageCount is one cell of the time-sliced funnel: distinct volume at
// one stage in one week.
type WeeklyStageCount struct {
	Week     string
	Order    int
	Label    string
	Users    int
	Sessions int
}

// WeeklyFunnel slices the funnel by week so the onset of a stage-level drop
// can be located in time.
func WeeklyFunnel(events []model.Event) []WeeklyStageCount {
	type key struct {
		week  string
		order int
		label string
	}
	buckets := make(map[key]distinctCounter)
	for i := range events {
		e := &events[i]
		if e.FunnelOrder == 0 {
			continue
		}
		k := key{e.EventWeek, e.FunnelOrder, e.Funnel}
		counter, ok := buckets[k]
		if !ok {
			counter = newDistinctCounter()
			buckets[k] = counter
		}
		counter.add(metricUsers, e.PseudoID)
		counter.add(metricSessions, e.SessionID)
	}

	rows := make([]WeeklyStageCount, 0, len(buckets))
	for k, counter := range buckets {
		rows = append(rows, WeeklyStageCount{
			Week:     k.week,
			Order:    k.order,
			Label:    k.label,
			Users:    counter.count(metricUsers),
			Sessions: counter.count(metricSessions),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Week != rows[j].Week {
			return rows[i].Week < rows[j].Week
		}
		return rows[i].Order < rows[j].Order
	})
	return rows
}
