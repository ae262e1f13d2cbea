package attribution

import (
	"sort"

	"deliverylens/model"
)

// OrderAttribution links one order outcome to the funnel entry point that
// most plausibly caused it.
type OrderAttribution struct {
	OrderID    string
	EntryPoint string
	AppVersion string
	EventDate  string
	Week       string
}

// Result carries the attributed orders plus the audit count of order
// outcomes with no qualifying prior entry event in scope.
type Result struct {
	Orders       []OrderAttribution
	Unattributed int
}

// AttributeOrders joins every order-outcome row (payment failed or purchase,
// both carrying an order ID) to the nearest strictly-earlier entry-point row
// within the same user, session and calendar day. Orders with no qualifying
// entry are counted, not attributed.
func AttributeOrders(events []model.Event) Result {
	var entries, outcomes []ScopedRow
	for i := range events {
		e := &events[i]
		scope := ScopeKey{PseudoID: e.PseudoID, SessionID: e.SessionID, EventDate: e.EventDate}
		if e.EntryPoint != "" {
			entries = append(entries, ScopedRow{Scope: scope, At: e.EventTimestamp, Index: i})
		}
		if e.OrderID != "" &&
			(e.FunnelOrder == model.FunnelOrderFail || e.FunnelOrder == model.FunnelOrderSuccess) {
			outcomes = append(outcomes, ScopedRow{Scope: scope, At: e.EventTimestamp, Index: i})
		}
	}

	resolved := NearestPriorIndexes(entries, outcomes)

	result := Result{}
	for i, o := range outcomes {
		if resolved[i] < 0 {
			result.Unattributed++
			continue
		}
		order := &events[o.Index]
		entry := &events[resolved[i]]
		result.Orders = append(result.Orders, OrderAttribution{
			OrderID:    order.OrderID,
			EntryPoint: entry.EntryPoint,
			AppVersion: order.AppVersion,
			EventDate:  order.EventDate,
			Week:       order.EventWeek,
		})
	}
	return result
}

// WeeklyEntryOrders is the final evidence row: distinct orders per week and
// entry point, optionally split by app version.
type WeeklyEntryOrders struct {
	Week       string
	AppVersion string
	EntryPoint string
	Orders     int
}

// ByWeekEntry counts distinct attributed orders per (week, entry point).
func (r Result) ByWeekEntry() []WeeklyEntryOrders {
	return r.aggregate(false)
}

// ByWeekVersionEntry counts distinct attributed orders per
// (week, app version, entry point).
func (r Result) ByWeekVersionEntry() []WeeklyEntryOrders {
	return r.aggregate(true)
}

func (r Result) aggregate(byVersion bool) []WeeklyEntryOrders {
	type key struct{ week, version, entry string }
	buckets := make(map[key]map[string]struct{})
	for _, o := range r.Orders {
		k := key{week: o.Week, entry: o.EntryPoint}
		if byVersion {
			k.version = o.AppVersion
		}
		set, ok := buckets[k]
		if !ok {
			set = make(map[string]struct{})
			buckets[k] = set
		}
		set[o.OrderID] = struct{}{}
	}

	rows := make([]WeeklyEntryOrders, 0, len(buckets))
	for k, set := range buckets {
		rows = append(rows, WeeklyEntryOrders{
			Week:       k.week,
			AppVersion: k.version,
			EntryPoint: k.entry,
			Orders:     len(set),
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

// Tables for the reporting sink.

func WeeklyEntryOrdersTable(rows []WeeklyEntryOrders) model.Table {
	t := model.Table{
		Name:    "orders_by_entry_point",
		Headers: []string{"EventWeek", "EntryPoint", "order_id"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []interface{}{r.Week, r.EntryPoint, r.Orders})
	}
	return t
}

func WeeklyVersionEntryOrdersTable(rows []WeeklyEntryOrders) model.Table {
	t := model.Table{
		Name:    "orders_by_entry_point_version",
		Headers: []string{"EventWeek", "AppVersion", "EntryPoint", "order_id"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []interface{}{r.Week, r.AppVersion, r.EntryPoint, r.Orders})
	}
	return t
}
