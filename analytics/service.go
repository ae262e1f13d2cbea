package analytics

import (
	"sort"

	"deliverylens/model"
	"deliverylens/util"
)

const metricCancelledOrders = "cancelled_orders"

// ServiceWeekStats compares the service lines week by week: order volume,
// buyers, purchase sessions, payment failures and the derived ratios that
// tell whether a drop is service-local.
type ServiceWeekStats struct {
	Week              string
	Service           string
	Orders            int
	Buyers            int
	PurchaseSessions  int
	CancelledOrders   int
	CancellationRatio float64
	OrdersPerBuyer    float64
}

// WeeklyServiceBreakdown aggregates rows carrying a service line by
// (week, service). Ratios are NaN where the denominator is zero.
func WeeklyServiceBreakdown(events []model.Event) []ServiceWeekStats {
	type key struct{ week, service string }
	buckets := make(map[key]distinctCounter)
	for i := range events {
		e := &events[i]
		if e.Service == "" {
			continue
		}
		k := key{e.EventWeek, e.Service}
		counter, ok := buckets[k]
		if !ok {
			counter = newDistinctCounter()
			buckets[k] = counter
		}
		counter.add(metricOrders, e.OrderID)
		counter.add(metricBuyers, e.UserWPurchase)
		counter.add(metricPurchaseSessions, e.SessionWPurchase)
		if e.Reason != "" {
			counter.add(metricCancelledOrders, e.OrderID)
		}
	}

	rows := make([]ServiceWeekStats, 0, len(buckets))
	for k, counter := range buckets {
		orders := counter.count(metricOrders)
		buyers := counter.count(metricBuyers)
		cancelled := counter.count(metricCancelledOrders)
		rows = append(rows, ServiceWeekStats{
			Week:              k.week,
			Service:           k.service,
			Orders:            orders,
			Buyers:            buyers,
			PurchaseSessions:  counter.count(metricPurchaseSessions),
			CancelledOrders:   cancelled,
			CancellationRatio: util.SafeRatio(float64(cancelled), float64(orders)),
			OrdersPerBuyer:    util.SafeRatio(float64(orders), float64(buyers)),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Week != rows[j].Week {
			return rows[i].Week < rows[j].Week
		}
		return rows[i].Service < rows[j].Service
	})
	return rows
}
