package analytics

import (
	"deliverylens/model"
	"deliverylens/util"
)

// Metric names used as distinctCounter keys.
const (
	metricSessions         = "sessions"
	metricUsers            = "users"
	metricActiveUsers      = "active_users"
	metricPurchaseSessions = "purchase_sessions"
	metricBuyers           = "buyers"
	metricOrders           = "orders"
)

// PeriodActivity is one row of the activity baseline: distinct counts of the
// engagement and purchase metrics for one week or month.
type PeriodActivity struct {
	Period           string
	Sessions         int
	Users            int
	ActiveUsers      int
	PurchaseSessions int
	Buyers           int
	Orders           int
}

// WeeklyActivity aggregates the baseline metrics by event week.
func WeeklyActivity(events []model.Event) []PeriodActivity {
	return activityByPeriod(events, func(e *model.Event) string { return e.EventWeek })
}

// MonthlyActivity aggregates the baseline metrics by event month.
func MonthlyActivity(events []model.Event) []PeriodActivity {
	return activityByPeriod(events, func(e *model.Event) string { return e.EventMonth })
}

func activityByPeriod(events []model.Event, periodOf func(*model.Event) string) []PeriodActivity {
	buckets := make(map[string]distinctCounter)
	for i := range events {
		e := &events[i]
		period := periodOf(e)
		counter, ok := buckets[period]
		if !ok {
			counter = newDistinctCounter()
			buckets[period] = counter
		}
		counter.add(metricSessions, e.SessionID)
		counter.add(metricUsers, e.PseudoID)
		counter.add(metricActiveUsers, e.ActiveUser)
		counter.add(metricPurchaseSessions, e.SessionWPurchase)
		counter.add(metricBuyers, e.UserWPurchase)
		counter.add(metricOrders, e.OrderID)
	}

	rows := make([]PeriodActivity, 0, len(buckets))
	for _, period := range util.SortedKeys(buckets) {
		counter := buckets[period]
		rows = append(rows, PeriodActivity{
			Period:           period,
			Sessions:         counter.count(metricSessions),
			Users:            counter.count(metricUsers),
			ActiveUsers:      counter.count(metricActiveUsers),
			PurchaseSessions: counter.count(metricPurchaseSessions),
			Buyers:           counter.count(metricBuyers),
			Orders:           counter.count(metricOrders),
		})
	}
	return rows
}
