package analytics

import "deliverylens/model"

// Table converters for the reporting sink. Column names follow the unified
// event table's vocabulary so charts and sheets read like the source data.

func ActivityTable(name, periodHeader string, rows []PeriodActivity) model.Table {
	t := model.Table{
		Name: name,
		Headers: []string{periodHeader, "SessionID", "PseudoID", "ActiveUsers",
			"SessionswPurchases", "UserswPurchases", "order_id"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []interface{}{r.Period, r.Sessions, r.Users,
			r.ActiveUsers, r.PurchaseSessions, r.Buyers, r.Orders})
	}
	return t
}

func ServiceBreakdownTable(rows []ServiceWeekStats) model.Table {
	t := model.Table{
		Name: "service_breakdown",
		Headers: []string{"EventWeek", "service", "order_id", "UserswPurchases",
			"SessionswPurchases", "cancelled_orders", "cancellation_ratio", "orders_per_buyer"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []interface{}{r.Week, r.Service, r.Orders, r.Buyers,
			r.PurchaseSessions, r.CancelledOrders, r.CancellationRatio, r.OrdersPerBuyer})
	}
	return t
}

func FunnelSummaryTable(summary FunnelSummary) model.Table {
	t := model.Table{
		Name: "funnel_summary",
		Headers: []string{"funnel_order", "funnel", "SessionID", "PseudoID",
			"Sessions_CR_1st", "Users_CR_1st", "Sessions_CR_prev", "Users_CR_prev"},
	}
	for _, s := range summary.Stages {
		t.Rows = append(t.Rows, []interface{}{s.Order, s.Label, s.Sessions, s.Users,
			s.SessionsCR1st, s.UsersCR1st, s.SessionsCRPrev, s.UsersCRPrev})
	}
	return t
}

func WeeklyFunnelTable(rows []WeeklyStageCount) model.Table {
	t := model.Table{
		Name:    "funnel_weekly",
		Headers: []string{"EventWeek", "funnel_order", "funnel", "PseudoID", "SessionID"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []interface{}{r.Week, r.Order, r.Label, r.Users, r.Sessions})
	}
	return t
}

func VersionEntrySharesTable(rows []VersionEntryShare) model.Table {
	t := model.Table{
		Name:    "version_entry_share",
		Headers: []string{"EventWeek", "AppVersion", "SessionID", "FunnelSessionID", "EntryShare"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []interface{}{r.Week, r.AppVersion, r.Sessions,
			r.FunnelSessions, r.EntryShare})
	}
	return t
}

func EntryPointUsageTable(rows []EntryPointUsage) model.Table {
	t := model.Table{
		Name:    "entry_point_usage",
		Headers: []string{"EventWeek", "AppVersion", "EntryPoint", "PseudoID", "SessionID"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []interface{}{r.Week, r.AppVersion, r.EntryPoint,
			r.Users, r.Sessions})
	}
	return t
}
