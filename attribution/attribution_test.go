package attribution

import (
	"testing"
	"time"

	"deliverylens/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(second int) time.Time {
	return time.Date(2025, 11, 12, 10, 0, second, 0, time.UTC)
}

func entry(user, session, date, button string, ts time.Time) model.Event {
	return model.Event{
		EventName: model.EventNameClick, Screen: model.ScreenHome, Button: button,
		PseudoID: user, SessionID: session, EventDate: date, EventTimestamp: ts,
		EventWeek: "2025-11-16", AppVersion: "5.8.0",
	}
}

func orderSuccess(user, session, date, orderID string, ts time.Time) model.Event {
	return model.Event{
		EventName: model.EventNamePurchase, Screen: model.ScreenPayment,
		Service: model.ServiceFoodDelivery, OrderID: orderID,
		PseudoID: user, SessionID: session, EventDate: date, EventTimestamp: ts,
		EventWeek: "2025-11-16", AppVersion: "5.8.0",
	}
}

func TestAttributeOrdersNearestPriorEntryWins(t *testing.T) {
	events := model.AssignFunnel([]model.Event{
		entry("u1", "s1", "2025-11-12", model.ButtonFoodHubTile, at(1)),
		entry("u1", "s1", "2025-11-12", model.ButtonFoodHomeTile, at(5)),
		orderSuccess("u1", "s1", "2025-11-12", "o1", at(10)),
	})

	result := AttributeOrders(events)

	require.Len(t, result.Orders, 1)
	assert.Equal(t, 0, result.Unattributed)
	assert.Equal(t, "o1", result.Orders[0].OrderID)
	assert.Equal(t, model.EntryPointHome, result.Orders[0].EntryPoint,
		"the nearest strictly-earlier entry wins, not the first")
	assert.Equal(t, "5.8.0", result.Orders[0].AppVersion)
	assert.Equal(t, "2025-11-16", result.Orders[0].Week)
}

func TestAttributeOrdersCrossDayExcluded(t *testing.T) {
	entryDay1 := entry("u1", "s1", "2025-11-11", model.ButtonFoodHubTile,
		time.Date(2025, 11, 11, 23, 50, 0, 0, time.UTC))
	orderDay2 := orderSuccess("u1", "s1", "2025-11-12", "o1",
		time.Date(2025, 11, 12, 0, 5, 0, 0, time.UTC))

	result := AttributeOrders(model.AssignFunnel([]model.Event{entryDay1, orderDay2}))

	assert.Empty(t, result.Orders, "attribution is day scoped")
	assert.Equal(t, 1, result.Unattributed)
}

func TestAttributeOrdersSessionScoped(t *testing.T) {
	events := model.AssignFunnel([]model.Event{
		entry("u1", "s1", "2025-11-12", model.ButtonFoodHubTile, at(1)),
		orderSuccess("u1", "s2", "2025-11-12", "o1", at(10)),
	})

	result := AttributeOrders(events)

	assert.Empty(t, result.Orders, "an entry from another session never qualifies")
	assert.Equal(t, 1, result.Unattributed)
}

func TestAttributeOrdersStrictlyEarlier(t *testing.T) {
	events := model.AssignFunnel([]model.Event{
		entry("u1", "s1", "2025-11-12", model.ButtonFoodHubTile, at(10)),
		orderSuccess("u1", "s1", "2025-11-12", "o1", at(10)),
	})

	result := AttributeOrders(events)

	assert.Empty(t, result.Orders, "an entry at the order's own timestamp does not qualify")
	assert.Equal(t, 1, result.Unattributed)
}

func TestAttributeOrdersTimestampTieIsDeterministic(t *testing.T) {
	hub := entry("u1", "s1", "2025-11-12", model.ButtonFoodHubTile, at(5))
	home := entry("u1", "s1", "2025-11-12", model.ButtonFoodHomeTile, at(5))
	order := orderSuccess("u1", "s1", "2025-11-12", "o1", at(10))

	events := model.AssignFunnel([]model.Event{hub, home, order})

	for i := 0; i < 5; i++ {
		result := AttributeOrders(events)
		require.Len(t, result.Orders, 1)
		assert.Equal(t, model.EntryPointHome, result.Orders[0].EntryPoint,
			"on a timestamp tie the entry later in table order wins")
	}
}

func TestAttributeOrdersFailedPaymentsAttributed(t *testing.T) {
	failed := model.Event{
		EventName: model.EventNamePaymentFailed, Screen: model.ScreenPayment,
		Service: model.ServiceFoodDelivery, OrderID: "o9",
		PseudoID: "u1", SessionID: "s1", EventDate: "2025-11-12", EventTimestamp: at(10),
		EventWeek: "2025-11-16", AppVersion: "5.9.0",
	}
	events := model.AssignFunnel([]model.Event{
		entry("u1", "s1", "2025-11-12", model.ButtonFoodOrderAgain, at(2)),
		failed,
	})

	result := AttributeOrders(events)

	require.Len(t, result.Orders, 1)
	assert.Equal(t, model.EntryPointOrderHistory, result.Orders[0].EntryPoint)
	assert.Equal(t, "5.9.0", result.Orders[0].AppVersion)
}

func TestAggregationsCountDistinctOrders(t *testing.T) {
	events := model.AssignFunnel([]model.Event{
		entry("u1", "s1", "2025-11-12", model.ButtonFoodHomeTile, at(1)),
		orderSuccess("u1", "s1", "2025-11-12", "o1", at(5)),
		// Duplicated outcome row for the same order.
		orderSuccess("u1", "s1", "2025-11-12", "o1", at(6)),
		orderSuccess("u1", "s1", "2025-11-12", "o2", at(7)),
	})

	result := AttributeOrders(events)
	byEntry := result.ByWeekEntry()

	require.Len(t, byEntry, 1)
	assert.Equal(t, WeeklyEntryOrders{Week: "2025-11-16", EntryPoint: model.EntryPointHome, Orders: 2}, byEntry[0])

	byVersion := result.ByWeekVersionEntry()
	require.Len(t, byVersion, 1)
	assert.Equal(t, "5.8.0", byVersion[0].AppVersion)
	assert.Equal(t, 2, byVersion[0].Orders)
}

func TestNearestPriorIndexesScopesIndependently(t *testing.T) {
	scopeA := ScopeKey{PseudoID: "u1", SessionID: "s1", EventDate: "2025-11-12"}
	scopeB := ScopeKey{PseudoID: "u2", SessionID: "s2", EventDate: "2025-11-12"}
	candidates := []ScopedRow{
		{Scope: scopeA, At: at(1), Index: 0},
		{Scope: scopeB, At: at(2), Index: 1},
	}
	outcomes := []ScopedRow{
		{Scope: scopeA, At: at(5), Index: 2},
		{Scope: scopeB, At: at(5), Index: 3},
		{Scope: ScopeKey{PseudoID: "u3", SessionID: "s3", EventDate: "2025-11-12"}, At: at(5), Index: 4},
	}

	resolved := NearestPriorIndexes(candidates, outcomes)

	assert.Equal(t, []int{0, 1, -1}, resolved)
}
