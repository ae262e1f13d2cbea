package analytics

import (
	"math"
	"testing"

	"deliverylens/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeeklyServiceBreakdown(t *testing.T) {
	events := model.ApplyFlags([]model.Event{
		{EventName: model.EventNamePurchase, Screen: model.ScreenPayment,
			Service: model.ServiceFoodDelivery, OrderID: "o1",
			PseudoID: "u1", SessionID: "s1", EventWeek: "2025-11-16"},
		{EventName: model.EventNamePaymentFailed, Screen: model.ScreenPayment,
			Service: model.ServiceFoodDelivery, OrderID: "o2", Reason: "card_declined",
			PseudoID: "u2", SessionID: "s2", EventWeek: "2025-11-16"},
		{EventName: model.EventNameScreenView, Screen: model.ScreenMenu,
			Service:  model.ServiceGroceryDelivery,
			PseudoID: "u3", SessionID: "s3", EventWeek: "2025-11-16"},
		// No service line: excluded from the comparison entirely.
		{EventName: model.EventNameClick, Screen: model.ScreenHome,
			PseudoID: "u4", SessionID: "s4", EventWeek: "2025-11-16"},
	})

	rows := WeeklyServiceBreakdown(events)

	require.Len(t, rows, 2)

	food := rows[0]
	assert.Equal(t, model.ServiceFoodDelivery, food.Service)
	assert.Equal(t, 2, food.Orders)
	assert.Equal(t, 2, food.Buyers)
	assert.Equal(t, 1, food.CancelledOrders)
	assert.InDelta(t, 0.5, food.CancellationRatio, 1e-9)
	assert.InDelta(t, 1.0, food.OrdersPerBuyer, 1e-9)

	grocery := rows[1]
	assert.Equal(t, model.ServiceGroceryDelivery, grocery.Service)
	assert.Equal(t, 0, grocery.Orders)
	assert.True(t, math.IsNaN(grocery.OrdersPerBuyer), "no buyers means undefined, not zero")
	assert.True(t, math.IsNaN(grocery.CancellationRatio))
}
