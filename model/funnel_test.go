package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFunnelRules(t *testing.T) {
	assert.NoError(t, ValidateFunnelRules())
}

func TestFunnelRulesMutuallyExclusivePerRow(t *testing.T) {
	// Every combination of values the rules mention must match at most once.
	probes := []Event{}
	for _, ev := range []string{EventNameClick, EventNameScreenView, EventNamePurchase,
		EventNamePaymentFailed, EventNameAddPaymentInfo} {
		for _, sc := range []string{ScreenHome, ScreenServicesHub, ScreenOrderHistory,
			ScreenRestaurantList, ScreenMenu, ScreenOrderPage, ScreenCheckout, ScreenPayment} {
			for _, bt := range []string{"", ButtonFoodHomeTile, ButtonFoodHubTile,
				ButtonFoodOrderAgain, "select_restaurant", "add_item", "go_to_cart", "checkout", "pay"} {
				for _, sv := range []string{"", ServiceFoodDelivery, ServiceGroceryDelivery} {
					probes = append(probes, Event{EventName: ev, Screen: sc, Button: bt, Service: sv})
				}
			}
		}
	}
	for i := range probes {
		matches := 0
		for r := range FunnelRules {
			if FunnelRules[r].Matches(&probes[i]) {
				matches++
			}
		}
		assert.LessOrEqual(t, matches, 1, "row %+v matched %d rules", probes[i], matches)
	}
}

func TestAssignFunnelStages(t *testing.T) {
	tests := []struct {
		name      string
		event     Event
		wantOrder int
		wantLabel string
	}{
		{
			"EnterFromHome",
			Event{EventName: EventNameClick, Screen: ScreenHome, Button: ButtonFoodHomeTile},
			FunnelOrderEnter, FunnelLabelEnter,
		},
		{
			"EnterFromHubNoServiceFilter",
			Event{EventName: EventNameClick, Screen: ScreenServicesHub, Button: ButtonFoodHubTile, Service: ServiceGroceryDelivery},
			FunnelOrderEnter, FunnelLabelEnter,
		},
		{
			"RestaurantListView",
			Event{EventName: EventNameScreenView, Screen: ScreenRestaurantList, Service: ServiceFoodDelivery},
			2, FunnelLabelRestaurantList,
		},
		{
			"GroceryListViewExcluded",
			Event{EventName: EventNameScreenView, Screen: ScreenRestaurantList, Service: ServiceGroceryDelivery},
			0, "",
		},
		{
			"AddMenuItem",
			Event{EventName: EventNameClick, Screen: ScreenMenu, Button: "add_item", Service: ServiceFoodDelivery},
			5, FunnelLabelAddItem,
		},
		{
			"ClickToPay",
			Event{EventName: EventNameClick, Screen: ScreenCheckout, Button: "pay", Service: ServiceFoodDelivery},
			11, FunnelLabelClickToPay,
		},
		{
			"OrderCreatedFail",
			Event{EventName: EventNamePaymentFailed, Screen: ScreenPayment, Service: ServiceFoodDelivery, OrderID: "o1"},
			FunnelOrderFail, FunnelLabelOrderFail,
		},
		{
			"OrderCreatedSuccess",
			Event{EventName: EventNamePurchase, Screen: ScreenPayment, Service: ServiceFoodDelivery, OrderID: "o2"},
			FunnelOrderSuccess, FunnelLabelOrderSuccess,
		},
		{
			"IdleEventOutsideFunnel",
			Event{EventName: "login", Screen: "auth"},
			0, "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := AssignFunnel([]Event{tt.event})
			require.Len(t, out, 1)
			assert.Equal(t, tt.wantOrder, out[0].FunnelOrder)
			assert.Equal(t, tt.wantLabel, out[0].Funnel)
		})
	}
}

func TestAssignFunnelEntryPoints(t *testing.T) {
	events := AssignFunnel([]Event{
		{EventName: EventNameClick, Screen: ScreenHome, Button: ButtonFoodHomeTile},
		{EventName: EventNameClick, Screen: ScreenServicesHub, Button: ButtonFoodHubTile},
		{EventName: EventNameClick, Screen: ScreenOrderHistory, Button: ButtonFoodOrderAgain},
		{EventName: EventNameScreenView, Screen: ScreenRestaurantList, Service: ServiceFoodDelivery},
	})

	assert.Equal(t, EntryPointHome, events[0].EntryPoint)
	assert.Equal(t, EntryPointHub, events[1].EntryPoint)
	assert.Equal(t, EntryPointOrderHistory, events[2].EntryPoint)
	assert.Empty(t, events[3].EntryPoint, "entry point labels stage-1 rows only")
}
