package model

import (
	"fmt"

	"deliverylens/util"
)

// Funnel stage labels, in journey order.
const (
	FunnelLabelEnter          = "Enter Funnel"
	FunnelLabelRestaurantList = "Restaurant List View"
	FunnelLabelChooseRest     = "Choose Restaurant"
	FunnelLabelMenuView       = "Restaurant Menu View"
	FunnelLabelAddItem        = "Add Menu Item"
	FunnelLabelGoToCart       = "Go to Cart"
	FunnelLabelViewOrder      = "View Order"
	FunnelLabelGoToCheckout   = "Go to Checkout"
	FunnelLabelCheckoutView   = "Checkout Screen View"
	FunnelLabelAddPayment     = "Add payment Info(opt.)"
	FunnelLabelClickToPay     = "Click to pay"
	FunnelLabelOrderFail      = "Order created fail Page"
	FunnelLabelOrderSuccess   = "Order created success Page"
)

// Funnel stage orders for the order-outcome stages.
const (
	FunnelOrderEnter   = 1
	FunnelOrderFail    = 12
	FunnelOrderSuccess = 13
)

// Entry-point labels derived from the stage-1 button.
const (
	EntryPointHome         = "Home"
	EntryPointHub          = "Hub"
	EntryPointOrderHistory = "Order History"
)

// FunnelRule matches a row into one funnel stage. Empty Buttons means no
// button condition; empty Service means no service filter. Screens and
// Buttons are value allow-lists.
type FunnelRule struct {
	Order   int
	Label   string
	Event   string
	Screens []string
	Buttons []string
	Service string
}

// Matches reports whether the row satisfies every condition of the rule.
func (r *FunnelRule) Matches(e *Event) bool {
	if e.EventName != r.Event {
		return false
	}
	if !util.StringValueIn(e.Screen, r.Screens) {
		return false
	}
	if len(r.Buttons) > 0 && !util.StringValueIn(e.Button, r.Buttons) {
		return false
	}
	if r.Service != "" && e.Service != r.Service {
		return false
	}
	return true
}

// FunnelRules is the food-delivery funnel decision table. The rules are
// mutually exclusive by construction (see ValidateFunnelRules); stage order
// is fixed here and never inferred from timestamps.
var FunnelRules = []FunnelRule{
	{
		Order:   FunnelOrderEnter,
		Label:   FunnelLabelEnter,
		Event:   EventNameClick,
		Screens: []string{ScreenHome, ScreenServicesHub, ScreenOrderHistory},
		Buttons: []string{ButtonFoodHomeTile, ButtonFoodHubTile, ButtonFoodOrderAgain},
	},
	{
		Order:   2,
		Label:   FunnelLabelRestaurantList,
		Event:   EventNameScreenView,
		Screens: []string{ScreenRestaurantList},
		Service: ServiceFoodDelivery,
	},
	{
		Order:   3,
		Label:   FunnelLabelChooseRest,
		Event:   EventNameClick,
		Screens: []string{ScreenRestaurantList},
		Buttons: []string{"select_restaurant"},
		Service: ServiceFoodDelivery,
	},
	{
		Order:   4,
		Label:   FunnelLabelMenuView,
		Event:   EventNameScreenView,
		Screens: []string{ScreenMenu},
		Service: ServiceFoodDelivery,
	},
	{
		Order:   5,
		Label:   FunnelLabelAddItem,
		Event:   EventNameClick,
		Screens: []string{ScreenMenu},
		Buttons: []string{"add_item"},
		Service: ServiceFoodDelivery,
	},
	{
		Order:   6,
		Label:   FunnelLabelGoToCart,
		Event:   EventNameClick,
		Screens: []string{ScreenMenu},
		Buttons: []string{"go_to_cart"},
		Service: ServiceFoodDelivery,
	},
	{
		Order:   7,
		Label:   FunnelLabelViewOrder,
		Event:   EventNameScreenView,
		Screens: []string{ScreenOrderPage},
		Service: ServiceFoodDelivery,
	},
	{
		Order:   8,
		Label:   FunnelLabelGoToCheckout,
		Event:   EventNameClick,
		Screens: []string{ScreenOrderPage},
		Buttons: []string{"checkout"},
		Service: ServiceFoodDelivery,
	},
	{
		Order:   9,
		Label:   FunnelLabelCheckoutView,
		Event:   EventNameScreenView,
		Screens: []string{ScreenCheckout},
		Service: ServiceFoodDelivery,
	},
	{
		Order:   10,
		Label:   FunnelLabelAddPayment,
		Event:   EventNameAddPaymentInfo,
		Screens: []string{ScreenCheckout},
		Service: ServiceFoodDelivery,
	},
	{
		Order:   11,
		Label:   FunnelLabelClickToPay,
		Event:   EventNameClick,
		Screens: []string{ScreenCheckout},
		Buttons: []string{"pay"},
		Service: ServiceFoodDelivery,
	},
	{
		Order:   FunnelOrderFail,
		Label:   FunnelLabelOrderFail,
		Event:   EventNamePaymentFailed,
		Screens: []string{ScreenPayment},
		Service: ServiceFoodDelivery,
	},
	{
		Order:   FunnelOrderSuccess,
		Label:   FunnelLabelOrderSuccess,
		Event:   EventNamePurchase,
		Screens: []string{ScreenPayment},
		Service: ServiceFoodDelivery,
	},
}

// entryPointByButton labels the stage-1 rows by the tile the user tapped.
var entryPointByButton = map[string]string{
	ButtonFoodHomeTile:   EntryPointHome,
	ButtonFoodHubTile:    EntryPointHub,
	ButtonFoodOrderAgain: EntryPointOrderHistory,
}

// ClassifyFunnel returns the stage matching the row, or nil when no rule
// matches. Rule order is irrelevant: the table is mutually exclusive
// (ValidateFunnelRules).
func ClassifyFunnel(e *Event) *FunnelRule {
	for i := range FunnelRules {
		if FunnelRules[i].Matches(e) {
			return &FunnelRules[i]
		}
	}
	return nil
}

// AssignFunnel returns a new table with the funnel stage and entry-point
// columns populated. Unmatched rows keep an empty label and order 0.
func AssignFunnel(events []Event) []Event {
	out := make([]Event, len(events))
	for i, e := range events {
		if rule := ClassifyFunnel(&e); rule != nil {
			e.Funnel = rule.Label
			e.FunnelOrder = rule.Order
			if rule.Order == FunnelOrderEnter {
				e.EntryPoint = entryPointByButton[e.Button]
			}
		}
		out[i] = e
	}
	return out
}

// ValidateFunnelRules checks mutual exclusivity of the decision table by
// probing every combination of field values the rules mention. Returns an
// error naming the first row shape matched by more than one rule.
func ValidateFunnelRules() error {
	events := map[string]struct{}{}
	screens := map[string]struct{}{}
	buttons := map[string]struct{}{"": {}}
	services := map[string]struct{}{"": {}}
	for i := range FunnelRules {
		r := &FunnelRules[i]
		events[r.Event] = struct{}{}
		for _, s := range r.Screens {
			screens[s] = struct{}{}
		}
		for _, b := range r.Buttons {
			buttons[b] = struct{}{}
		}
		services[r.Service] = struct{}{}
	}
	for ev := range events {
		for sc := range screens {
			for bt := range buttons {
				for sv := range services {
					probe := Event{EventName: ev, Screen: sc, Button: bt, Service: sv}
					matches := 0
					for i := range FunnelRules {
						if FunnelRules[i].Matches(&probe) {
							matches++
						}
					}
					if matches > 1 {
						return fmt.Errorf("funnel rules overlap on event=%q screen=%q button=%q service=%q",
							ev, sc, bt, sv)
					}
				}
			}
		}
	}
	return nil
}
