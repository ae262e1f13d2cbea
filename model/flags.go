package model

// eventScreen keys the active-event allow-list.
type eventScreen struct {
	Event  string
	Screen string
}

// activeEventPairs is the fixed allow-list of (event, screen) pairs that
// represent genuine product engagement. Login, registration and other idle
// actions are deliberately absent so they never count toward active users.
var activeEventPairs = map[eventScreen]struct{}{
	{EventNameAddPaymentInfo, ScreenCheckout}:   {},
	{EventNameClick, "store_page"}:              {},
	{EventNameClick, "store_list"}:              {},
	{EventNameClick, ScreenCheckout}:            {},
	{EventNameClick, ScreenOrderPage}:           {},
	{EventNameClick, ScreenMenu}:                {},
	{EventNameClick, ScreenRestaurantList}:      {},
	{EventNameClick, ScreenOrderHistory}:        {},
	{EventNameClick, "profile"}:                 {},
	{EventNameClick, "profile_edit"}:            {},
	{EventNameClick, ScreenServicesHub}:         {},
	{EventNameClick, ScreenHome}:                {},
	{EventNamePaymentFailed, ScreenPayment}:     {},
	{EventNamePurchase, ScreenPayment}:          {},
	{EventNameScreenView, "order_status"}:       {},
	{EventNameScreenView, "store_page"}:         {},
	{EventNameScreenView, "store_list"}:         {},
	{EventNameScreenView, ScreenCheckout}:       {},
	{EventNameScreenView, ScreenOrderPage}:      {},
	{EventNameScreenView, ScreenMenu}:           {},
	{EventNameScreenView, ScreenHome}:           {},
	{EventNameScreenView, ScreenRestaurantList}: {},
	{EventNameScreenView, "support"}:            {},
	{EventNameScreenView, "profile_edit"}:       {},
	{EventNameScreenView, ScreenServicesHub}:    {},
	{EventNameScreenView, ScreenOrderHistory}:   {},
	{EventNameScreenView, "profile"}:            {},
}

// IsActiveEvent reports whether the (event, screen) pair counts as product
// engagement for active-user metrics.
func IsActiveEvent(eventName, screen string) bool {
	_, ok := activeEventPairs[eventScreen{eventName, screen}]
	return ok
}

// IsPurchaseRow reports whether the row evidences an order attempt reaching
// the payment stage. Independent of service line.
func IsPurchaseRow(e *Event) bool {
	return e.OrderID != "" && e.Screen == ScreenPayment
}

// ApplyFlags returns a new table with the engagement and purchase flag
// columns populated. Pure per-row derivation; the input is not modified and
// no rows are added or dropped.
func ApplyFlags(events []Event) []Event {
	out := make([]Event, len(events))
	for i, e := range events {
		if IsActiveEvent(e.EventName, e.Screen) {
			e.ActiveUser = e.PseudoID
		}
		if IsPurchaseRow(&e) {
			e.UserWPurchase = e.PseudoID
			e.SessionWPurchase = e.SessionID
		}
		out[i] = e
	}
	return out
}
