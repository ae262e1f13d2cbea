package model

import "time"

// Event names observed in the export.
const (
	EventNameClick          = "click"
	EventNameScreenView     = "screen_view"
	EventNamePurchase       = "purchase"
	EventNamePaymentFailed  = "payment_failed"
	EventNameAddPaymentInfo = "add_payment_info"
)

// Screens referenced by the flagging and funnel rules.
const (
	ScreenHome           = "home"
	ScreenServicesHub    = "services_hub"
	ScreenOrderHistory   = "order_history"
	ScreenRestaurantList = "restaurant_list"
	ScreenMenu           = "menu"
	ScreenOrderPage      = "order_page"
	ScreenCheckout       = "checkout"
	ScreenPayment        = "payment"
)

// Funnel-entry buttons.
const (
	ButtonFoodHomeTile   = "food_home_tile"
	ButtonFoodHubTile    = "food_hub_tile"
	ButtonFoodOrderAgain = "food_order_again"
)

// Service lines.
const (
	ServiceFoodDelivery    = "food_delivery"
	ServiceGroceryDelivery = "grocery_delivery"
)

// Event is one row of the unified event table. The first block mirrors the
// export's base columns, the second the fields unpacked from the EventParams
// and UserProperties JSON columns, and the rest are derived during the
// pipeline. Derived fields hold their zero value until the owning stage runs.
type Event struct {
	EventDate      string // YYYY-MM-DD; day grain for attribution scope
	EventTimestamp time.Time
	EventName      string
	PseudoID       string
	SessionID      string
	AppVersion     string

	// From EventParams.
	Screen  string
	Service string
	Button  string
	OrderID string
	Reason  string

	// From UserProperties.
	CohortMonth    string
	IsNewUser      bool
	AppVersionProp string

	// Period keys, derived from EventDate during normalization.
	EventMonth string
	EventWeek  string

	// Flag columns. Each carries the row's user or session ID when the row
	// qualifies, empty otherwise; rows are never dropped.
	ActiveUser       string
	UserWPurchase    string
	SessionWPurchase string

	// Funnel columns. FunnelOrder is 0 and Funnel empty for rows matching
	// no rule; EntryPoint is set only on stage-1 rows with a known button.
	Funnel      string
	FunnelOrder int
	EntryPoint  string
}
