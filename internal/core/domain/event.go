package domain

import "time"

const (
	CartActionItemAdded        = "item_added"
	CartActionQuantityChanged  = "quantity_changed"
	CartActionItemRemoved      = "item_removed"
	CartActionCartCleared      = "cart_cleared"
	CartActionCheckoutComplete = "checkout_completed"
)

// A CartEvent feeds the analytics stream. Producing it is best-effort
// and never blocks a cart mutation.
type CartEvent struct {
	SessionID string
	Action    string
	ItemKey   string
	Quantity  int
	Timestamp time.Time
}
