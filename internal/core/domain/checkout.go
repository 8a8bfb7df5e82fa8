package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type CheckoutStatus string

const (
	CheckoutStatusIdle       CheckoutStatus = "IDLE"
	CheckoutStatusSubmitting CheckoutStatus = "SUBMITTING"
	CheckoutStatusCompleted  CheckoutStatus = "COMPLETED"
	CheckoutStatusFailed     CheckoutStatus = "FAILED"
)

func (s CheckoutStatus) IsTerminal() bool {
	return s == CheckoutStatusCompleted || s == CheckoutStatusFailed
}

func (s CheckoutStatus) String() string {
	return string(s)
}

type (
	// A CheckoutSnapshot is the immutable copy of the cart captured at
	// the moment checkout starts, persisted before the order call so a
	// reload mid-submission does not lose the shopper's intent.
	CheckoutSnapshot struct {
		Items      []CartItem      `json:"items"`
		Total      decimal.Decimal `json:"total"`
		CapturedAt time.Time       `json:"captured_at"`
	}

	OrderItem struct {
		ProductID string          `json:"productId"`
		VariantID string          `json:"variantId,omitempty"`
		Quantity  int             `json:"quantity"`
		UnitPrice decimal.Decimal `json:"unitPrice"`
	}

	OrderRequest struct {
		Items        []OrderItem     `json:"items"`
		Total        decimal.Decimal `json:"total"`
		CurrencyCode string          `json:"currencyCode"`
	}

	// An Order is owned by the external order service and carried
	// forward opaquely: the engine never recomputes or overrides it.
	Order struct {
		OrderID      string          `json:"order_id"`
		Items        []OrderItem     `json:"items"`
		Total        decimal.Decimal `json:"total"`
		CurrencyCode string          `json:"currencyCode"`
		CreatedAt    time.Time       `json:"createdAt"`
	}
)

// Snapshot captures the current cart state for checkout.
func (s CartState) Snapshot(now time.Time) CheckoutSnapshot {
	return CheckoutSnapshot{
		Items:      s.Clone().Items,
		Total:      s.Total(),
		CapturedAt: now,
	}
}

func (cs CheckoutSnapshot) TotalItems() int {
	var n int
	for _, item := range cs.Items {
		n += item.Quantity
	}
	return n
}

func (cs CheckoutSnapshot) OrderRequest(currencyCode string) OrderRequest {
	items := make([]OrderItem, len(cs.Items))
	for i, item := range cs.Items {
		items[i] = OrderItem{
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}
	return OrderRequest{
		Items:        items,
		Total:        cs.Total,
		CurrencyCode: currencyCode,
	}
}
