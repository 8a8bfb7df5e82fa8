package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type (
	// A CartItem is one line of the cart: an immutable snapshot of the
	// product display fields plus the chosen quantity.
	CartItem struct {
		Key          string          `json:"key"`
		ProductID    string          `json:"product_id"`
		Title        string          `json:"title"`
		Image        string          `json:"image"`
		UnitPrice    decimal.Decimal `json:"unit_price"`
		VariantID    string          `json:"variant_id,omitempty"`
		VariantTitle string          `json:"variant_title,omitempty"`
		VariantImage string          `json:"variant_image,omitempty"`
		Quantity     int             `json:"quantity"`
	}

	// CartState is the insertion-ordered sequence of cart items.
	CartState struct {
		Items []CartItem `json:"items"`
	}
)

// ItemKey derives the cart key: product id plus variant id, or the
// product id alone when the product has no variants.
func ItemKey(productID, variantID string) string {
	if variantID == "" {
		return productID
	}
	return productID + ":" + variantID
}

// NewCartItem snapshots the display fields of a product and an optional
// variant. The unit price comes from the variant when present.
func NewCartItem(p Product, v *Variant, quantity int) CartItem {
	item := CartItem{
		Key:       ItemKey(p.ProductID, ""),
		ProductID: p.ProductID,
		Title:     p.Title,
		Image:     p.FirstImage(),
		UnitPrice: p.Price,
		Quantity:  quantity,
	}
	if v != nil {
		item.Key = ItemKey(p.ProductID, v.VariantID)
		item.UnitPrice = v.Price
		item.VariantID = v.VariantID
		item.VariantTitle = v.Title
		if v.Image != "" {
			item.Image = v.Image
		}
		item.VariantImage = v.Image
	}
	return item
}

func (i CartItem) Extended() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Total is the exact sum of the extended line prices. Rounding to the
// currency minor unit happens only at display time.
func (s CartState) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.Items {
		total = total.Add(item.Extended())
	}
	return total
}

// TotalItems is the badge count: the sum of quantities, not lines.
func (s CartState) TotalItems() int {
	var n int
	for _, item := range s.Items {
		n += item.Quantity
	}
	return n
}

func (s CartState) IsEmpty() bool {
	return len(s.Items) == 0
}

func (s CartState) Find(key string) (CartItem, bool) {
	for _, item := range s.Items {
		if item.Key == key {
			return item, true
		}
	}
	return CartItem{}, false
}

// Clone returns an independent copy, safe to hand to observers.
func (s CartState) Clone() CartState {
	items := make([]CartItem, len(s.Items))
	copy(items, s.Items)
	return CartState{Items: items}
}

// DisplayTotal rounds the exact total to the minor unit of the given
// currency. Unknown codes fall back to two digits.
func (s CartState) DisplayTotal(currencyCode string) decimal.Decimal {
	return s.Total().Round(minorUnitDigits(currencyCode))
}

// RoundToMinorUnit rounds any monetary amount for display.
func RoundToMinorUnit(v decimal.Decimal, currencyCode string) decimal.Decimal {
	return v.Round(minorUnitDigits(currencyCode))
}

func minorUnitDigits(code string) int32 {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return 2
	}
	scale, _ := currency.Cash.Rounding(unit)
	return int32(scale)
}
