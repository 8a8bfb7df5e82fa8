package httphandler

import (
	"github.com/niksmo/storefront/internal/core/domain"
)

type (
	Product struct {
		ProductID      string          `json:"product_id"`
		Title          string          `json:"title"`
		Slug           string          `json:"slug"`
		Description    string          `json:"description"`
		Price          string          `json:"price"`
		CompareAtPrice string          `json:"compare_at_price,omitempty"`
		Images         []ProductImage  `json:"images"`
		Featured       bool            `json:"featured"`
		Options        []ProductOption `json:"options,omitempty"`
		Variants       []Variant       `json:"variants,omitempty"`
	}

	ProductImage struct {
		URL string `json:"url"`
		Alt string `json:"alt"`
	}

	ProductOption struct {
		Name     string            `json:"name"`
		Values   []string          `json:"values"`
		Swatches map[string]string `json:"swatches,omitempty"`
	}

	Variant struct {
		VariantID      string            `json:"variant_id"`
		Title          string            `json:"title"`
		Price          string            `json:"price"`
		CompareAtPrice string            `json:"compare_at_price,omitempty"`
		Image          string            `json:"image,omitempty"`
		Assignment     map[string]string `json:"assignment"`
		Stock          int               `json:"stock"`
	}
)

type (
	ResolveRequest struct {
		Selection map[string]string `json:"selection"`
	}

	ResolvedVariant struct {
		VariantID          string                     `json:"variant_id,omitempty"`
		Availability       map[string]map[string]bool `json:"availability"`
		CurrentPrice       string                     `json:"current_price"`
		CurrentCompareAt   string                     `json:"current_compare_at,omitempty"`
		DiscountPercentage *int                       `json:"discount_percentage,omitempty"`
		InStock            bool                       `json:"in_stock"`
		CanAddToCart       bool                       `json:"can_add_to_cart"`
	}
)

type (
	AddItemRequest struct {
		Slug      string `json:"slug"`
		VariantID string `json:"variant_id,omitempty"`
		Quantity  int    `json:"quantity"`
	}

	UpdateQuantityRequest struct {
		Quantity int `json:"quantity"`
	}

	CartItem struct {
		Key          string `json:"key"`
		ProductID    string `json:"product_id"`
		Title        string `json:"title"`
		Image        string `json:"image,omitempty"`
		UnitPrice    string `json:"unit_price"`
		VariantID    string `json:"variant_id,omitempty"`
		VariantTitle string `json:"variant_title,omitempty"`
		Quantity     int    `json:"quantity"`
		LineTotal    string `json:"line_total"`
	}

	Cart struct {
		Items        []CartItem `json:"items"`
		TotalItems   int        `json:"total_items"`
		Total        string     `json:"total"`
		DisplayTotal string     `json:"display_total"`
		CurrencyCode string     `json:"currency_code"`
	}
)

type CheckoutStatus struct {
	Status   string `json:"status"`
	Terminal bool   `json:"terminal"`
}

type Order struct {
	OrderID      string      `json:"order_id"`
	Items        []OrderItem `json:"items"`
	Total        string      `json:"total"`
	CurrencyCode string      `json:"currency_code"`
	CreatedAt    string      `json:"created_at"`
}

type OrderItem struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id,omitempty"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

func toProductView(p domain.Product) Product {
	view := Product{
		ProductID:   p.ProductID,
		Title:       p.Title,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price.String(),
		Featured:    p.Featured,
	}
	if p.CompareAtPrice != nil {
		view.CompareAtPrice = p.CompareAtPrice.String()
	}

	view.Images = make([]ProductImage, len(p.Images))
	for i := range p.Images {
		view.Images[i].URL = p.Images[i].URL
		view.Images[i].Alt = p.Images[i].Alt
	}

	for _, opt := range p.Options {
		view.Options = append(view.Options, ProductOption{
			Name:     opt.Name,
			Values:   opt.Values,
			Swatches: opt.Swatches,
		})
	}

	for _, v := range p.Variants {
		vv := Variant{
			VariantID:  v.VariantID,
			Title:      v.Title,
			Price:      v.Price.String(),
			Image:      v.Image,
			Assignment: v.Assignment,
			Stock:      v.Stock,
		}
		if v.CompareAtPrice != nil {
			vv.CompareAtPrice = v.CompareAtPrice.String()
		}
		view.Variants = append(view.Variants, vv)
	}
	return view
}

func toResolvedView(rv domain.ResolvedVariant) ResolvedVariant {
	view := ResolvedVariant{
		Availability:       rv.Availability,
		CurrentPrice:       rv.CurrentPrice.String(),
		DiscountPercentage: rv.DiscountPercentage,
		InStock:            rv.InStock,
		CanAddToCart:       rv.CanAddToCart,
	}
	if rv.Variant != nil {
		view.VariantID = rv.Variant.VariantID
	}
	if rv.CurrentCompareAt != nil {
		view.CurrentCompareAt = rv.CurrentCompareAt.String()
	}
	return view
}

func toCartView(s domain.CartState, currencyCode string) Cart {
	view := Cart{
		Items:        make([]CartItem, len(s.Items)),
		TotalItems:   s.TotalItems(),
		Total:        s.Total().String(),
		DisplayTotal: s.DisplayTotal(currencyCode).String(),
		CurrencyCode: currencyCode,
	}
	for i, item := range s.Items {
		view.Items[i] = CartItem{
			Key:          item.Key,
			ProductID:    item.ProductID,
			Title:        item.Title,
			Image:        item.Image,
			UnitPrice:    item.UnitPrice.String(),
			VariantID:    item.VariantID,
			VariantTitle: item.VariantTitle,
			Quantity:     item.Quantity,
			LineTotal: domain.RoundToMinorUnit(
				item.Extended(), currencyCode,
			).String(),
		}
	}
	return view
}

func toStatusView(st domain.CheckoutStatus) CheckoutStatus {
	return CheckoutStatus{Status: st.String(), Terminal: st.IsTerminal()}
}

func toOrderView(o domain.Order) Order {
	view := Order{
		OrderID:      o.OrderID,
		Total:        o.Total.String(),
		CurrencyCode: o.CurrencyCode,
		CreatedAt:    o.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	for _, item := range o.Items {
		view.Items = append(view.Items, OrderItem{
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.String(),
		})
	}
	return view
}
