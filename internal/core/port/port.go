package port

import (
	"context"

	"github.com/niksmo/storefront/internal/core/domain"
)

type (
	// CartSubscriber receives the full new cart state on every change,
	// never a diff.
	CartSubscriber func(domain.CartState)

	// UnsubscribeFn removes a single subscription independently of the
	// others.
	UnsubscribeFn func()
)

type ProductReader interface {
	Product(context.Context, string) (domain.Product, error)
	Products(context.Context, bool) ([]domain.Product, error)
}

type VariantResolver interface {
	Resolve(
		context.Context, string, domain.OptionSelection,
	) (domain.ResolvedVariant, error)
}

type CartManager interface {
	Cart(context.Context, string) domain.CartState
	AddItem(
		ctx context.Context, sessionID, slug, variantID string, quantity int,
	) (domain.CartState, error)
	UpdateQuantity(
		ctx context.Context, sessionID, key string, quantity int,
	) domain.CartState
	RemoveItem(ctx context.Context, sessionID, key string) domain.CartState
	ClearCart(ctx context.Context, sessionID string) domain.CartState
	Subscribe(sessionID string, s CartSubscriber) UnsubscribeFn
}

type CheckoutProcessor interface {
	Checkout(ctx context.Context, sessionID string) (domain.Order, error)
	Status(sessionID string) domain.CheckoutStatus
	CompletedOrder(ctx context.Context, sessionID string) (domain.Order, error)
}

type CatalogStorage interface {
	ReadProductBySlug(context.Context, string) (domain.Product, error)
	ReadProducts(ctx context.Context, featuredOnly bool) ([]domain.Product, error)
}

// SessionStore is the survive-reload, per-session key/value store with
// synchronous best-effort semantics. Cart and checkout use disjoint key
// namespaces.
type SessionStore interface {
	Put(ctx context.Context, key string, v any) error
	Get(ctx context.Context, key string, v any) error
}

type OrderCreator interface {
	CreateOrder(context.Context, domain.OrderRequest) (domain.Order, error)
}

type CartEventsProducer interface {
	ProduceCartEvent(context.Context, domain.CartEvent) error
	Close()
}
