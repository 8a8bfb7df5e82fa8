package domain

import "errors"

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrCartEmpty         = errors.New("cart is empty, nothing to checkout")
	ErrCheckoutInFlight  = errors.New("checkout is already submitting")
	ErrOrderTransport    = errors.New("order service is unreachable")
	ErrOrderRejected     = errors.New("order service rejected the payload")
	ErrNoOrder           = errors.New("no completed order for session")
	ErrVariantUnresolved = errors.New("selection does not identify a purchasable variant")
)
