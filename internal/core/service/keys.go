package service

// Session store key namespaces. Cart and checkout keys are disjoint so
// the shared store never collides between the two services.
const (
	cartStateKeyPrefix       = "cart:state:"
	checkoutCartKeyPrefix    = "checkout:cart:"
	checkoutOrderKeyPrefix   = "checkout:order:"
	checkoutOrderIDKeyPrefix = "checkout:order_id:"
)

func cartStateKey(sessionID string) string {
	return cartStateKeyPrefix + sessionID
}

func checkoutCartKey(sessionID string) string {
	return checkoutCartKeyPrefix + sessionID
}

func checkoutOrderKey(sessionID string) string {
	return checkoutOrderKeyPrefix + sessionID
}

func checkoutOrderIDKey(sessionID string) string {
	return checkoutOrderIDKeyPrefix + sessionID
}
