package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.CheckoutProcessor = (*CheckoutService)(nil)

type cartReader interface {
	Cart(context.Context, string) domain.CartState
}

// CheckoutService coordinates the one-shot handoff of the cart to the
// external order-creation service. Per session the state machine is
// Idle -> Submitting -> {Completed, Failed}; at most one Submitting
// instance may exist, so a second concurrent order-creation request is
// impossible. The handoff never clears the cart: that is a caller
// decision.
type CheckoutService struct {
	cart         cartReader
	orders       port.OrderCreator
	sessions     port.SessionStore
	events       port.CartEventsProducer
	currencyCode string

	mu     sync.Mutex
	status map[string]domain.CheckoutStatus
}

func NewCheckoutService(
	cart cartReader,
	orders port.OrderCreator,
	sessions port.SessionStore,
	events port.CartEventsProducer,
	currencyCode string,
) *CheckoutService {
	return &CheckoutService{
		cart:         cart,
		orders:       orders,
		sessions:     sessions,
		events:       events,
		currencyCode: currencyCode,
		status:       make(map[string]domain.CheckoutStatus),
	}
}

func (s *CheckoutService) Status(sessionID string) domain.CheckoutStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.status[sessionID]; ok {
		return st
	}
	return domain.CheckoutStatusIdle
}

// Checkout snapshots the cart, persists the snapshot before the network
// call, delegates to the order service and carries its result forward.
// The order service is the sole authority on the final order: its result
// is never recomputed or overridden. No built-in retry.
func (s *CheckoutService) Checkout(
	ctx context.Context, sessionID string,
) (domain.Order, error) {
	const op = "CheckoutService.Checkout"
	log := slog.With("op", op, "session", sessionID)

	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	state := s.cart.Cart(ctx, sessionID)

	if err := s.enterSubmitting(sessionID, state); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	snapshot := state.Snapshot(time.Now())

	// Persisted ahead of the call so a reload mid-submission keeps the
	// shopper's intent. Failure here is non-fatal.
	if err := s.sessions.Put(
		ctx, checkoutCartKey(sessionID), snapshot,
	); err != nil {
		log.Warn("failed to persist checkout snapshot", "err", err)
	}

	order, err := s.orders.CreateOrder(
		ctx, snapshot.OrderRequest(s.currencyCode),
	)
	if err != nil {
		s.setStatus(sessionID, domain.CheckoutStatusFailed)
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	s.persistOrder(ctx, sessionID, order, log)
	s.setStatus(sessionID, domain.CheckoutStatusCompleted)

	if s.events != nil {
		go func() {
			err := s.events.ProduceCartEvent(
				context.WithoutCancel(ctx),
				domain.CartEvent{
					SessionID: sessionID,
					Action:    domain.CartActionCheckoutComplete,
					Quantity:  snapshot.TotalItems(),
					Timestamp: time.Now(),
				},
			)
			if err != nil {
				log.Warn("failed to produce checkout event", "err", err)
			}
		}()
	}

	log.Info("checkout completed", "orderID", order.OrderID)
	return order, nil
}

// CompletedOrder replays the persisted order artifacts so a subsequent
// page renders confirmation without refetching.
func (s *CheckoutService) CompletedOrder(
	ctx context.Context, sessionID string,
) (domain.Order, error) {
	const op = "CheckoutService.CompletedOrder"

	var order domain.Order
	err := s.sessions.Get(ctx, checkoutOrderKey(sessionID), &order)
	if err != nil {
		return domain.Order{}, fmt.Errorf(
			"%s: %w", op, domain.ErrNoOrder,
		)
	}
	return order, nil
}

func (s *CheckoutService) enterSubmitting(
	sessionID string, state domain.CartState,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status[sessionID] == domain.CheckoutStatusSubmitting {
		return domain.ErrCheckoutInFlight
	}
	if state.IsEmpty() {
		return domain.ErrCartEmpty
	}
	s.status[sessionID] = domain.CheckoutStatusSubmitting
	return nil
}

func (s *CheckoutService) setStatus(
	sessionID string, st domain.CheckoutStatus,
) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status[sessionID] = st
}

func (s *CheckoutService) persistOrder(
	ctx context.Context, sessionID string, order domain.Order, log *slog.Logger,
) {
	if err := s.sessions.Put(
		ctx, checkoutOrderKey(sessionID), order,
	); err != nil {
		log.Warn("failed to persist order", "err", err)
	}
	if err := s.sessions.Put(
		ctx, checkoutOrderIDKey(sessionID), order.OrderID,
	); err != nil {
		log.Warn("failed to persist order id", "err", err)
	}
}
