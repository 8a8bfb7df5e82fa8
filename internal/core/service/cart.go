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

var _ port.CartManager = (*CartService)(nil)

// CartService holds the in-progress selection of purchasable items, one
// cart per session. In-memory state is the primary contract: persistence
// is best-effort and never blocks or rolls back a mutation.
type CartService struct {
	catalog  port.CatalogStorage
	sessions port.SessionStore
	events   port.CartEventsProducer
	maxQty   int

	mu    sync.RWMutex
	carts map[string]*cartSession
}

type cartSession struct {
	mu      sync.Mutex
	state   domain.CartState
	subs    map[int]port.CartSubscriber
	nextSub int
}

func NewCartService(
	catalog port.CatalogStorage,
	sessions port.SessionStore,
	events port.CartEventsProducer,
	maxItemQuantity int,
) *CartService {
	return &CartService{
		catalog:  catalog,
		sessions: sessions,
		events:   events,
		maxQty:   maxItemQuantity,
		carts:    make(map[string]*cartSession),
	}
}

func (s *CartService) Cart(
	ctx context.Context, sessionID string,
) domain.CartState {
	cs := s.session(sessionID)
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.state.Clone()
}

// AddItem appends a new line or accumulates quantity on the existing
// key, preserving insertion order.
func (s *CartService) AddItem(
	ctx context.Context, sessionID, slug, variantID string, quantity int,
) (domain.CartState, error) {
	const op = "CartService.AddItem"

	if err := ctx.Err(); err != nil {
		return domain.CartState{}, fmt.Errorf("%s: %w", op, err)
	}

	if quantity < 1 {
		quantity = 1
	}

	p, err := s.catalog.ReadProductBySlug(ctx, slug)
	if err != nil {
		return domain.CartState{}, fmt.Errorf("%s: %w", op, err)
	}

	variant, err := pickVariant(p, variantID)
	if err != nil {
		return domain.CartState{}, fmt.Errorf("%s: %w", op, err)
	}

	item := domain.NewCartItem(p, variant, quantity)

	cs := s.session(sessionID)
	cs.mu.Lock()
	defer cs.mu.Unlock()

	appended := true
	for i := range cs.state.Items {
		if cs.state.Items[i].Key == item.Key {
			cs.state.Items[i].Quantity = s.capQuantity(
				cs.state.Items[i].Quantity + quantity,
			)
			appended = false
			break
		}
	}
	if appended {
		item.Quantity = s.capQuantity(item.Quantity)
		cs.state.Items = append(cs.state.Items, item)
	}

	s.afterMutation(ctx, sessionID, cs, domain.CartEvent{
		SessionID: sessionID,
		Action:    domain.CartActionItemAdded,
		ItemKey:   item.Key,
		Quantity:  quantity,
		Timestamp: time.Now(),
	})
	return cs.state.Clone(), nil
}

// UpdateQuantity replaces the quantity in place without reordering.
// A quantity of zero or less is equivalent to removal.
func (s *CartService) UpdateQuantity(
	ctx context.Context, sessionID, key string, quantity int,
) domain.CartState {
	if quantity <= 0 {
		return s.RemoveItem(ctx, sessionID, key)
	}

	cs := s.session(sessionID)
	cs.mu.Lock()
	defer cs.mu.Unlock()

	for i := range cs.state.Items {
		if cs.state.Items[i].Key == key {
			cs.state.Items[i].Quantity = s.capQuantity(quantity)
			s.afterMutation(ctx, sessionID, cs, domain.CartEvent{
				SessionID: sessionID,
				Action:    domain.CartActionQuantityChanged,
				ItemKey:   key,
				Quantity:  quantity,
				Timestamp: time.Now(),
			})
			break
		}
	}
	return cs.state.Clone()
}

// RemoveItem deletes the entry. An absent key is a no-op, not an error.
func (s *CartService) RemoveItem(
	ctx context.Context, sessionID, key string,
) domain.CartState {
	cs := s.session(sessionID)
	cs.mu.Lock()
	defer cs.mu.Unlock()

	for i := range cs.state.Items {
		if cs.state.Items[i].Key == key {
			cs.state.Items = append(
				cs.state.Items[:i], cs.state.Items[i+1:]...,
			)
			s.afterMutation(ctx, sessionID, cs, domain.CartEvent{
				SessionID: sessionID,
				Action:    domain.CartActionItemRemoved,
				ItemKey:   key,
				Timestamp: time.Now(),
			})
			break
		}
	}
	return cs.state.Clone()
}

func (s *CartService) ClearCart(
	ctx context.Context, sessionID string,
) domain.CartState {
	cs := s.session(sessionID)
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.state = domain.CartState{}
	s.afterMutation(ctx, sessionID, cs, domain.CartEvent{
		SessionID: sessionID,
		Action:    domain.CartActionCartCleared,
		Timestamp: time.Now(),
	})
	return cs.state.Clone()
}

// Subscribe registers an observer for the session. Every mutation
// delivers the full new state synchronously. The returned func removes
// this registration only.
func (s *CartService) Subscribe(
	sessionID string, sub port.CartSubscriber,
) port.UnsubscribeFn {
	cs := s.session(sessionID)
	cs.mu.Lock()
	defer cs.mu.Unlock()

	id := cs.nextSub
	cs.nextSub++
	cs.subs[id] = sub

	return func() {
		cs.mu.Lock()
		defer cs.mu.Unlock()
		delete(cs.subs, id)
	}
}

func (s *CartService) session(sessionID string) *cartSession {
	s.mu.RLock()
	cs, ok := s.carts[sessionID]
	s.mu.RUnlock()
	if ok {
		return cs
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if cs, ok = s.carts[sessionID]; !ok {
		cs = &cartSession{subs: make(map[int]port.CartSubscriber)}
		s.carts[sessionID] = cs
	}
	return cs
}

func (s *CartService) capQuantity(q int) int {
	if s.maxQty > 0 && q > s.maxQty {
		return s.maxQty
	}
	return q
}

// afterMutation persists, notifies and emits the analytics event.
// The caller holds the session lock.
func (s *CartService) afterMutation(
	ctx context.Context,
	sessionID string,
	cs *cartSession,
	evt domain.CartEvent,
) {
	const op = "CartService.afterMutation"
	log := slog.With("op", op, "session", sessionID)

	if err := s.sessions.Put(
		ctx, cartStateKey(sessionID), cs.state,
	); err != nil {
		log.Warn("failed to persist cart state", "err", err)
	}

	for _, sub := range cs.subs {
		sub(cs.state.Clone())
	}

	if s.events != nil {
		go func() {
			err := s.events.ProduceCartEvent(context.WithoutCancel(ctx), evt)
			if err != nil {
				log.Warn("failed to produce cart event", "err", err)
			}
		}()
	}
}

func pickVariant(p domain.Product, variantID string) (*domain.Variant, error) {
	if variantID == "" {
		if p.HasVariants() {
			return nil, domain.ErrVariantUnresolved
		}
		return nil, nil
	}
	for i := range p.Variants {
		if p.Variants[i].VariantID == variantID {
			return &p.Variants[i], nil
		}
	}
	return nil, domain.ErrVariantUnresolved
}
