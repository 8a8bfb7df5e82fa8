package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderCreator struct {
	mock.Mock
}

func (m *MockOrderCreator) CreateOrder(
	ctx context.Context, req domain.OrderRequest,
) (domain.Order, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.Order), args.Error(1)
}

// stubCart satisfies the checkout service's cart dependency with a
// fixed state.
type stubCart struct {
	state domain.CartState
}

func (c stubCart) Cart(context.Context, string) domain.CartState {
	return c.state.Clone()
}

func filledCart() domain.CartState {
	return domain.CartState{Items: []domain.CartItem{
		{
			Key: "p1", ProductID: "p1", Title: "Chrome Shaker",
			UnitPrice: dec("10.00"), Quantity: 2,
		},
		{
			Key: "p2:v1", ProductID: "p2", VariantID: "v1",
			Title: "Zero-Proof Spirit", UnitPrice: dec("5.50"), Quantity: 1,
		},
	}}
}

func testOrder() domain.Order {
	return domain.Order{
		OrderID:      "ord-42",
		Total:        dec("25.50"),
		CurrencyCode: "USD",
		CreatedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestCheckout(t *testing.T) {

	t.Run("Completes", func(t *testing.T) {
		store := newFakeSessionStore()
		orders := new(MockOrderCreator)
		orders.On("CreateOrder", mock.Anything, mock.Anything).
			Return(testOrder(), nil)

		s := service.NewCheckoutService(
			stubCart{filledCart()}, orders, store, nil, "USD",
		)

		order, err := s.Checkout(t.Context(), testSession)
		require.NoError(t, err)
		assert.Equal(t, "ord-42", order.OrderID)
		assert.Equal(t, domain.CheckoutStatusCompleted, s.Status(testSession))

		req := orders.Calls[0].Arguments.Get(1).(domain.OrderRequest)
		assert.Equal(t, "USD", req.CurrencyCode)
		assert.True(t, req.Total.Equal(dec("25.50")))
		require.Len(t, req.Items, 2)
		assert.Equal(t, "p1", req.Items[0].ProductID)
		assert.Equal(t, "v1", req.Items[1].VariantID)
	})

	t.Run("PersistsSnapshotBeforeOrderCall", func(t *testing.T) {
		store := newFakeSessionStore()
		orders := new(MockOrderCreator)
		orders.On("CreateOrder", mock.Anything, mock.Anything).
			Run(func(mock.Arguments) {
				store.mu.Lock()
				defer store.mu.Unlock()
				require.Contains(
					t, store.keys, "checkout:cart:"+testSession,
				)
			}).
			Return(testOrder(), nil)

		s := service.NewCheckoutService(
			stubCart{filledCart()}, orders, store, nil, "USD",
		)

		_, err := s.Checkout(t.Context(), testSession)
		require.NoError(t, err)
	})

	t.Run("PersistsOrderArtifacts", func(t *testing.T) {
		store := newFakeSessionStore()
		orders := new(MockOrderCreator)
		orders.On("CreateOrder", mock.Anything, mock.Anything).
			Return(testOrder(), nil)

		s := service.NewCheckoutService(
			stubCart{filledCart()}, orders, store, nil, "USD",
		)

		_, err := s.Checkout(t.Context(), testSession)
		require.NoError(t, err)

		assert.Contains(t, store.values, "checkout:order:"+testSession)
		assert.Contains(t, store.values, "checkout:order_id:"+testSession)
	})

	t.Run("EmptyCart", func(t *testing.T) {
		orders := new(MockOrderCreator)
		s := service.NewCheckoutService(
			stubCart{}, orders, newFakeSessionStore(), nil, "USD",
		)

		_, err := s.Checkout(t.Context(), testSession)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrCartEmpty)
		orders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	})

	t.Run("FailureLeavesCartUntouched", func(t *testing.T) {
		cart := newCartService(t, newFakeSessionStore(), 0)
		_, err := cart.AddItem(
			t.Context(), testSession, "chrome-shaker", "", 2,
		)
		require.NoError(t, err)
		before := cart.Cart(t.Context(), testSession)

		orders := new(MockOrderCreator)
		orders.On("CreateOrder", mock.Anything, mock.Anything).
			Return(domain.Order{}, domain.ErrOrderTransport)

		s := service.NewCheckoutService(
			cart, orders, newFakeSessionStore(), nil, "USD",
		)

		_, err = s.Checkout(t.Context(), testSession)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrOrderTransport)
		assert.Equal(t, domain.CheckoutStatusFailed, s.Status(testSession))

		after := cart.Cart(t.Context(), testSession)
		assert.Equal(t, before, after)
	})

	t.Run("SingleFlight", func(t *testing.T) {
		store := newFakeSessionStore()
		release := make(chan struct{})
		orders := new(MockOrderCreator)
		orders.On("CreateOrder", mock.Anything, mock.Anything).
			Run(func(mock.Arguments) { <-release }).
			Return(testOrder(), nil)

		s := service.NewCheckoutService(
			stubCart{filledCart()}, orders, store, nil, "USD",
		)

		var wg sync.WaitGroup
		var firstErr error
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, firstErr = s.Checkout(context.Background(), testSession)
		}()

		require.Eventually(t, func() bool {
			return s.Status(testSession) == domain.CheckoutStatusSubmitting
		}, time.Second, time.Millisecond)

		// Reentrant call while the first is submitting.
		_, err := s.Checkout(t.Context(), testSession)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrCheckoutInFlight)

		close(release)
		wg.Wait()

		require.NoError(t, firstErr)
		orders.AssertNumberOfCalls(t, "CreateOrder", 1)
	})
}

func TestCompletedOrder(t *testing.T) {

	t.Run("ReplaysPersistedOrder", func(t *testing.T) {
		store := newFakeSessionStore()
		orders := new(MockOrderCreator)
		orders.On("CreateOrder", mock.Anything, mock.Anything).
			Return(testOrder(), nil)

		s := service.NewCheckoutService(
			stubCart{filledCart()}, orders, store, nil, "USD",
		)

		_, err := s.Checkout(t.Context(), testSession)
		require.NoError(t, err)

		order, err := s.CompletedOrder(t.Context(), testSession)
		require.NoError(t, err)
		assert.Equal(t, "ord-42", order.OrderID)
	})

	t.Run("NoOrder", func(t *testing.T) {
		s := service.NewCheckoutService(
			stubCart{}, new(MockOrderCreator), newFakeSessionStore(),
			nil, "USD",
		)

		_, err := s.CompletedOrder(t.Context(), testSession)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNoOrder)
	})
}
