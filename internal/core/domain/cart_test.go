package domain_test

import (
	"testing"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemKey(t *testing.T) {

	t.Run("WithVariant", func(t *testing.T) {
		assert.Equal(t, "p1:v1", domain.ItemKey("p1", "v1"))
	})

	t.Run("WithoutVariant", func(t *testing.T) {
		assert.Equal(t, "p1", domain.ItemKey("p1", ""))
	})
}

func TestNewCartItem(t *testing.T) {

	t.Run("UnitPriceFromVariant", func(t *testing.T) {
		p := testProduct()
		v := &p.Variants[2]

		item := domain.NewCartItem(p, v, 2)
		assert.Equal(t, "p1:v3", item.Key)
		assert.True(t, item.UnitPrice.Equal(dec("31.50")))
		assert.Equal(t, "v3", item.VariantID)
		assert.Equal(t, 2, item.Quantity)
	})

	t.Run("UnitPriceFromProduct", func(t *testing.T) {
		p := testProduct()

		item := domain.NewCartItem(p, nil, 1)
		assert.Equal(t, "p1", item.Key)
		assert.True(t, item.UnitPrice.Equal(dec("29.90")))
		assert.Empty(t, item.VariantID)
	})
}

func TestCartState(t *testing.T) {
	state := domain.CartState{Items: []domain.CartItem{
		{Key: "a", UnitPrice: dec("10.00"), Quantity: 2},
		{Key: "b", UnitPrice: dec("5.50"), Quantity: 1},
	}}

	t.Run("Total", func(t *testing.T) {
		assert.True(t, state.Total().Equal(dec("25.50")))
	})

	t.Run("TotalItems", func(t *testing.T) {
		assert.Equal(t, 3, state.TotalItems())
	})

	t.Run("Find", func(t *testing.T) {
		item, ok := state.Find("b")
		require.True(t, ok)
		assert.Equal(t, 1, item.Quantity)

		_, ok = state.Find("missing")
		assert.False(t, ok)
	})

	t.Run("CloneIsIndependent", func(t *testing.T) {
		clone := state.Clone()
		clone.Items[0].Quantity = 99

		assert.Equal(t, 2, state.Items[0].Quantity)
	})

	t.Run("ExactTotalNoDrift", func(t *testing.T) {
		// 0.10 added a hundred times must be exactly 10, not 9.99...
		var s domain.CartState
		s.Items = append(s.Items, domain.CartItem{
			Key: "a", UnitPrice: dec("0.10"), Quantity: 100,
		})
		assert.Equal(t, "10", s.Total().String())
	})
}

func TestDisplayTotal(t *testing.T) {

	t.Run("TwoMinorUnitDigits", func(t *testing.T) {
		state := domain.CartState{Items: []domain.CartItem{
			{Key: "a", UnitPrice: dec("3.333"), Quantity: 3},
		}}
		assert.Equal(t, "10", state.DisplayTotal("USD").String())
		assert.Equal(t, "9.999", state.Total().String())
	})

	t.Run("ZeroMinorUnitDigits", func(t *testing.T) {
		state := domain.CartState{Items: []domain.CartItem{
			{Key: "a", UnitPrice: dec("10.40"), Quantity: 1},
		}}
		assert.Equal(t, "10", state.DisplayTotal("JPY").String())
	})

	t.Run("UnknownCurrencyFallsBack", func(t *testing.T) {
		state := domain.CartState{Items: []domain.CartItem{
			{Key: "a", UnitPrice: dec("1.005"), Quantity: 1},
		}}
		assert.Equal(t, "1.01", state.DisplayTotal("???").String())
	})
}
