package domain_test

import (
	"testing"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func testProduct() domain.Product {
	return domain.Product{
		ProductID: "p1",
		Title:     "Zero-Proof Spirit",
		Slug:      "zero-proof-spirit",
		Price:     dec("29.90"),
		Options: []domain.ProductOption{
			{Name: "Color", Values: []string{"Red", "Blue"}},
			{Name: "Size", Values: []string{"S", "M"}},
		},
		Variants: []domain.Variant{
			{
				ProductID: "p1", VariantID: "v1", Title: "Red / S",
				Price:      dec("29.90"),
				Assignment: map[string]string{"Color": "Red", "Size": "S"},
				Stock:      1,
			},
			{
				ProductID: "p1", VariantID: "v2", Title: "Red / M",
				Price:      dec("29.90"),
				Assignment: map[string]string{"Color": "Red", "Size": "M"},
				Stock:      0,
			},
			{
				ProductID: "p1", VariantID: "v3", Title: "Blue / S",
				Price:      dec("31.50"),
				Assignment: map[string]string{"Color": "Blue", "Size": "S"},
				Stock:      1,
			},
		},
	}
}

func TestResolve(t *testing.T) {

	t.Run("EmptySelection", func(t *testing.T) {
		rv := domain.Resolve(testProduct(), domain.OptionSelection{})

		assert.Nil(t, rv.Variant)
		assert.False(t, rv.CanAddToCart)
		assert.True(t, rv.CurrentPrice.Equal(dec("29.90")))

		assert.Equal(t,
			map[string]bool{"Red": true, "Blue": true},
			rv.Availability["Color"],
		)
		assert.Equal(t,
			map[string]bool{"S": true, "M": false},
			rv.Availability["Size"],
		)
	})

	t.Run("PartialSelection", func(t *testing.T) {
		rv := domain.Resolve(
			testProduct(), domain.OptionSelection{"Color": "Red"},
		)

		assert.Nil(t, rv.Variant)
		assert.False(t, rv.CanAddToCart)
		assert.Equal(t,
			map[string]bool{"S": true, "M": false},
			rv.Availability["Size"],
		)
	})

	t.Run("OwnSelectionIgnoredForAvailability", func(t *testing.T) {
		rv := domain.Resolve(
			testProduct(), domain.OptionSelection{"Color": "Red"},
		)

		// Blue stays selectable: probing Color must not filter by the
		// current Color choice.
		assert.Equal(t,
			map[string]bool{"Red": true, "Blue": true},
			rv.Availability["Color"],
		)
	})

	t.Run("FullMatchInStock", func(t *testing.T) {
		rv := domain.Resolve(
			testProduct(),
			domain.OptionSelection{"Color": "Blue", "Size": "S"},
		)

		require.NotNil(t, rv.Variant)
		assert.Equal(t, "v3", rv.Variant.VariantID)
		assert.True(t, rv.CurrentPrice.Equal(dec("31.50")))
		assert.True(t, rv.InStock)
		assert.True(t, rv.CanAddToCart)
	})

	t.Run("FullMatchOutOfStock", func(t *testing.T) {
		rv := domain.Resolve(
			testProduct(),
			domain.OptionSelection{"Color": "Red", "Size": "M"},
		)

		require.NotNil(t, rv.Variant)
		assert.Equal(t, "v2", rv.Variant.VariantID)
		assert.False(t, rv.InStock)
		assert.False(t, rv.CanAddToCart)
	})

	t.Run("UnknownOptionAndValueIgnored", func(t *testing.T) {
		rv := domain.Resolve(testProduct(), domain.OptionSelection{
			"Material": "Steel",
			"Color":    "Green",
			"Size":     "S",
		})

		assert.Nil(t, rv.Variant)
		assert.False(t, rv.CanAddToCart)
	})

	t.Run("Deterministic", func(t *testing.T) {
		p := testProduct()
		sel := domain.OptionSelection{"Size": "S", "Color": "Red"}

		first := domain.Resolve(p, sel)
		for range 50 {
			assert.Equal(t, first, domain.Resolve(p, sel))
		}
	})

	t.Run("ZeroOptionsUsesProductStock", func(t *testing.T) {
		p := domain.Product{
			ProductID: "p2",
			Price:     dec("10.00"),
			Variants: []domain.Variant{
				{VariantID: "v1", Price: dec("10.00"), Stock: 3},
			},
		}

		rv := domain.Resolve(p, nil)
		assert.True(t, rv.InStock)
		assert.True(t, rv.CanAddToCart)

		p.Variants[0].Stock = 0
		rv = domain.Resolve(p, nil)
		assert.False(t, rv.InStock)
		assert.False(t, rv.CanAddToCart)
	})
}

func TestResolveDiscount(t *testing.T) {

	t.Run("Present", func(t *testing.T) {
		p := testProduct()
		p.CompareAtPrice = decPtr("39.90")

		rv := domain.Resolve(p, nil)
		require.NotNil(t, rv.DiscountPercentage)
		assert.Equal(t, 25, *rv.DiscountPercentage)
		require.NotNil(t, rv.CurrentCompareAt)
		assert.True(t, rv.CurrentCompareAt.Equal(dec("39.90")))
	})

	t.Run("AbsentNotZero", func(t *testing.T) {
		rv := domain.Resolve(testProduct(), nil)
		assert.Nil(t, rv.DiscountPercentage)
		assert.Nil(t, rv.CurrentCompareAt)
	})

	t.Run("CompareAtNotGreater", func(t *testing.T) {
		p := testProduct()
		p.CompareAtPrice = decPtr("29.90")

		rv := domain.Resolve(p, nil)
		assert.Nil(t, rv.DiscountPercentage)
		assert.Nil(t, rv.CurrentCompareAt)
	})
}
