package orderclient_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/niksmo/storefront/internal/adapter/orderclient"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testRequest() domain.OrderRequest {
	return domain.OrderRequest{
		Items: []domain.OrderItem{
			{ProductID: "p1", Quantity: 2, UnitPrice: dec("10.00")},
		},
		Total:        dec("20.00"),
		CurrencyCode: "USD",
	}
}

func TestCreateOrder(t *testing.T) {

	t.Run("Success", func(t *testing.T) {
		var gotPath string
		var gotBody domain.OrderRequest
		srv := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				require.NoError(
					t, json.NewDecoder(r.Body).Decode(&gotBody),
				)

				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(map[string]any{
					"order_id":     "ord-42",
					"total":        "20.00",
					"currencyCode": "USD",
					"createdAt":    "2026-01-02T03:04:05Z",
				})
			},
		))
		defer srv.Close()

		c := orderclient.New(srv.URL, time.Second)
		order, err := c.CreateOrder(t.Context(), testRequest())
		require.NoError(t, err)

		assert.Equal(t, "/orders", gotPath)
		assert.Equal(t, "USD", gotBody.CurrencyCode)
		assert.True(t, gotBody.Total.Equal(dec("20.00")))

		assert.Equal(t, "ord-42", order.OrderID)
		assert.True(t, order.Total.Equal(dec("20.00")))
		assert.Equal(t, "USD", order.CurrencyCode)
	})

	t.Run("Rejected", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				http.Error(
					w, "stock changed", http.StatusUnprocessableEntity,
				)
			},
		))
		defer srv.Close()

		c := orderclient.New(srv.URL, time.Second)
		_, err := c.CreateOrder(t.Context(), testRequest())
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrOrderRejected)
	})

	t.Run("ServerFailure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				http.Error(
					w, "boom", http.StatusInternalServerError,
				)
			},
		))
		defer srv.Close()

		c := orderclient.New(srv.URL, time.Second)
		_, err := c.CreateOrder(t.Context(), testRequest())
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrOrderTransport)
	})

	t.Run("Unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {},
		))
		srv.Close() // nobody is listening anymore

		c := orderclient.New(srv.URL, time.Second)
		_, err := c.CreateOrder(t.Context(), testRequest())
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrOrderTransport)
	})
}
