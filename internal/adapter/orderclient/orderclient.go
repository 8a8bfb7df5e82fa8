package orderclient

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.OrderCreator = Client{}

// Client talks to the external order-creation service. The service is
// the sole authority on the final order; responses are carried forward
// verbatim. Failures are never retried here.
type Client struct {
	rc *resty.Client
}

func New(baseURL string, timeout time.Duration) Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	return Client{rc}
}

func (c Client) CreateOrder(
	ctx context.Context, req domain.OrderRequest,
) (domain.Order, error) {
	const op = "Client.CreateOrder"

	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	var order domain.Order
	res, err := c.rc.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&order).
		Post("/orders")
	if err != nil {
		return domain.Order{}, fmt.Errorf(
			"%s: %w: %w", op, domain.ErrOrderTransport, err,
		)
	}

	if res.IsError() {
		kind := domain.ErrOrderRejected
		if res.StatusCode() >= 500 {
			kind = domain.ErrOrderTransport
		}
		return domain.Order{}, fmt.Errorf(
			"%s: %w: status %d: %s",
			op, kind, res.StatusCode(), res.String(),
		)
	}

	return order, nil
}
