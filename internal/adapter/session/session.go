package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/pkg/retry"
	"github.com/redis/go-redis/v9"
)

var _ port.SessionStore = Store{}

var ErrMiss = errors.New("session key not found")

const pingAttempts = 3

// Store is the survive-reload session key/value store. Values are JSON
// serialized. Callers treat writes as best-effort: a failed Put is
// logged by the caller and never rolls anything back.
type Store struct {
	client  *redis.Client
	baseTTL time.Duration
}

func New(ctx context.Context, addr string, ttl time.Duration) (Store, error) {
	const op = "session.New"
	log := slog.With("op", op)

	client := redis.NewClient(&redis.Options{Addr: addr})

	err := retry.Do(ctx,
		retry.RetryConfig{MaxAttempts: pingAttempts},
		func() error { return client.Ping(ctx).Err() },
	)
	if err != nil {
		return Store{}, fmt.Errorf(
			"%s: session store is unavailable: %w", op, err,
		)
	}

	log.Info("session store is available")
	return Store{client: client, baseTTL: ttl}, nil
}

func (s Store) Put(ctx context.Context, key string, v any) error {
	const op = "Store.Put"

	data, err := json.Marshal(v)
	if err != nil {
		return opErr(err, op)
	}

	if err := s.client.Set(ctx, key, data, s.ttl()).Err(); err != nil {
		return opErr(err, op)
	}
	return nil
}

func (s Store) Get(ctx context.Context, key string, v any) error {
	const op = "Store.Get"

	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return opErr(ErrMiss, op)
	}
	if err != nil {
		return opErr(err, op)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return opErr(err, op)
	}
	return nil
}

func (s Store) Close() {
	const op = "Store.Close"
	log := slog.With("op", op)

	log.Info("closing session store...")
	if err := s.client.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("session store is closed")
}

// ttl spreads expirations so a burst of sessions does not expire at
// once.
func (s Store) ttl() time.Duration {
	jitter := time.Duration(rand.IntN(5)) * time.Minute
	return s.baseTTL + jitter
}

func opErr(err error, op string) error {
	return fmt.Errorf("%s: %w", op, err)
}
