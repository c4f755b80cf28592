package fulfillment

import (
	"context"
	"io"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"artify/internal/infra"
)

// Locker provides cross-process mutual exclusion per order. TryAcquire
// returning acquired=false means another worker owns the order right now and
// the caller must skip the run entirely. The returned release func is non-nil
// whenever acquired is true.
type Locker interface {
	TryAcquire(ctx context.Context, orderID string) (release func(), acquired bool)
}

// OrderLock implements Locker with PostgreSQL advisory locks. The lock is
// held on a dedicated pooled connection so it auto-releases if the process
// crashes mid-run. When the lock infrastructure itself is down the lock fails
// open: fulfillment proceeds on the in-process guard alone rather than
// deadlocking every order behind a degraded database feature.
type OrderLock struct {
	pool   *pgxpool.Pool
	logger *infra.Logger
}

func NewOrderLock(pool *pgxpool.Pool, logger *infra.Logger) *OrderLock {
	if logger == nil {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &OrderLock{pool: pool, logger: logger}
}

func (l *OrderLock) TryAcquire(ctx context.Context, orderID string) (func(), bool) {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		l.logger.Warn().
			Err(err).
			Str("order_id", orderID).
			Msg("advisory lock connection unavailable, proceeding without cross-process lock")
		return func() {}, true
	}

	var locked bool
	err = conn.QueryRow(ctx,
		`select pg_try_advisory_lock(hashtext($1))`, orderID).Scan(&locked)
	if err != nil {
		conn.Release()
		l.logger.Warn().
			Err(err).
			Str("order_id", orderID).
			Msg("advisory lock query failed, proceeding without cross-process lock")
		return func() {}, true
	}
	if !locked {
		conn.Release()
		return nil, false
	}

	release := func() {
		// Unlock on the same connection that took the lock. Use a fresh
		// context so shutdown cancellation cannot strand the lock until
		// the connection closes.
		if _, err := conn.Exec(context.Background(),
			`select pg_advisory_unlock(hashtext($1))`, orderID); err != nil {
			l.logger.Warn().
				Err(err).
				Str("order_id", orderID).
				Msg("advisory unlock failed")
		}
		conn.Release()
	}
	return release, true
}

var _ Locker = (*OrderLock)(nil)
