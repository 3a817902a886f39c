package uow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"travel-booking/internal/infra/db"
	"travel-booking/internal/infra/repository"
	"travel-booking/internal/pkg/config"
	"travel-booking/internal/pkg/errs"
	"travel-booking/internal/pkg/metrics"
	"travel-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SQLSTATEs worth another attempt. Seat and coupon rows are locked FOR UPDATE,
// so contention surfaces as deadlocks or lock timeouts rather than wrong results.
var retryableCodes = map[string]struct{}{
	"40001": {}, // serialization_failure
	"40P01": {}, // deadlock_detected
	"55P03": {}, // lock_not_available
}

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type RetryPolicy struct {
	MaxRetries  int
	Base        time.Duration
	LockTimeout time.Duration
}

// PolicyFrom fills zero values with the defaults used in production.
func PolicyFrom(cfg config.DBConfig) RetryPolicy {
	p := RetryPolicy{MaxRetries: cfg.TxMaxRetries, Base: cfg.TxRetryBase, LockTimeout: cfg.LockTimeout}
	if p.MaxRetries <= 0 {
		p.MaxRetries = 3
	}
	if p.Base <= 0 {
		p.Base = 50 * time.Millisecond
	}
	return p
}

// backoff doubles per attempt with up to 20% jitter.
func (p RetryPolicy) backoff(attempt int) time.Duration {
	wait := p.Base << attempt
	if jitter := int64(wait / 5); jitter > 0 {
		wait += time.Duration(rand.Int64N(jitter))
	}
	return wait
}

type PostgresUoW struct {
	pool   *pgxpool.Pool
	policy RetryPolicy

	users *repository.UserRepository
}

func NewPostgresUoW(pool *pgxpool.Pool, policy RetryPolicy) shared.UnitOfWork {
	return &PostgresUoW{
		pool:   pool,
		policy: policy,
		users:  repository.NewUserRepository(),
	}
}

// Within runs fn in a READ COMMITTED transaction and retries it from the start on lock contention.
// fn must not have side effects outside the transaction.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = u.attempt(ctx, fn)
		code, retryable := retryableCode(err)
		if !retryable {
			return err
		}
		if attempt == u.policy.MaxRetries {
			slog.ErrorContext(ctx, "transaction gave up", "attempts", attempt+1, "sqlstate", code, "error", err.Error())
			return errs.Mark(err, errMaxRetriesExceeded)
		}

		metrics.TxRetriesTotal.WithLabelValues(code).Inc()
		wait := u.policy.backoff(attempt)
		slog.WarnContext(ctx, "transaction retry", "attempt", attempt+1, "sqlstate", code, "wait_ms", wait.Milliseconds())

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// attempt owns exactly one transaction so rollback never piles up across retries.
func (u *PostgresUoW) attempt(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}
	defer rollback(ctx, pgxTx)

	if u.policy.LockTimeout > 0 {
		// SET does not accept bind parameters
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = %d", u.policy.LockTimeout.Milliseconds())
		if _, err := pgxTx.Exec(ctx, stmt); err != nil {
			return errs.Wrap(err, "failed to set lock_timeout")
		}
	}

	if err := fn(ctx, &pgTx{dbtx: pgxTx, uow: u}); err != nil {
		return err
	}
	if err := pgxTx.Commit(ctx); err != nil {
		return errs.Mark(err, errTransactionCommit)
	}
	return nil
}

// WithinReadOnly gives fn one snapshot across several tables.
func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly, IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}
	defer rollback(ctx, pgxTx)

	if err := fn(ctx, pgxTx); err != nil {
		return err
	}
	return pgxTx.Commit(ctx)
}

func (u *PostgresUoW) WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error {
	return fn(ctx, u.pool)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return &commandReads{uow: u, dbtx: u.pool}
}

func rollback(ctx context.Context, tx pgx.Tx) {
	// after a successful Commit this is a no-op returning ErrTxClosed
	if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		slog.WarnContext(ctx, "rollback failed", "error", err.Error())
	}
}

func retryableCode(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return "", false
	}
	_, ok := retryableCodes[pgErr.Code]
	return pgErr.Code, ok
}

// pgTx hands out repositories bound to one transaction.
type pgTx struct {
	dbtx db.DBTX
	uow  *PostgresUoW

	packages      shared.PackageRepository
	offers        shared.OfferRepository
	coupons       shared.CouponRepository
	counters      shared.CounterRepository
	bookings      shared.BookingRepository
	bookingStarts shared.BookingStartRepository
	discounts     shared.DiscountRepository
	idempotency   shared.IdempotencyRepository
	notifications shared.NotificationRepository
	reads         shared.CommandReads
}

func lazy[T any](slot *T, build func() T) T {
	var zero any = *slot
	if zero == nil {
		*slot = build()
	}
	return *slot
}

func (t *pgTx) DB() db.DBTX { return t.dbtx }

func (t *pgTx) Packages() shared.PackageRepository {
	return lazy(&t.packages, func() shared.PackageRepository { return repository.NewPackageRepository() })
}

func (t *pgTx) Offers() shared.OfferRepository {
	return lazy(&t.offers, func() shared.OfferRepository { return repository.NewOfferRepository() })
}

func (t *pgTx) Coupons() shared.CouponRepository {
	return lazy(&t.coupons, func() shared.CouponRepository { return repository.NewCouponRepository() })
}

func (t *pgTx) Counters() shared.CounterRepository {
	return lazy(&t.counters, func() shared.CounterRepository { return repository.NewCounterRepository() })
}

func (t *pgTx) Bookings() shared.BookingRepository {
	return lazy(&t.bookings, func() shared.BookingRepository { return repository.NewBookingRepository() })
}

func (t *pgTx) BookingStarts() shared.BookingStartRepository {
	return lazy(&t.bookingStarts, func() shared.BookingStartRepository { return repository.NewBookingStartRepository() })
}

func (t *pgTx) Discounts() shared.DiscountRepository {
	return lazy(&t.discounts, func() shared.DiscountRepository { return repository.NewDiscountRepository() })
}

func (t *pgTx) Idempotency() shared.IdempotencyRepository {
	return lazy(&t.idempotency, func() shared.IdempotencyRepository { return repository.NewIdempotencyRepository() })
}

func (t *pgTx) Notifications() shared.NotificationRepository {
	return lazy(&t.notifications, func() shared.NotificationRepository { return repository.NewNotificationRepository() })
}

func (t *pgTx) Users() shared.UserRepository { return t.uow.users }

func (t *pgTx) Reads() shared.CommandReads {
	return lazy(&t.reads, func() shared.CommandReads { return &commandReads{uow: t.uow, dbtx: t.dbtx} })
}
