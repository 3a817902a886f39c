//go:build e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is the minimal surface the fixtures need.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// bcrypt of "password123"
const passwordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

func CreateUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO users (id, email, display_name, password_hash, role) VALUES ($1, $2, $3, $4, $5)",
		id, email, strings.Split(email, "@")[0], passwordHash, role)
	require.NoError(t, err)
	return id
}

func CreatePackage(t *testing.T, db DBLike, title string, price int64, seats int) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO packages (id, title, price, total_seats, available_seats) VALUES ($1, $2, $3, $4, $4)",
		id, title, price, seats)
	require.NoError(t, err)
	return id
}

func CreateLiveOffer(t *testing.T, db DBLike, title string, totalCoupons int, price int64, endDate time.Time) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO offers (id, title, total_coupons, price, end_date, status) VALUES ($1, $2, $3, $4, $5, 'live')",
		id, title, totalCoupons, price, endDate)
	require.NoError(t, err)
	return id
}

// CreateCoupon inserts a paid, unused coupon with a zero-padded number.
func CreateCoupon(t *testing.T, db DBLike, offerID, userID uuid.UUID, seq int) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO coupons (id, offer_id, user_id, coupon_number, payment_id) VALUES ($1, $2, $3, $4, $5)",
		id, offerID, userID, fmt.Sprintf("%06d", seq), "pay_"+id.String())
	require.NoError(t, err)
	return id
}

func AvailableSeats(t *testing.T, db DBLike, packageID uuid.UUID) int {
	t.Helper()

	var seats int
	err := db.QueryRow(context.Background(), "SELECT available_seats FROM packages WHERE id = $1", packageID).Scan(&seats)
	require.NoError(t, err)
	return seats
}

func Count(t *testing.T, db DBLike, query string, args ...any) int {
	t.Helper()

	var n int
	require.NoError(t, db.QueryRow(context.Background(), query, args...).Scan(&n))
	return n
}

var (
	truncateOnce sync.Once
	truncateSQL  string
	truncateErr  error
)

// ResetDB truncates every public table.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	truncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'`)
		if err != nil {
			truncateErr = err
			return
		}
		tables, err := pgx.CollectRows(rows, pgx.RowTo[string])
		if err != nil {
			truncateErr = err
			return
		}
		truncateSQL = "TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE"
	})
	if truncateErr != nil {
		return fmt.Errorf("failed to build TRUNCATE SQL: %w", truncateErr)
	}
	_, err := pool.Exec(ctx, truncateSQL)
	return err
}
