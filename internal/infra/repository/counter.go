package repository

import (
	"context"

	"travel-booking/internal/infra"
	"travel-booking/internal/infra/db"
)

// the first caller for a name gets 1
const nextCounterSQL = `
INSERT INTO counters (name, value) VALUES ($1, 1)
ON CONFLICT (name) DO UPDATE SET value = counters.value + 1
RETURNING value`

type CounterRepository struct{}

func NewCounterRepository() *CounterRepository {
	return &CounterRepository{}
}

func (r *CounterRepository) Next(ctx context.Context, tx db.DBTX, name string) (int64, error) {
	var v int64
	if err := tx.QueryRow(ctx, nextCounterSQL, name).Scan(&v); err != nil {
		return 0, infra.WrapRepoErr("failed to increment counter "+name, err, infra.KindDBFailure)
	}
	return v, nil
}
