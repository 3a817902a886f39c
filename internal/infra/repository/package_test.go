//go:build unit

package repository

import (
	"context"
	"testing"

	"travel-booking/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPackageRepository_ReserveSeats(t *testing.T) {
	pkgID := uuid.New()

	tests := []struct {
		name         string
		tag          string
		mockError    error
		wantReserved bool
		wantKind     infra.RepositoryErrorKind
	}{
		{name: "row updated", tag: "UPDATE 1", wantReserved: true},
		{name: "not enough seats or missing package", tag: "UPDATE 0", wantReserved: false},
		{name: "check constraint", mockError: &pgconn.PgError{Code: "23514", ConstraintName: "packages_available_seats_range"}, wantKind: infra.KindCheckViolated},
		{name: "database error", mockError: assert.AnError, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockDB := new(MockDBTX)
			mockDB.On("Exec", mock.Anything, reserveSeatsSQL, []interface{}{pkgID, 3}).Return(tag(tt.tag), tt.mockError)

			ok, err := NewPackageRepository().ReserveSeats(context.Background(), mockDB, pkgID, 3)

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tt.wantKind))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantReserved, ok)
			mockDB.AssertExpectations(t)
		})
	}
}

func TestPackageRepository_FindByID_NotFound(t *testing.T) {
	pkgID := uuid.New()
	mockDB := new(MockDBTX)
	mockDB.On("QueryRow", mock.Anything, findPackageSQL, []interface{}{pkgID}).Return(fakeRow{err: pgx.ErrNoRows})

	_, err := NewPackageRepository().FindByID(context.Background(), mockDB, pkgID)

	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}

func TestCounterRepository_Next(t *testing.T) {
	t.Run("returns incremented value", func(t *testing.T) {
		mockDB := new(MockDBTX)
		mockDB.On("QueryRow", mock.Anything, nextCounterSQL, []interface{}{"booking_id"}).Return(fakeRow{values: []any{int64(42)}})

		v, err := NewCounterRepository().Next(context.Background(), mockDB, "booking_id")

		require.NoError(t, err)
		assert.Equal(t, int64(42), v)
	})

	t.Run("failure is always a db failure", func(t *testing.T) {
		mockDB := new(MockDBTX)
		mockDB.On("QueryRow", mock.Anything, nextCounterSQL, []interface{}{"booking_id"}).Return(fakeRow{err: pgx.ErrNoRows})

		_, err := NewCounterRepository().Next(context.Background(), mockDB, "booking_id")

		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

func TestDiscountRepository_UsageCount_MissingRowIsZero(t *testing.T) {
	couponID, userID := uuid.New(), uuid.New()
	mockDB := new(MockDBTX)
	mockDB.On("QueryRow", mock.Anything, discountUsageSQL, []interface{}{couponID, userID}).Return(fakeRow{err: pgx.ErrNoRows})

	n, err := NewDiscountRepository().UsageCount(context.Background(), mockDB, couponID, userID)

	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
