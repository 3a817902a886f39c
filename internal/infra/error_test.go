//go:build unit

package infra

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapRepoErr_Classification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind []RepositoryErrorKind
		want RepositoryErrorKind
	}{
		{name: "no rows", err: pgx.ErrNoRows, want: KindNotFound},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, want: KindDuplicateKey},
		{name: "foreign key violation", err: &pgconn.PgError{Code: "23503"}, want: KindForeignKeyViolated},
		{name: "check violation", err: &pgconn.PgError{Code: "23514"}, want: KindCheckViolated},
		{name: "other pg error", err: &pgconn.PgError{Code: "57014"}, want: KindDBFailure},
		{name: "plain error", err: errors.New("boom"), want: KindDBFailure},
		{name: "explicit kind wins", err: pgx.ErrNoRows, kind: []RepositoryErrorKind{KindDBFailure}, want: KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WrapRepoErr("op", tt.err, tt.kind...)
			assert.True(t, IsKind(err, tt.want), "got %v", err)
			assert.True(t, errors.Is(err, tt.err))
		})
	}
}

func TestIsConstraint(t *testing.T) {
	err := WrapRepoErr("insert", &pgconn.PgError{Code: "23505", ConstraintName: "uq_bookings_booking_id"})

	assert.True(t, IsConstraint(err, "uq_bookings_booking_id"))
	assert.False(t, IsConstraint(err, "users_email_key"))
	assert.False(t, IsConstraint(errors.New("x"), "uq_bookings_booking_id"))
}
