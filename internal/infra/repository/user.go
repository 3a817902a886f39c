package repository

import (
	"context"
	"time"

	"travel-booking/internal/domain/user"
	"travel-booking/internal/infra"
	"travel-booking/internal/infra/db"
	"travel-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// EmailConstraint is raised when registering an address that already exists.
const EmailConstraint = "users_email_key"

const (
	createUserSQL = `
INSERT INTO users (id, email, display_name, password_hash, role, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	userSnapshotColumns = `id, email, display_name, password_hash, role, is_active`

	findUserByEmailSQL = `SELECT ` + userSnapshotColumns + ` FROM users WHERE email = $1`
	findUserByIDSQL    = `SELECT ` + userSnapshotColumns + ` FROM users WHERE id = $1`

	updateUserLastLoginSQL = `UPDATE users SET last_login = $2, updated_at = $2 WHERE id = $1`
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) Create(ctx context.Context, tx db.DBTX, u *user.User) error {
	_, err := tx.Exec(ctx, createUserSQL,
		u.ID(), u.Email().Value(), u.DisplayName(), u.PasswordHash(), u.Role().String(), u.IsActive(), u.CreatedAt(), u.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to create user", err)
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, tx db.DBTX, email string) (*shared.UserSnapshot, error) {
	return r.find(ctx, tx, "failed to find user by email", findUserByEmailSQL, email)
}

func (r *UserRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*shared.UserSnapshot, error) {
	return r.find(ctx, tx, "failed to find user by ID", findUserByIDSQL, id)
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID, at time.Time) error {
	tag, err := tx.Exec(ctx, updateUserLastLoginSQL, userID, at)
	if err != nil {
		return infra.WrapRepoErr("failed to update user last login", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *UserRepository) find(ctx context.Context, tx db.DBTX, msg, query string, arg any) (*shared.UserSnapshot, error) {
	var s shared.UserSnapshot
	err := tx.QueryRow(ctx, query, arg).Scan(&s.ID, &s.Email, &s.DisplayName, &s.PasswordHash, &s.Role, &s.IsActive)
	if err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	return &s, nil
}
