//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"travel-booking/internal/domain/user"
	"travel-booking/internal/infra/db"
	"travel-booking/internal/pkg/jwt"
	"travel-booking/internal/pkg/password"
	"travel-booking/internal/testutil"
	"travel-booking/internal/testutil/builder"
	"travel-booking/internal/usecase/commands"
	"travel-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestJWT() *jwt.Service {
	return jwt.NewService("unit-test-secret", 15*time.Minute, 24*time.Hour)
}

func userSnapshot(t *testing.T, b *builder.UserBuilder) *shared.UserSnapshot {
	t.Helper()
	hash, err := password.Hash(b.Password)
	require.NoError(t, err)
	return &shared.UserSnapshot{
		ID:           b.ID,
		Email:        b.Email,
		DisplayName:  b.DisplayName,
		PasswordHash: hash,
		Role:         b.Role,
		IsActive:     b.IsActive,
	}
}

func TestAuthCommands_Register(t *testing.T) {
	t.Run("正常系: 常に customer として登録する", func(t *testing.T) {
		m := newUowMocks(gomock.NewController(t))
		m.users.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ db.DBTX, u *user.User) error {
				assert.Equal(t, user.RoleCustomer, u.Role())
				assert.NotEqual(t, "password123", u.PasswordHash())
				return nil
			})

		id, err := commands.NewAuthCommands(m.uow, newTestJWT(), m.clock).Register(context.Background(),
			commands.RegisterInput{Email: "new@example.com", Password: "password123", DisplayName: "New Traveler"})

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)
	})

	t.Run("異常系: 登録済みのメールアドレス", func(t *testing.T) {
		m := newUowMocks(gomock.NewController(t))
		m.users.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(constraintErr("users_email_key"))

		_, err := commands.NewAuthCommands(m.uow, newTestJWT(), m.clock).Register(context.Background(),
			commands.RegisterInput{Email: "dup@example.com", Password: "password123", DisplayName: "Dup"})

		testutil.ErrorIs(t, err, commands.ErrEmailTaken)
	})

	t.Run("異常系: 短すぎるパスワード", func(t *testing.T) {
		m := newUowMocks(gomock.NewController(t))

		_, err := commands.NewAuthCommands(m.uow, newTestJWT(), m.clock).Register(context.Background(),
			commands.RegisterInput{Email: "new@example.com", Password: "short", DisplayName: "New"})

		testutil.ErrorIs(t, err, commands.ErrValidation)
	})
}

func TestAuthCommands_Login(t *testing.T) {
	t.Run("正常系: トークンを発行し最終ログインを更新する", func(t *testing.T) {
		m := newUowMocks(gomock.NewController(t))
		b := builder.NewUserBuilder().WithRole("staff")
		m.reads.EXPECT().UserByEmail(gomock.Any(), b.Email).Return(userSnapshot(t, b), nil)
		m.users.EXPECT().UpdateLastLogin(gomock.Any(), gomock.Any(), b.ID, testNow).Return(nil)

		result, err := commands.NewAuthCommands(m.uow, newTestJWT(), m.clock).Login(context.Background(), b.Email, b.Password)

		require.NoError(t, err)
		assert.Equal(t, user.RoleStaff, result.Role)
		assert.NotEmpty(t, result.TokenPair.AccessToken)
		assert.NotEmpty(t, result.TokenPair.RefreshToken)
	})

	t.Run("異常系: パスワード不一致とユーザー不在は同じエラー", func(t *testing.T) {
		m := newUowMocks(gomock.NewController(t))
		b := builder.NewUserBuilder()
		m.reads.EXPECT().UserByEmail(gomock.Any(), b.Email).Return(userSnapshot(t, b), nil)
		m.reads.EXPECT().UserByEmail(gomock.Any(), "ghost@example.com").Return(nil, notFoundErr())
		sut := commands.NewAuthCommands(m.uow, newTestJWT(), m.clock)

		_, wrongPassword := sut.Login(context.Background(), b.Email, "wrong-password")
		_, unknownUser := sut.Login(context.Background(), "ghost@example.com", b.Password)

		testutil.ErrorIs(t, wrongPassword, commands.ErrInvalidCredentials)
		testutil.ErrorIs(t, unknownUser, commands.ErrInvalidCredentials)
	})

	t.Run("異常系: 無効化されたユーザー", func(t *testing.T) {
		m := newUowMocks(gomock.NewController(t))
		b := builder.NewUserBuilder().AsInactive()
		m.reads.EXPECT().UserByEmail(gomock.Any(), b.Email).Return(userSnapshot(t, b), nil)

		_, err := commands.NewAuthCommands(m.uow, newTestJWT(), m.clock).Login(context.Background(), b.Email, b.Password)

		testutil.ErrorIs(t, err, commands.ErrUserInactive)
	})
}

func TestAuthCommands_RefreshToken(t *testing.T) {
	tokens := newTestJWT()

	t.Run("正常系: ロールを読み直して再発行する", func(t *testing.T) {
		m := newUowMocks(gomock.NewController(t))
		b := builder.NewUserBuilder().WithRole("admin")
		refresh, err := tokens.GenerateRefreshToken(b.ID, user.RoleAdmin)
		require.NoError(t, err)
		demoted := userSnapshot(t, b)
		demoted.Role = string(user.RoleCustomer)
		m.reads.EXPECT().UserByID(gomock.Any(), b.ID).Return(demoted, nil)

		pair, err := commands.NewAuthCommands(m.uow, tokens, m.clock).RefreshToken(context.Background(), refresh)

		require.NoError(t, err)
		claims, err := tokens.ValidateToken(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, string(user.RoleCustomer), claims.Role)
	})

	t.Run("異常系: アクセストークンでは更新できない", func(t *testing.T) {
		m := newUowMocks(gomock.NewController(t))
		access, err := tokens.GenerateAccessToken(uuid.New(), user.RoleCustomer)
		require.NoError(t, err)

		_, err = commands.NewAuthCommands(m.uow, tokens, m.clock).RefreshToken(context.Background(), access)

		testutil.ErrorIs(t, err, commands.ErrTokenValidation)
	})

	t.Run("異常系: 削除されたユーザー", func(t *testing.T) {
		m := newUowMocks(gomock.NewController(t))
		id := uuid.New()
		refresh, err := tokens.GenerateRefreshToken(id, user.RoleCustomer)
		require.NoError(t, err)
		m.reads.EXPECT().UserByID(gomock.Any(), id).Return(nil, notFoundErr())

		_, err = commands.NewAuthCommands(m.uow, tokens, m.clock).RefreshToken(context.Background(), refresh)

		testutil.ErrorIs(t, err, commands.ErrUserNotFound)
	})
}
