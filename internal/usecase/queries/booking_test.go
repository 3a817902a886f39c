//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"travel-booking/internal/domain/user"
	"travel-booking/internal/infra"
	queriesmock "travel-booking/internal/mock/queries"
	"travel-booking/internal/testutil"
	"travel-booking/internal/testutil/builder"
	"travel-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestBookingQueries_GetByBookingID(t *testing.T) {
	view := builder.NewBookingBuilder().BuildView()

	tests := []struct {
		name    string
		actorID uuid.UUID
		role    user.Role
		wantErr error
	}{
		{name: "正常系: 本人", actorID: view.UserID, role: user.RoleCustomer},
		{name: "正常系: スタッフは他人の予約も見られる", actorID: uuid.New(), role: user.RoleStaff},
		{name: "正常系: 管理者", actorID: uuid.New(), role: user.RoleAdmin},
		{name: "異常系: 他人の予約", actorID: uuid.New(), role: user.RoleCustomer, wantErr: queries.ErrBookingAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := queriesmock.NewMockBookingReadStore(ctrl)
			store.EXPECT().FindByBookingID(gomock.Any(), view.BookingID).Return(view, nil)

			got, err := queries.NewBookingQueries(store).GetByBookingID(context.Background(), tt.actorID, tt.role, view.BookingID)

			if tt.wantErr != nil {
				testutil.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, view.BookingID, got.BookingID)
		})
	}

	t.Run("異常系: 存在しない予約", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockBookingReadStore(ctrl)
		store.EXPECT().FindByBookingID(gomock.Any(), "OKB999999").
			Return(nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound))

		_, err := queries.NewBookingQueries(store).GetByBookingID(context.Background(), uuid.New(), user.RoleAdmin, "OKB999999")

		testutil.ErrorIs(t, err, queries.ErrBookingNotFound)
	})
}

func TestBookingQueries_List(t *testing.T) {
	base := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	rows := []*queries.BookingListItem{
		{ID: uuid.New(), BookingID: "OKB000003", CreatedAt: base},
		{ID: uuid.New(), BookingID: "OKB000002", CreatedAt: base.Add(-time.Minute)},
	}

	t.Run("ListByUser は本人で絞り込む", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockBookingReadStore(ctrl)
		userID := uuid.New()
		store.EXPECT().List(gomock.Any(), &userID, queries.BookingFilters{}, queries.Keyset{Limit: 1}).Return(rows, nil)

		page, err := queries.NewBookingQueries(store).ListByUser(context.Background(), userID, nil, 1)

		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		require.NotNil(t, page.Next)
		assert.Equal(t, queries.EncodeAfterCursor(rows[0].CreatedAt, rows[0].ID), page.Next.After)
	})

	t.Run("ListAll はカーソル位置を渡す", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockBookingReadStore(ctrl)
		status := "Confirmed"
		cursor := &queries.Cursor{After: queries.EncodeAfterCursor(rows[0].CreatedAt, rows[0].ID)}
		store.EXPECT().List(gomock.Any(), (*uuid.UUID)(nil), queries.BookingFilters{Status: &status}, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *uuid.UUID, _ queries.BookingFilters, ks queries.Keyset) ([]*queries.BookingListItem, error) {
				require.NotNil(t, ks.AfterID)
				assert.Equal(t, rows[0].ID, *ks.AfterID)
				assert.True(t, rows[0].CreatedAt.Equal(*ks.AfterCreatedAt))
				assert.Equal(t, 20, ks.Limit)
				return rows[1:], nil
			})

		page, err := queries.NewBookingQueries(store).ListAll(context.Background(), queries.BookingFilters{Status: &status}, cursor, 0)

		require.NoError(t, err)
		assert.Len(t, page.Items, 1)
		assert.Nil(t, page.Next)
	})
}
