//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"travel-booking/internal/infra"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestUpdateLastLogin(t *testing.T) {
	testUserID := uuid.New()
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		tag       string
		mockError error
		wantKind  infra.RepositoryErrorKind
	}{
		{
			name: "success",
			tag:  "UPDATE 1",
		},
		{
			name:     "user missing",
			tag:      "UPDATE 0",
			wantKind: infra.KindNotFound,
		},
		{
			name:      "database error",
			mockError: assert.AnError,
			wantKind:  infra.KindDBFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockDB := new(MockDBTX)
			mockDB.On("Exec", mock.Anything, updateUserLastLoginSQL, []interface{}{testUserID, at}).Return(tag(tt.tag), tt.mockError)

			repo := NewUserRepository()

			err := repo.UpdateLastLogin(context.Background(), mockDB, testUserID, at)

			if tt.wantKind != "" {
				assert.Error(t, err)
				assert.True(t, infra.IsKind(err, tt.wantKind))
			} else {
				assert.NoError(t, err)
			}

			mockDB.AssertExpectations(t)
		})
	}
}
