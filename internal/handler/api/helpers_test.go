//go:build unit

package api_test

import (
	"travel-booking/internal/domain/user"
	"travel-booking/internal/handler/middleware"
	usecasemock "travel-booking/internal/mock/usecase"
	"travel-booking/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/mock/gomock"
)

const testToken = "unit-test-token"

// actor is the identity the fake token resolves to. Tests mutate it between requests.
type actor struct {
	ID   uuid.UUID
	Role user.Role
}

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// newAuth builds the real auth middleware over a validator that accepts testToken only.
func newAuth(ctrl *gomock.Controller, a *actor) *middleware.AuthMiddleware {
	validator := usecasemock.NewMockTokenValidator(ctrl)
	validator.EXPECT().Authenticate(gomock.Any()).
		DoAndReturn(func(token string) (usecase.Identity, error) {
			if token != testToken {
				return usecase.Identity{}, errInvalidToken
			}
			return usecase.Identity{UserID: a.ID, Role: a.Role}, nil
		}).AnyTimes()
	return middleware.NewAuthMiddleware(validator)
}

type tokenError string

func (e tokenError) Error() string { return string(e) }

const errInvalidToken = tokenError("invalid token")
