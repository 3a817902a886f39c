package usecase

import (
	"travel-booking/internal/domain/user"
	"travel-booking/internal/pkg/errs"
	"travel-booking/internal/pkg/jwt"

	"github.com/google/uuid"
)

var (
	ErrNotAccessToken = errs.New("token is not an access token")
	ErrTokenRejected  = errs.New("token rejected")
)

// Identity is the caller as the access token describes it. The role is not
// re-read from storage, so a demotion takes effect at the next refresh.
type Identity struct {
	UserID uuid.UUID
	Role   user.Role
}

type TokenValidator interface {
	Authenticate(tokenString string) (Identity, error)
}

type tokenValidatorImpl struct {
	tokens *jwt.Service
}

func NewTokenValidator(tokens *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{tokens: tokens}
}

// Authenticate marks every failure with ErrTokenRejected.
func (t *tokenValidatorImpl) Authenticate(tokenString string) (Identity, error) {
	claims, err := t.tokens.ValidateToken(tokenString)
	if err != nil {
		return Identity{}, errs.Mark(err, ErrTokenRejected)
	}
	if claims.TokenType != jwt.TokenTypeAccess {
		return Identity{}, errs.Mark(ErrNotAccessToken, ErrTokenRejected)
	}
	if claims.UserID == uuid.Nil {
		return Identity{}, errs.Mark(errs.New("token has no subject"), ErrTokenRejected)
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return Identity{}, errs.Mark(errs.Wrapf(err, "token role %q", claims.Role), ErrTokenRejected)
	}

	return Identity{UserID: claims.UserID, Role: role}, nil
}
