// Package password hashes traveler credentials with bcrypt.
package password

import (
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrHashingFailed   = errors.New("password hashing failed")
	ErrMismatch        = errors.New("password mismatch")
	ErrInvalidPassword = errors.New("invalid password")
)

const Cost = bcrypt.DefaultCost

// bcrypt ignores everything past 72 bytes; longer input is rejected rather than truncated.
const maxInputBytes = 72

var dummyHash = sync.OnceValue(func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("no-such-account"), Cost)
	return h
})

func Hash(raw string) (string, error) {
	if raw == "" || len(raw) > maxInputBytes {
		return "", ErrInvalidPassword
	}
	h, err := bcrypt.GenerateFromPassword([]byte(raw), Cost)
	if err != nil {
		return "", errors.Join(ErrHashingFailed, err)
	}
	return string(h), nil
}

// Verify returns ErrMismatch for a wrong password and ErrInvalidPassword for unusable input.
func Verify(hash, raw string) error {
	if hash == "" || raw == "" || len(raw) > maxInputBytes {
		return ErrInvalidPassword
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrMismatch
	default:
		return err
	}
}

// VerifyMissing spends one bcrypt comparison so a login for an unknown email
// takes as long as one with a wrong password.
func VerifyMissing(raw string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(raw))
}
