//go:build unit

package password_test

import (
	"strings"
	"testing"

	"travel-booking/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := password.Hash("goa-monsoon-2026")
	require.NoError(t, err)

	assert.NoError(t, password.Verify(hash, "goa-monsoon-2026"))
	assert.ErrorIs(t, password.Verify(hash, "goa-monsoon-2025"), password.ErrMismatch)
}

func TestHash_RejectsUnusableInput(t *testing.T) {
	_, err := password.Hash("")
	assert.ErrorIs(t, err, password.ErrInvalidPassword)

	_, err = password.Hash(strings.Repeat("a", 73))
	assert.ErrorIs(t, err, password.ErrInvalidPassword)
}

func TestVerify_RejectsOverlongInput(t *testing.T) {
	hash, err := password.Hash(strings.Repeat("a", 72))
	require.NoError(t, err)

	// bcrypt alone would accept this since it only reads the first 72 bytes
	assert.ErrorIs(t, password.Verify(hash, strings.Repeat("a", 72)+"b"), password.ErrInvalidPassword)
}
