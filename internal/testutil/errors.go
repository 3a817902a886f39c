//go:build unit || e2e

package testutil

import (
	"fmt"

	"travel-booking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tHelper interface {
	Helper()
}

// ErrorIs is assert.ErrorIs that also matches targets attached with errs.Mark.
func ErrorIs(t assert.TestingT, err, target error, msgAndArgs ...any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if errs.Is(err, target) {
		return true
	}
	return assert.Fail(t, fmt.Sprintf("Target error should be in err chain or marks:\n"+
		"expected: %q\n"+
		"in chain: %v", target, err), msgAndArgs...)
}

func RequireErrorIs(t require.TestingT, err, target error, msgAndArgs ...any) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if !ErrorIs(t, err, target, msgAndArgs...) {
		t.FailNow()
	}
}
