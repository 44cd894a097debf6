package context7_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/context7"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := context7.Errorf(context7.ENOTFOUND, "unable to resolve library %q", "zod")

	assert.Equal(t, context7.ENOTFOUND, context7.ErrorCode(err))
	assert.Equal(t, "unable to resolve library \"zod\"", context7.ErrorMessage(err))
}

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, context7.ErrorCode(nil))
	})

	t.Run("wrapped application error", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("resolve: %w", context7.Errorf(context7.ECLOSED, "client is closed"))

		assert.Equal(t, context7.ECLOSED, context7.ErrorCode(err))
	})

	t.Run("foreign error is internal", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, context7.EINTERNAL, context7.ErrorCode(errors.New("boom")))
	})
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, context7.ErrorMessage(nil))
	})

	t.Run("foreign error keeps its text", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "connection refused", context7.ErrorMessage(errors.New("connection refused")))
	})
}
