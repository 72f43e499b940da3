package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(ErrDuplicate))
	assert.True(t, IsDuplicateError(ErrIdentifierExists))
	assert.True(t, IsDuplicateError(fmt.Errorf("add user: %w", ErrIdentifierExists)))
	assert.False(t, IsDuplicateError(ErrInvalidEntity))
	assert.False(t, IsDuplicateError(nil))
}

func TestStoreError(t *testing.T) {
	t.Run("with wrapped error", func(t *testing.T) {
		err := NewStoreError("user", "add", "insert failed", ErrInvalidEntity)

		assert.Equal(t, "add operation on user failed: insert failed: invalid entity", err.Error())
		assert.True(t, errors.Is(err, ErrInvalidEntity))

		var storeErr *StoreError
		assert.True(t, errors.As(fmt.Errorf("outer: %w", err), &storeErr))
		assert.Equal(t, "user", storeErr.Entity)
	})

	t.Run("without wrapped error", func(t *testing.T) {
		err := NewStoreError("user", "list", "scan failed", nil)

		assert.Equal(t, "list operation on user failed: scan failed", err.Error())
		assert.Nil(t, err.Unwrap())
	})
}
