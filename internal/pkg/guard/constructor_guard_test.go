package guard_test

import (
	"errors"
	"testing"

	"manufacturing/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("creates_properly_constructed_guard", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("test object not constructed")))
		require.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		expectedError := errors.New("entity not constructed")

		// When
		err := g.Validate(expectedError)

		// Then
		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(nil)

		// Then
		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	type batch struct {
		size  int
		guard guard.ConstructorGuard
	}
	errBatchNotConstructed := errors.New("batch must be created via newBatch")

	newBatch := func(size int) (batch, error) {
		if size <= 0 {
			return batch{}, errors.New("batch size must be positive")
		}
		return batch{size: size, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed", func(t *testing.T) {
		b, err := newBatch(40)
		require.NoError(t, err)
		require.NoError(t, b.guard.Validate(errBatchNotConstructed))
		assert.Equal(t, 40, b.size)
	})

	t.Run("zero_value", func(t *testing.T) {
		var b batch
		assert.Equal(t, errBatchNotConstructed, b.guard.Validate(errBatchNotConstructed))
	})
}
