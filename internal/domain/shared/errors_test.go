package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainErrorIs(t *testing.T) {
	t.Run("same code matches regardless of message", func(t *testing.T) {
		err := NewDomainErrorf("INSUFFICIENT_STOCK", "Only %d left, need %d", 3, 5)
		assert.True(t, errors.Is(err, ErrInsufficientStock))
		assert.False(t, errors.Is(err, ErrNotFound))
	})

	t.Run("wrapped errors still match", func(t *testing.T) {
		wrapped := fmt.Errorf("deduct stock: %w", ErrInsufficientStock)
		assert.True(t, IsInsufficientStock(wrapped))
	})

	t.Run("plain errors never match", func(t *testing.T) {
		assert.False(t, IsNotFound(errors.New("NOT_FOUND")))
	})
}

func TestErrorHelpers(t *testing.T) {
	assert.True(t, IsNotFound(ErrNotFound))
	assert.True(t, IsValidation(NewDomainError("VALIDATION_ERROR", "bad cart")))
	assert.False(t, IsValidation(ErrProductUnavailable))
	assert.False(t, IsNotFound(nil))
}

func TestDomainErrorMessage(t *testing.T) {
	err := NewDomainError("NOT_FOUND", "Bill not found")
	assert.Equal(t, "Bill not found", err.Error())
	assert.Equal(t, "NOT_FOUND", err.Code)
}
