package shared

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Kinds(t *testing.T) {
	v := Validation("schedule", "ValidateRange", "bad range")
	n := NotFound("schedule", "FindGroup", "missing")

	assert.True(t, IsValidation(v))
	assert.False(t, IsNotFound(v))
	assert.True(t, IsNotFound(n))
	assert.False(t, IsUnexpected(n))
	assert.Equal(t, "schedule.ValidateRange: bad range", v.Error())
}

func TestUnexpected(t *testing.T) {
	cause := errors.New("connection refused")
	err := Unexpected("schedule", "LoadEntries", cause)

	assert.True(t, IsUnexpected(err))
	assert.ErrorIs(t, err, cause)

	t.Run("keeps an existing kind", func(t *testing.T) {
		nf := NotFound("schedule", "FindGroup", "missing")
		wrapped := fmt.Errorf("lookup: %w", nf)
		assert.Same(t, wrapped, Unexpected("query", "Handle", wrapped))
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, Unexpected("query", "Handle", nil))
	})

	t.Run("context errors stay matchable", func(t *testing.T) {
		err := Unexpected("schedule", "LoadEntries", context.DeadlineExceeded)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "missing", MessageOf(fmt.Errorf("x: %w", NotFound("d", "op", "missing")), "fallback"))
	assert.Equal(t, "fallback", MessageOf(errors.New("plain"), "fallback"))
}
