package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, NotFound, KindOf(New(NotFound, "missing")))
	assert.Equal(t, Duplicate, KindOf(Newf(Duplicate, "dup %s", "key")))
	assert.Equal(t, Conflict, KindOf(NewConflict("blocked", 3)))

	// Unclassified errors are treated as store failures.
	assert.Equal(t, StoreUnavailable, KindOf(errors.New("boom")))
}

func TestKindOfWrapped(t *testing.T) {
	inner := New(Validation, "bad input")
	err := fmt.Errorf("handling request: %w", inner)
	assert.Equal(t, Validation, KindOf(err))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(StoreUnavailable, "failed to fetch", cause)

	assert.Equal(t, StoreUnavailable, KindOf(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "failed to fetch")
}

func TestConflictDependents(t *testing.T) {
	err := NewConflict("cannot delete", 7)

	var appErr *Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 7, appErr.Dependents)
	assert.Equal(t, Conflict, appErr.Kind)
}

func TestIsMatchesByKind(t *testing.T) {
	err := New(NotFound, "user not found")
	assert.ErrorIs(t, err, New(NotFound, "different message"))
	assert.NotErrorIs(t, err, New(Duplicate, "user not found"))
}
