package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StructuredError
		expected string
	}{
		{
			name:     "error without cause",
			err:      NotFound("No users found."),
			expected: "[NOT_FOUND] No users found.",
		},
		{
			name:     "error with cause",
			err:      Database("failed to list users", errors.New("connection refused")),
			expected: "[DATABASE_ERROR] failed to list users: connection refused",
		},
		{
			name:     "formatted validation",
			err:      Validation("The parameter %q is not available for sorting.", "bogus"),
			expected: `[VALIDATION_ERROR] The parameter "bogus" is not available for sorting.`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Database("wrapped", cause)

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, cause, err.Unwrap())
}

func TestCodeOf(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", Validation("bad input"))

	assert.Equal(t, ErrCodeValidation, CodeOf(wrapped))
	assert.Equal(t, ErrCodeInternal, CodeOf(errors.New("plain")))
	assert.True(t, IsValidation(wrapped))
	assert.False(t, IsNotFound(wrapped))
	assert.False(t, IsValidation(nil))
	assert.True(t, IsDatabase(Database("x", nil)))
}

func TestNewWithContext(t *testing.T) {
	err := NewWithContext(ErrCodeValidation, "invalid filter", map[string]any{"filter": "bogus:x"})

	require.NotNil(t, err.Context)
	assert.Equal(t, "bogus:x", err.Context["filter"])
	assert.Nil(t, err.Cause)
}
