package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backendError struct {
	Backend string
}

func (e *backendError) Error() string { return "backend " + e.Backend + " refused the connection" }

func TestWrap(t *testing.T) {
	t.Run("keeps the category matchable", func(t *testing.T) {
		err := Wrap(ErrNotFound, "credential tenant-a/database")

		assert.EqualError(t, err, "credential tenant-a/database: not found")
		assert.True(t, Is(err, ErrNotFound))
		assert.False(t, Is(err, ErrInvalidInput))
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, "credential tenant-a/database"))
	})

	t.Run("nested wraps", func(t *testing.T) {
		err := Wrap(Wrap(ErrCorrupted, "decrypt record"), "load credential")

		assert.EqualError(t, err, "load credential: decrypt record: corrupted data")
		assert.True(t, Is(err, ErrCorrupted))
	})
}

func TestIs_DomainErrors(t *testing.T) {
	errProjectNotFound := Wrap(ErrNotFound, "project not found")
	err := fmt.Errorf("get project: %w", errProjectNotFound)

	assert.True(t, Is(err, errProjectNotFound))
	assert.True(t, Is(err, ErrNotFound))
}

func TestAs(t *testing.T) {
	err := fmt.Errorf("connect: %w", &backendError{Backend: "postgres"})

	var target *backendError
	require.True(t, As(err, &target))
	assert.Equal(t, "postgres", target.Backend)

	var other *backendError
	assert.False(t, As(ErrUnavailable, &other))
}

func TestCategoriesAreDistinct(t *testing.T) {
	categories := []error{
		ErrNotFound,
		ErrInvalidInput,
		ErrUnauthorized,
		ErrMisconfigured,
		ErrCorrupted,
		ErrUnavailable,
	}

	for i, a := range categories {
		for j, b := range categories {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(a, b), "%v must not match %v", a, b)
		}
	}
}
