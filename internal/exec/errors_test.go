package exec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseErrorWrapsErrParse(t *testing.T) {
	t.Parallel()
	err := &ParseError{Line: 1, Column: 4, Message: "unexpected token"}
	assert.ErrorIs(t, err, ErrParse)
	assert.NotErrorIs(t, err, ErrExecution)
	assert.Contains(t, err.Error(), "unexpected token")
}

func TestMaxDepthExceededErrorWrapsErrExecution(t *testing.T) {
	t.Parallel()
	err := &MaxDepthExceededError{Depth: 5, MaxDepth: 4}
	assert.ErrorIs(t, err, ErrExecution)
	assert.NotErrorIs(t, err, ErrParse)
}

func TestInternalInvariantErrorWrapsErrInvalid(t *testing.T) {
	t.Parallel()
	err := &InternalInvariantError{Message: "expression stack underflow"}
	assert.ErrorIs(t, err, ErrInvalid)
	assert.NotErrorIs(t, err, ErrExecution)
}

func TestErrorsAsStillResolvesConcreteTypeThroughWrapping(t *testing.T) {
	t.Parallel()
	var err error = &MaxDepthExceededError{Depth: 9, MaxDepth: 8}
	var mde *MaxDepthExceededError
	assert.True(t, errors.As(err, &mde))
	assert.Equal(t, 9, mde.Depth)
}
