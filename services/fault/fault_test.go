package fault

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	err := New(InvalidState, "quote %s is already accepted", "q1")
	assert.Equal(t, InvalidState, KindOf(err))
	assert.Contains(t, err.Error(), "already accepted")

	// Wrapping with fmt keeps the kind reachable through errors.As.
	wrapped := fmt.Errorf("accept quote: %w", err)
	assert.Equal(t, InvalidState, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, InvalidState))
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, Internal, KindOf(errors.New("mongo timeout")))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("duplicate key")
	err := Wrap(Internal, cause, "upsert conversation")
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, Internal, KindOf(err))
}
