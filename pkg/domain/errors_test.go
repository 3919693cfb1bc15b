package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("chat session", "abc")

	assert.EqualError(t, err, "chat session with ID 'abc' not found")
	assert.True(t, IsNotFoundError(err))
	assert.True(t, IsNotFoundError(fmt.Errorf("lookup: %w", err)))
	assert.False(t, IsNotFoundError(errors.New("other")))
	assert.False(t, IsNotFoundError(nil))
}
