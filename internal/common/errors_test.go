package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError(t *testing.T) {
	cause := errors.New("boom")
	err := NewAppError("DECODE_FAILED", "decode rides", cause)

	assert.Equal(t, "DECODE_FAILED: decode rides: boom", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := NewAppError("SCHEMA_MISMATCH", "bad payload", nil)
	assert.Equal(t, "SCHEMA_MISMATCH: bad payload", bare.Error())
}
