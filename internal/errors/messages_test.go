package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetErrorMessage(t *testing.T) {
	assert.Equal(t, "Invalid data", GetErrorMessage(1001))
	assert.Equal(t, ErrUnknownMessage.Message, GetErrorMessage(ErrUnknownMessage.Code))
	assert.Equal(t, ErrNoSession.Message, GetErrorMessage(ErrNoSession.Code))
	assert.Equal(t, ErrInternalServer.Message, GetErrorMessage(2000))
	assert.Equal(t, "Unknown error", GetErrorMessage(42))
}
