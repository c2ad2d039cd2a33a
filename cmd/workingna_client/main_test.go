package main

import (
	"testing"

	"workingna/api/websocket"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	msg, ok := parseCommand("t 3")
	assert.True(t, ok)
	assert.Equal(t, protocol.CourseToggleMessage, msg.Type)
	assert.Equal(t, map[string]int{"courseId": 3}, msg.Data)

	msg, ok = parseCommand("  c ")
	assert.True(t, ok)
	assert.Equal(t, protocol.CalculateFeesMessage, msg.Type)

	msg, ok = parseCommand("n Nomsa Dlamini")
	assert.True(t, ok)
	assert.Equal(t, map[string]string{"name": "Nomsa Dlamini"}, msg.Data)

	_, ok = parseCommand("t abc")
	assert.False(t, ok)
	_, ok = parseCommand("x")
	assert.False(t, ok)
}
