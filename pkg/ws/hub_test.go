package ws

import (
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
)

func TestHub_AddRemoveCount(t *testing.T) {
	h := NewHub()
	a := NewConn(&websocket.Conn{})
	b := NewConn(&websocket.Conn{})

	assert.Zero(t, h.Count("req_1"))

	h.Add("req_1", a)
	h.Add("req_1", b)
	h.Add("req_2", a)
	assert.Equal(t, 2, h.Count("req_1"))
	assert.Equal(t, 1, h.Count("req_2"))

	h.Remove("req_1", a)
	assert.Equal(t, 1, h.Count("req_1"))
	h.Remove("req_1", b)
	assert.Zero(t, h.Count("req_1"))

	// Removing a watcher that was never added is a no-op.
	h.Remove("req_3", a)
	assert.Zero(t, h.Count("req_3"))
}
