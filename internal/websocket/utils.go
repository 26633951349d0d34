package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Conn wraps a stream connection with a write lock. Two goroutines write
// to a sitting stream — the event pump and the read-loop replies — and
// gorilla/websocket allows at most one concurrent writer, so every frame
// goes out under the mutex.
type Conn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

// NewConn wraps an upgraded connection.
func NewConn(conn *websocket.Conn) *Conn {
	return &Conn{conn: conn}
}

// WriteTyped sends a strongly-typed response payload over the WebSocket.
func (c *Conn) WriteTyped(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return c.conn.WriteJSON(v)
}

// WriteError sends a typed ErrorResponse over the WebSocket.
func (c *Conn) WriteError(errMsg string) error {
	return c.WriteTyped(ErrorResponse{
		Event: EventError,
		Error: errMsg,
	})
}

// Read blocks for the next message, decodes the action envelope and
// returns the raw frame for full payload parsing. It sets a read
// deadline. Reading needs no lock; only the read loop calls it.
func (c *Conn) Read(env *RequestEnvelope) ([]byte, error) {
	c.conn.SetReadDeadline(time.Now().Add(5 * time.Minute))
	_, raw, err := c.conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	if err := DecodeMessage(raw, env); err != nil {
		return nil, err
	}
	return raw, nil
}

// Close closes the underlying connection.
func (c *Conn) Close() error {
	return c.conn.Close()
}

// DecodeMessage unmarshals a raw frame into the provided structure. Used
// twice per message: once to peek at the action, once for the full payload.
func DecodeMessage(raw []byte, v interface{}) error {
	return json.Unmarshal(raw, v)
}
