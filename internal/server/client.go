package server

import (
	"sync"

	"github.com/gorilla/websocket"
)

// wsClient wraps a WebSocket connection for browser-based clients.
// Writes are serialized because the broadcast loop and action handlers
// both push snapshots.
type wsClient struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func newWSClient(conn *websocket.Conn) *wsClient {
	return &wsClient{conn: conn}
}

// SendJSON writes v to the client as a single JSON text message.
func (c *wsClient) SendJSON(v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(v)
}

// ReadMessage blocks until the next message from the client.
func (c *wsClient) ReadMessage() ([]byte, error) {
	_, data, err := c.conn.ReadMessage()
	return data, err
}

// Close closes the WebSocket connection.
func (c *wsClient) Close() error {
	return c.conn.Close()
}

// RemoteAddr returns the remote address as a string.
func (c *wsClient) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}
