package live

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// Wire timing constants, carried over from a raw WebSocket ping/pong handler.
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024 // clients never send anything but small control frames
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// client is one live-view WebSocket subscriber: a buffered send channel drained by a dedicated
// writer goroutine, adapted verbatim (ping/pong handling, non-blocking send, writer-owns-the-
// connection discipline) from raw_websocket.go's RawTerminalWebSocketHandler.
type client struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
}

func newClient(conn *websocket.Conn) *client {
	return &client{conn: conn, send: make(chan []byte, 8), done: make(chan struct{})}
}

// safeSend enqueues a frame for the writer goroutine, dropping it rather than blocking if the
// client is too slow to keep up or has already been told to close.
func (c *client) safeSend(frame []byte) bool {
	select {
	case c.send <- frame:
		return true
	case <-c.done:
		return false
	default:
		return false // slow reader: drop this frame, the next one will carry fresher state
	}
}

func (c *client) close() {
	select {
	case <-c.done:
	default:
		close(c.done)
	}
}

// writer owns conn for writing: it multiplexes queued frames with periodic pings, exactly the
// shape of raw_websocket.go's writer goroutine.
func (c *client) writer() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	defer c.conn.Close()

	for {
		select {
		case frame, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

// reader drains and discards incoming control frames (pong, close) until the connection breaks,
// keeping the read deadline alive via the pong handler exactly as raw_websocket.go does.
func (c *client) reader() {
	defer c.close()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
