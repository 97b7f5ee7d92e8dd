package notifier

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/MrSnakeDoc/navsync/internal/logger"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendQueueSize  = 16
)

var (
	errClientGone = errors.New("client disconnected")
	errQueueFull  = errors.New("client send queue full")
)

// Hub upgrades HTTP requests to WebSocket connections and subscribes each
// connection to the bus for as long as it stays open.
type Hub struct {
	bus      *Bus
	upgrader websocket.Upgrader
}

func NewHub(bus *Bus) *Hub {
	return &Hub{
		bus: bus,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser extensions and file:// pages send opaque origins; the
			// listener is bound to loopback by default.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Debug("ws: upgrade failed: %v", err)
		return
	}

	c := &wsClient{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan Event, sendQueueSize),
		done: make(chan struct{}),
	}
	unsubscribe := h.bus.Subscribe(c)
	logger.Debug("ws: client %s connected from %s", c.id, r.RemoteAddr)

	go c.writePump()
	c.readPump()

	unsubscribe()
	logger.Debug("ws: client %s disconnected", c.id)
}

type wsClient struct {
	id        string
	conn      *websocket.Conn
	send      chan Event
	done      chan struct{}
	closeOnce sync.Once
}

func (c *wsClient) Name() string { return "ws-" + c.id }

func (c *wsClient) Deliver(_ context.Context, ev Event) error {
	select {
	case <-c.done:
		return errClientGone
	default:
	}
	select {
	case c.send <- ev:
		return nil
	default:
		return errQueueFull
	}
}

func (c *wsClient) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

// readPump drains control frames so pongs and close frames are processed.
func (c *wsClient) readPump() {
	defer c.close()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case <-c.done:
			return
		case ev := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(ev); err != nil {
				logger.Debug("ws: write to %s failed: %v", c.id, err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
