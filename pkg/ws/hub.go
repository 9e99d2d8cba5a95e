package ws

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Connection wraps one websocket client. Writes are serialized through a
// buffered send channel; slow clients are disconnected rather than blocking
// the hub. The mutex covers the send channel's lifetime: a broadcast may
// race the read loop's teardown, and a send on a closed channel panics.
type Connection struct {
	conn *websocket.Conn
	send chan []byte
	hub  *Hub

	mu     sync.Mutex
	closed bool
}

func (c *Connection) SendMessage(message []byte) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	select {
	case c.send <- message:
		c.mu.Unlock()
	default:
		c.mu.Unlock()
		c.hub.logger.Warn("ws: send buffer full, dropping connection")
		c.close()
	}
}

func (c *Connection) close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	c.mu.Unlock()
	c.hub.remove(c)
}

type HubOptions struct {
	Logger       *logrus.Logger
	CheckOrigin  func(r *http.Request) bool
	OnConnect    func(r *http.Request, hub *Hub, conn *Connection) error
	OnDisconnect func(conn *Connection)
}

type Hub struct {
	upgrader     websocket.Upgrader
	logger       *logrus.Logger
	onConnect    func(r *http.Request, hub *Hub, conn *Connection) error
	onDisconnect func(conn *Connection)

	mu          sync.RWMutex
	connections map[*Connection]struct{}
	channels    map[string]map[*Connection]struct{}
}

func NewHub(opts *HubOptions) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     opts.CheckOrigin,
		},
		logger:       opts.Logger,
		onConnect:    opts.OnConnect,
		onDisconnect: opts.OnDisconnect,
		connections:  make(map[*Connection]struct{}),
		channels:     make(map[string]map[*Connection]struct{}),
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Error("ws: failed to upgrade connection")
		return
	}

	c := &Connection{
		conn: conn,
		send: make(chan []byte, 64),
		hub:  h,
	}

	h.mu.Lock()
	h.connections[c] = struct{}{}
	h.mu.Unlock()

	if h.onConnect != nil {
		if err := h.onConnect(r, h, c); err != nil {
			h.logger.WithError(err).Error("ws: connect hook failed")
			c.close()
			return
		}
	}

	go c.writeLoop()
	go c.readLoop()
}

func (h *Hub) JoinChannel(channel string, conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.channels[channel] == nil {
		h.channels[channel] = make(map[*Connection]struct{})
	}
	h.channels[channel][conn] = struct{}{}
}

func (h *Hub) ConnectionsInChannel(channel string) []*Connection {
	h.mu.RLock()
	defer h.mu.RUnlock()
	conns := make([]*Connection, 0, len(h.channels[channel]))
	for c := range h.channels[channel] {
		conns = append(conns, c)
	}
	return conns
}

// BroadcastToChannel fans a message out to every connection in the channel.
// Best-effort: delivery to individual clients may fail silently.
func (h *Hub) BroadcastToChannel(channel string, message []byte) {
	for _, c := range h.ConnectionsInChannel(channel) {
		c.SendMessage(message)
	}
}

func (h *Hub) remove(conn *Connection) {
	h.mu.Lock()
	delete(h.connections, conn)
	for _, members := range h.channels {
		delete(members, conn)
	}
	h.mu.Unlock()

	if h.onDisconnect != nil {
		h.onDisconnect(conn)
	}
	_ = conn.conn.Close()
}

func (c *Connection) readLoop() {
	defer c.close()
	for {
		// Inbound frames are drained for close/ping handling only; the
		// protocol is server-push.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Connection) writeLoop() {
	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			c.close()
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
