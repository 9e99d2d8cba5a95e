package ws

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub() (*Hub, chan *Connection, chan *Connection) {
	connected := make(chan *Connection, 1)
	disconnected := make(chan *Connection, 1)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	hub := NewHub(&HubOptions{
		Logger:      logger,
		CheckOrigin: func(r *http.Request) bool { return true },
		OnConnect: func(r *http.Request, h *Hub, c *Connection) error {
			h.JoinChannel("request", c)
			connected <- c
			return nil
		},
		OnDisconnect: func(c *Connection) { disconnected <- c },
	})
	return hub, connected, disconnected
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil {
		defer resp.Body.Close()
	}
	return client
}

func waitFor(t *testing.T, ch chan *Connection, what string) *Connection {
	t.Helper()
	select {
	case c := <-ch:
		return c
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
		return nil
	}
}

func TestHub_BroadcastReachesChannelMembers(t *testing.T) {
	hub, connected, _ := newTestHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	client := dial(t, srv)
	defer client.Close()
	waitFor(t, connected, "connect hook")

	hub.BroadcastToChannel("request", []byte(`{"event":"request_update"}`))

	require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, frame, err := client.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"request_update"}`, string(frame))
}

func TestHub_SendAfterDisconnectIsDropped(t *testing.T) {
	hub, connected, disconnected := newTestHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	client := dial(t, srv)
	conn := waitFor(t, connected, "connect hook")

	require.NoError(t, client.Close())
	waitFor(t, disconnected, "disconnect cleanup")

	require.NotPanics(t, func() {
		conn.SendMessage([]byte(`{"event":"request_update"}`))
	})
	assert.Empty(t, hub.ConnectionsInChannel("request"))
}

func TestHub_BroadcastDuringDisconnect(t *testing.T) {
	hub, connected, disconnected := newTestHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	client := dial(t, srv)
	waitFor(t, connected, "connect hook")

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			hub.BroadcastToChannel("request", []byte(`{"event":"request_update"}`))
		}
	}()

	require.NoError(t, client.Close())
	waitFor(t, disconnected, "disconnect cleanup")

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("broadcasts did not finish")
	}
}
