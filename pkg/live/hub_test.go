package live

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/rstore/pkg/store"
)

type message struct {
	Items  []string `json:"items"`
	Count  int      `json:"count"`
	Status string   `json:"status"`
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestHubSendsSnapshotOnConnect(t *testing.T) {
	bugs := store.New("bugs", "Centipede")
	hub := NewHub(bugs, nil)
	defer hub.Close()

	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv)
	msg := read(t, conn)

	assert.Equal(t, []string{"Centipede"}, msg.Items)
	assert.Equal(t, 1, msg.Count)
	assert.Equal(t, "initial", msg.Status)
	assert.Equal(t, 1, hub.ClientCount())
}

func TestHubBroadcastsEachNotification(t *testing.T) {
	bugs := store.New("bugs", "Centipede")
	hub := NewHub(bugs, nil)
	defer hub.Close()

	srv := httptest.NewServer(hub)
	defer srv.Close()

	a := dial(t, srv)
	b := dial(t, srv)
	read(t, a)
	read(t, b)

	bugs.AddItem("Locust")

	for _, conn := range []*websocket.Conn{a, b} {
		msg := read(t, conn)
		assert.Equal(t, []string{"Centipede", "Locust"}, msg.Items)
		assert.Equal(t, 2, msg.Count)
	}
}

func TestHubDropsClosedClients(t *testing.T) {
	bugs := store.New("bugs", "Centipede")
	hub := NewHub(bugs, nil)
	defer hub.Close()

	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv)
	read(t, conn)
	require.Equal(t, 1, hub.ClientCount())

	conn.Close()

	assert.Eventually(t, func() bool {
		return hub.ClientCount() == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestHubCloseUnsubscribes(t *testing.T) {
	bugs := store.New("bugs", "Centipede")
	hub := NewHub(bugs, nil)
	hub.Close()

	bugs.AddItem("Locust")
	assert.Equal(t, 0, hub.ClientCount())
}
