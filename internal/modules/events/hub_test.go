package events

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dial connects a client to a fresh test server that registers the upgraded
// connection on the hub. The server-side conn is returned alongside the
// client so tests can exercise identity-sensitive hub calls.
func dial(t *testing.T, hub *Hub, userID int64) (*websocket.Conn, *websocket.Conn) {
	upgraded := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.Register(userID, conn)
		upgraded <- conn
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client, <-upgraded
}

func TestHub_PublishReachesEveryConnection(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	first, _ := dial(t, hub, 1)
	second, _ := dial(t, hub, 2)
	assert.Equal(t, 2, hub.ConnectedCount())

	hub.Publish("orders", ActionCreated, 42)

	var wg sync.WaitGroup
	for _, client := range []*websocket.Conn{first, second} {
		wg.Add(1)
		go func(c *websocket.Conn) {
			defer wg.Done()
			var event Event
			assert.NoError(t, c.ReadJSON(&event))
			assert.Equal(t, "orders", event.Resource)
			assert.Equal(t, ActionCreated, event.Action)
			assert.Equal(t, int64(42), event.ID)
		}(client)
	}
	wg.Wait()
}

// Every mutation publishes from its own request goroutine, so writes to one
// connection must serialize instead of tripping the single-writer rule.
func TestHub_ConcurrentPublish(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	client, _ := dial(t, hub, 1)

	const broadcasts = 25

	var wg sync.WaitGroup
	for i := 0; i < broadcasts; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			hub.Publish("orders", ActionUpdated, id)
		}(int64(i))
	}
	wg.Wait()

	for i := 0; i < broadcasts; i++ {
		var event Event
		require.NoError(t, client.ReadJSON(&event))
		assert.Equal(t, "orders", event.Resource)
	}
	assert.Equal(t, 1, hub.ConnectedCount())
}

func TestHub_RegisterReplacesExistingConnection(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	dial(t, hub, 7)
	dial(t, hub, 7)

	assert.Equal(t, 1, hub.ConnectedCount())
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	_, server := dial(t, hub, 3)
	hub.Unregister(3, server)

	assert.Equal(t, 0, hub.ConnectedCount())
}

// A handler winding down after its connection was replaced unregisters with
// the conn it owned; the replacement must survive and keep receiving.
func TestHub_UnregisterIgnoresSupersededConnection(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	_, stale := dial(t, hub, 7)
	replacement, current := dial(t, hub, 7)

	hub.Unregister(7, stale)
	assert.Equal(t, 1, hub.ConnectedCount())

	hub.Publish("damages", ActionCreated, 9)

	var event Event
	require.NoError(t, replacement.ReadJSON(&event))
	assert.Equal(t, "damages", event.Resource)
	assert.Equal(t, int64(9), event.ID)

	hub.Unregister(7, current)
	assert.Equal(t, 0, hub.ConnectedCount())
}
