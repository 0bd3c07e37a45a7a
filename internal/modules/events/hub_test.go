package events

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Overlapping estimate creates broadcast from separate goroutines; every
// write to a shared connection must be serialized or gorilla panics.
func TestHub_ConcurrentBroadcasts(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.Register(conn)
	}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return hub.ConnectionCount() == 1
	}, time.Second, 10*time.Millisecond)

	const broadcasts = 20
	var wg sync.WaitGroup
	for i := 0; i < broadcasts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.Broadcast("estimate.created", map[string]any{"id": int64(1)})
		}()
	}

	for i := 0; i < broadcasts; i++ {
		var event Event
		require.NoError(t, conn.ReadJSON(&event))
		assert.Equal(t, "estimate.created", event.Type)
	}
	wg.Wait()

	assert.Equal(t, 1, hub.ConnectionCount())
}

func TestHub_CloseDropsClients(t *testing.T) {
	hub := NewHub()

	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.Register(conn)
	}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return hub.ConnectionCount() == 1
	}, time.Second, 10*time.Millisecond)

	hub.Close()
	assert.Zero(t, hub.ConnectionCount())
}
