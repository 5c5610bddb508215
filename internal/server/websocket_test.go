package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/witherkv/wither/internal/journal"
)

func dialTestHub(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWebSocket))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dialing hub: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	// Registration happens in the handler after the handshake completes.
	for i := 0; i < 100 && hub.ClientCount() == 0; i++ {
		time.Sleep(10 * time.Millisecond)
	}
	if hub.ClientCount() != 1 {
		t.Fatal("client never registered with hub")
	}
	return conn
}

func TestHub_BroadcastReachesClient(t *testing.T) {
	hub := NewHub()
	conn := dialTestHub(t, hub)

	hub.Broadcast(journal.Entry{Op: journal.OpSet, Key: "k"})

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	var e journal.Entry
	if err := conn.ReadJSON(&e); err != nil {
		t.Fatalf("reading broadcast: %v", err)
	}
	if e.Op != journal.OpSet || e.Key != "k" {
		t.Errorf("broadcast = %+v, want set/k", e)
	}
}

func TestHub_ConcurrentBroadcasts(t *testing.T) {
	hub := NewHub()
	conn := dialTestHub(t, hub)

	// Every HTTP handler broadcasts; overlapping requests mean
	// overlapping Broadcast calls against the same connection. Writes
	// must come out serialized and intact.
	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			hub.Broadcast(journal.Entry{Op: journal.OpSet, Key: fmt.Sprintf("key-%d", i)})
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		_ = conn.SetReadDeadline(time.Now().Add(time.Second))
		var e journal.Entry
		if err := conn.ReadJSON(&e); err != nil {
			t.Fatalf("reading broadcast %d: %v", i, err)
		}
		if e.Op != journal.OpSet {
			t.Errorf("broadcast %d op = %q, want set", i, e.Op)
		}
	}
}
