package events

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// dialPair spins up a server that hands its side of the socket to the hub
// and returns the client side for assertions.
func dialPair(t *testing.T, hub *Hub, clientID string) *websocket.Conn {
	t.Helper()

	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		hub.Register(clientID, conn)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	// The server handler runs concurrently with the dial returning.
	deadline := time.Now().Add(time.Second)
	for hub.ConnectedCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	return client
}

func TestHub_PublishReachesConnectedMonitor(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	client := dialPair(t, hub, "monitor-1")

	hub.Publish("payment_completed", map[string]interface{}{"registration_id": float64(7)})

	_ = client.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got Event
	if err := client.ReadJSON(&got); err != nil {
		t.Fatalf("read event: %v", err)
	}
	if got.Type != "payment_completed" {
		t.Fatalf("expected payment_completed, got %q", got.Type)
	}
	if got.Data["registration_id"] != float64(7) {
		t.Fatalf("unexpected payload: %+v", got.Data)
	}
	if got.At.IsZero() {
		t.Fatal("expected a timestamp on the event")
	}
}

func TestHub_DeadConnectionDropped(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	client := dialPair(t, hub, "monitor-1")
	if hub.ConnectedCount() != 1 {
		t.Fatalf("expected 1 connection, got %d", hub.ConnectedCount())
	}

	_ = client.Close()
	// First publish after the close may or may not fail depending on
	// buffering; publish until the hub notices.
	deadline := time.Now().Add(2 * time.Second)
	for hub.ConnectedCount() > 0 && time.Now().Before(deadline) {
		hub.Publish("registration_created", nil)
		time.Sleep(10 * time.Millisecond)
	}
	if hub.ConnectedCount() != 0 {
		t.Fatal("expected dead connection to be dropped")
	}
}

func TestHub_RegisterReplacesExistingClient(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	dialPair(t, hub, "monitor-1")
	dialPair(t, hub, "monitor-1")

	if hub.ConnectedCount() != 1 {
		t.Fatalf("expected re-registration to replace, got %d connections", hub.ConnectedCount())
	}
}

func TestHub_PublishWithNoConnectionsIsSafe(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	hub.Publish("registration_created", map[string]interface{}{"registration_id": 1})
	if hub.ConnectedCount() != 0 {
		t.Fatalf("expected no connections, got %d", hub.ConnectedCount())
	}
}
