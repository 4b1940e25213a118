package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Temutjin2k/batoda/pkg/logger"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// serveHub upgrades every request and registers it under id.
func serveHub(t *testing.T, hub *ConnectionHub, id uuid.UUID) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conn := NewConn(context.Background(), id, raw)
		if err := hub.Add(conn); err != nil {
			t.Errorf("add: %v", err)
			return
		}
		go func() {
			defer hub.Remove(conn)
			_ = conn.Listen(func(map[string]any) error { return nil })
		}()
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHub_SendTo(t *testing.T) {
	hub := NewConnHub(logger.Discard())
	id := uuid.New()
	client := dial(t, serveHub(t, hub, id))

	waitFor(t, func() bool { return len(hub.Clients()) == 1 })

	if err := hub.SendTo(id, map[string]any{"event_type": "TRIP_BOOKED"}); err != nil {
		t.Fatalf("send: %v", err)
	}

	var got map[string]any
	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := client.ReadJSON(&got); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got["event_type"] != "TRIP_BOOKED" {
		t.Fatalf("unexpected message %v", got)
	}

	if err := hub.SendTo(uuid.New(), "x"); err != ErrConnIsNotFound {
		t.Fatalf("expected ErrConnIsNotFound, got %v", err)
	}
}

func TestHub_ReplaceAndClose(t *testing.T) {
	hub := NewConnHub(logger.Discard())
	id := uuid.New()
	srv := serveHub(t, hub, id)

	counts := make(chan int, 16)
	hub.OnCountChange(func(n int) { counts <- n })

	dial(t, srv)
	waitFor(t, func() bool { return len(hub.Clients()) == 1 })
	first, _ := hub.GetConn(id)

	dial(t, srv)
	waitFor(t, func() bool {
		c, err := hub.GetConn(id)
		return err == nil && c != first
	})

	if len(hub.Clients()) != 1 {
		t.Fatalf("replacement must keep a single connection")
	}

	done := make(chan struct{})
	go func() {
		hub.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("hub.Close did not return")
	}

	if len(hub.Clients()) != 0 {
		t.Fatalf("expected no connections after close")
	}
}
