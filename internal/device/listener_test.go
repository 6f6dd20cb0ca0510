package device

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"scangate/internal/queue"
	"scangate/internal/scan"
)

var upgrader = websocket.Upgrader{}

// scanServer serves a websocket that writes frames to every connection.
// With hold set the connection stays open afterwards; otherwise it
// closes, which drives the listener's reconnect path.
func scanServer(t *testing.T, frames []string, hold bool) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for _, f := range frames {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(f)); err != nil {
				return
			}
		}
		if hold {
			<-r.Context().Done()
		}
	}))
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestListenerPublishesRecognizedFrames(t *testing.T) {
	srv := scanServer(t, []string{
		`garbage`,
		`{"type":"heartbeat","payload":{"employeeNo":"X"}}`,
		`{"type":"client_message","payload":{"employeeNo":"T007","datetime":"2024-03-04T08:00:00Z"}}`,
	}, true)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	q := queue.NewInMemory(8)
	msgs, _ := q.Consume(ctx)

	l := NewListener(wsURL(srv), q, 10*time.Millisecond, 20*time.Millisecond)
	go l.Run(ctx)

	select {
	case msg := <-msgs:
		if msg.Type != queue.TypeScan {
			t.Fatalf("Type = %q, want %q", msg.Type, queue.TypeScan)
		}
		var evt scan.Event
		if err := json.Unmarshal(msg.Body, &evt); err != nil {
			t.Fatalf("decode event: %v", err)
		}
		if evt.EmployeeNo != "T007" {
			t.Errorf("EmployeeNo = %q, want T007", evt.EmployeeNo)
		}
	case <-ctx.Done():
		t.Fatal("no event published before timeout")
	}

	// The two junk frames must not have produced anything.
	select {
	case msg := <-msgs:
		t.Fatalf("unexpected extra message: %+v", msg)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestListenerReconnects(t *testing.T) {
	// Server closes the socket after one frame; a second frame arriving
	// on the queue proves a reconnect happened.
	srv := scanServer(t, []string{
		`{"type":"client_message","payload":{"employeeNo":"T007"}}`,
	}, false)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	q := queue.NewInMemory(8)
	msgs, _ := q.Consume(ctx)

	l := NewListener(wsURL(srv), q, 10*time.Millisecond, 20*time.Millisecond)
	go l.Run(ctx)

	for i := 0; i < 2; i++ {
		select {
		case <-msgs:
		case <-ctx.Done():
			t.Fatalf("only %d event(s) before timeout, want 2", i)
		}
	}
}

func TestListenerStopsOnCancel(t *testing.T) {
	srv := scanServer(t, nil, false)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	l := NewListener(wsURL(srv), queue.NewInMemory(1), 10*time.Millisecond, 20*time.Millisecond)

	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Run() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNextBackoffCaps(t *testing.T) {
	l := NewListener("ws://example", nil, 3*time.Second, 10*time.Second)
	steps := []time.Duration{6 * time.Second, 10 * time.Second, 10 * time.Second}
	current := 3 * time.Second
	for i, want := range steps {
		current = l.nextBackoff(current)
		if current != want {
			t.Errorf("step %d = %s, want %s", i, current, want)
		}
	}
}
