// Package device maintains the websocket connection to the scan device
// feed and turns recognized frames into queued scan events.
package device

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"scangate/internal/metrics"
	"scangate/internal/queue"
	"scangate/internal/scan"
)

// Listener owns one connection to the device feed. Unrecognized and
// undecodable frames are dropped with a log line only; they never stop
// the read loop. On close it reconnects with capped exponential backoff
// until its context is cancelled, so teardown never leaves a pending
// reconnect behind.
type Listener struct {
	url      string
	queue    queue.Queue
	min, max time.Duration
	dialer   *websocket.Dialer
	now      func() time.Time
}

// NewListener creates a listener publishing to q. min and max bound the
// reconnect backoff; zero values fall back to 3s and 1m.
func NewListener(url string, q queue.Queue, min, max time.Duration) *Listener {
	if min <= 0 {
		min = 3 * time.Second
	}
	if max < min {
		max = time.Minute
	}
	return &Listener{
		url:    url,
		queue:  q,
		min:    min,
		max:    max,
		dialer: websocket.DefaultDialer,
		now:    time.Now,
	}
}

// Run connects and reads until ctx is cancelled. It only ever returns
// ctx.Err(): every connection failure is retried after a backoff wait.
func (l *Listener) Run(ctx context.Context) error {
	backoff := l.min
	for {
		conn, resp, err := l.dialer.DialContext(ctx, l.url, nil)
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			metrics.Reconnects.Inc()
			log.Printf("scan feed dial failed (retry in %s): %v", backoff, err)
			if !l.wait(ctx, backoff) {
				return ctx.Err()
			}
			backoff = l.nextBackoff(backoff)
			continue
		}

		log.Printf("scan feed connected: %s", l.url)
		backoff = l.min
		l.read(ctx, conn)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		metrics.Reconnects.Inc()
		log.Printf("scan feed closed, reconnecting in %s", backoff)
		if !l.wait(ctx, backoff) {
			return ctx.Err()
		}
		backoff = l.nextBackoff(backoff)
	}
}

// read drains frames from conn until it closes or ctx is cancelled.
func (l *Listener) read(ctx context.Context, conn *websocket.Conn) {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()
	defer conn.Close()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		metrics.ScansReceived.Inc()

		evt, err := scan.Parse(data, l.now)
		if err != nil {
			metrics.ScansDropped.Inc()
			log.Printf("scan frame dropped: %v", err)
			continue
		}

		body, err := json.Marshal(evt)
		if err != nil {
			metrics.ScansDropped.Inc()
			log.Printf("scan event encode failed: %v", err)
			continue
		}
		if err := l.queue.Publish(ctx, queue.Message{Type: queue.TypeScan, Body: body}); err != nil {
			log.Printf("scan event publish failed: %v", err)
		}
	}
}

func (l *Listener) wait(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

func (l *Listener) nextBackoff(current time.Duration) time.Duration {
	next := current * 2
	if next > l.max {
		next = l.max
	}
	return next
}
