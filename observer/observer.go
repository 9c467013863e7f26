// Package observer streams the mesh lifecycle event feed (package
// logging) to WebSocket subscribers: the subscriber set is snapshotted
// under the broadcaster's lock and each connection is then written to
// under its own mutex, with a failing write dropping that subscriber
// rather than the whole broadcast. Telemetry
// is observational, so a slow or dead client must never affect
// settlement.
package observer

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"navmesh2d/logging"
)

const writeWait = 5 * time.Second

// Broadcaster is a logging.Sink that fans mesh events out to every
// currently-subscribed WebSocket connection.
type Broadcaster struct {
	mu          sync.Mutex
	subscribers map[uint64]*subscriber
	nextID      uint64
}

type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// NewBroadcaster returns an empty Broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subscribers: make(map[uint64]*subscriber)}
}

// Subscribe registers conn to receive every future mesh event. The
// returned unsubscribe func must be called when the connection closes.
func (b *Broadcaster) Subscribe(conn *websocket.Conn) (unsubscribe func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subscribers[id] = &subscriber{conn: conn}
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subscribers, id)
		b.mu.Unlock()
	}
}

// Write satisfies logging.Sink: it encodes event as JSON and fans it
// out to every live subscriber, dropping any that fail to write.
func (b *Broadcaster) Write(event logging.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	b.mu.Lock()
	subs := make(map[uint64]*subscriber, len(b.subscribers))
	for id, sub := range b.subscribers {
		subs[id] = sub
	}
	b.mu.Unlock()

	for id, sub := range subs {
		sub.mu.Lock()
		sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
		writeErr := sub.conn.WriteMessage(websocket.TextMessage, data)
		sub.mu.Unlock()
		if writeErr != nil {
			log.Printf("observer: dropping subscriber %d: %v", id, writeErr)
			b.mu.Lock()
			delete(b.subscribers, id)
			b.mu.Unlock()
		}
	}
	return nil
}

// Close satisfies logging.Sink. Subscribers are expected to be closed
// by their own connection lifecycle, not by the broadcaster.
func (b *Broadcaster) Close(context.Context) error {
	return nil
}
