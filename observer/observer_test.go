package observer

import (
	"testing"

	"navmesh2d/logging"
)

func TestNewBroadcasterStartsEmpty(t *testing.T) {
	b := NewBroadcaster()
	if len(b.subscribers) != 0 {
		t.Fatalf("expected a fresh broadcaster to have no subscribers")
	}
}

func TestWriteWithNoSubscribersIsANoOp(t *testing.T) {
	b := NewBroadcaster()
	event := logging.Event{Type: logging.GraphRebuilt, Actor: logging.EntityRef{Kind: logging.EntityKindMesh}}
	if err := b.Write(event); err != nil {
		t.Fatalf("unexpected error writing with no subscribers: %v", err)
	}
}
