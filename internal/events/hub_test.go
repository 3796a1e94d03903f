package events

import (
	"encoding/json"
	"testing"
)

func TestHubPublishAndUnsubscribe(t *testing.T) {
	h := NewHub()
	a := h.Subscribe()
	b := h.Subscribe()
	if h.Subscribers() != 2 {
		t.Fatalf("subscribers = %d", h.Subscribers())
	}

	h.Emit("req-1", TypeSearchCompleted, map[string]int{"count": 3})

	for _, ch := range []chan string{a, b} {
		msg := <-ch
		var e Event
		if err := json.Unmarshal([]byte(msg), &e); err != nil {
			t.Fatal(err)
		}
		if e.Type != TypeSearchCompleted || e.RequestID != "req-1" || e.Version != Version || string(e.Data) != `{"count":3}` {
			t.Fatalf("unexpected event %+v", e)
		}
	}

	h.Unsubscribe(a)
	h.Unsubscribe(a) // second call is a no-op
	if _, ok := <-a; ok {
		t.Fatal("channel not closed")
	}
	if h.Subscribers() != 1 {
		t.Fatalf("subscribers = %d", h.Subscribers())
	}
}

func TestHubDropsForSlowSubscriber(t *testing.T) {
	h := NewHub()
	ch := h.Subscribe()
	for i := 0; i < 100; i++ {
		h.Publish("x")
	}
	if len(ch) != cap(ch) {
		t.Fatalf("buffer holds %d of %d", len(ch), cap(ch))
	}
}

func TestNilHubEmit(t *testing.T) {
	var h *Hub
	h.Emit("", TypeDispatchStarted, nil)
}
