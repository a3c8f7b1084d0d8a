// Package realtime fans change notifications out to streaming clients.
package realtime

import (
	"sync"
)

// Event is one notification. Topic is a collection name or "upload".
type Event struct {
	Topic string      `json:"topic"`
	Data  interface{} `json:"data,omitempty"`
}

// Hub delivers published events to every matching subscription. A
// subscriber whose buffer is full misses the event rather than blocking
// the publisher.
type Hub struct {
	mu     sync.RWMutex
	subs   map[*Subscription]struct{}
	buffer int
}

func NewHub(buffer int) *Hub {
	if buffer < 1 {
		buffer = 1
	}
	return &Hub{subs: make(map[*Subscription]struct{}), buffer: buffer}
}

type Subscription struct {
	C <-chan Event

	ch     chan Event
	topics map[string]bool
	hub    *Hub
	once   sync.Once
}

// Subscribe registers interest in topics. No topics means every topic.
func (h *Hub) Subscribe(topics ...string) *Subscription {
	ch := make(chan Event, h.buffer)
	s := &Subscription{C: ch, ch: ch, hub: h}
	if len(topics) > 0 {
		s.topics = make(map[string]bool, len(topics))
		for _, t := range topics {
			s.topics[t] = true
		}
	}

	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()
	return s
}

// Close unregisters the subscription and closes its channel.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		delete(s.hub.subs, s)
		close(s.ch)
		s.hub.mu.Unlock()
	})
}

func (s *Subscription) wants(topic string) bool {
	return s.topics == nil || s.topics[topic]
}

// Publish sends an event and returns how many subscribers received it.
func (h *Hub) Publish(topic string, data interface{}) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	ev := Event{Topic: topic, Data: data}
	for s := range h.subs {
		if !s.wants(topic) {
			continue
		}
		select {
		case s.ch <- ev:
			delivered++
		default:
		}
	}
	return delivered
}

func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
