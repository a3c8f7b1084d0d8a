package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishFiltersByTopic(t *testing.T) {
	h := NewHub(4)
	orders := h.Subscribe("orders")
	all := h.Subscribe()
	defer orders.Close()
	defer all.Close()

	assert.Equal(t, 2, h.Publish("orders", "o1"))
	assert.Equal(t, 1, h.Publish("products", nil))

	ev := <-orders.C
	assert.Equal(t, Event{Topic: "orders", Data: "o1"}, ev)
	assert.Len(t, orders.C, 0)

	assert.Equal(t, "orders", (<-all.C).Topic)
	assert.Equal(t, "products", (<-all.C).Topic)
}

func TestHub_FullSubscriberDoesNotBlock(t *testing.T) {
	h := NewHub(1)
	s := h.Subscribe()
	defer s.Close()

	assert.Equal(t, 1, h.Publish("styles", nil))
	assert.Equal(t, 0, h.Publish("styles", nil))
	assert.Len(t, s.C, 1)
}

func TestSubscription_Close(t *testing.T) {
	h := NewHub(1)
	s := h.Subscribe("categories")
	require.Equal(t, 1, h.Subscribers())

	s.Close()
	s.Close()
	assert.Equal(t, 0, h.Subscribers())

	_, ok := <-s.C
	assert.False(t, ok)
	assert.Equal(t, 0, h.Publish("categories", nil))
}
