package events

import (
	"context"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/catalog-admin/internal/models"
	"github.com/javajoker/catalog-admin/internal/realtime"
	"github.com/javajoker/catalog-admin/internal/repository/repositorytest"
	"github.com/javajoker/catalog-admin/internal/services"
)

type MockChannel struct {
	mock.Mock
}

func (m *MockChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	argsCall := m.Called(name, durable, autoDelete, exclusive, noWait, args)
	return argsCall.Get(0).(amqp.Queue), argsCall.Error(1)
}

func (m *MockChannel) Qos(prefetchCount, prefetchSize int, global bool) error {
	return m.Called(prefetchCount, prefetchSize, global).Error(0)
}

func (m *MockChannel) Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error) {
	argsCall := m.Called(queue, consumer, autoAck, exclusive, noLocal, noWait, args)
	return argsCall.Get(0).(<-chan amqp.Delivery), argsCall.Error(1)
}

// acknowledger records how a delivery was settled.
type acknowledger struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (a *acknowledger) Ack(tag uint64, multiple bool) error {
	a.acked = true
	return nil
}

func (a *acknowledger) Nack(tag uint64, multiple, requeue bool) error {
	a.nacked = true
	a.requeue = requeue
	return nil
}

func (a *acknowledger) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

const validOrder = `{
	"customer_name": "Ada",
	"customer_email": "ada@shop.test",
	"products": [{"id": "p1", "name": "Tote", "quantity": 2}],
	"total_amount": 50,
	"shipping_address": {"description": "1 Main St", "region": "North", "county": "Kent"}
}`

func newListener(store *repositorytest.Store, ch Channel) *OrderListener {
	orders := services.NewOrderService(store.Repositories().Orders, realtime.NewHub(4))
	return NewOrderListener(ch, "orders.created", orders)
}

func delivery(body string) (amqp.Delivery, *acknowledger) {
	ack := &acknowledger{}
	return amqp.Delivery{Acknowledger: ack, Body: []byte(body)}, ack
}

func TestHandleDelivery_StoresOrder(t *testing.T) {
	store := repositorytest.NewStore()
	l := newListener(store, nil)

	d, ack := delivery(validOrder)
	l.HandleDelivery(context.Background(), d)
	assert.True(t, ack.acked)

	orders, err := store.Repositories().Orders.ListRecent(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, models.OrderStatusPending, orders[0].Status)
	assert.Equal(t, "Kent", orders[0].ShippingAddress.County)
}

func TestHandleDelivery_DropsMalformed(t *testing.T) {
	store := repositorytest.NewStore()
	l := newListener(store, nil)

	for _, body := range []string{`{not json`, `{"customer_name": "Ada"}`} {
		d, ack := delivery(body)
		l.HandleDelivery(context.Background(), d)
		assert.True(t, ack.nacked, body)
		assert.False(t, ack.requeue, body)
	}
	assert.Equal(t, 0, store.Writes)
}

func TestHandleDelivery_RequeuesStoreFailure(t *testing.T) {
	store := repositorytest.NewStore()
	store.Err = errors.New("connection reset")
	l := newListener(store, nil)

	d, ack := delivery(validOrder)
	l.HandleDelivery(context.Background(), d)
	assert.True(t, ack.nacked)
	assert.True(t, ack.requeue)
}

func TestRun_ConsumesUntilClosed(t *testing.T) {
	ch := &MockChannel{}
	ch.On("QueueDeclare", "orders.created", true, false, false, false, mock.Anything).
		Return(amqp.Queue{Name: "orders.created"}, nil)
	ch.On("Qos", 10, 0, false).Return(nil)

	deliveries := make(chan amqp.Delivery, 1)
	ch.On("Consume", "orders.created", "catalog-admin", false, false, false, false, mock.Anything).
		Return((<-chan amqp.Delivery)(deliveries), nil)

	store := repositorytest.NewStore()
	l := newListener(store, ch)

	d, ack := delivery(validOrder)
	deliveries <- d
	close(deliveries)

	done := make(chan error, 1)
	go func() { done <- l.Run(context.Background()) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not stop")
	}
	assert.True(t, ack.acked)
	ch.AssertExpectations(t)
}

func TestRun_DeclareFailure(t *testing.T) {
	ch := &MockChannel{}
	ch.On("QueueDeclare", "orders.created", true, false, false, false, mock.Anything).
		Return(amqp.Queue{}, errors.New("channel closed"))

	l := newListener(repositorytest.NewStore(), ch)
	assert.Error(t, l.Run(context.Background()))
}
