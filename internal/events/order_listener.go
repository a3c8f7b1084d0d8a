// Package events consumes orders placed by the checkout flow.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/catalog-admin/internal/models"
	"github.com/javajoker/catalog-admin/internal/services"
	"github.com/javajoker/catalog-admin/internal/utils"
)

// Channel is the part of *amqp.Channel the listener uses.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	Qos(prefetchCount, prefetchSize int, global bool) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

type OrderCreator interface {
	CreateOrder(ctx context.Context, req *services.NewOrderRequest) (*models.Order, error)
}

type OrderListener struct {
	ch     Channel
	queue  string
	orders OrderCreator
	log    *logrus.Entry
}

func NewOrderListener(ch Channel, queue string, orders OrderCreator) *OrderListener {
	return &OrderListener{
		ch:     ch,
		queue:  queue,
		orders: orders,
		log:    logrus.WithField("queue", queue),
	}
}

// Dial opens a connection and channel to the broker at url.
func Dial(url string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("failed to open a channel: %w", err)
	}
	return conn, ch, nil
}

// Run consumes until ctx is done or the broker closes the delivery channel.
func (l *OrderListener) Run(ctx context.Context) error {
	q, err := l.ch.QueueDeclare(
		l.queue, // name
		true,    // durable
		false,   // delete when unused
		false,   // exclusive
		false,   // no-wait
		nil,     // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := l.ch.Qos(10, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	msgs, err := l.ch.Consume(
		q.Name,          // queue
		"catalog-admin", // consumer
		false,           // auto-ack
		false,           // exclusive
		false,           // no-local
		false,           // no-wait
		nil,             // args
	)
	if err != nil {
		return fmt.Errorf("failed to register a consumer: %w", err)
	}

	l.log.Info("Order listener started")
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				l.log.Warn("Delivery channel closed")
				return nil
			}
			l.HandleDelivery(ctx, d)
		}
	}
}

// HandleDelivery stores one order message. Malformed messages are dropped;
// store failures are requeued.
func (l *OrderListener) HandleDelivery(ctx context.Context, d amqp.Delivery) {
	var req services.NewOrderRequest
	if err := json.Unmarshal(d.Body, &req); err != nil {
		l.log.WithError(err).Warn("Dropping undecodable order message")
		d.Nack(false, false)
		return
	}

	order, err := l.orders.CreateOrder(ctx, &req)
	if err != nil {
		if len(utils.GetValidationErrors(err)) > 0 {
			l.log.WithError(err).Warn("Dropping invalid order message")
			d.Nack(false, false)
			return
		}
		l.log.WithError(err).Error("Failed to store order, requeueing")
		d.Nack(false, true)
		return
	}

	l.log.WithFields(logrus.Fields{
		"order_id": order.ID,
		"customer": order.CustomerEmail,
	}).Info("Order received")
	d.Ack(false)
}
