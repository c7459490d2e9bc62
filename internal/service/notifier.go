package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/tingitingi/rental-booking/internal/queue"
)

// AMQPNotifier publishes notification events to RabbitMQ.  It is constructed
// once at process start and passed to whoever dispatches notifications; there
// is no package-level transport handle.  Publishing is best effort: every
// error is logged and returned so callers can ignore it without interrupting
// the request flow.
type AMQPNotifier struct {
	url string
	log *zap.Logger
}

// NewAMQPNotifier builds a notifier for the given broker URL.
func NewAMQPNotifier(url string, log *zap.Logger) *AMQPNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &AMQPNotifier{url: url, log: log}
}

// Publish sends one notification to the durable notifications queue.  A
// fresh connection per publish keeps the notifier free of shared mutable
// state; the volume here is a booking desk, not a firehose.
func (n *AMQPNotifier) Publish(ctx context.Context, ev queue.Notification) error {
	conn, err := amqp.Dial(n.url)
	if err != nil {
		n.log.Warn("rabbitmq dial failed", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		n.log.Warn("rabbitmq channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so events survive broker restarts.
	if _, err := ch.QueueDeclare(queue.NotificationQueue, true, false, false, false, nil); err != nil {
		n.log.Warn("rabbitmq queue declare failed", zap.Error(err))
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		n.log.Warn("marshal notification failed", zap.Error(err))
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queue.NotificationQueue, false, false, pub); err != nil {
		n.log.Warn("rabbitmq publish failed", zap.Error(err))
		return err
	}
	return nil
}
