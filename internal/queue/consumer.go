package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// StartNotificationConsumer connects to RabbitMQ, declares the durable
// notifications queue and consumes it forever.  Each event is rendered as a
// single mail-dispatch line appended to logs/notifications.log; hooking a
// real SMTP gateway in means replacing handleNotification only.  The
// function runs a reconnect loop with exponential backoff and never returns
// under normal operation; malformed messages are rejected without requeue so
// the loop cannot spin on a poison message.
func StartNotificationConsumer(url string, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Warn("notification consumer dial failed", zap.Error(err), zap.Duration("retry_in", backoff))
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := consumeLoop(conn, log); err != nil {
			log.Warn("notification consume loop ended", zap.Error(err))
			_ = conn.Close()
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection, log *zap.Logger) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(NotificationQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(NotificationQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := handleNotification(d.Body); err != nil {
			log.Warn("notification handling failed", zap.Error(err))
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func handleNotification(body []byte) error {
	var n Notification
	if err := json.Unmarshal(body, &n); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}

	var line string
	switch n.Kind {
	case KindBookingCreated, KindBookingConfirmed, KindBookingCancelled:
		b := n.Booking
		if b == nil {
			return fmt.Errorf("%s event without booking payload", n.Kind)
		}
		line = fmt.Sprintf("[%s] %s | to=%s | booking=%s | unit=%s | guest=%q | stay=%s -> %s | guests=%d+%d\n",
			n.OccurredAt, n.Kind, b.GuestEmail, b.BookingID, b.UnitID, b.GuestName, b.CheckIn, b.CheckOut, b.Adults, b.Children)
	case KindContactMessage:
		c := n.Contact
		if c == nil {
			return fmt.Errorf("%s event without contact payload", n.Kind)
		}
		line = fmt.Sprintf("[%s] %s | from=%q <%s> | message=%q\n",
			n.OccurredAt, n.Kind, c.Name, c.Email, c.Message)
	default:
		return fmt.Errorf("unknown notification kind %q", n.Kind)
	}

	if err := os.MkdirAll("logs", 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(filepath.Join("logs", "notifications.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}
