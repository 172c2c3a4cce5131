package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/mountaintravels/admin-dashboard/internal/logger"
)

// NotificationConsumer drains the events queue and appends one line per
// event to <LogDir>/notifications.log, standing in for the email and chat
// notifications a customer-facing deployment would send.
type NotificationConsumer struct {
	URL    string
	Queue  string
	LogDir string
	Log    *logger.Logger
}

// Run consumes until ctx is cancelled, reconnecting with exponential backoff.
func (c *NotificationConsumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.URL)
		if err != nil {
			c.Log.Warn("EVENTS", fmt.Sprintf("consumer dial failed: %v; retrying in %s", err, backoff))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consume(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.Log.Warn("EVENTS", fmt.Sprintf("consume loop ended: %v; reconnecting", err))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
}

func (c *NotificationConsumer) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.Log.Warn("EVENTS", fmt.Sprintf("set QoS failed: %v", err))
	}
	if _, err := ch.QueueDeclare(c.Queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.ConsumeWithContext(ctx, c.Queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := c.handle(d.Body); err != nil {
			c.Log.Error("EVENTS", fmt.Sprintf("handle message failed: %v", err))
			_ = d.Nack(false, false) // drop rather than redeliver forever
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func (c *NotificationConsumer) handle(body []byte) error {
	var ev Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.Type == "" {
		return errors.New("event without type")
	}
	if err := os.MkdirAll(c.LogDir, 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(c.LogDir, "notifications.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open notification log: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(formatNotification(ev)); err != nil {
		return fmt.Errorf("write notification: %w", err)
	}
	c.Log.LogEvent("CONSUME", ev.Type, ev.Subject)
	return nil
}

func formatNotification(ev Event) string {
	keys := make([]string, 0, len(ev.Data))
	for k := range ev.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s | subject=%s", ev.OccurredAt.UTC().Format(time.RFC3339), ev.Type, ev.Subject)
	for _, k := range keys {
		fmt.Fprintf(&b, " | %s=%q", k, ev.Data[k])
	}
	b.WriteByte('\n')
	return b.String()
}
