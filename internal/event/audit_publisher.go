package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"nsap-service/internal/models"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AuditQueue is the durable queue consumed by the audit trail service.
const AuditQueue = "nsap_audit_events"

type AuditPublisher struct {
	conn *RabbitMQConnection
	// Counters are read by health diagnostics while requests publish
	// concurrently.
	messagesPublished atomic.Int64
	messagesFailed    atomic.Int64
	lastPublishNanos  atomic.Int64
}

// NewAuditPublisher creates a new audit event publisher
func NewAuditPublisher(conn *RabbitMQConnection) *AuditPublisher {
	p := &AuditPublisher{conn: conn}
	p.lastPublishNanos.Store(time.Now().UnixNano())
	return p
}

// Stats reports lifetime publish counts and the last publish time.
func (p *AuditPublisher) Stats() (published, failed int64, last time.Time) {
	return p.messagesPublished.Load(), p.messagesFailed.Load(), time.Unix(0, p.lastPublishNanos.Load())
}

// Publish sends one audit event to the nsap_audit_events queue.
func (p *AuditPublisher) Publish(ctx context.Context, event models.AuditEvent) error {
	// Ensure the queue exists
	_, err := p.conn.Channel.QueueDeclare(
		AuditQueue, // queue name
		true,       // durable
		false,      // delete when unused
		false,      // exclusive
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		p.messagesFailed.Add(1)
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.messagesFailed.Add(1)
		return fmt.Errorf("failed to marshal audit event: %w", err)
	}

	err = p.conn.Channel.PublishWithContext(
		ctx,
		"",         // exchange
		AuditQueue, // routing key (queue name)
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		p.messagesFailed.Add(1)
		return fmt.Errorf("failed to publish audit event: %w", err)
	}

	p.messagesPublished.Add(1)
	p.lastPublishNanos.Store(time.Now().UnixNano())

	slog.Info("Audit event published",
		"queue", AuditQueue,
		"entity", event.Entity,
		"action", event.Action,
	)

	return nil
}
