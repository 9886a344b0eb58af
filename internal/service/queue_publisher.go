// Package service provides functions to publish domain events to
// RabbitMQ. Errors are logged and returned so callers can ignore
// failures without interrupting the main request flow.
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "menu-catalog/internal/queue"
)

// CatalogPublisher publishes CatalogChangedEvent messages to the
// catalog.events queue. A nil publisher is valid and publishes nothing,
// which is how the service runs when no broker is configured.
type CatalogPublisher struct {
	url string
}

// NewCatalogPublisher returns a publisher for the given broker URL, or
// nil when the URL is empty.
func NewCatalogPublisher(url string) *CatalogPublisher {
	if url == "" {
		return nil
	}
	return &CatalogPublisher{url: url}
}

// Publish sends the event to the catalog.events queue. It never panics;
// any error is logged and returned so the caller can choose to ignore
// it. Messages are marked as persistent.
func (p *CatalogPublisher) Publish(ctx context.Context, event q.CatalogChangedEvent) error {
	if p == nil {
		return nil
	}
	conn, err := amqp.Dial(p.url)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive
	// broker restarts.
	if _, err := ch.QueueDeclare(
		q.CatalogQueueName, // name
		true,               // durable
		false,              // autoDelete
		false,              // exclusive
		false,              // noWait
		nil,                // args
	); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	if event.OccurredAt == "" {
		event.OccurredAt = time.Now().UTC().Format(time.RFC3339)
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := ch.PublishWithContext(pubCtx,
		"",                 // default exchange
		q.CatalogQueueName, // routing key
		false,              // mandatory
		false,              // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
