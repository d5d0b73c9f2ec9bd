// Package events publishes domain events to the interaction feed.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/streadway/amqp"

	"kam-api/models"
)

//go:generate mockgen -destination=mocks/mock_publisher.go -package=mocks kam-api/events Publisher

const InteractionCreated = "interaction.created"

// Event is the envelope written to the queue
type Event struct {
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// InteractionEvent is the payload of InteractionCreated.
type InteractionEvent struct {
	InteractionID uint                   `json:"interaction_id"`
	RestaurantID  uint                   `json:"restaurant_id"`
	Type          models.InteractionType `json:"type"`
	Date          time.Time              `json:"date"`
}

func NewInteractionCreated(in models.Interaction, now time.Time) Event {
	return Event{
		Type:       InteractionCreated,
		OccurredAt: now.UTC(),
		Payload: InteractionEvent{
			InteractionID: in.ID,
			RestaurantID:  in.RestaurantID,
			Type:          in.Type,
			Date:          in.Date.UTC(),
		},
	}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }

// AMQPPublisher writes events as persistent JSON messages to a single
// durable queue. Publish is safe for concurrent use.
type AMQPPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	mu      sync.Mutex
}

func NewAMQPPublisher(url, queue string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq connection: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}
	return &AMQPPublisher{conn: conn, channel: ch, queue: queue}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, e Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", e.Type, err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.channel.Publish("", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         e.Type,
		Timestamp:    e.OccurredAt,
		Body:         body,
	})
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.channel.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}
