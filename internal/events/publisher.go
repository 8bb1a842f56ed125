package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/babyshop/storefront/internal/order"
)

// Publisher emits storefront events. The checkout handler publishes
// OrderPlaced after the order transaction has committed.
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, o *order.Order) error
	Close() error
}

type rabbitPublisher struct {
	ch        *amqp.Channel
	sequences SequenceRepository
}

func NewRabbitPublisher(conn *amqp.Connection, sequences SequenceRepository) (Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := declareEventsExchange(ch); err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &rabbitPublisher{ch: ch, sequences: sequences}, nil
}

func (p *rabbitPublisher) Close() error {
	return p.ch.Close()
}

func (p *rabbitPublisher) PublishOrderPlaced(ctx context.Context, o *order.Order) error {
	seq, err := p.sequences.NextSequence(ctx, o.ID)
	if err != nil {
		return fmt.Errorf("sequence for order %s: %w", o.ID, err)
	}

	env := BuildOrderPlacedEnvelope(o, seq, EnvelopeMetadata{})

	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal OrderPlaced: %w", err)
	}

	return p.publishJSON(ctx, OrderPlacedRoutingKey, body)
}

func (p *rabbitPublisher) publishJSON(ctx context.Context, routingKey string, body []byte) error {
	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		EventsExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}
