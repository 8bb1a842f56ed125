package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/babyshop/storefront/internal/order"
)

const (
	orderPlacedEventName    = "OrderPlaced"
	orderPlacedEventVersion = 1
)

// OrderPlacedPayload represents the v1 payload schema.
type OrderPlacedPayload struct {
	OrderID   string           `json:"orderId"`
	Total     decimal.Decimal  `json:"total"`
	Lines     []OrderLineEvent `json:"lines"`
	Email     string           `json:"email"`
	Timestamp time.Time        `json:"timestamp"`
}

type OrderLineEvent struct {
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Category    string          `json:"category"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
}

// OrderPlacedEnvelope is the enveloped event structure.
type OrderPlacedEnvelope = EventEnvelope[OrderPlacedPayload]

// BuildOrderPlacedEnvelope builds an enveloped OrderPlaced event.
func BuildOrderPlacedEnvelope(o *order.Order, seq int64, meta EnvelopeMetadata) OrderPlacedEnvelope {
	if meta.CorrelationID == "" {
		meta.CorrelationID = uuid.NewString()
	}

	lines := make([]OrderLineEvent, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, OrderLineEvent{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Category:    string(l.Category),
			UnitPrice:   l.UnitPrice,
			Quantity:    l.Quantity,
		})
	}

	return OrderPlacedEnvelope{
		EventName:     orderPlacedEventName,
		EventVersion:  orderPlacedEventVersion,
		EventID:       uuid.NewString(),
		CorrelationID: meta.CorrelationID,
		CausationID:   meta.CausationID,
		Producer:      storefrontServiceName,
		PartitionKey:  o.ID,
		Sequence:      &seq,
		OccurredAt:    time.Now().UTC(),
		Payload: OrderPlacedPayload{
			OrderID:   o.ID,
			Total:     o.Total,
			Lines:     lines,
			Email:     o.Email,
			Timestamp: o.CreatedAt,
		},
	}
}
