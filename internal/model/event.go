package model

import (
	"time"

	"github.com/google/uuid"
)

const EventOrderCreated = "OrderCreated"

// OrderCreatedEvent is published on the orders topic once checkout commits.
type OrderCreatedEvent struct {
	EventID   string              `json:"event_id"`
	EventType string              `json:"event_type"`
	Payload   OrderCreatedPayload `json:"payload"`
	Timestamp time.Time           `json:"timestamp"`
}

type OrderCreatedPayload struct {
	ID          string             `json:"id"`
	UserID      string             `json:"user_id"`
	TotalAmount string             `json:"total_amount"`
	Items       []OrderLinePayload `json:"items"`
}

type OrderLinePayload struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func NewOrderCreatedEvent(o *Order, now time.Time) OrderCreatedEvent {
	items := make([]OrderLinePayload, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderLinePayload{ProductID: it.Product.ID, Quantity: it.Quantity})
	}
	return OrderCreatedEvent{
		EventID:   uuid.New().String(),
		EventType: EventOrderCreated,
		Payload: OrderCreatedPayload{
			ID:          o.ID,
			UserID:      o.UserID,
			TotalAmount: o.TotalString(),
			Items:       items,
		},
		Timestamp: now,
	}
}
