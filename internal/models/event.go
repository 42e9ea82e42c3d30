package models

import "time"

// OrderEvent is the envelope published to Kafka for each new order.
type OrderEvent struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Order     Order     `json:"order"`
	Timestamp time.Time `json:"timestamp"`
}

const EventTypeOrderPaid = "order.paid"
