package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Order est créée une seule fois par session Stripe payée, puis immuable.
type Order struct {
	ID              gocql.UUID  `json:"id"`
	UserID          string      `json:"user_id"`
	Items           []OrderItem `json:"items"`
	TotalAmount     float64     `json:"total_amount"`
	StripeSessionID string      `json:"stripe_session_id"`
	CreatedAt       time.Time   `json:"created_at"`
}

type OrderItem struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}
