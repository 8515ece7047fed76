package domain

import (
	"time"

	"github.com/google/uuid"
)

type PriceLine struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// Pricing is derived from an OrderDetails and never stored as the source of truth.
type Pricing struct {
	Lines            []PriceLine `json:"lines"`
	TotalPrice       float64     `json:"totalPrice"`
	DeliveryFee      float64     `json:"deliveryFee"`
	GrandTotal       float64     `json:"grandTotal"`
	DeliveryEstimate string      `json:"deliveryEstimate"`
}

// PlacedOrder is a confirmed order as submitted and archived.
type PlacedOrder struct {
	ID        uuid.UUID    `json:"id"`
	Reference string       `json:"reference,omitempty"`
	UserID    string       `json:"user_id,omitempty"`
	Phone     string       `json:"phone,omitempty"`
	Order     OrderDetails `json:"order"`
	Pricing   Pricing      `json:"pricing"`
	CreatedAt time.Time    `json:"created_at"`

	// DeliveryTo is the pickup or delivery address as one printable line.
	DeliveryTo string `json:"delivery_to,omitempty"`
}
