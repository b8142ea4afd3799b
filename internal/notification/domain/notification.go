package domain

import "time"

type Kind string

const (
	KindInfo           Kind = "info"
	KindCart           Kind = "cart"
	KindOrderConfirmed Kind = "order_confirmed"
	KindOrderReady     Kind = "order_ready"
	KindReward         Kind = "reward"
)

type Notification struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
