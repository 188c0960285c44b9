// Package queue defines message payloads exchanged over the message broker.
package queue

// OrderConfirmedEvent is published when a pending order is promoted into
// the order store.  It carries enough of the order for downstream
// consumers to notify operators or log without re-reading the store.
type OrderConfirmedEvent struct {
	OrderID     string `json:"order_id"`
	City        string `json:"city"`
	VisitDate   string `json:"visit_date"`
	VisitTime   string `json:"visit_time"`
	Tier        string `json:"program"`
	Price       int    `json:"price"`
	ChildName   string `json:"child_name"`
	Phone       string `json:"phone"`
	ConfirmedAt string `json:"confirmed_at"`
}
