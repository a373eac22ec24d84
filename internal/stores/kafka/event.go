package kafka

import "time"

const TopicOrderPaid = `bookstore-service.order-paid`

// OrderPaidEvent is published once an order's payment is captured, keyed by
// order id so every event for one order lands on the same partition.
type OrderPaidEvent struct {
	OrderID     string    `json:"order_id"`
	ProductID   string    `json:"product_id"`
	Quantity    int       `json:"quantity"`
	AmountPaise int64     `json:"amount_paise"`
	CreatedAt   time.Time `json:"created_at"`
}
