package orders

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Terminal reports whether no further transition may leave s. The status
// machine is pending -> completed | failed and nothing else.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Order is one purchase attempt. It references its product and user by id
// only; if either document is later deleted the order survives and listings
// fall back to a placeholder. AmountPaise is the full line amount (unit
// price in paise times quantity) captured at creation time, so later price
// edits never change what an order charged.
type Order struct {
	ID                string    `json:"id" bson:"_id"`
	UserID            string    `json:"user_id" bson:"user_id"`
	ProductID         string    `json:"product_id" bson:"product_id"`
	Quantity          int       `json:"quantity" bson:"quantity"`
	AmountPaise       int64     `json:"amount_paise" bson:"amount_paise"`
	RazorpayOrderID   string    `json:"razorpay_order_id" bson:"razorpay_order_id"`
	RazorpayPaymentID string    `json:"razorpay_payment_id,omitempty" bson:"razorpay_payment_id,omitempty"`
	Status            Status    `json:"status" bson:"status"`
	CreatedAt         time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" bson:"updated_at"`
}

func NewOrder(userID, productID string, quantity int, amountPaise int64, razorpayOrderID string) *Order {
	now := time.Now().UTC()
	return &Order{
		ID:              primitive.NewObjectID().Hex(),
		UserID:          userID,
		ProductID:       productID,
		Quantity:        quantity,
		AmountPaise:     amountPaise,
		RazorpayOrderID: razorpayOrderID,
		Status:          StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// OrderView is an order joined with whatever still exists of its product and
// user, resolved at read time.
type OrderView struct {
	Order
	ProductTitle  string `json:"product_title"`
	ProductAuthor string `json:"product_author,omitempty"`
	UserEmail     string `json:"user_email,omitempty"`
}

// UnknownProductTitle is shown when an order references a deleted product.
const UnknownProductTitle = "Unknown product"
