package payment

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

// Razorpay is the production Gateway backed by the Razorpay Orders API.
type Razorpay struct {
	client *razorpay.Client
}

func NewRazorpay(keyID, keySecret string) (*Razorpay, error) {
	if keyID == "" || keySecret == "" {
		return nil, fmt.Errorf("razorpay key id or secret is empty")
	}
	return &Razorpay{client: razorpay.NewClient(keyID, keySecret)}, nil
}

func (r *Razorpay) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string, notes map[string]interface{}) (string, error) {
	data := map[string]interface{}{
		"amount":   amountPaise,
		"currency": currency,
		"receipt":  receipt,
	}
	if len(notes) > 0 {
		data["notes"] = notes
	}

	body, err := r.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("creating razorpay order: %w", err)
	}
	id, ok := body["id"].(string)
	if !ok || id == "" {
		return "", fmt.Errorf("razorpay order response missing id")
	}
	return id, nil
}
