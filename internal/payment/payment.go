// Package payment wraps the Razorpay order API behind a small interface so
// the checkout flow can run against the real gateway in production and an
// in-process fake everywhere else. Exactly one implementation is wired at
// startup; there is no second half-integrated code path.
package payment

import "context"

// Gateway mints a gateway-side order record for an amount in minor currency
// units (paise) and returns the gateway's order reference.
type Gateway interface {
	CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string, notes map[string]interface{}) (string, error)
}
