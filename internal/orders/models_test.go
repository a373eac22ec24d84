package orders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewOrder(t *testing.T) {
	order := NewOrder("user-1", "product-1", 2, 2400, "order_rzp_1")

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, "user-1", order.UserID)
	assert.Equal(t, "product-1", order.ProductID)
	assert.Equal(t, 2, order.Quantity)
	assert.Equal(t, int64(2400), order.AmountPaise)
	assert.Equal(t, "order_rzp_1", order.RazorpayOrderID)
	assert.Empty(t, order.RazorpayPaymentID)
	assert.Equal(t, StatusPending, order.Status)

	now := time.Now().UTC()
	assert.WithinDuration(t, now, order.CreatedAt, time.Second)
	assert.WithinDuration(t, now, order.UpdatedAt, time.Second)
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusFailed.Terminal())
}

func TestComputeAmount(t *testing.T) {
	// Unit price in paise times quantity: the gateway collects the full
	// line, not one unit.
	assert.Equal(t, int64(2400), computeAmount(12.00, 2))
	assert.Equal(t, int64(1200), computeAmount(12.00, 1))
	// Rounded before scaling so float drift on the unit price cannot
	// accumulate across the quantity.
	assert.Equal(t, int64(2997), computeAmount(9.99, 3))
}
