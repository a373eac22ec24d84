package payment

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Fake mints order references locally. It backs tests and keyless local
// runs, using the same order_<nanos> shape a gateway-less deployment of the
// storefront produced.
type Fake struct {
	// Err, when set, is returned from CreateOrder to simulate a gateway
	// outage.
	Err error

	mu      sync.Mutex
	created []FakeOrder
}

type FakeOrder struct {
	OrderID     string
	AmountPaise int64
	Currency    string
	Receipt     string
}

func (f *Fake) CreateOrder(_ context.Context, amountPaise int64, currency, receipt string, _ map[string]interface{}) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	id := fmt.Sprintf("order_%d", time.Now().UnixNano())
	f.created = append(f.created, FakeOrder{
		OrderID:     id,
		AmountPaise: amountPaise,
		Currency:    currency,
		Receipt:     receipt,
	})
	return id, nil
}

// Created returns a copy of every order minted so far.
func (f *Fake) Created() []FakeOrder {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]FakeOrder, len(f.created))
	copy(out, f.created)
	return out
}
