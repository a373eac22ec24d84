package handlers

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"bookstore-service/internal/auth"
	"bookstore-service/internal/orders"
	"bookstore-service/internal/payment"
	"bookstore-service/internal/products"
	"bookstore-service/internal/users"
)

const testWebhookSecret = "whsec_test_secret"

func TestMain(m *testing.M) {
	os.Setenv("GIN_MODE", gin.ReleaseMode)
	os.Exit(m.Run())
}

// memLedger mirrors the atomic pending-guard of the Mongo ledger so routing
// tests run without a database.
type memLedger struct {
	mu          sync.Mutex
	byRef       map[string]*orders.Order
	transitions int
}

func newMemLedger() *memLedger {
	return &memLedger{byRef: map[string]*orders.Order{}}
}

func (m *memLedger) InsertOrder(_ context.Context, o *orders.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *o
	m.byRef[o.RazorpayOrderID] = &cp
	return nil
}

func (m *memLedger) MarkIfPending(_ context.Context, razorpayOrderID string, to orders.Status, paymentID string) (*orders.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.byRef[razorpayOrderID]
	if !ok || o.Status != orders.StatusPending {
		return nil, nil
	}
	o.Status = to
	if paymentID != "" {
		o.RazorpayPaymentID = paymentID
	}
	o.UpdatedAt = time.Now().UTC()
	m.transitions++
	cp := *o
	return &cp, nil
}

func (m *memLedger) ListByUser(_ context.Context, userID string) ([]orders.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []orders.Order
	for _, o := range m.byRef {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *memLedger) ListAll(_ context.Context) ([]orders.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []orders.Order
	for _, o := range m.byRef {
		out = append(out, *o)
	}
	return out, nil
}

func (m *memLedger) get(ref string) orders.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.byRef[ref]
}

type memCatalog struct {
	byID map[string]products.Product
}

func (c *memCatalog) GetProductByID(_ context.Context, productID string) (products.Product, error) {
	p, ok := c.byID[productID]
	if !ok {
		return products.Product{}, products.ErrNotFound
	}
	return p, nil
}

type memDirectory struct {
	byID map[string]users.User
}

func (d *memDirectory) GetUserByID(_ context.Context, userID string) (users.User, error) {
	u, ok := d.byID[userID]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

type testEnv struct {
	router  *gin.Engine
	ledger  *memLedger
	gateway *payment.Fake
	keys    *auth.Keys
	svc     *orders.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	keys, err := auth.NewKeys("unit-test-secret")
	require.NoError(t, err)

	ledger := newMemLedger()
	catalog := &memCatalog{byID: map[string]products.Product{
		"book-1": {ID: "book-1", Title: "Clean Architecture", Author: "Martin", Price: 12.00},
	}}
	directory := &memDirectory{byID: map[string]users.User{
		"user-1":  {ID: "user-1", Email: "reader@example.com", Role: auth.RoleUser},
		"admin-1": {ID: "admin-1", Email: "admin@example.com", Role: auth.RoleAdmin},
	}}
	gateway := &payment.Fake{}

	svc, err := orders.NewService(ledger, catalog, directory, gateway, nil)
	require.NoError(t, err)

	h := NewHandler(svc, nil, nil, nil, keys, testWebhookSecret)
	return &testEnv{
		router:  API("/v1", h),
		ledger:  ledger,
		gateway: gateway,
		keys:    keys,
		svc:     svc,
	}
}

func (e *testEnv) token(t *testing.T, userID, role string) string {
	t.Helper()
	token, err := e.keys.GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}
