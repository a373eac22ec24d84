package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore-service/internal/auth"
	"bookstore-service/internal/orders"
)

func doJSON(env *testEnv, method, path, token string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestCheckoutRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	w := doJSON(env, http.MethodPost, "/v1/orders/checkout", "", []byte(`{"product_id":"book-1","quantity":1}`))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCheckoutCreatesPendingOrder(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, "user-1", auth.RoleUser)

	w := doJSON(env, http.MethodPost, "/v1/orders/checkout", token, []byte(`{"product_id":"book-1","quantity":2}`))
	require.Equal(t, http.StatusOK, w.Code)

	var resp orders.CheckoutResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.RazorpayOrderID)
	assert.Equal(t, int64(2400), resp.AmountPaise)
	assert.Equal(t, "INR", resp.Currency)

	stored := env.ledger.get(resp.RazorpayOrderID)
	assert.Equal(t, orders.StatusPending, stored.Status)
	assert.Equal(t, "user-1", stored.UserID)
}

func TestCheckoutUnknownProduct(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, "user-1", auth.RoleUser)

	w := doJSON(env, http.MethodPost, "/v1/orders/checkout", token, []byte(`{"product_id":"nope","quantity":1}`))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckoutInvalidQuantity(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, "user-1", auth.RoleUser)

	w := doJSON(env, http.MethodPost, "/v1/orders/checkout", token, []byte(`{"product_id":"book-1","quantity":0}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckoutGatewayOutage(t *testing.T) {
	env := newTestEnv(t)
	env.gateway.Err = assert.AnError
	token := env.token(t, "user-1", auth.RoleUser)

	w := doJSON(env, http.MethodPost, "/v1/orders/checkout", token, []byte(`{"product_id":"book-1","quantity":1}`))
	assert.Equal(t, http.StatusBadGateway, w.Code)
	// Failed gateway call leaves no partial order behind.
	list, err := env.ledger.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListMyOrders(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, "user-1", auth.RoleUser)

	w := doJSON(env, http.MethodPost, "/v1/orders/checkout", token, []byte(`{"product_id":"book-1","quantity":1}`))
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(env, http.MethodGet, "/v1/orders/my", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Orders []orders.OrderView `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Orders, 1)
	assert.Equal(t, "Clean Architecture", resp.Orders[0].ProductTitle)
}

func TestAdminListOrdersForbiddenForUsers(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, "user-1", auth.RoleUser)

	w := doJSON(env, http.MethodGet, "/v1/admin/orders", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.NotContains(t, w.Body.String(), `"orders"`)
}

func TestAdminListOrders(t *testing.T) {
	env := newTestEnv(t)
	userToken := env.token(t, "user-1", auth.RoleUser)
	adminToken := env.token(t, "admin-1", auth.RoleAdmin)

	w := doJSON(env, http.MethodPost, "/v1/orders/checkout", userToken, []byte(`{"product_id":"book-1","quantity":1}`))
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(env, http.MethodGet, "/v1/admin/orders", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Orders []orders.OrderView `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Orders, 1)
	assert.Equal(t, "reader@example.com", resp.Orders[0].UserEmail)
}
