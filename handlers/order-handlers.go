package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookstore-service/internal/auth"
	"bookstore-service/internal/orders"
	"bookstore-service/pkg/ctxmanage"
	"bookstore-service/pkg/logkey"
)

type CheckoutRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// Checkout creates a gateway-side order plus a pending ledger entry and
// returns what the storefront needs to open the payment widget. The order
// stays pending until the Razorpay webhook reports the payment outcome.
func (h *Handler) Checkout(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	claims, ok := c.Request.Context().Value(auth.ClaimsKey).(auth.Claims)
	if !ok {
		slog.Error("claims not found", slog.String(logkey.TraceID, traceId))
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": http.StatusText(http.StatusUnauthorized)})
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("json validation error", slog.String(logkey.TraceID, traceId), slog.String(logkey.Error, err.Error()))
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": http.StatusText(http.StatusBadRequest)})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "product_id and a quantity of at least 1 are required"})
		return
	}

	resp, err := h.o.Create(c.Request.Context(), claims.Subject, req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrUnauthorized):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		case errors.Is(err, orders.ErrInvalidQuantity):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, orders.ErrProductNotFound):
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, orders.ErrGateway):
			slog.Error("gateway order creation failed", slog.String(logkey.TraceID, traceId), slog.String(logkey.Error, err.Error()))
			c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": orders.ErrGateway.Error()})
		default:
			slog.Error("error creating order", slog.String(logkey.TraceID, traceId), slog.String(logkey.Error, err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) ListMyOrders(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	claims, ok := c.Request.Context().Value(auth.ClaimsKey).(auth.Claims)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": http.StatusText(http.StatusUnauthorized)})
		return
	}

	list, err := h.o.ListForUser(c.Request.Context(), claims.Subject)
	if err != nil {
		slog.Error("error listing orders", slog.String(logkey.TraceID, traceId), slog.String(logkey.Error, err.Error()))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": list})
}

// AdminListOrders returns every order. The role check lives in the service
// so it holds for any caller, not just this route.
func (h *Handler) AdminListOrders(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	claims, ok := c.Request.Context().Value(auth.ClaimsKey).(auth.Claims)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": http.StatusText(http.StatusUnauthorized)})
		return
	}

	list, err := h.o.ListAll(c.Request.Context(), claims.Role)
	if err != nil {
		if errors.Is(err, orders.ErrForbidden) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": orders.ErrForbidden.Error()})
			return
		}
		slog.Error("error listing all orders", slog.String(logkey.TraceID, traceId), slog.String(logkey.Error, err.Error()))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": list})
}
