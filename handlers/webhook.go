package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/razorpay/razorpay-go/utils"

	"bookstore-service/pkg/ctxmanage"
	"bookstore-service/pkg/logkey"
)

const signatureHeader = "X-Razorpay-Signature"

// webhookEvent is the slice of Razorpay's event envelope this service reads.
type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// Webhook authenticates Razorpay's callback and hands the event to the
// order service. The signature is an HMAC over the raw bytes, so the body
// must be read before any parsing. Responses follow Razorpay's retry
// contract: 400 means "definitively rejected, do not retry", 500 means
// "redeliver later", and benign no-ops are a 200.
func (h *Handler) Webhook(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)
	const MaxBodyBytes = int64(65536)

	if h.webhookSecret == "" {
		slog.Error("webhook secret is not configured", slog.String(logkey.TraceID, traceId))
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "webhook is not configured"})
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		slog.Error("failed to read webhook body", slog.String(logkey.TraceID, traceId), slog.String(logkey.Error, err.Error()))
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}

	signature := c.GetHeader(signatureHeader)
	if signature == "" || !utils.VerifyWebhookSignature(string(body), signature, h.webhookSecret) {
		slog.Error("webhook signature mismatch", slog.String(logkey.TraceID, traceId))
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
		return
	}

	// Past this point the request is authenticated, so failures are server
	// errors: Razorpay will redeliver the event.
	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		slog.Error("failed to unmarshal webhook event", slog.String(logkey.TraceID, traceId), slog.String(logkey.Error, err.Error()))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "malformed event"})
		return
	}

	entity := event.Payload.Payment.Entity
	err = h.o.Reconcile(c.Request.Context(), event.Event, entity.OrderID, entity.ID)
	if err != nil {
		slog.Error("webhook processing failed",
			slog.String(logkey.TraceID, traceId),
			slog.String(logkey.EventType, event.Event),
			slog.String(logkey.Error, err.Error()))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "processing failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Webhook processed"})
}
