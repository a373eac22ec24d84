package ctxmanage

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const traceIDKey = "traceId"

// GetTraceIdOfRequest returns the trace id that middleware.Logger attached
// to the request, minting one if the middleware did not run (tests, direct
// handler invocation).
func GetTraceIdOfRequest(c *gin.Context) string {
	if v, ok := c.Get(traceIDKey); ok {
		if id, ok := v.(string); ok && id != "" {
			return id
		}
	}
	id := uuid.NewString()
	c.Set(traceIDKey, id)
	return id
}

// SetTraceId stores the trace id for the rest of the request chain.
func SetTraceId(c *gin.Context, id string) {
	c.Set(traceIDKey, id)
}
