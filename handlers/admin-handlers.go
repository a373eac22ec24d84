package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookstore-service/pkg/ctxmanage"
	"bookstore-service/pkg/logkey"
)

func (h *Handler) AdminListUsers(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	list, err := h.u.ListUsers(c.Request.Context())
	if err != nil {
		slog.Error("error listing users", slog.String(logkey.TraceID, traceId), slog.String(logkey.Error, err.Error()))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": list})
}
