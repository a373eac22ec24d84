package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// UploadAuth hands the storefront the parameters it needs to upload a cover
// image directly to ImageKit.
func (h *Handler) UploadAuth(c *gin.Context) {
	if h.up == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "image uploads are not configured"})
		return
	}
	c.JSON(http.StatusOK, h.up.AuthParams())
}
