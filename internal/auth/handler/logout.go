package handler

import (
	"net/http"

	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/auth"

	"github.com/gin-gonic/gin"
)

// Logout clears both token cookies. Tokens are stateless, so there is
// nothing to revoke server-side; the response is idempotent.
func (h *Handler) Logout(c *gin.Context) {
	auth.ClearTokenCookies(c.Writer)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}
