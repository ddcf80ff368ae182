package handler

import (
	"net/http"

	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/auth"
	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/logger"

	"github.com/gin-gonic/gin"
)

// RefreshToken rotates the token pair from the refresh cookie alone.
// The client falls back to this when it has lost its access cookie
// entirely rather than merely letting it expire.
func (h *Handler) RefreshToken(c *gin.Context) {
	refreshToken, err := c.Cookie(auth.RefreshCookieName)
	if err != nil || refreshToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Refresh token required"})
		return
	}

	userID, err := h.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid refresh token"})
		return
	}

	pair, err := h.tokens.Issue(userID)
	if err != nil {
		logger.Error("token issue failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	auth.SetTokenCookies(c.Writer, pair)

	c.JSON(http.StatusOK, gin.H{
		"message":     "Tokens refreshed successfully",
		"accessToken": pair.AccessToken,
	})
}
