package handler

import (
	"errors"
	"net/http"

	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/logger"
	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/middleware"
	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/store"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CheckAuth(c *gin.Context) {
	user, err := h.users.ByID(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "User not found"})
			return
		}
		logger.Error("check-auth lookup failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userSummary(user)})
}
