package handler

import (
	"net/http"

	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/logger"
	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/middleware"

	"github.com/gin-gonic/gin"
)

// ListUsers returns every other account: the contact list is global in
// this prototype. The password hash is excluded by serialization.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.users.ListOthers(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		logger.Error("list users failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, users)
}
