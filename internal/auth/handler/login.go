package handler

import (
	"errors"
	"net/http"

	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/auth"
	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/auth/credentials"
	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/logger"
	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/store"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return
	}

	user, err := h.users.ByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logger.Error("login lookup failed", map[string]any{"error": err.Error()})
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
		// Same response as a wrong password: never reveal whether
		// the account exists.
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	if err := credentials.VerifyPassword(user.Password, req.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	pair, err := h.tokens.Issue(user.ID)
	if err != nil {
		logger.Error("token issue failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	auth.SetTokenCookies(c.Writer, pair)

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    userSummary(user),
	})
}
