package handler

import (
	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/auth/token"
	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/media"
	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/store"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	users  store.Users
	tokens *token.Service
	blobs  media.BlobStore
}

func NewHandler(users store.Users, tokens *token.Service, blobs media.BlobStore) *Handler {
	return &Handler{
		users:  users,
		tokens: tokens,
		blobs:  blobs,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	r.POST("/user/signup", h.Signup)
	r.POST("/user/login", h.Login)
	r.POST("/user/auth/refresh-token", h.RefreshToken)
	r.POST("/user/logout", requireAuth, h.Logout)
	r.GET("/user/check-auth", requireAuth, h.CheckAuth)
}

// userSummary is the client-facing view of a user; the password hash
// never leaves the store layer.
func userSummary(u *store.User) gin.H {
	return gin.H{
		"id":      u.ID,
		"name":    u.Name,
		"email":   u.Email,
		"profile": u.Profile,
	}
}
