package handler

import (
	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/media"
	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/store"

	"github.com/gin-gonic/gin"
)

// Pusher is the live-delivery hook invoked after a message persists.
// The relay implements it; a miss is silent, so it reports nothing.
type Pusher interface {
	Push(msg store.Message)
}

type Handler struct {
	users    store.Users
	messages store.Messages
	pusher   Pusher
	blobs    media.BlobStore
}

func NewHandler(users store.Users, messages store.Messages, pusher Pusher, blobs media.BlobStore) *Handler {
	return &Handler{
		users:    users,
		messages: messages,
		pusher:   pusher,
		blobs:    blobs,
	}
}

// RegisterRoutes mounts the message API. Every route is gated; the
// upload routes are registered before the catch-all ":id" pair.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	msg := r.Group("/message", requireAuth)
	msg.GET("/users", h.ListUsers)
	msg.POST("/upload/image", h.UploadMedia("image"))
	msg.POST("/upload/video", h.UploadMedia("video"))
	msg.GET("/:id", h.GetMessages)
	msg.POST("/:id", h.SendMessage)
}
