package handler

import (
	"net/http"

	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/logger"
	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/middleware"
	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/store"

	"github.com/gin-gonic/gin"
)

// GetMessages returns the full two-way history between the caller and
// the other user, oldest first. An unknown partner yields an empty
// array, not an error.
func (h *Handler) GetMessages(c *gin.Context) {
	messages, err := h.messages.Between(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		logger.Error("fetch messages failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, messages)
}

type sendMessageRequest struct {
	Text  string `json:"text"`
	Image string `json:"image"`
	Video string `json:"video"`
}

// SendMessage persists the message and then attempts live delivery.
// The send is successful once persisted; whether the receiver was
// connected is invisible to the sender.
func (h *Handler) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return
	}
	if req.Text == "" && req.Image == "" && req.Video == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "message must carry text, image or video"})
		return
	}

	msg := store.Message{
		SenderID:   middleware.UserID(c),
		ReceiverID: c.Param("id"),
		Text:       req.Text,
		Image:      req.Image,
		Video:      req.Video,
	}
	if err := h.messages.Insert(c.Request.Context(), &msg); err != nil {
		logger.Error("persist message failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	h.pusher.Push(msg)

	c.JSON(http.StatusOK, gin.H{
		"message": "Message sent successfully",
		"data":    msg,
	})
}
