package handler

import (
	"io"
	"net/http"

	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/logger"

	"github.com/gin-gonic/gin"
)

const maxUploadSize = 100 << 20 // 100MB

var allowedMediaTypes = map[string]map[string]bool{
	"image": {
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/gif":  true,
	},
	"video": {
		"video/mp4":  true,
		"video/webm": true,
		"video/ogg":  true,
	},
}

// UploadMedia stores one media file and returns its durable URL. The
// multipart field name doubles as the media kind ("image" or "video")
// and selects the content-type allow-list.
func (h *Handler) UploadMedia(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile(kind)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "No file uploaded"})
			return
		}
		if fileHeader.Size > maxUploadSize {
			c.JSON(http.StatusBadRequest, gin.H{"message": "File too large"})
			return
		}

		contentType := fileHeader.Header.Get("Content-Type")
		if !allowedMediaTypes[kind][contentType] {
			c.JSON(http.StatusBadRequest, gin.H{"message": "File type not allowed"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "No file uploaded"})
			return
		}
		defer file.Close()

		content, err := io.ReadAll(file)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "No file uploaded"})
			return
		}

		url, err := h.blobs.Save(c.Request.Context(), fileHeader.Filename, contentType, content)
		if err != nil {
			logger.Error("media upload failed", map[string]any{
				"kind":  kind,
				"error": err.Error(),
			})
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to upload media"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Media uploaded successfully",
			"url":     url,
			"type":    kind,
		})
	}
}
