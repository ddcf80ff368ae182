package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/auth/credentials"
	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/logger"
	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/store"

	"github.com/gin-gonic/gin"
)

const maxProfileImageSize = 100 << 20

func (h *Handler) Signup(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	if name == "" || email == "" || password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name, email and password are required"})
		return
	}

	hash, err := credentials.HashPassword(password)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	profileURL, err := h.saveProfileImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user := store.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Profile:  profileURL,
	}
	if err := h.users.Create(c.Request.Context(), &user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
			return
		}
		logger.Error("signup failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	// Signup does not authenticate: the client logs in afterwards.
	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    userSummary(&user),
	})
}

// saveProfileImage stores the optional profile image and returns its
// URL, or "" when the form carries no file.
func (h *Handler) saveProfileImage(c *gin.Context) (string, error) {
	fileHeader, err := c.FormFile("profile")
	if err != nil {
		return "", nil
	}
	if fileHeader.Size > maxProfileImageSize {
		return "", errors.New("profile image too large")
	}
	if !strings.HasPrefix(fileHeader.Header.Get("Content-Type"), "image/") {
		return "", errors.New("profile must be an image")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	return h.blobs.Save(
		c.Request.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		content,
	)
}
