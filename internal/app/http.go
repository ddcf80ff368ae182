package app

import (
	"context"
	"net/http"

	authhandler "github.com/ashwani-sharma-14/chat-web-app-prototype/internal/auth/handler"
	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/auth/token"
	chathandler "github.com/ashwani-sharma-14/chat-web-app-prototype/internal/chat/handler"
	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/chat/presence"
	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/chat/relay"
	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/config"
	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func(context.Context) error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	tokens := token.New(cfg.AccessTokenSecret, cfg.RefreshTokenSecret)
	registry := presence.NewRegistry()
	messageRelay := relay.New(registry, tokens)

	authHandler := authhandler.NewHandler(infra.Users, tokens, infra.Blobs)
	chatHandler := chathandler.NewHandler(infra.Users, infra.Messages, messageRelay, infra.Blobs)

	requireAuth := middleware.RequireAuth(tokens)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.ClientOrigin},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if infra.LocalUploadDir != "" {
		router.Static("/uploads", infra.LocalUploadDir)
	}

	// ----------------------------
	// Socket channel
	// ----------------------------

	router.GET("/ws", messageRelay.HandleSocket)

	// ----------------------------
	// REST API
	// ----------------------------

	api := router.Group("/api")
	authHandler.RegisterRoutes(api, requireAuth)
	chatHandler.RegisterRoutes(api, requireAuth)

	return router, infra.cleanup, nil
}
