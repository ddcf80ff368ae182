package middleware

import (
	"errors"
	"net/http"

	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/auth"
	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/auth/token"

	"github.com/gin-gonic/gin"
)

// userIDKey is the gin context key the gate stores the resolved user
// identifier under.
const userIDKey = "userID"

// UserID extracts the authenticated user identifier set by RequireAuth.
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// RequireAuth gates a request on the access-token cookie. An expired
// access token is recovered locally: if the refresh-token cookie still
// verifies, a fresh pair is minted and set on the response and the
// request proceeds as authenticated. Every other failure ends the
// request with 401.
func RequireAuth(tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken, err := c.Cookie(auth.AccessCookieName)
		if err != nil || accessToken == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Access token required"})
			return
		}

		userID, err := tokens.VerifyAccess(accessToken)
		if err == nil {
			c.Set(userIDKey, userID)
			c.Next()
			return
		}

		if !errors.Is(err, token.ErrExpired) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid access token"})
			return
		}

		// Silent refresh.
		refreshToken, err := c.Cookie(auth.RefreshCookieName)
		if err != nil || refreshToken == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Refresh token required"})
			return
		}

		userID, err = tokens.VerifyRefresh(refreshToken)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid refresh token"})
			return
		}

		pair, err := tokens.Issue(userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
		auth.SetTokenCookies(c.Writer, pair)

		c.Set(userIDKey, userID)
		c.Next()
	}
}
