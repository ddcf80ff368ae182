package auth

import (
	"net/http"

	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/auth/token"
)

const (
	AccessCookieName  = "accessToken"
	RefreshCookieName = "refreshToken"
)

// SetTokenCookies issues both token cookies. The access cookie stays
// readable by client script (the web client forwards it to the socket
// handshake); the refresh cookie is HttpOnly. Both are Secure and
// SameSite=None so they survive cross-origin credentialed requests,
// and expire at the same instants as the tokens they carry.
func SetTokenCookies(w http.ResponseWriter, pair token.Pair) {
	http.SetCookie(w, &http.Cookie{
		Name:     AccessCookieName,
		Value:    pair.AccessToken,
		Path:     "/",
		MaxAge:   int(token.AccessTTL.Seconds()),
		HttpOnly: false,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    pair.RefreshToken,
		Path:     "/",
		MaxAge:   int(token.RefreshTTL.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

// ClearTokenCookies removes both token cookies from the client.
func ClearTokenCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     AccessCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: false,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}
