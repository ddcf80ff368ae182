package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/auth"
	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/auth/token"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	testAccessSecret  = "test-access-secret"
	testRefreshSecret = "test-refresh-secret"
)

func newTestRouter(tokens *token.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireAuth(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": UserID(c)})
	})
	return r
}

// expiredAccessToken signs an access token whose expiry is in the past,
// with the same secret the service under test uses.
func expiredAccessToken(t *testing.T, userID string) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-30 * time.Minute)),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(testAccessSecret))
	if err != nil {
		t.Fatalf("signing expired token: %v", err)
	}
	return tok
}

func doRequest(router *gin.Engine, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func responseUserID(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		UserID string `json:"userID"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return body.UserID
}

func TestMissingAccessToken(t *testing.T) {
	router := newTestRouter(token.New(testAccessSecret, testRefreshSecret))

	rr := doRequest(router)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
}

func TestValidAccessToken(t *testing.T) {
	tokens := token.New(testAccessSecret, testRefreshSecret)
	router := newTestRouter(tokens)

	pair, err := tokens.Issue("user-42")
	if err != nil {
		t.Fatal(err)
	}

	rr := doRequest(router, &http.Cookie{Name: auth.AccessCookieName, Value: pair.AccessToken})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rr.Code, rr.Body.String())
	}
	if got := responseUserID(t, rr); got != "user-42" {
		t.Errorf("resolved userID = %q, want user-42", got)
	}
	// The valid-token path never mutates cookies.
	if cookies := rr.Result().Cookies(); len(cookies) != 0 {
		t.Errorf("valid-token request set cookies: %v", cookies)
	}
}

func TestInvalidAccessToken(t *testing.T) {
	router := newTestRouter(token.New(testAccessSecret, testRefreshSecret))

	rr := doRequest(router, &http.Cookie{Name: auth.AccessCookieName, Value: "garbage"})
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
}

func TestSilentRefresh(t *testing.T) {
	tokens := token.New(testAccessSecret, testRefreshSecret)
	router := newTestRouter(tokens)

	pair, err := tokens.Issue("user-42")
	if err != nil {
		t.Fatal(err)
	}

	rr := doRequest(router,
		&http.Cookie{Name: auth.AccessCookieName, Value: expiredAccessToken(t, "user-42")},
		&http.Cookie{Name: auth.RefreshCookieName, Value: pair.RefreshToken},
	)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rr.Code, rr.Body.String())
	}
	if got := responseUserID(t, rr); got != "user-42" {
		t.Errorf("resolved userID = %q, want user-42", got)
	}

	// Both cookies are rotated on the refresh path.
	var gotAccess, gotRefresh bool
	for _, c := range rr.Result().Cookies() {
		switch c.Name {
		case auth.AccessCookieName:
			gotAccess = true
			if _, err := tokens.VerifyAccess(c.Value); err != nil {
				t.Errorf("refreshed access cookie does not verify: %v", err)
			}
		case auth.RefreshCookieName:
			gotRefresh = true
			if !c.HttpOnly {
				t.Error("refresh cookie must be HttpOnly")
			}
		}
	}
	if !gotAccess || !gotRefresh {
		t.Errorf("refresh path set cookies access=%v refresh=%v, want both", gotAccess, gotRefresh)
	}
}

func TestExpiredAccessWithoutRefresh(t *testing.T) {
	router := newTestRouter(token.New(testAccessSecret, testRefreshSecret))

	rr := doRequest(router, &http.Cookie{Name: auth.AccessCookieName, Value: expiredAccessToken(t, "user-42")})
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
}

func TestExpiredAccessWithBadRefresh(t *testing.T) {
	router := newTestRouter(token.New(testAccessSecret, testRefreshSecret))

	rr := doRequest(router,
		&http.Cookie{Name: auth.AccessCookieName, Value: expiredAccessToken(t, "user-42")},
		&http.Cookie{Name: auth.RefreshCookieName, Value: "garbage"},
	)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
}
