package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/auth"
	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/auth/token"
	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/media"
	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/middleware"
	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/store"

	"github.com/gin-gonic/gin"
)

type recordingPusher struct {
	pushed []store.Message
}

func (p *recordingPusher) Push(msg store.Message) {
	p.pushed = append(p.pushed, msg)
}

type fixture struct {
	router *gin.Engine
	mem    *store.Memory
	tokens *token.Service
	pusher *recordingPusher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mem := store.NewMemory()
	tokens := token.New("test-access-secret", "test-refresh-secret")
	pusher := &recordingPusher{}
	blobs, err := media.NewLocalBlobStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	router := gin.New()
	api := router.Group("/api")
	NewHandler(mem.Users(), mem.Messages(), pusher, blobs).
		RegisterRoutes(api, middleware.RequireAuth(tokens))

	return &fixture{router: router, mem: mem, tokens: tokens, pusher: pusher}
}

func (f *fixture) addUser(t *testing.T, name, email string) *store.User {
	t.Helper()
	u := store.User{Name: name, Email: email, Password: "hash"}
	if err := f.mem.Users().Create(context.Background(), &u); err != nil {
		t.Fatal(err)
	}
	return &u
}

func (f *fixture) request(t *testing.T, asUser, method, path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	pair, err := f.tokens.Issue(asUser)
	if err != nil {
		t.Fatal(err)
	}
	var reader *bytes.Buffer
	if body == nil {
		reader = &bytes.Buffer{}
	} else {
		reader = body
	}
	req := httptest.NewRequest(method, path, reader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.AddCookie(&http.Cookie{Name: auth.AccessCookieName, Value: pair.AccessToken})
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func (f *fixture) sendMessage(t *testing.T, from, to, payload string) *httptest.ResponseRecorder {
	t.Helper()
	return f.request(t, from, http.MethodPost, "/api/message/"+to,
		bytes.NewBufferString(payload), "application/json")
}

func TestListUsersExcludesCaller(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "Alice", "alice@example.com")
	bob := f.addUser(t, "Bob", "bob@example.com")

	rr := f.request(t, alice.ID, http.MethodGet, "/api/message/users", nil, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", rr.Code, rr.Body.String())
	}

	var users []map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &users); err != nil {
		t.Fatal(err)
	}
	if len(users) != 1 || users[0]["id"] != bob.ID {
		t.Errorf("users = %v, want just bob", users)
	}
	if _, leaked := users[0]["password"]; leaked {
		t.Error("user listing contains a password field")
	}
}

func TestSendAndFetchMessages(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "Alice", "alice@example.com")
	bob := f.addUser(t, "Bob", "bob@example.com")

	rr := f.sendMessage(t, alice.ID, bob.ID, `{"text":"hi"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("send: status = %d (body %s)", rr.Code, rr.Body.String())
	}

	if len(f.pusher.pushed) != 1 {
		t.Fatalf("pushed %d messages, want 1", len(f.pusher.pushed))
	}
	pushed := f.pusher.pushed[0]
	if pushed.Text != "hi" || pushed.SenderID != alice.ID || pushed.ReceiverID != bob.ID {
		t.Errorf("pushed message = %+v", pushed)
	}
	if pushed.ID == "" {
		t.Error("pushed message has no identifier, push must follow persistence")
	}

	// Both parties see the same single record.
	for _, view := range []struct{ caller, other string }{
		{alice.ID, bob.ID},
		{bob.ID, alice.ID},
	} {
		rr := f.request(t, view.caller, http.MethodGet, "/api/message/"+view.other, nil, "")
		if rr.Code != http.StatusOK {
			t.Fatalf("history: status = %d", rr.Code)
		}
		var messages []store.Message
		if err := json.Unmarshal(rr.Body.Bytes(), &messages); err != nil {
			t.Fatal(err)
		}
		if len(messages) != 1 || messages[0].Text != "hi" {
			t.Errorf("history for %s = %v", view.caller, messages)
		}
	}
}

func TestSendEmptyMessageRejected(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "Alice", "alice@example.com")
	bob := f.addUser(t, "Bob", "bob@example.com")

	rr := f.sendMessage(t, alice.ID, bob.ID, `{}`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
	if len(f.pusher.pushed) != 0 {
		t.Errorf("rejected message was pushed: %v", f.pusher.pushed)
	}
}

func TestHistoryWithUnknownPartnerIsEmpty(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "Alice", "alice@example.com")

	rr := f.request(t, alice.ID, http.MethodGet, "/api/message/nobody", nil, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if got := strings.TrimSpace(rr.Body.String()); got != "[]" {
		t.Errorf("body = %s, want []", got)
	}
}

func TestRoutesRequireAuth(t *testing.T) {
	f := newFixture(t)

	for _, path := range []string{"/api/message/users", "/api/message/some-id"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		f.router.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("GET %s without token: status = %d, want 401", path, rr.Code)
		}
	}
}

func mediaForm(t *testing.T, field, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := form.CreatePart(header)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := form.Close(); err != nil {
		t.Fatal(err)
	}
	return body, form.FormDataContentType()
}

func TestUploadImage(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "Alice", "alice@example.com")

	body, contentType := mediaForm(t, "image", "cat.png", "image/png", []byte("png-bytes"))
	rr := f.request(t, alice.ID, http.MethodPost, "/api/message/upload/image", body, contentType)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", rr.Code, rr.Body.String())
	}

	var resp struct {
		URL  string `json:"url"`
		Type string `json:"type"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(resp.URL, "/uploads/") || !strings.HasSuffix(resp.URL, ".png") {
		t.Errorf("url = %q", resp.URL)
	}
	if resp.Type != "image" {
		t.Errorf("type = %q, want image", resp.Type)
	}
}

func TestUploadRejectsDisallowedType(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "Alice", "alice@example.com")

	body, contentType := mediaForm(t, "image", "run.exe", "application/octet-stream", []byte("nope"))
	rr := f.request(t, alice.ID, http.MethodPost, "/api/message/upload/image", body, contentType)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}

	body, contentType = mediaForm(t, "video", "cat.png", "image/png", []byte("png-bytes"))
	rr = f.request(t, alice.ID, http.MethodPost, "/api/message/upload/video", body, contentType)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("image on video route: status = %d, want 400", rr.Code)
	}
}

func TestUploadWithoutFile(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "Alice", "alice@example.com")

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	_ = form.Close()
	rr := f.request(t, alice.ID, http.MethodPost, "/api/message/upload/image", body, form.FormDataContentType())
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}
