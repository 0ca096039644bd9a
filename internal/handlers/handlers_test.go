package handlers

import (
	"bytes"
	"context"
	"html/template"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yashvi-chat/yashvi/internal/config"
	"github.com/yashvi-chat/yashvi/internal/domains/auth"
	"github.com/yashvi-chat/yashvi/internal/domains/conversation"
	"github.com/yashvi-chat/yashvi/internal/domains/credstore"
	"github.com/yashvi-chat/yashvi/internal/domains/session"
	"github.com/yashvi-chat/yashvi/internal/runtime/hosts"
	"github.com/yashvi-chat/yashvi/pkg/Logger"
	"github.com/yashvi-chat/yashvi/pkg/generation"
)

type echoGenerator struct{ reply string }

func (g echoGenerator) Generate(ctx context.Context, prompt string, p generation.Params) (string, error) {
	return prompt + " " + g.reply, nil
}

type fileSynth struct{ dir string }

func (s fileSynth) Synthesize(ctx context.Context, text, lang string) (string, error) {
	path := filepath.Join(s.dir, "reply.mp3")
	if err := os.WriteFile(path, []byte("mp3"), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

type fixedRecognizer struct{ transcript string }

func (r fixedRecognizer) Transcribe(ctx context.Context, audioPath string) (string, error) {
	return r.transcript, nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := Logger.New(true)

	store := credstore.New(logger)
	if err := store.Seed(credstore.Users, map[string]string{"saumya": "12345"}); err != nil {
		t.Fatalf("seed users: %v", err)
	}
	if err := store.Seed(credstore.Admins, map[string]string{"admin": "admin123"}); err != nil {
		t.Fatalf("seed admins: %v", err)
	}
	gate := auth.NewGate(store, logger)
	registry := session.NewRegistry(logger)

	modelHosts := hosts.New(
		func() (generation.Generator, error) { return echoGenerator{reply: "I love you, Saumya."}, nil },
		func() (hosts.Recognizer, error) { return fixedRecognizer{transcript: "spoken hello"}, nil },
		logger,
	)
	convo := conversation.New(
		modelHosts,
		fileSynth{dir: t.TempDir()},
		"You are Yashvi, a caring sibling.",
		config.PersonaConfig{Name: "Yashvi", UserLabel: "You"},
		config.GeneratorConfig{MaxNewTokens: 200, Temperature: 0.7},
		"en",
		logger,
	)

	tmpl := template.Must(template.New("login.html").Parse(`login|{{if .Error}}{{.Error}}{{end}}`))
	template.Must(tmpl.New("chat.html").Parse(
		`chat|{{if .Error}}{{.Error}}{{end}}|{{if .Notice}}{{.Notice}}{{end}}|{{with .Reply}}{{.Assistant}}{{end}}|{{with .Audio}}{{.}}{{end}}|{{range .History}}[{{.User}}>{{.Assistant}}]{{end}}`))
	template.Must(tmpl.New("admin.html").Parse(`admin|{{if .Error}}{{.Error}}{{end}}|{{if .Notice}}{{.Notice}}{{end}}|{{range .Users}}({{.}}){{end}}`))

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(SessionMiddleware(registry, "test-secret", time.Hour, logger))
	NewPageHandler(store, logger).RegisterRoutes(r)
	NewAuthHandler(gate, logger).RegisterRoutes(r)
	NewChatHandler(convo, modelHosts, logger).RegisterRoutes(r)
	NewAdminHandler(store, registry, logger).RegisterRoutes(r)
	return r
}

// do performs a request carrying the accumulated session cookies.
func do(t *testing.T, r *gin.Engine, cookies *[]*http.Cookie, method, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, ck := range *cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	*cookies = append(*cookies, w.Result().Cookies()...)
	return w
}

func multipartClip(t *testing.T, field, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("creating form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("writing clip: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("closing writer: %v", err)
	}
	return &body, writer.FormDataContentType()
}

func TestLoginFlowUserRealm(t *testing.T) {
	r := newTestRouter(t)
	var cookies []*http.Cookie

	w := do(t, r, &cookies, http.MethodGet, "/", nil)
	if w.Code != http.StatusOK || !strings.HasPrefix(w.Body.String(), "login|") {
		t.Fatalf("expected login view, got %d %q", w.Code, w.Body.String())
	}
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie on first visit")
	}

	w = do(t, r, &cookies, http.MethodPost, "/login", url.Values{
		"username": {"saumya"}, "password": {"wrong"}, "realm": {"user"},
	})
	if w.Code != http.StatusUnauthorized || !strings.Contains(w.Body.String(), "Invalid username or password.") {
		t.Fatalf("expected inline auth failure, got %d %q", w.Code, w.Body.String())
	}

	w = do(t, r, &cookies, http.MethodPost, "/login", url.Values{
		"username": {"saumya"}, "password": {"12345"}, "realm": {"user"},
	})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect after login, got %d", w.Code)
	}

	w = do(t, r, &cookies, http.MethodGet, "/", nil)
	if !strings.HasPrefix(w.Body.String(), "chat|") {
		t.Fatalf("expected chat view after login, got %q", w.Body.String())
	}
}

func TestChatSendRendersReplyAndAudio(t *testing.T) {
	r := newTestRouter(t)
	var cookies []*http.Cookie
	do(t, r, &cookies, http.MethodGet, "/", nil)
	do(t, r, &cookies, http.MethodPost, "/login", url.Values{
		"username": {"saumya"}, "password": {"12345"}, "realm": {"user"},
	})

	w := do(t, r, &cookies, http.MethodPost, "/chat/message", url.Values{"message": {"hi"}})
	body := w.Body.String()
	if w.Code != http.StatusOK {
		t.Fatalf("send failed: %d %q", w.Code, body)
	}
	if !strings.Contains(body, "I love you, Saumya.") {
		t.Fatalf("reply missing from render: %q", body)
	}
	if !strings.Contains(body, "data:audio/mp3;base64,") {
		t.Fatalf("inlined audio missing: %q", body)
	}
	if !strings.Contains(body, "[hi>I love you, Saumya.]") {
		t.Fatalf("history missing committed turn: %q", body)
	}
}

func TestChatBlankInputLeavesHistoryUnchanged(t *testing.T) {
	r := newTestRouter(t)
	var cookies []*http.Cookie
	do(t, r, &cookies, http.MethodGet, "/", nil)
	do(t, r, &cookies, http.MethodPost, "/login", url.Values{
		"username": {"saumya"}, "password": {"12345"}, "realm": {"user"},
	})

	w := do(t, r, &cookies, http.MethodPost, "/chat/message", url.Values{"message": {"   "}})
	if w.Code != http.StatusOK || strings.Contains(w.Body.String(), "[") {
		t.Fatalf("blank input must not commit a turn: %d %q", w.Code, w.Body.String())
	}
}

func TestChatRequiresUserRole(t *testing.T) {
	r := newTestRouter(t)
	var cookies []*http.Cookie
	do(t, r, &cookies, http.MethodGet, "/", nil)

	w := do(t, r, &cookies, http.MethodPost, "/chat/message", url.Values{"message": {"hi"}})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("unauthenticated chat must bounce to login, got %d", w.Code)
	}
}

func TestAdminAddDeleteUser(t *testing.T) {
	r := newTestRouter(t)
	var cookies []*http.Cookie
	do(t, r, &cookies, http.MethodGet, "/", nil)
	do(t, r, &cookies, http.MethodPost, "/login", url.Values{
		"username": {"admin"}, "password": {"admin123"}, "realm": {"admin"},
	})

	w := do(t, r, &cookies, http.MethodGet, "/", nil)
	if !strings.HasPrefix(w.Body.String(), "admin|") || !strings.Contains(w.Body.String(), "(saumya)") {
		t.Fatalf("expected admin view listing saumya, got %q", w.Body.String())
	}

	w = do(t, r, &cookies, http.MethodPost, "/admin/users", url.Values{
		"username": {"neha"}, "password": {"pw1"},
	})
	if !strings.Contains(w.Body.String(), "(neha)") {
		t.Fatalf("expected neha in user list, got %q", w.Body.String())
	}

	w = do(t, r, &cookies, http.MethodPost, "/admin/users/delete", url.Values{"username": {"saumya"}})
	if strings.Contains(w.Body.String(), "(saumya)") {
		t.Fatalf("saumya still listed after delete: %q", w.Body.String())
	}

	w = do(t, r, &cookies, http.MethodPost, "/admin/users", url.Values{
		"username": {""}, "password": {"pw"},
	})
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "cannot be empty") {
		t.Fatalf("expected empty-field error, got %d %q", w.Code, w.Body.String())
	}
}

func TestAdminClearHistory(t *testing.T) {
	r := newTestRouter(t)

	// one user session with a committed turn
	var userCookies []*http.Cookie
	do(t, r, &userCookies, http.MethodGet, "/", nil)
	do(t, r, &userCookies, http.MethodPost, "/login", url.Values{
		"username": {"saumya"}, "password": {"12345"}, "realm": {"user"},
	})
	do(t, r, &userCookies, http.MethodPost, "/chat/message", url.Values{"message": {"hi"}})

	// a separate admin session clears everything
	var adminCookies []*http.Cookie
	do(t, r, &adminCookies, http.MethodGet, "/", nil)
	do(t, r, &adminCookies, http.MethodPost, "/login", url.Values{
		"username": {"admin"}, "password": {"admin123"}, "realm": {"admin"},
	})
	w := do(t, r, &adminCookies, http.MethodPost, "/admin/history/clear", nil)
	if !strings.Contains(w.Body.String(), "Chat history cleared.") {
		t.Fatalf("expected clear notice, got %q", w.Body.String())
	}

	w = do(t, r, &userCookies, http.MethodGet, "/", nil)
	if strings.Contains(w.Body.String(), "[hi>") {
		t.Fatalf("history survived admin clear: %q", w.Body.String())
	}
}

func TestVoiceUploadTranscribesAndReplies(t *testing.T) {
	r := newTestRouter(t)
	var cookies []*http.Cookie
	do(t, r, &cookies, http.MethodGet, "/", nil)
	do(t, r, &cookies, http.MethodPost, "/login", url.Values{
		"username": {"saumya"}, "password": {"12345"}, "realm": {"user"},
	})

	body, contentType := multipartClip(t, "clip", "note.wav", []byte("RIFFfake"))
	req := httptest.NewRequest(http.MethodPost, "/chat/voice", body)
	req.Header.Set("Content-Type", contentType)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("voice send failed: %d %q", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "[spoken hello>") {
		t.Fatalf("transcript not committed as user turn: %q", w.Body.String())
	}
}
