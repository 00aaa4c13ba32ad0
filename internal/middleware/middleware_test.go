package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/tutorhub-backend/internal/config"
	"github.com/stemsi/tutorhub-backend/internal/model"
	"github.com/stemsi/tutorhub-backend/internal/repository"
	"github.com/stemsi/tutorhub-backend/internal/response"
	"github.com/stemsi/tutorhub-backend/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memUsers map[string]*model.User

func (m memUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if u, ok := m[email]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

type memSessions map[int]string

func (m memSessions) Set(_ context.Context, userID int, jti string, _ time.Duration) error {
	m[userID] = jti
	return nil
}
func (m memSessions) Get(_ context.Context, userID int) (string, error) { return m[userID], nil }
func (m memSessions) Delete(_ context.Context, userID int) error {
	delete(m, userID)
	return nil
}

func newAuth(t *testing.T) (*service.AuthService, memSessions) {
	t.Helper()
	users := memUsers{}
	sessions := memSessions{}
	auth := service.NewAuthService(&config.Config{JWTSecret: "k", JWTExpiry: time.Hour, BcryptCost: 4}, users, sessions, zerolog.New(io.Discard))
	hash, err := auth.HashPassword("secret123")
	if err != nil {
		t.Fatal(err)
	}
	users["tutor@example.com"] = &model.User{ID: 4, Email: "tutor@example.com", Role: model.RoleTutor, PasswordHash: hash}
	users["student@example.com"] = &model.User{ID: 1, Email: "student@example.com", Role: model.RoleStudent, StandardID: new(int), PasswordHash: hash}
	return auth, sessions
}

func login(t *testing.T, auth *service.AuthService, email string) string {
	t.Helper()
	token, _, err := auth.Login(context.Background(), email, "secret123")
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) response.ErrCode {
	t.Helper()
	var body response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	if body.Error == nil {
		return ""
	}
	return body.Error.Code
}

func protectedRouter(auth *service.AuthService) *gin.Engine {
	r := gin.New()
	api := r.Group("/api", RequireAuth(auth), CheckSession(auth))
	api.GET("/lectures", RequirePermission(model.PermissionLecturesRead), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": GetActor(c).UserID})
	})
	api.POST("/feedback", RequireRole(model.RoleStudent), func(c *gin.Context) { c.Status(http.StatusCreated) })
	api.POST("/feedback/send", RequirePermission(model.PermissionFeedbackWrite), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func do(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	auth, _ := newAuth(t)
	r := protectedRouter(auth)

	if w := do(r, http.MethodGet, "/api/lectures", ""); w.Code != http.StatusUnauthorized || errorCode(t, w) != response.ErrTokenRequired {
		t.Errorf("missing token: %d %s", w.Code, w.Body)
	}
	if w := do(r, http.MethodGet, "/api/lectures", "garbage"); w.Code != http.StatusUnauthorized || errorCode(t, w) != response.ErrTokenInvalid {
		t.Errorf("bad token: %d %s", w.Code, w.Body)
	}

	w := do(r, http.MethodGet, "/api/lectures", login(t, auth, "tutor@example.com"))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"user":4`) {
		t.Errorf("tutor: %d %s", w.Code, w.Body)
	}
}

func TestCheckSessionRejectsReplacedToken(t *testing.T) {
	auth, sessions := newAuth(t)
	r := protectedRouter(auth)

	old := login(t, auth, "tutor@example.com")
	_ = login(t, auth, "tutor@example.com")

	if w := do(r, http.MethodGet, "/api/lectures", old); w.Code != http.StatusUnauthorized || errorCode(t, w) != response.ErrSessionInvalidated {
		t.Errorf("replaced token: %d %s", w.Code, w.Body)
	}

	delete(sessions, 4)
	if w := do(r, http.MethodGet, "/api/lectures", old); errorCode(t, w) != response.ErrSessionInvalidated {
		t.Errorf("reset session: %d %s", w.Code, w.Body)
	}
}

func TestPermissionAndRoleChecks(t *testing.T) {
	auth, _ := newAuth(t)
	r := protectedRouter(auth)
	student := login(t, auth, "student@example.com")
	tutor := login(t, auth, "tutor@example.com")

	if w := do(r, http.MethodGet, "/api/lectures", student); w.Code != http.StatusForbidden || errorCode(t, w) != response.ErrPermissionDenied {
		t.Errorf("student reading lectures admin view: %d %s", w.Code, w.Body)
	}
	if w := do(r, http.MethodPost, "/api/feedback", tutor); w.Code != http.StatusForbidden || errorCode(t, w) != response.ErrStudentOnly {
		t.Errorf("tutor submitting feedback: %d %s", w.Code, w.Body)
	}
	if w := do(r, http.MethodPost, "/api/feedback", student); w.Code != http.StatusCreated {
		t.Errorf("student feedback: %d %s", w.Code, w.Body)
	}
	if w := do(r, http.MethodPost, "/api/feedback/send", student); w.Code != http.StatusNoContent {
		t.Errorf("student feedback permission: %d %s", w.Code, w.Body)
	}
	if w := do(r, http.MethodPost, "/api/feedback/send", tutor); w.Code != http.StatusForbidden {
		t.Errorf("tutor feedback permission: %d %s", w.Code, w.Body)
	}
}

func TestRequireWSAuthReadsQuery(t *testing.T) {
	auth, _ := newAuth(t)
	r := gin.New()
	r.GET("/ws", RequireWSAuth(auth), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	if w := do(r, http.MethodGet, "/ws", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("no token: %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/ws?token="+login(t, auth, "tutor@example.com"), ""); w.Code != http.StatusNoContent {
		t.Errorf("query token: %d %s", w.Code, w.Body)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter("test", 2, time.Minute)
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	r := gin.New()
	r.POST("/login", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 3)
	var last *httptest.ResponseRecorder
	for i := range codes {
		last = do(r, http.MethodPost, "/login", "")
		codes[i] = last.Code
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("codes = %v", codes)
	}
	if got := last.Header().Get("Retry-After"); got != "30" {
		t.Errorf("Retry-After = %q, want 30", got)
	}

	// One token refills every 30 seconds.
	now = now.Add(30 * time.Second)
	if w := do(r, http.MethodPost, "/login", ""); w.Code != http.StatusOK {
		t.Errorf("after refill: %d", w.Code)
	}
	if w := do(r, http.MethodPost, "/login", ""); w.Code != http.StatusTooManyRequests {
		t.Errorf("bucket should be empty again: %d", w.Code)
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter("test", 1, time.Minute)
	now := time.Now()
	rl.now = func() time.Time { return now }

	rl.allow("10.0.0.1")
	now = now.Add(visitorTTL + time.Second)
	rl.cleanup()

	if len(rl.visitors) != 0 {
		t.Errorf("visitors = %d, want 0", len(rl.visitors))
	}
}

func TestBrotliCompressesLargeBodies(t *testing.T) {
	payload := strings.Repeat("lecture ", 512)
	r := gin.New()
	r.Use(Brotli())
	r.GET("/big", func(c *gin.Context) { c.String(http.StatusOK, payload) })
	r.GET("/small", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/report.xlsx", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", []byte(payload))
	})

	getWith := func(path, accept string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Accept-Encoding", accept)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}
	get := func(path string) *httptest.ResponseRecorder { return getWith(path, "gzip, br") }

	w := get("/big")
	if w.Header().Get("Content-Encoding") != "br" {
		t.Fatalf("expected brotli encoding, headers %v", w.Header())
	}
	plain, err := io.ReadAll(brotli.NewReader(bytes.NewReader(w.Body.Bytes())))
	if err != nil {
		t.Fatal(err)
	}
	if string(plain) != payload {
		t.Error("decompressed body differs")
	}

	if w := get("/small"); w.Header().Get("Content-Encoding") != "" || w.Body.String() != "ok" {
		t.Errorf("small body: %q %v", w.Body.String(), w.Header())
	}
	if w := get("/report.xlsx"); w.Header().Get("Content-Encoding") != "" {
		t.Error("spreadsheets must not be recompressed")
	}
	if w := getWith("/big", "gzip, br;q=0"); w.Header().Get("Content-Encoding") != "" || w.Body.String() != payload {
		t.Error("br;q=0 must disable brotli")
	}
}

func TestCacheHeaders(t *testing.T) {
	r := gin.New()
	r.GET("/uploads/a.pdf", CacheControl(24*time.Hour), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/marks", NoStore(), func(c *gin.Context) { c.Status(http.StatusOK) })

	if got := do(r, http.MethodGet, "/uploads/a.pdf", "").Header().Get("Cache-Control"); got != "public, max-age=86400, immutable" {
		t.Errorf("uploads Cache-Control = %q", got)
	}
	if got := do(r, http.MethodGet, "/api/marks", "").Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("api Cache-Control = %q", got)
	}
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	r := gin.New()
	r.Use(response.RequestIDMiddleware(), AccessLog(zerolog.New(&buf)))
	r.GET("/lectures/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/fail", func(c *gin.Context) { response.Fail(c, http.StatusInternalServerError, response.ErrInternal) })

	req := httptest.NewRequest(http.MethodGet, "/lectures/7", nil)
	req.Header.Set("X-Request-ID", "trace-1")
	r.ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line %q: %v", buf.String(), err)
	}
	if line["route"] != "/lectures/:id" || line["status"] != float64(204) || line["request_id"] != "trace-1" {
		t.Errorf("log line = %v", line)
	}
	if line["level"] != "info" {
		t.Errorf("level = %v", line["level"])
	}

	buf.Reset()
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fail", nil))
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatal(err)
	}
	if line["level"] != "error" || line["errors"] == nil {
		t.Errorf("failure log line = %v", line)
	}
}
