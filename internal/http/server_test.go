package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ritmo/internal/auth"
	"ritmo/internal/dashboard"
	"ritmo/internal/services"
	"ritmo/internal/store/memory"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestServer(t *testing.T) *Server {
	t.Helper()
	st := memory.New()
	authSvc := auth.NewService(st, testSecret, time.Hour)
	records := services.NewRecordService(st, nil)
	agg := dashboard.New(st)
	s := NewServer(":0", authSvc, records, agg)
	t.Cleanup(func() { s.rateLimiter.stop() })
	return s
}

func doJSON(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)
	return rec
}

// registerAndLogin creates an account through the API and returns a usable
// bearer token.
func registerAndLogin(t *testing.T, s *Server, username string) string {
	t.Helper()
	creds := map[string]string{"username": username, "password": "hunter2hunter2"}

	rec := doJSON(t, s, http.MethodPost, "/api/auth/register", "", creds)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: status %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, s, http.MethodPost, "/api/auth/login", "", creds)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: status %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("empty token")
	}
	return resp.Token
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		rec := doJSON(t, s, http.MethodGet, path, "", nil)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status %d", path, rec.Code)
		}
	}
}

func TestRecordEndpointsRequireToken(t *testing.T) {
	s := newTestServer(t)

	paths := []string{"/api/meditation", "/api/reading", "/api/reflection", "/api/plan", "/api/dashboard"}
	for _, path := range paths {
		rec := doJSON(t, s, http.MethodGet, path, "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s without token: status %d, want 401", path, rec.Code)
		}
		rec = doJSON(t, s, http.MethodGet, path, "not-a-real-token", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s with garbage token: status %d, want 401", path, rec.Code)
		}
	}
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)
	token := registerAndLogin(t, s, "alice")

	rec := doJSON(t, s, http.MethodDelete, "/api/meditation", token, nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status %d, want 405", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != "GET, POST" {
		t.Errorf("Allow = %q", allow)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/auth/register", "", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("register GET: status %d, want 405", rec.Code)
	}
}

func TestSecurityHeadersSet(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/auth/login", "", map[string]string{})
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q", got)
	}
}

func TestRateLimiterAllows60PerMinute(t *testing.T) {
	rl := newRateLimiter()
	defer rl.stop()

	for i := 0; i < 60; i++ {
		if !rl.allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.allow("1.2.3.4") {
		t.Error("request 61 should be rejected")
	}
	// Other clients are unaffected.
	if !rl.allow("5.6.7.8") {
		t.Error("fresh client should be allowed")
	}
}
