package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"soundwave/internal/config"
	"soundwave/internal/logging"
	"soundwave/internal/middleware"
	"soundwave/internal/monitoring"
	"soundwave/internal/services"
	"soundwave/internal/store/memory"
	"soundwave/internal/utils"
)

const (
	testJWTSecret     = "soundwave_test_jwt_secret_key_1234567890"
	testMonitoringKey = "monitor-key"
)

type testServer struct {
	router *gin.Engine
	store  *memory.Store
	tokens *utils.TokenManager
}

func setupTestServer(t *testing.T, monitoringKey string) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := utils.NewTokenManager(testJWTSecret, utils.DefaultTokenTTL)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	st := memory.New()
	h := New(Options{
		Auth:          services.NewAuth(st, tokens),
		Catalog:       services.NewCatalog(st),
		Playlists:     services.NewPlaylists(st),
		Monitor:       monitoring.NewService(time.Now(), st, config.DriverMemory),
		Logger:        logging.Discard(),
		CookieSecure:  true,
		MonitoringKey: monitoringKey,
		Version:       "test",
	})

	router := gin.New()
	h.Mount(router, middleware.AuthMiddleware(tokens))
	return &testServer{router: router, store: st, tokens: tokens}
}

func (s *testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json.Marshal: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	s.router.ServeHTTP(resp, req)
	return resp
}

// signUp registers and logs in a user, returning its id and token.
func (s *testServer) signUp(t *testing.T, email string) (string, string) {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/api/user/signup", map[string]string{
		"name":     "Listener",
		"email":    email,
		"password": "Secret123",
	}, "")
	mustStatus(t, resp.Code, http.StatusCreated)

	resp = s.do(t, http.MethodPost, "/api/user/login", map[string]string{
		"email":    email,
		"password": "Secret123",
	}, "")
	expectHTTP200(t, resp.Code)

	out := decode(t, resp)
	user, _ := out["user"].(map[string]any)
	userID, _ := user["id"].(string)
	token, _ := out["token"].(string)
	if userID == "" || token == "" {
		t.Fatalf("login response missing user id or token: %v", out)
	}
	return userID, token
}

func (s *testServer) saveSong(t *testing.T, token, name string) string {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/api/user/saveSong", map[string]string{
		"name":     name,
		"imageURL": "https://img.example/" + name + ".png",
		"songURL":  "https://cdn.example/" + name + ".mp3",
		"artist":   "Someone",
		"language": "en",
	}, token)
	expectHTTP200(t, resp.Code)

	song, _ := decode(t, resp)["song"].(map[string]any)
	id, _ := song["id"].(string)
	if id == "" {
		t.Fatalf("saveSong returned no id")
	}
	return id
}

func decode(t *testing.T, resp *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("json.Unmarshal(%s): %v", resp.Body.String(), err)
	}
	return out
}

func expectMessage(t *testing.T, resp *httptest.ResponseRecorder, want string) {
	t.Helper()
	if got, _ := decode(t, resp)["message"].(string); got != want {
		t.Fatalf("expected message %q, got %q", want, got)
	}
}

func expectLegacyError(t *testing.T, resp *httptest.ResponseRecorder, want string) {
	t.Helper()
	out := decode(t, resp)
	if success, _ := out["success"].(bool); success {
		t.Fatalf("expected success=false, got %v", out)
	}
	if got, _ := out["msg"].(string); got != want {
		t.Fatalf("expected msg %q, got %q", want, got)
	}
}

func mustStatus(t *testing.T, actual int, expected int) {
	t.Helper()
	if actual != expected {
		t.Fatalf("expected status %d, got %d", expected, actual)
	}
}

func expectHTTP200(t *testing.T, status int) {
	t.Helper()
	mustStatus(t, status, http.StatusOK)
}
