package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/termcastio/termcast-server/internal/session"
	"github.com/termcastio/termcast-server/internal/storage/memory"
	"github.com/termcastio/termcast-server/pkg/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testWebConfig() *config.Config {
	return &config.Config{
		Logging: config.LoggingConfig{Level: "info"},
		Session: config.SessionConfig{
			TokenSecret:  "web-test-secret",
			BufferSize:   4096,
			MaxShells:    4,
			InputBacklog: 8,
		},
	}
}

func setupTestHandlers(t *testing.T) (*Handlers, *session.Registry, *memory.Store, *gin.Engine) {
	t.Helper()
	logger := zap.NewNop()
	cfg := testWebConfig()

	store := memory.NewStore()
	registry, err := session.NewRegistry(cfg.Session, store, logger)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	t.Cleanup(func() { registry.CloseAll(context.Background()) })

	hub := NewHub(registry, logger)
	handlers := NewHandlers(cfg, registry, store, hub, logger)

	router := gin.New()
	return handlers, registry, store, router
}

func TestHandlers_Status(t *testing.T) {
	handlers, registry, _, router := setupTestHandlers(t)
	router.GET("/api/status", handlers.Status)

	if _, _, err := registry.Open("https://cli.example", "demo"); err != nil {
		t.Fatalf("Open: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var response StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if response.Status != "ok" {
		t.Errorf("Expected status 'ok', got %v", response.Status)
	}
	if response.Service != "termcast-server" {
		t.Errorf("Expected service 'termcast-server', got %v", response.Service)
	}
	if response.APIVersion != CurrentAPIVersion {
		t.Errorf("Expected api_version %d, got %d", CurrentAPIVersion, response.APIVersion)
	}
	if response.Sessions != 1 {
		t.Errorf("Expected 1 live session, got %d", response.Sessions)
	}
}

func TestHandlers_GetVersion(t *testing.T) {
	handlers, _, _, router := setupTestHandlers(t)
	router.GET("/api/version", handlers.GetVersion)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response["version"] != Version {
		t.Errorf("Expected version %q, got %v", Version, response["version"])
	}
}

func TestHandlers_ListSessions(t *testing.T) {
	handlers, registry, _, router := setupTestHandlers(t)
	router.GET("/api/sessions", handlers.ListSessions)

	for _, name := range []string{"alpha", "beta"} {
		if _, _, err := registry.Open("https://cli.example", name); err != nil {
			t.Fatalf("Open(%q): %v", name, err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/sessions", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var response struct {
		Sessions []session.Summary `json:"sessions"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(response.Sessions) != 2 {
		t.Fatalf("Expected 2 sessions, got %d", len(response.Sessions))
	}

	names := map[string]bool{}
	for _, s := range response.Sessions {
		names[s.Name] = true
	}
	if !names["alpha"] || !names["beta"] {
		t.Errorf("Expected sessions alpha and beta, got %v", names)
	}
}

func TestHandlers_GetSession(t *testing.T) {
	handlers, registry, _, router := setupTestHandlers(t)
	router.GET("/api/sessions/:name", handlers.GetSession)

	sess, _, err := registry.Open("https://cli.example", "demo")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := sess.OpenShell(1, 24, 80); err != nil {
		t.Fatalf("OpenShell: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/sessions/demo", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var response struct {
		Name   string              `json:"name"`
		Shells []session.ShellInfo `json:"shells"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response.Name != "demo" {
		t.Errorf("Expected name 'demo', got %q", response.Name)
	}
	if len(response.Shells) != 1 || response.Shells[0].ID != 1 {
		t.Errorf("Expected one shell with id 1, got %+v", response.Shells)
	}
}

func TestHandlers_GetSessionNotFound(t *testing.T) {
	handlers, _, _, router := setupTestHandlers(t)
	router.GET("/api/sessions/:name", handlers.GetSession)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/sessions/nosuch", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestHandlers_History(t *testing.T) {
	handlers, registry, _, router := setupTestHandlers(t)
	router.GET("/api/sessions/history", handlers.History)

	_, token, err := registry.Open("https://cli.example", "finished")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := registry.Close(context.Background(), "finished", token); err != nil {
		t.Fatalf("Close: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/sessions/history", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var response struct {
		Records []session.Record `json:"records"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(response.Records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(response.Records))
	}
	if response.Records[0].Name != "finished" {
		t.Errorf("Expected record for 'finished', got %q", response.Records[0].Name)
	}
}

func TestHandlers_HistoryEmptyIsArray(t *testing.T) {
	handlers, _, _, router := setupTestHandlers(t)
	router.GET("/api/sessions/history", handlers.History)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/sessions/history", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
	// An empty history must serialize as [], not null.
	var response map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if string(response["records"]) != "[]" {
		t.Errorf("Expected empty array, got %s", response["records"])
	}
}

func TestHandlers_HistoryRejectsBadLimit(t *testing.T) {
	handlers, _, _, router := setupTestHandlers(t)
	router.GET("/api/sessions/history", handlers.History)

	for _, limit := range []string{"abc", "0", "-5"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/sessions/history?limit="+limit, nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("limit=%s: expected status %d, got %d", limit, http.StatusBadRequest, w.Code)
		}
	}
}
