package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_RecordsRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	router := gin.New()
	router.Use(Logger(logger))
	router.GET("/api/sessions", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/api/sessions?limit=5", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 log entry, got %d", len(entries))
	}

	fields := entries[0].ContextMap()
	if fields["method"] != "GET" {
		t.Errorf("Expected method GET, got %v", fields["method"])
	}
	if fields["path"] != "/api/sessions" {
		t.Errorf("Expected path /api/sessions, got %v", fields["path"])
	}
	if fields["query"] != "limit=5" {
		t.Errorf("Expected query limit=5, got %v", fields["query"])
	}
	if fields["status"] != int64(http.StatusOK) {
		t.Errorf("Expected status 200, got %v", fields["status"])
	}
}

func TestLogger_ElevatesLevelByStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	router := gin.New()
	router.Use(Logger(logger))
	router.GET("/missing", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	router.GET("/broken", func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "boom"})
	})

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodGet, "/broken", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("Expected 2 log entries, got %d", len(entries))
	}
	if entries[0].Level != zap.WarnLevel {
		t.Errorf("4xx should log at warn, got %v", entries[0].Level)
	}
	if entries[1].Level != zap.ErrorLevel {
		t.Errorf("5xx should log at error, got %v", entries[1].Level)
	}
}
