package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func newRedirectHandler() *redirectHandler {
	return &redirectHandler{logger: zap.NewNop()}
}

func TestRedirectPreservesPathAndQuery(t *testing.T) {
	h := newRedirectHandler()

	req := httptest.NewRequest(http.MethodGet, "http://example.com/a/b?q=1", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusMovedPermanently {
		t.Fatalf("Expected status %d, got %d", http.StatusMovedPermanently, w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "https://example.com/a/b?q=1" {
		t.Errorf("Expected Location https://example.com/a/b?q=1, got %q", loc)
	}
}

func TestRedirectPreservesEscaping(t *testing.T) {
	h := newRedirectHandler()

	req := httptest.NewRequest(http.MethodGet, "http://example.com/a%20b?x=%2Fy", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if loc := w.Header().Get("Location"); loc != "https://example.com/a%20b?x=%2Fy" {
		t.Errorf("Expected escaped Location, got %q", loc)
	}
}

func TestRedirectKeepsPort(t *testing.T) {
	h := newRedirectHandler()

	req := httptest.NewRequest(http.MethodGet, "http://example.com:8443/path", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if loc := w.Header().Get("Location"); loc != "https://example.com:8443/path" {
		t.Errorf("Expected port preserved in Location, got %q", loc)
	}
}

func TestRedirectRootPath(t *testing.T) {
	h := newRedirectHandler()

	req := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if loc := w.Header().Get("Location"); loc != "https://example.com/" {
		t.Errorf("Expected Location https://example.com/, got %q", loc)
	}
}

func TestRedirectMissingHost(t *testing.T) {
	h := newRedirectHandler()

	req := httptest.NewRequest(http.MethodGet, "/path", nil)
	req.Host = ""
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
	if !strings.Contains(w.Body.String(), "missing host") {
		t.Errorf("Expected missing-host error, got %q", w.Body.String())
	}
}

func TestRedirectInvalidHost(t *testing.T) {
	h := newRedirectHandler()

	hosts := []string{
		"bad host",
		"example.com/evil",
		"user@example.com",
		"example.com?q=1",
		"example.com#f",
	}
	for _, host := range hosts {
		t.Run(host, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/path", nil)
			req.Host = host
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("Host %q: expected status %d, got %d (Location %q)",
					host, http.StatusBadRequest, w.Code, w.Header().Get("Location"))
			}
		})
	}
}

type trackingReader struct {
	read bool
}

func (r *trackingReader) Read(p []byte) (int, error) {
	r.read = true
	return 0, io.EOF
}

func TestRedirectDoesNotReadBody(t *testing.T) {
	h := newRedirectHandler()

	body := &trackingReader{}
	req := httptest.NewRequest(http.MethodPost, "http://example.com/upload", body)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusMovedPermanently {
		t.Fatalf("Expected status %d, got %d", http.StatusMovedPermanently, w.Code)
	}
	if body.read {
		t.Error("Request body was read while building the redirect")
	}
}
