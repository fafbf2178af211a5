package server

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"
)

func stub(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, body)
	})
}

func TestDispatcherRoutesByClassification(t *testing.T) {
	var webHits, rpcHits int32
	web := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&webHits, 1)
		io.WriteString(w, "web")
	})
	rpc := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&rpcHits, 1)
		io.WriteString(w, "rpc")
	})
	h := NewHandler(web, rpc, zap.NewNop())

	t.Run("web by default", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "http://example.com/index.html", nil)
		h.ServeHTTP(w, req)
		if w.Body.String() != "web" {
			t.Errorf("Expected web branch, got %q", w.Body.String())
		}
	})

	t.Run("rpc on grpc content type", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "http://example.com/termcast.v1.TermcastService/OpenSession", nil)
		req.Header.Set("Content-Type", "application/grpc")
		h.ServeHTTP(w, req)
		if w.Body.String() != "rpc" {
			t.Errorf("Expected rpc branch, got %q", w.Body.String())
		}
	})

	t.Run("redirect without touching services", func(t *testing.T) {
		before := atomic.LoadInt32(&webHits) + atomic.LoadInt32(&rpcHits)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "http://example.com/anything?x=1", nil)
		req.Header.Set("X-Forwarded-Proto", "http")
		req.Header.Set("Content-Type", "application/grpc")
		h.ServeHTTP(w, req)

		if w.Code != http.StatusMovedPermanently {
			t.Fatalf("Expected status %d, got %d", http.StatusMovedPermanently, w.Code)
		}
		if loc := w.Header().Get("Location"); loc != "https://example.com/anything?x=1" {
			t.Errorf("Expected https Location, got %q", loc)
		}
		if after := atomic.LoadInt32(&webHits) + atomic.LoadInt32(&rpcHits); after != before {
			t.Error("Redirect request reached a service handler")
		}
	})
}

func TestDispatcherConvertsPanicTo500(t *testing.T) {
	web := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	h := NewHandler(web, stub("rpc"), zap.NewNop())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
	h.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
	if !strings.Contains(w.Body.String(), "internal server error") {
		t.Errorf("Expected generic error body, got %q", w.Body.String())
	}

	// The dispatcher keeps serving after a fault.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "http://example.com/", nil)
	req.Header.Set("Content-Type", "application/grpc")
	h.ServeHTTP(w, req)
	if w.Body.String() != "rpc" {
		t.Errorf("Expected rpc branch after fault, got %q", w.Body.String())
	}
}

func TestDispatcherIsolatesConcurrentFaults(t *testing.T) {
	web := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/boom" {
			panic("boom")
		}
		io.WriteString(w, "ok")
	})
	srv := httptest.NewServer(NewHandler(web, stub("rpc"), zap.NewNop()))
	defer srv.Close()

	const rounds = 25
	var wg sync.WaitGroup
	errs := make(chan error, rounds*2)

	for i := 0; i < rounds; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			resp, err := http.Get(srv.URL + "/boom")
			if err != nil {
				errs <- fmt.Errorf("boom request failed: %w", err)
				return
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusInternalServerError {
				errs <- fmt.Errorf("boom request: expected 500, got %d", resp.StatusCode)
			}
		}()
		go func() {
			defer wg.Done()
			resp, err := http.Get(srv.URL + "/fine")
			if err != nil {
				errs <- fmt.Errorf("fine request failed: %w", err)
				return
			}
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != http.StatusOK || string(body) != "ok" {
				errs <- fmt.Errorf("fine request: got %d %q", resp.StatusCode, body)
			}
		}()
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
