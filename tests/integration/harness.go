// Package integration boots the complete server (dispatcher, gRPC and
// web services, session registry, history store) on a loopback listener
// and exercises it the way real clients do: gRPC over cleartext HTTP/2,
// WebSockets and plain HTTP on the one shared port.
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/termcastio/termcast-server/internal/rpc"
	"github.com/termcastio/termcast-server/internal/rpc/termcastpb"
	"github.com/termcastio/termcast-server/internal/server"
	"github.com/termcastio/termcast-server/internal/session"
	"github.com/termcastio/termcast-server/internal/storage/memory"
	"github.com/termcastio/termcast-server/internal/web"
	"github.com/termcastio/termcast-server/pkg/config"
)

// TestHarness runs the full server stack for one test and offers helper
// methods for HTTP, WebSocket and gRPC clients against it.
type TestHarness struct {
	T        *testing.T
	Config   *config.Config
	Registry *session.Registry
	History  *memory.Store
	Hub      *web.Hub
	Logger   *zap.Logger

	// Client does not follow redirects, so tests can assert on 301s.
	Client *http.Client

	// Addr is the loopback address the server listens on; BaseURL is its
	// http:// form.
	Addr    string
	BaseURL string

	// RPC is a gRPC client connected through the shared port.
	RPC termcastpb.TermcastServiceClient

	// GRPCConn is the underlying client connection, for reflection tests.
	GRPCConn *grpc.ClientConn

	stop   context.CancelFunc
	runErr chan error
}

// TestHarnessOption configures the test harness
type TestHarnessOption func(*TestHarness)

// WithConfig sets a custom config for the test harness
func WithConfig(cfg *config.Config) TestHarnessOption {
	return func(h *TestHarness) {
		h.Config = cfg
	}
}

// defaultTestConfig is permissive enough that tests never trip the rate
// limiter by accident; a dedicated test opts into a strict one.
func defaultTestConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:              "127.0.0.1",
			Port:              0,
			DrainTimeout:      5,
			ReadHeaderTimeout: 5,
			IdleTimeout:       60,
		},
		Logging: config.LoggingConfig{Level: "info", Format: "json"},
		Session: config.SessionConfig{
			TokenSecret:  "integration-test-secret",
			BufferSize:   4096,
			MaxShells:    8,
			InputBacklog: 16,
		},
		RateLimit: config.RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 500,
			Burst:             1000,
		},
		Storage: config.StorageConfig{Type: "memory"},
		CORS:    config.CORSConfig{AllowedOrigins: []string{"*"}},
		Metrics: config.MetricsConfig{Enabled: true},
	}
}

// NewTestHarness boots the full server on a loopback listener and blocks
// until it accepts connections.
func NewTestHarness(t *testing.T, opts ...TestHarnessOption) *TestHarness {
	t.Helper()

	logger, _ := zap.NewDevelopment()

	h := &TestHarness{
		T:      t,
		Logger: logger,
		Client: &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}

	// Apply options
	for _, opt := range opts {
		opt(h)
	}

	if h.Config == nil {
		h.Config = defaultTestConfig()
	}

	h.History = memory.NewStore()

	registry, err := session.NewRegistry(h.Config.Session, h.History, logger)
	if err != nil {
		t.Fatalf("Failed to create session registry: %v", err)
	}
	h.Registry = registry

	h.Hub = web.NewHub(registry, logger)
	router := web.NewRouter(h.Config, registry, h.History, h.Hub, logger)
	grpcServer := rpc.NewServer(h.Config, registry, logger)

	srv := server.New(h.Config, router, grpcServer, logger,
		h.Hub,
		server.DrainerFunc(func(ctx context.Context) { registry.CloseAll(ctx) }),
	)

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to bind loopback listener: %v", err)
	}
	h.Addr = lis.Addr().String()
	h.BaseURL = "http://" + h.Addr

	ctx, cancel := context.WithCancel(context.Background())
	h.stop = cancel
	h.runErr = make(chan error, 1)
	go func() { h.runErr <- srv.Run(ctx, lis) }()

	h.waitReady()

	conn, err := grpc.NewClient(h.Addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("Failed to create gRPC client: %v", err)
	}
	h.GRPCConn = conn
	h.RPC = termcastpb.NewTermcastServiceClient(conn)

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		select {
		case err := <-h.runErr:
			h.runErr <- err
		case <-time.After(10 * time.Second):
			t.Error("Server did not stop within 10s")
		}
	})

	return h
}

// waitReady blocks until the listener accepts connections.
func (h *TestHarness) waitReady() {
	h.T.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for {
		conn, err := net.DialTimeout("tcp", h.Addr, 100*time.Millisecond)
		if err == nil {
			conn.Close()
			return
		}
		if time.Now().After(deadline) {
			h.T.Fatalf("Server never started accepting: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

// Shutdown fires the shutdown signal and waits for the drain to finish,
// returning Run's result. Safe to call more than once.
func (h *TestHarness) Shutdown() error {
	h.T.Helper()
	h.stop()
	select {
	case err := <-h.runErr:
		h.runErr <- err
		return err
	case <-time.After(10 * time.Second):
		h.T.Fatal("Shutdown did not complete within 10s")
		return nil
	}
}

// OpenSession opens a session through the gRPC surface and fails the test
// on error. An empty name asks the server to generate one.
func (h *TestHarness) OpenSession(ctx context.Context, name string) *termcastpb.OpenSessionResponse {
	h.T.Helper()
	resp, err := h.RPC.OpenSession(ctx, &termcastpb.OpenSessionRequest{
		Origin:      "https://" + h.Addr,
		SessionName: name,
	})
	if err != nil {
		h.T.Fatalf("OpenSession failed: %v", err)
	}
	return resp
}

// DialViewer opens a WebSocket viewer for the named session.
func (h *TestHarness) DialViewer(name string) *websocket.Conn {
	h.T.Helper()
	ws, _, err := websocket.DefaultDialer.Dial("ws://"+h.Addr+"/api/s/"+name, nil)
	if err != nil {
		h.T.Fatalf("Viewer dial failed: %v", err)
	}
	h.T.Cleanup(func() { _ = ws.Close() })
	return ws
}

// ReadViewerFrame reads one JSON frame from a viewer connection.
func (h *TestHarness) ReadViewerFrame(ws *websocket.Conn) web.ServerMessage {
	h.T.Helper()
	_ = ws.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg web.ServerMessage
	if err := ws.ReadJSON(&msg); err != nil {
		h.T.Fatalf("Viewer read failed: %v", err)
	}
	return msg
}

// GET makes a GET request against the server.
func (h *TestHarness) GET(path string) *Response {
	h.T.Helper()
	req, err := http.NewRequest(http.MethodGet, h.BaseURL+path, nil)
	if err != nil {
		h.T.Fatalf("Failed to create request: %v", err)
	}
	return h.Do(req)
}

// Do executes an HTTP request and returns a Response wrapper
func (h *TestHarness) Do(req *http.Request) *Response {
	h.T.Helper()

	resp, err := h.Client.Do(req)
	if err != nil {
		h.T.Fatalf("Request failed: %v", err)
	}

	return &Response{
		T:        h.T,
		Response: resp,
	}
}

// Response wraps an HTTP response with assertion helpers
type Response struct {
	T        *testing.T
	Response *http.Response
	body     []byte
	bodyRead bool
}

// Body returns the response body as bytes
func (r *Response) Body() []byte {
	r.T.Helper()
	if !r.bodyRead {
		var err error
		r.body, err = io.ReadAll(r.Response.Body)
		if err != nil {
			r.T.Fatalf("Failed to read response body: %v", err)
		}
		r.Response.Body.Close()
		r.bodyRead = true
	}
	return r.body
}

// JSON unmarshals the response body into the given target
func (r *Response) JSON(target interface{}) *Response {
	r.T.Helper()
	if err := json.Unmarshal(r.Body(), target); err != nil {
		r.T.Fatalf("Failed to unmarshal response: %v\nBody: %s", err, string(r.Body()))
	}
	return r
}

// Status asserts the response status code
func (r *Response) Status(expected int) *Response {
	r.T.Helper()
	if r.Response.StatusCode != expected {
		r.T.Errorf("Expected status %d, got %d\nBody: %s", expected, r.Response.StatusCode, string(r.Body()))
	}
	return r
}

// Header returns the value of a response header
func (r *Response) Header(name string) string {
	return r.Response.Header.Get(name)
}

// BodyContains asserts the response body contains a substring
func (r *Response) BodyContains(substr string) *Response {
	r.T.Helper()
	if !bytes.Contains(r.Body(), []byte(substr)) {
		r.T.Errorf("Expected body to contain %q\nBody: %s", substr, string(r.Body()))
	}
	return r
}
