package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/termcastio/termcast-server/internal/metrics"
)

// dispatcher is the single handler behind the listener. Both services
// reach it as plain http.Handlers: that one interface is the uniform
// response shape, whatever each service uses internally.
type dispatcher struct {
	web      http.Handler
	rpc      http.Handler
	redirect http.Handler
	logger   *zap.Logger
}

// NewHandler wires the three branches behind the classifier and wraps
// the result in h2c so cleartext HTTP/2 (gRPC) and HTTP/1.1 (browsers)
// share one port.
func NewHandler(web, rpc http.Handler, logger *zap.Logger) http.Handler {
	d := &dispatcher{
		web:      web,
		rpc:      rpc,
		redirect: &redirectHandler{logger: logger.Named("redirect")},
		logger:   logger.Named("dispatch"),
	}
	return h2c.NewHandler(d, &http2.Server{})
}

func (d *dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	route := Classify(r.Header)

	start := time.Now()
	defer func() {
		metrics.RecordRequest(route.String(), time.Since(start))
	}()

	// A fault in one handler must stay on this request: respond 500 and
	// keep serving. Sibling connections never notice.
	defer func() {
		if rec := recover(); rec != nil {
			d.logger.Error("Handler panicked",
				zap.String("route", route.String()),
				zap.String("method", r.Method),
				zap.String("uri", r.RequestURI),
				zap.Any("panic", rec),
				zap.Stack("stack"))
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	}()

	switch route {
	case RouteRedirect:
		d.redirect.ServeHTTP(w, r)
	case RouteRPC:
		d.rpc.ServeHTTP(w, r)
	default:
		d.web.ServeHTTP(w, r)
	}
}
