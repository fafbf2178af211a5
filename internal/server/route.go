package server

import "net/http"

// Route identifies the service that handles a request.
type Route int

const (
	// RouteWeb serves browser traffic: static assets, the JSON API and
	// WebSocket upgrades. It is the catch-all branch.
	RouteWeb Route = iota
	// RouteRPC serves gRPC traffic from command-line clients.
	RouteRPC
	// RouteRedirect answers plaintext requests seen behind a
	// TLS-terminating proxy with a permanent redirect to HTTPS.
	RouteRedirect
)

func (r Route) String() string {
	switch r {
	case RouteRPC:
		return "rpc"
	case RouteRedirect:
		return "redirect"
	default:
		return "web"
	}
}

// Classify selects the route for a request from its headers alone. It is
// pure and total: every request maps to exactly one route.
//
// The forwarded-proto check runs before the content-type check so that a
// plaintext request is redirected even when it carries a gRPC
// content-type; an unencrypted RPC call must never be served. Do not
// reorder the checks.
//
// Header names are case-insensitive per http.Header; the values are
// matched exactly.
func Classify(h http.Header) Route {
	if h.Get("X-Forwarded-Proto") == "http" {
		return RouteRedirect
	}
	if h.Get("Content-Type") == "application/grpc" {
		return RouteRPC
	}
	return RouteWeb
}
