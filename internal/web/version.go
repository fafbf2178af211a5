// Package web serves the browser-facing surface of the server: the REST
// API under /api, the viewer WebSocket, Prometheus metrics and static
// assets for the terminal page.
package web

// Version is the build version, stamped at release time via
// -ldflags "-X github.com/termcastio/termcast-server/internal/web.Version=...".
var Version = "dev"

// APIVersion represents the current viewer API supported by this server.
// This allows web frontends to auto-detect capabilities.
//
// The api_version field in /api/status indicates what features are
// available; endpoints themselves carry no version prefix.
const (
	// APIVersion1 is the original viewer API: session listing, history,
	// and the JSON WebSocket protocol at /api/s/:name.
	APIVersion1 = 1

	// CurrentAPIVersion is the highest API version supported by this server.
	CurrentAPIVersion = APIVersion1
)

// StatusResponse is the response from the /api/status endpoint.
type StatusResponse struct {
	Status     string `json:"status"`
	Service    string `json:"service"`
	Version    string `json:"version"`
	APIVersion int    `json:"api_version"`
	Sessions   int    `json:"sessions"`
	Viewers    int    `json:"viewers"`
}
