package server

import (
	"net/http"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// The plaintext marker must win over every other header: a client
// spoofing a gRPC content-type over plaintext is still redirected.
func TestClassifyPrecedenceProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("forwarded-proto http always redirects", prop.ForAll(
		func(contentType, extraKey, extraValue string) bool {
			h := http.Header{}
			h.Set("X-Forwarded-Proto", "http")
			h.Set("Content-Type", contentType)
			if extraKey != "" && http.CanonicalHeaderKey(extraKey) != "X-Forwarded-Proto" {
				h.Set(extraKey, extraValue)
			}
			return Classify(h) == RouteRedirect
		},
		gen.AnyString(),
		gen.AlphaString(),
		gen.AnyString(),
	))

	properties.Property("grpc content-type without plaintext marker is rpc", prop.ForAll(
		func(proto string) bool {
			h := http.Header{}
			if proto != "" {
				h.Set("X-Forwarded-Proto", proto)
			}
			h.Set("Content-Type", "application/grpc")
			if proto == "http" {
				return Classify(h) == RouteRedirect
			}
			return Classify(h) == RouteRPC
		},
		gen.OneGenOf(
			gen.OneConstOf("", "https", "HTTP", "Http", "tcp", "wss"),
			gen.AnyString(),
		),
	))

	properties.Property("anything else is web", prop.ForAll(
		func(contentType string) bool {
			if contentType == "application/grpc" {
				return true
			}
			h := http.Header{}
			h.Set("Content-Type", contentType)
			return Classify(h) == RouteWeb
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

// Classification is total and deterministic: every header set maps to
// exactly one of the three routes, and repeated calls agree.
func TestClassifyTotalityProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("every request maps to exactly one route", prop.ForAll(
		func(proto, contentType string) bool {
			h := http.Header{}
			if proto != "" {
				h.Set("X-Forwarded-Proto", proto)
			}
			if contentType != "" {
				h.Set("Content-Type", contentType)
			}

			first := Classify(h)
			if first != RouteWeb && first != RouteRPC && first != RouteRedirect {
				return false
			}
			return Classify(h) == first
		},
		gen.AnyString(),
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
