// Package server implements the hybrid protocol dispatcher: one
// listener and one port serving three structurally different kinds of
// traffic.
//
// Every inbound request is classified from its headers alone, first
// match wins:
//
//	x-forwarded-proto: http         -> permanent redirect to HTTPS
//	content-type: application/grpc  -> the gRPC service
//	anything else                   -> the web service
//
// The forwarded-proto check runs first so a plaintext request behind a
// TLS-terminating proxy is always redirected, whatever its payload
// claims to be. Classification is per request, so streams multiplexed
// on one HTTP/2 connection may land on different branches.
//
// Both services reach this package as plain http.Handlers; gRPC rides
// the same http.Server through h2c. A panic inside either branch is
// caught at the dispatch boundary and answered with a 500 on that
// request alone.
//
// Shutdown follows accepting -> draining -> stopped: cancelling the run
// context closes the listener immediately, registered Drainers wind
// down hijacked and session-bound work, and in-flight requests finish
// before Run returns.
package server
