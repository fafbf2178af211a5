package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"
)

// redirectHandler answers requests that arrived over plaintext behind a
// TLS-terminating proxy with a permanent redirect to the HTTPS
// equivalent of the same URL.
type redirectHandler struct {
	logger *zap.Logger
}

func (h *redirectHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	target, err := httpsURL(r)
	if err != nil {
		h.logger.Warn("Rejecting plaintext request",
			zap.String("method", r.Method),
			zap.String("uri", r.RequestURI),
			zap.Error(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.logger.Info("Redirecting plaintext request",
		zap.String("method", r.Method),
		zap.String("uri", r.RequestURI))
	http.Redirect(w, r, target, http.StatusMovedPermanently)
}

// httpsURL rebuilds the request URL with scheme https and the authority
// from the Host header, preserving path and query exactly. The request
// body is never read.
func httpsURL(r *http.Request) (string, error) {
	if r.Host == "" {
		return "", errors.New("missing host for redirect")
	}
	if !validAuthority(r.Host) {
		return "", fmt.Errorf("invalid host %q for redirect", r.Host)
	}
	return "https://" + r.Host + r.URL.RequestURI(), nil
}

// validAuthority reports whether host can stand as the authority of an
// absolute URL without changing meaning: no path, userinfo, query or
// fragment may leak out of it.
func validAuthority(host string) bool {
	u, err := url.Parse("https://" + host)
	if err != nil {
		return false
	}
	return u.Host == host && u.Path == "" && u.User == nil && u.RawQuery == "" && u.Fragment == ""
}
