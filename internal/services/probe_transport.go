package services

import (
	"net/http"
	"strings"
	"time"

	"slidedeck/internal/logger"
)

const maskedValue = "***[MASKED]***"

// probeTransport logs each verification request at debug level with
// credentials masked.
type probeTransport struct {
	base http.RoundTripper
}

// newProbeTransport wraps base, defaulting to http.DefaultTransport.
func newProbeTransport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &probeTransport{base: base}
}

// RoundTrip implements http.RoundTripper.
func (p *probeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := p.base.RoundTrip(req)
	duration := time.Since(start)

	keyvals := []interface{}{
		"method", req.Method,
		"url", sanitizeURL(req),
		"headers", sanitizeHeaders(req.Header),
		"duration", duration,
	}
	if err != nil {
		logger.Debug("Verification request failed", append(keyvals, "error", err)...)
		return resp, err
	}

	logger.Debug("Verification request", append(keyvals, "status", resp.StatusCode)...)
	return resp, nil
}

// sanitizeHeaders masks headers that may carry credentials.
func sanitizeHeaders(headers http.Header) map[string][]string {
	sanitized := make(map[string][]string, len(headers))

	for name, values := range headers {
		lowerName := strings.ToLower(name)
		if strings.Contains(lowerName, "authorization") ||
			strings.Contains(lowerName, "api-key") ||
			strings.Contains(lowerName, "token") {
			sanitized[name] = []string{maskedValue}
			continue
		}
		sanitized[name] = values
	}

	return sanitized
}

// sanitizeURL drops the query string, which some providers use for keys.
func sanitizeURL(req *http.Request) string {
	if req.URL == nil {
		return ""
	}
	u := *req.URL
	if u.RawQuery != "" {
		u.RawQuery = maskedValue
	}
	u.User = nil
	return u.String()
}
