package logger

import (
	"net/http"
	"time"
)

// RequestIDHeader carries the per-request correlation id
const RequestIDHeader = "X-Request-ID"

// slowRequest is the duration above which a request is reported as slow
const slowRequest = 5 * time.Second

// Transport is an http.RoundTripper that logs outgoing API requests
type Transport struct {
	// Base performs the request; http.DefaultTransport when nil
	Base http.RoundTripper
	// Logger receives the entries; the global logger when nil
	Logger *Logger
}

// NewTransport wraps base with request logging
func NewTransport(base http.RoundTripper, logger *Logger) *Transport {
	return &Transport{Base: base, Logger: logger}
}

// RoundTrip implements http.RoundTripper
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	reqLogger := t.logger().WithFields(map[string]interface{}{
		"method":     req.Method,
		"host":       req.URL.Host,
		"path":       req.URL.Path,
		"request_id": req.Header.Get(RequestIDHeader),
	})
	reqLogger.Debug("Request sent")

	resp, err := t.base().RoundTrip(req)
	duration := time.Since(start)
	reqLogger = reqLogger.WithDuration(duration)

	if err != nil {
		reqLogger.WithError(err).Warn("Request failed")
		return nil, err
	}

	reqLogger = reqLogger.WithField("status", resp.StatusCode)

	// Log based on status code
	switch {
	case resp.StatusCode >= 500:
		reqLogger.Warn("Request failed with server error")
	case resp.StatusCode >= 400:
		reqLogger.Warn("Request failed with client error")
	default:
		reqLogger.Info("Request completed")
	}

	if duration > slowRequest {
		reqLogger.Warnf("Slow request detected: %v", duration)
	}

	return resp, nil
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

func (t *Transport) logger() *Logger {
	if t.Logger != nil {
		return t.Logger
	}
	return GetLogger()
}
