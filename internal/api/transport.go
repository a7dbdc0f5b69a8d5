package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"lumincoin/internal/log"
)

// HeaderRequestID tags each outgoing request for correlation in backend logs.
const HeaderRequestID = "X-Request-ID"

// loggingTransport stamps a request ID on each request and logs its outcome.
type loggingTransport struct {
	next   http.RoundTripper
	logger *log.Logger
}

func newTransport(next http.RoundTripper, logger *log.Logger) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	if _, ok := next.(*loggingTransport); ok {
		return next
	}
	return &loggingTransport{next: next, logger: logger}
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	requestID := req.Header.Get(HeaderRequestID)
	if requestID == "" {
		requestID = uuid.NewString()
		req = req.Clone(req.Context())
		req.Header.Set(HeaderRequestID, requestID)
	}

	resp, err := t.next.RoundTrip(req)
	duration := time.Since(start).Milliseconds()

	fields := log.NewFields().
		WithRequestID(requestID).
		WithRequest(req.Method, req.URL.Path)
	if err != nil {
		t.logger.WarnContext(req.Context(), "API request failed", fields.WithError(err).ToSlice()...)
		return nil, err
	}

	fields = fields.WithResponse(resp.StatusCode, duration)
	if resp.StatusCode >= 500 {
		t.logger.WarnContext(req.Context(), "API request completed", fields.ToSlice()...)
	} else {
		t.logger.DebugContext(req.Context(), "API request completed", fields.ToSlice()...)
	}
	return resp, nil
}
