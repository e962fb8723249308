package metrics

import "net/http"

// statusRecorder captures the response status for the request counters. The
// service serves buffered JSON only, so no Flusher or Hijacker passthrough is
// needed.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}
