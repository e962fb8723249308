package httpadapter

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dkrylov/pdf-extract-api/internal/config"
	"github.com/dkrylov/pdf-extract-api/internal/core/domain"
	"github.com/dkrylov/pdf-extract-api/internal/core/ports"
	"github.com/dkrylov/pdf-extract-api/internal/observability/metrics"
)

const apiVersion = "1.0.0"

type Router struct {
	cfg       config.Config
	extractor ports.DocumentExtractor
	metrics   *metrics.ExtractionMetrics
}

func NewRouter(cfg config.Config, extractor ports.DocumentExtractor, m *metrics.ExtractionMetrics) *Router {
	return &Router{
		cfg:       cfg,
		extractor: extractor,
		metrics:   m,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", rt.home)
	mux.HandleFunc("/healthz", rt.healthz)
	mux.Handle("/metrics", rt.metrics.Handler())
	mux.HandleFunc("/extract-pdf", rt.extractDocument)

	handler := rt.metrics.Middleware(rt.cfg.ServiceName, mux)
	return requestIDMiddleware(accessLogMiddleware(handler))
}

func (rt *Router) home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":          "online",
		"message":         "PDF Extraction API is running",
		"usage":           "Send a POST request to /extract-pdf with a base64-encoded PDF or image",
		"version":         apiVersion,
		"supported_types": []string{string(domain.KindPDF), string(domain.KindImage)},
	})
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type extractRequest struct {
	PDF      string `json:"pdf"`
	OCRMode  string `json:"ocr_mode"`
	FileType string `json:"file_type"`
}

func (rt *Router) extractDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "request must be JSON with a base64-encoded document"})
		return
	}
	if req.PDF == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no pdf data found in request"})
		return
	}

	policy, err := domain.ParseOCRPolicy(req.OCRMode)
	if err != nil {
		rt.writeError(w, err)
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.PDF)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid base64 encoding"})
		return
	}

	ctx := r.Context()
	if rt.cfg.ExtractTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, rt.cfg.ExtractTimeout)
		defer cancel()
	}

	start := time.Now()
	result, err := rt.extractor.Extract(ctx, data, policy, req.FileType)
	if err != nil {
		rt.metrics.RecordFailure(rt.cfg.ServiceName, errorKindLabel(err))
		rt.writeError(w, err)
		return
	}

	rt.metrics.RecordExtraction(rt.cfg.ServiceName, result, policy, time.Since(start))
	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
