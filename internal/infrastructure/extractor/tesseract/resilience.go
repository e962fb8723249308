package tesseract

import (
	"context"
	"errors"

	"github.com/dkrylov/pdf-extract-api/internal/core/domain"
	"github.com/dkrylov/pdf-extract-api/internal/core/ports"
	"github.com/dkrylov/pdf-extract-api/internal/infrastructure/resilience"
)

// ResilientEngine runs recognition through the resilience executor so that a
// broken tesseract install (missing binary, bad traineddata) eventually opens
// the circuit instead of burning CPU on every request.
type ResilientEngine struct {
	inner ports.OCREngine
	exec  *resilience.Executor
}

func NewResilientEngine(inner ports.OCREngine, exec *resilience.Executor) *ResilientEngine {
	return &ResilientEngine{inner: inner, exec: exec}
}

func (e *ResilientEngine) Recognize(ctx context.Context, image []byte) (string, error) {
	var text string
	err := e.exec.Execute(ctx, "tesseract.recognize", func(ctx context.Context) error {
		var innerErr error
		text, innerErr = e.inner.Recognize(ctx, image)
		return innerErr
	}, classifyEngineError)
	if resilience.IsCircuitOpen(err) {
		return "", domain.WrapError(domain.ErrOCR, "recognize image", err)
	}
	return text, err
}

func classifyEngineError(err error) resilience.ErrorClassification {
	if err == nil {
		return resilience.ErrorClassification{}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.ErrorClassification{Retryable: false, RecordFailure: false}
	}
	// Recognition failures are deterministic for a given image: record them
	// for the breaker, don't retry.
	return resilience.ErrorClassification{Retryable: false, RecordFailure: true}
}
