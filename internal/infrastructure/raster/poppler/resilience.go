package poppler

import (
	"context"
	"errors"

	"github.com/dkrylov/pdf-extract-api/internal/core/domain"
	"github.com/dkrylov/pdf-extract-api/internal/core/ports"
	"github.com/dkrylov/pdf-extract-api/internal/infrastructure/resilience"
)

// ResilientRasterizer runs pdftoppm through the resilience executor; scratch
// I/O problems get one retry, a missing binary eventually opens the circuit.
type ResilientRasterizer struct {
	inner ports.Rasterizer
	exec  *resilience.Executor
}

func NewResilientRasterizer(inner ports.Rasterizer, exec *resilience.Executor) *ResilientRasterizer {
	return &ResilientRasterizer{inner: inner, exec: exec}
}

func (r *ResilientRasterizer) Render(ctx context.Context, data []byte) ([][]byte, error) {
	var images [][]byte
	err := r.exec.Execute(ctx, "pdftoppm.render", func(ctx context.Context) error {
		var innerErr error
		images, innerErr = r.inner.Render(ctx, data)
		return innerErr
	}, classifyRenderError)
	if resilience.IsCircuitOpen(err) {
		return nil, domain.WrapError(domain.ErrOCR, "rasterize pdf", err)
	}
	return images, err
}

func classifyRenderError(err error) resilience.ErrorClassification {
	if err == nil {
		return resilience.ErrorClassification{}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.ErrorClassification{Retryable: false, RecordFailure: false}
	}
	return resilience.ErrorClassification{Retryable: false, RecordFailure: true}
}
