package ports

import (
	"context"

	"github.com/dkrylov/pdf-extract-api/internal/core/domain"
)

// DocumentExtractor is the inbound contract for the extraction engine.
type DocumentExtractor interface {
	Extract(ctx context.Context, data []byte, policy domain.OCRPolicy, hint string) (*domain.ExtractionResult, error)
}
