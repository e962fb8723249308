package ports

import (
	"context"

	"github.com/dkrylov/pdf-extract-api/internal/core/domain"
)

// DirectExtractor pulls text already embedded in a PDF's structure. A failure
// to read the structure at all is an error of kind domain.ErrParse; a document
// with zero extractable text is a success with empty Text.
type DirectExtractor interface {
	Extract(ctx context.Context, data []byte) (domain.DirectText, error)
}

// OCRExtractor derives text from pixel content: a single recognition pass for
// images, rasterize-then-recognize per page for PDFs. Failures are of kind
// domain.ErrOCR.
type OCRExtractor interface {
	Extract(ctx context.Context, data []byte, kind domain.DocumentKind) (string, error)
}

// Rasterizer renders PDF pages into bitmap images, in document page order.
type Rasterizer interface {
	Render(ctx context.Context, data []byte) ([][]byte, error)
}

// OCREngine recognizes text in a single image. Empty output is valid.
type OCREngine interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}
