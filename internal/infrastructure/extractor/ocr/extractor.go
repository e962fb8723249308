// Package ocr derives text from pixel content: a single recognition pass for
// images, rasterize-then-recognize per page for PDFs.
package ocr

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dkrylov/pdf-extract-api/internal/core/domain"
	"github.com/dkrylov/pdf-extract-api/internal/core/ports"
)

type Extractor struct {
	rasterizer  ports.Rasterizer
	engine      ports.OCREngine
	pageWorkers int
	logger      *slog.Logger
}

func NewExtractor(rasterizer ports.Rasterizer, engine ports.OCREngine, pageWorkers int, logger *slog.Logger) *Extractor {
	if pageWorkers <= 0 {
		pageWorkers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		rasterizer:  rasterizer,
		engine:      engine,
		pageWorkers: pageWorkers,
		logger:      logger,
	}
}

// Extract recognizes text in the document. For PDFs the pages are recognized
// by a bounded worker group; results are reassembled by page index, so page N
// always precedes page N+1 in the joined output. A page producing no text
// contributes an empty segment and a warning, never a failure.
func (e *Extractor) Extract(ctx context.Context, data []byte, kind domain.DocumentKind) (string, error) {
	if kind == domain.KindImage {
		text, err := e.engine.Recognize(ctx, data)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(text) == "" {
			e.logger.Warn("ocr produced no text for image")
		}
		return strings.TrimSpace(text), nil
	}

	images, err := e.rasterizer.Render(ctx, data)
	if err != nil {
		return "", err
	}

	pageTexts := make([]string, len(images))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(e.pageWorkers)
	for i, img := range images {
		i, img := i, img
		group.Go(func() error {
			text, recErr := e.engine.Recognize(groupCtx, img)
			if recErr != nil {
				return recErr
			}
			if strings.TrimSpace(text) == "" {
				e.logger.Warn("ocr produced no text for page", "page", i+1)
			}
			pageTexts[i] = strings.TrimSpace(text)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return "", err
	}

	return strings.TrimSpace(strings.Join(pageTexts, "\n\n")), nil
}
