package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/dkrylov/pdf-extract-api/internal/core/domain"
	"github.com/dkrylov/pdf-extract-api/internal/core/ports"
)

// ExtractDocumentUseCase decides which extraction strategies run for a
// document and arbitrates between their outputs. Images always go through
// OCR; for PDFs the OCR policy and the direct-text quality threshold govern
// whether recognition runs at all.
type ExtractDocumentUseCase struct {
	direct         ports.DirectExtractor
	ocr            ports.OCRExtractor
	minDirectChars int
	logger         *slog.Logger
}

func NewExtractDocumentUseCase(
	direct ports.DirectExtractor,
	ocr ports.OCRExtractor,
	minDirectChars int,
	logger *slog.Logger,
) *ExtractDocumentUseCase {
	if minDirectChars <= 0 {
		minDirectChars = domain.DefaultDirectTextMinChars
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ExtractDocumentUseCase{
		direct:         direct,
		ocr:            ocr,
		minDirectChars: minDirectChars,
		logger:         logger,
	}
}

func (uc *ExtractDocumentUseCase) Extract(
	ctx context.Context,
	data []byte,
	policy domain.OCRPolicy,
	hint string,
) (*domain.ExtractionResult, error) {
	kind := domain.DetectKind(data, hint)

	var (
		result *domain.ExtractionResult
		err    error
	)
	if kind == domain.KindImage {
		result, err = uc.extractImage(ctx, data)
	} else {
		result, err = uc.extractPDF(ctx, data, policy)
	}
	if err != nil && errors.Is(err, context.DeadlineExceeded) {
		return nil, domain.WrapError(domain.ErrTimeout, "extract document", err)
	}
	return result, err
}

// extractImage: images have no direct text path, so OCR runs regardless of
// policy and an engine failure has no fallback.
func (uc *ExtractDocumentUseCase) extractImage(ctx context.Context, data []byte) (*domain.ExtractionResult, error) {
	text, err := uc.ocr.Extract(ctx, data, domain.KindImage)
	if err != nil {
		return nil, domain.WrapError(domain.ErrExtractionFailed, "extract image", err)
	}
	return uc.finalize(text, true, domain.KindImage), nil
}

func (uc *ExtractDocumentUseCase) extractPDF(
	ctx context.Context,
	data []byte,
	policy domain.OCRPolicy,
) (*domain.ExtractionResult, error) {
	var (
		direct          domain.DirectText
		directAttempted bool
	)
	// attemptDirect runs direct extraction at most once per request. A parse
	// failure is expected for scanned PDFs: swallow it and leave the direct
	// result empty. Under force the attempt is deferred until OCR has failed
	// or produced nothing, so the happy path never pays for it.
	attemptDirect := func() error {
		if directAttempted {
			return nil
		}
		directAttempted = true
		d, err := uc.direct.Extract(ctx, data)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			uc.logger.Warn("direct extraction failed", "error", err)
			return nil
		}
		direct = d
		for _, w := range d.Warnings {
			uc.logger.Warn("direct extraction page warning", "warning", w)
		}
		return nil
	}

	if policy != domain.PolicyForce {
		if err := attemptDirect(); err != nil {
			return nil, err
		}
	}

	if uc.shouldUseOCR(policy, direct.Text) {
		ocrText, err := uc.ocr.Extract(ctx, data, domain.KindPDF)
		switch {
		case err != nil:
			if errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			if dErr := attemptDirect(); dErr != nil {
				return nil, dErr
			}
			if strings.TrimSpace(direct.Text) == "" {
				return nil, domain.WrapError(
					domain.ErrExtractionFailed,
					"extract pdf",
					fmt.Errorf("both extraction methods failed: %w", err),
				)
			}
			uc.logger.Warn("ocr failed, falling back to direct text", "error", err)
		case strings.TrimSpace(ocrText) != "":
			return uc.finalize(ocrText, true, domain.KindPDF), nil
		default:
			// OCR ran but produced nothing usable: fall back to the
			// direct result, however short.
			if dErr := attemptDirect(); dErr != nil {
				return nil, dErr
			}
		}
	}

	return uc.finalize(direct.Text, false, domain.KindPDF), nil
}

func (uc *ExtractDocumentUseCase) shouldUseOCR(policy domain.OCRPolicy, directText string) bool {
	switch policy {
	case domain.PolicyForce:
		return true
	case domain.PolicyDisable:
		return false
	default:
		return strings.TrimSpace(directText) == "" ||
			utf8.RuneCountInString(directText) < uc.minDirectChars
	}
}

func (uc *ExtractDocumentUseCase) finalize(text string, usedOCR bool, kind domain.DocumentKind) *domain.ExtractionResult {
	result := &domain.ExtractionResult{
		Text:       text,
		Characters: utf8.RuneCountInString(text),
		UsedOCR:    usedOCR,
		Kind:       kind,
	}
	if strings.TrimSpace(text) == "" {
		result.Warning = "no text could be extracted from the document"
	}
	return result
}
