// Package pdftext extracts text embedded in a PDF's structure, without any
// image analysis. It uses ledongthuc/pdf (pure Go, no CGO).
package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/dkrylov/pdf-extract-api/internal/core/domain"
)

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract iterates pages in document order and joins their text with a blank
// line so page boundaries survive in the output. A page yielding no text is a
// warning, not a failure; only an unreadable PDF structure returns an error
// (kind domain.ErrParse).
//
// ledongthuc/pdf panics on some malformed bodies instead of returning an
// error, so both the reader setup and the per-page walk run behind a recover
// that downgrades the panic to the same ErrParse the caller already handles.
func (e *Extractor) Extract(ctx context.Context, data []byte) (result domain.DirectText, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = domain.DirectText{}
			err = domain.WrapError(domain.ErrParse, "read pdf", fmt.Errorf("malformed document: %v", r))
		}
	}()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return domain.DirectText{}, ctxErr
	}
	if len(data) == 0 {
		return domain.DirectText{}, domain.WrapError(domain.ErrParse, "read pdf", fmt.Errorf("empty document"))
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return domain.DirectText{}, domain.WrapError(domain.ErrParse, "read pdf", err)
	}

	var (
		pages    []string
		warnings []string
	)
	for i := 1; i <= reader.NumPage(); i++ {
		pageText, pageErr := extractPageText(reader.Page(i))
		if pageErr != nil {
			warnings = append(warnings, fmt.Sprintf("page %d: %v", i, pageErr))
		} else if pageText == "" {
			warnings = append(warnings, fmt.Sprintf("page %d: no text extracted", i))
		}
		pages = append(pages, pageText)
	}

	return domain.DirectText{
		Text:     strings.TrimSpace(strings.Join(pages, "\n\n")),
		Warnings: warnings,
	}, nil
}

// extractPageText recovers per-page parser panics so that one broken content
// stream degrades to a page warning instead of losing the whole document.
func extractPageText(page pdf.Page) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("malformed page content: %v", r)
		}
	}()

	if page.V.IsNull() {
		return "", fmt.Errorf("page object is null")
	}
	pageText, pageErr := page.GetPlainText(nil)
	if pageErr != nil {
		return "", pageErr
	}
	return strings.TrimSpace(pageText), nil
}
