// Package tesseract adapts the local Tesseract engine (via gosseract) to the
// OCREngine port.
package tesseract

import (
	"context"

	"github.com/otiai10/gosseract/v2"

	"github.com/dkrylov/pdf-extract-api/internal/core/domain"
)

type Engine struct {
	languages []string
}

func NewEngine(languages ...string) *Engine {
	if len(languages) == 0 {
		languages = []string{"eng"}
	}
	return &Engine{languages: languages}
}

// Recognize runs a single OCR pass over one image. Empty output is a valid
// result; only an engine failure (unreadable image, missing traineddata)
// returns an error, of kind domain.ErrOCR.
func (e *Engine) Recognize(ctx context.Context, image []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.languages...); err != nil {
		return "", domain.WrapError(domain.ErrOCR, "configure tesseract", err)
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return "", domain.WrapError(domain.ErrOCR, "load image", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", domain.WrapError(domain.ErrOCR, "recognize image", err)
	}
	return text, nil
}
