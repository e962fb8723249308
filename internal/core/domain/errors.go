package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks malformed requests; it never reaches the engine.
	ErrInvalidInput = errors.New("invalid input")
	// ErrParse marks a direct extraction that could not read the PDF
	// structure. Recovered locally: expected for scanned documents.
	ErrParse = errors.New("pdf parse failure")
	// ErrOCR marks a rasterization or recognition failure. Recovered only
	// when a direct-text fallback exists.
	ErrOCR = errors.New("ocr failure")
	// ErrExtractionFailed is terminal: both strategies produced nothing and
	// at least one genuinely errored.
	ErrExtractionFailed = errors.New("extraction failed")
	// ErrTimeout marks a request that hit the extraction deadline.
	ErrTimeout = errors.New("extraction timed out")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
