package httpadapter

import (
	"net/http"

	"github.com/dkrylov/pdf-extract-api/internal/core/domain"
)

func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func errorKindLabel(err error) string {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		return "invalid_input"
	case domain.IsKind(err, domain.ErrTimeout):
		return "timeout"
	case domain.IsKind(err, domain.ErrExtractionFailed):
		return "extraction_failed"
	case domain.IsKind(err, domain.ErrOCR):
		return "ocr"
	case domain.IsKind(err, domain.ErrParse):
		return "parse"
	default:
		return "internal"
	}
}
