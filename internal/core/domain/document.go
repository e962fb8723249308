package domain

import "fmt"

type DocumentKind string

const (
	KindImage DocumentKind = "image"
	KindPDF   DocumentKind = "pdf"
)

type OCRPolicy string

const (
	PolicyAuto    OCRPolicy = "auto"
	PolicyForce   OCRPolicy = "force"
	PolicyDisable OCRPolicy = "disable"
)

// ParseOCRPolicy maps the wire value of ocr_mode to a policy. An empty value
// defaults to auto; anything else must match exactly, so a typo like "forse"
// fails loudly instead of silently downgrading to auto.
func ParseOCRPolicy(s string) (OCRPolicy, error) {
	switch OCRPolicy(s) {
	case "":
		return PolicyAuto, nil
	case PolicyAuto, PolicyForce, PolicyDisable:
		return OCRPolicy(s), nil
	default:
		return "", WrapError(ErrInvalidInput, "parse ocr mode", fmt.Errorf("unknown ocr_mode %q", s))
	}
}

// DefaultDirectTextMinChars is the quality threshold: direct extraction output
// shorter than this (in runes) is considered insufficient under PolicyAuto.
const DefaultDirectTextMinChars = 100

// DirectText is the outcome of a direct extraction attempt. Warnings carry
// per-page notes (e.g. a page that yielded no text); they never make the
// attempt a failure.
type DirectText struct {
	Text     string
	Warnings []string
}

// ExtractionResult is the per-request output of the engine. Text is always a
// valid string, empty included; Warning is set when extraction succeeded but
// produced no text.
type ExtractionResult struct {
	Text       string       `json:"text"`
	Characters int          `json:"characters"`
	UsedOCR    bool         `json:"used_ocr"`
	Kind       DocumentKind `json:"file_type"`
	Warning    string       `json:"warning,omitempty"`
}
