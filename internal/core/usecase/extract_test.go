package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dkrylov/pdf-extract-api/internal/core/domain"
)

type directFake struct {
	text     string
	warnings []string
	err      error
	calls    int
}

func (f *directFake) Extract(context.Context, []byte) (domain.DirectText, error) {
	f.calls++
	if f.err != nil {
		return domain.DirectText{}, f.err
	}
	return domain.DirectText{Text: f.text, Warnings: f.warnings}, nil
}

type ocrFake struct {
	text  string
	err   error
	calls int
	kind  domain.DocumentKind
}

func (f *ocrFake) Extract(_ context.Context, _ []byte, kind domain.DocumentKind) (string, error) {
	f.calls++
	f.kind = kind
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

var (
	pdfBytes  = []byte("%PDF-1.4 fake")
	jpegBytes = []byte{0xFF, 0xD8, 0xFF, 0x00}
)

func newUC(direct *directFake, ocr *ocrFake) *ExtractDocumentUseCase {
	return NewExtractDocumentUseCase(direct, ocr, 0, nil)
}

func TestImageAlwaysUsesOCR(t *testing.T) {
	// Even under disable: images have no direct text path.
	for _, policy := range []domain.OCRPolicy{domain.PolicyAuto, domain.PolicyForce, domain.PolicyDisable} {
		direct := &directFake{text: "should never be read"}
		ocr := &ocrFake{text: "scanned words"}
		uc := newUC(direct, ocr)

		result, err := uc.Extract(context.Background(), jpegBytes, policy, "")
		if err != nil {
			t.Fatalf("policy %q: Extract() error = %v", policy, err)
		}
		if direct.calls != 0 {
			t.Fatalf("policy %q: direct extractor must not run for images", policy)
		}
		if !result.UsedOCR || result.Text != "scanned words" {
			t.Fatalf("policy %q: unexpected result %+v", policy, result)
		}
		if result.Kind != domain.KindImage {
			t.Fatalf("policy %q: expected image kind, got %q", policy, result.Kind)
		}
		if ocr.kind != domain.KindImage {
			t.Fatalf("policy %q: ocr extractor saw kind %q", policy, ocr.kind)
		}
	}
}

func TestImageOCRFailureIsTerminal(t *testing.T) {
	ocr := &ocrFake{err: domain.WrapError(domain.ErrOCR, "recognize", errors.New("boom"))}
	uc := newUC(&directFake{}, ocr)

	_, err := uc.Extract(context.Background(), jpegBytes, domain.PolicyAuto, "")
	if !domain.IsKind(err, domain.ErrExtractionFailed) {
		t.Fatalf("expected terminal failure, got %v", err)
	}
}

func TestPolicyDisableNeverRunsOCR(t *testing.T) {
	// Short direct text would trigger OCR under auto; disable means disable.
	direct := &directFake{text: "short"}
	ocr := &ocrFake{text: "ocr text"}
	uc := newUC(direct, ocr)

	result, err := uc.Extract(context.Background(), pdfBytes, domain.PolicyDisable, "")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if ocr.calls != 0 {
		t.Fatalf("expected no OCR attempt, got %d", ocr.calls)
	}
	if result.UsedOCR || result.Text != "short" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestPolicyDisableEmptyDirectIsSuccess(t *testing.T) {
	direct := &directFake{text: ""}
	ocr := &ocrFake{text: "never used"}
	uc := newUC(direct, ocr)

	result, err := uc.Extract(context.Background(), pdfBytes, domain.PolicyDisable, "")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if ocr.calls != 0 {
		t.Fatalf("expected no OCR attempt, got %d", ocr.calls)
	}
	if result.Text != "" || result.Warning == "" {
		t.Fatalf("expected empty text with warning, got %+v", result)
	}
}

func TestPolicyAutoSufficientDirectSkipsOCR(t *testing.T) {
	direct := &directFake{text: strings.Repeat("a", 150)}
	ocr := &ocrFake{text: "ocr text"}
	uc := newUC(direct, ocr)

	result, err := uc.Extract(context.Background(), pdfBytes, domain.PolicyAuto, "")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if ocr.calls != 0 {
		t.Fatalf("expected no OCR attempt for sufficient direct text, got %d", ocr.calls)
	}
	if result.UsedOCR || result.Characters != 150 {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestPolicyAutoShortDirectTriggersOCR(t *testing.T) {
	direct := &directFake{text: strings.Repeat("a", 99)}
	ocr := &ocrFake{text: "recognized page text"}
	uc := newUC(direct, ocr)

	result, err := uc.Extract(context.Background(), pdfBytes, domain.PolicyAuto, "")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if ocr.calls != 1 {
		t.Fatalf("expected one OCR attempt, got %d", ocr.calls)
	}
	if !result.UsedOCR || result.Text != "recognized page text" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestPolicyAutoShortDirectEmptyOCRKeepsDirect(t *testing.T) {
	direct := &directFake{text: "short direct"}
	ocr := &ocrFake{text: "   \n"}
	uc := newUC(direct, ocr)

	result, err := uc.Extract(context.Background(), pdfBytes, domain.PolicyAuto, "")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	// OCR was attempted but its text was not used.
	if result.UsedOCR || result.Text != "short direct" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestPolicyForceSkipsDirectExtraction(t *testing.T) {
	direct := &directFake{text: strings.Repeat("a", 500)}
	ocr := &ocrFake{text: "forced ocr text"}
	uc := newUC(direct, ocr)

	result, err := uc.Extract(context.Background(), pdfBytes, domain.PolicyForce, "")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if direct.calls != 0 {
		t.Fatalf("force policy must not attempt direct extraction, got %d calls", direct.calls)
	}
	if !result.UsedOCR || result.Text != "forced ocr text" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestParseFailureIsSwallowed(t *testing.T) {
	direct := &directFake{err: domain.WrapError(domain.ErrParse, "read pdf", errors.New("bad xref"))}
	ocr := &ocrFake{text: "ocr saved the day"}
	uc := newUC(direct, ocr)

	result, err := uc.Extract(context.Background(), pdfBytes, domain.PolicyAuto, "")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if !result.UsedOCR || result.Text != "ocr saved the day" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestOCRFailureFallsBackToDirectText(t *testing.T) {
	direct := &directFake{text: "embedded text worth keeping"}
	ocr := &ocrFake{err: domain.WrapError(domain.ErrOCR, "recognize", errors.New("engine down"))}
	uc := newUC(direct, ocr)

	result, err := uc.Extract(context.Background(), pdfBytes, domain.PolicyForce, "")
	if err != nil {
		t.Fatalf("expected fallback, got error %v", err)
	}
	if result.UsedOCR {
		t.Fatalf("fallback result must report used_ocr=false: %+v", result)
	}
	if result.Text != "embedded text worth keeping" {
		t.Fatalf("unexpected fallback text %q", result.Text)
	}
}

func TestPolicyForceBlankOCRFallsBackToDirect(t *testing.T) {
	// Forced OCR that yields nothing still loses to embedded text.
	direct := &directFake{text: "embedded text worth keeping"}
	ocr := &ocrFake{text: "  \n\t"}
	uc := newUC(direct, ocr)

	result, err := uc.Extract(context.Background(), pdfBytes, domain.PolicyForce, "")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if direct.calls != 1 {
		t.Fatalf("expected one deferred direct attempt, got %d", direct.calls)
	}
	if result.UsedOCR || result.Text != "embedded text worth keeping" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestPolicyForceBothFailingIsTerminal(t *testing.T) {
	direct := &directFake{err: domain.WrapError(domain.ErrParse, "read pdf", errors.New("corrupt"))}
	ocr := &ocrFake{err: domain.WrapError(domain.ErrOCR, "recognize", errors.New("engine down"))}
	uc := newUC(direct, ocr)

	_, err := uc.Extract(context.Background(), pdfBytes, domain.PolicyForce, "")
	if !domain.IsKind(err, domain.ErrExtractionFailed) {
		t.Fatalf("expected terminal extraction failure, got %v", err)
	}
	if direct.calls != 1 {
		t.Fatalf("expected a direct attempt before declaring failure, got %d", direct.calls)
	}
}

func TestBothMethodsFailingIsTerminal(t *testing.T) {
	direct := &directFake{err: domain.WrapError(domain.ErrParse, "read pdf", errors.New("corrupt"))}
	ocr := &ocrFake{err: domain.WrapError(domain.ErrOCR, "rasterize", errors.New("corrupt"))}
	uc := newUC(direct, ocr)

	_, err := uc.Extract(context.Background(), pdfBytes, domain.PolicyAuto, "")
	if !domain.IsKind(err, domain.ErrExtractionFailed) {
		t.Fatalf("expected terminal extraction failure, got %v", err)
	}
}

func TestEmptyEverywhereIsSuccessWithWarning(t *testing.T) {
	direct := &directFake{text: ""}
	ocr := &ocrFake{text: ""}
	uc := newUC(direct, ocr)

	result, err := uc.Extract(context.Background(), pdfBytes, domain.PolicyAuto, "")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if result.Text != "" || result.Characters != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
	if result.Warning == "" {
		t.Fatalf("expected warning on empty-but-valid extraction")
	}
	if result.UsedOCR {
		t.Fatalf("empty OCR output must not be reported as the used source")
	}
}

func TestHintOverridesContent(t *testing.T) {
	// PDF bytes with an image hint go down the image path.
	direct := &directFake{text: "direct"}
	ocr := &ocrFake{text: "ocr"}
	uc := newUC(direct, ocr)

	result, err := uc.Extract(context.Background(), pdfBytes, domain.PolicyAuto, "jpg")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if result.Kind != domain.KindImage || ocr.kind != domain.KindImage {
		t.Fatalf("expected image classification, got %+v", result)
	}
}

func TestDeadlineSurfacesAsTimeout(t *testing.T) {
	direct := &directFake{err: context.DeadlineExceeded}
	ocr := &ocrFake{err: context.DeadlineExceeded}
	uc := newUC(direct, ocr)

	_, err := uc.Extract(context.Background(), pdfBytes, domain.PolicyAuto, "")
	if !domain.IsKind(err, domain.ErrTimeout) {
		t.Fatalf("expected timeout kind, got %v", err)
	}
}

func TestIdempotentForDeterministicCapabilities(t *testing.T) {
	direct := &directFake{text: "short"}
	ocr := &ocrFake{text: "stable ocr output"}
	uc := newUC(direct, ocr)

	first, err := uc.Extract(context.Background(), pdfBytes, domain.PolicyAuto, "")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	second, err := uc.Extract(context.Background(), pdfBytes, domain.PolicyAuto, "")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if first.Text != second.Text || first.UsedOCR != second.UsedOCR {
		t.Fatalf("results differ across identical runs: %+v vs %+v", first, second)
	}
}
