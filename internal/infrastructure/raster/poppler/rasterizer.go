// Package poppler renders PDF pages into bitmap images by shelling out to
// pdftoppm (poppler-utils). Rasterization internals are opaque to the engine;
// this adapter only guarantees page order and temp-file cleanup.
package poppler

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/dkrylov/pdf-extract-api/internal/core/domain"
)

type Config struct {
	Pdftoppm string // binary name or absolute path; if empty -> "pdftoppm"
	DPI      int    // rendering resolution, default 300
	MaxPages int    // 0 = no limit
}

type Rasterizer struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewRasterizer(cfg Config, logger *slog.Logger) *Rasterizer {
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Rasterizer{cfg: cfg, runner: execRunner{}, logger: logger}
}

// Render writes the document to a scratch dir, rasterizes it page by page and
// returns the PNG bytes in document page order. The scratch dir is removed on
// every exit path.
func (r *Rasterizer) Render(ctx context.Context, data []byte) ([][]byte, error) {
	tmpDir, err := os.MkdirTemp("", "pea-pp-*")
	if err != nil {
		return nil, domain.WrapError(domain.ErrOCR, "create scratch dir", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(tmpDir); rmErr != nil {
			r.logger.Warn("failed to remove scratch dir", "dir", tmpDir, "error", rmErr)
		}
	}()

	in := filepath.Join(tmpDir, "in.pdf")
	if err := os.WriteFile(in, data, 0o600); err != nil {
		return nil, domain.WrapError(domain.ErrOCR, "write scratch pdf", err)
	}

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r 300 -png <in.pdf> <tmp/page>
	_, errb, err := r.runner.Run(ctx, r.cfg.Pdftoppm, "-r", fmt.Sprintf("%d", r.cfg.DPI), "-png", in, prefix)
	if err != nil {
		return nil, domain.WrapError(domain.ErrOCR, "rasterize pdf", fmt.Errorf("%w: %s", err, errb))
	}

	// pdftoppm names pages prefix-1.png, prefix-2.png, ... zero-padded to a
	// fixed width per run, so a lexicographic sort preserves page order.
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if r.cfg.MaxPages > 0 && len(matches) > r.cfg.MaxPages {
		matches = matches[:r.cfg.MaxPages]
	}
	if len(matches) == 0 {
		return nil, domain.WrapError(domain.ErrOCR, "rasterize pdf", fmt.Errorf("no pages rendered"))
	}

	images := make([][]byte, 0, len(matches))
	for _, path := range matches {
		img, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, domain.WrapError(domain.ErrOCR, "read rendered page", readErr)
		}
		images = append(images, img)
	}
	return images, nil
}
