package bootstrap

import (
	"log/slog"

	"github.com/dkrylov/pdf-extract-api/internal/config"
	"github.com/dkrylov/pdf-extract-api/internal/core/ports"
	"github.com/dkrylov/pdf-extract-api/internal/core/usecase"
	"github.com/dkrylov/pdf-extract-api/internal/infrastructure/extractor/ocr"
	"github.com/dkrylov/pdf-extract-api/internal/infrastructure/extractor/pdftext"
	"github.com/dkrylov/pdf-extract-api/internal/infrastructure/extractor/tesseract"
	"github.com/dkrylov/pdf-extract-api/internal/infrastructure/raster/poppler"
	"github.com/dkrylov/pdf-extract-api/internal/infrastructure/resilience"
	"github.com/dkrylov/pdf-extract-api/internal/observability/metrics"
)

type App struct {
	Config  config.Config
	Logger  *slog.Logger
	Metrics *metrics.ExtractionMetrics

	ExtractUC ports.DocumentExtractor
}

func New(cfg config.Config, logger *slog.Logger) *App {
	executor := resilience.NewExecutor(resilience.DefaultConfig())

	var engine ports.OCREngine = tesseract.NewEngine(cfg.TesseractLang)
	engine = tesseract.NewResilientEngine(engine, executor)

	var rasterizer ports.Rasterizer = poppler.NewRasterizer(poppler.Config{
		Pdftoppm: cfg.PdftoppmPath,
		DPI:      cfg.RasterDPI,
		MaxPages: cfg.RasterMaxPages,
	}, logger)
	rasterizer = poppler.NewResilientRasterizer(rasterizer, executor)

	direct := pdftext.NewExtractor()
	ocrExtractor := ocr.NewExtractor(rasterizer, engine, cfg.OCRPageWorkers, logger)

	extractUC := usecase.NewExtractDocumentUseCase(direct, ocrExtractor, cfg.DirectTextMinChars, logger)

	return &App{
		Config:    cfg,
		Logger:    logger,
		Metrics:   metrics.NewExtractionMetrics(cfg.ServiceName),
		ExtractUC: extractUC,
	}
}
