package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	ServiceName string
	APIPort     string
	LogLevel    string

	// ExtractTimeout bounds one extraction request end to end; 0 disables
	// the deadline.
	ExtractTimeout time.Duration

	// DirectTextMinChars is the quality threshold: direct PDF text shorter
	// than this triggers OCR under the auto policy.
	DirectTextMinChars int

	TesseractLang  string
	PdftoppmPath   string
	RasterDPI      int
	RasterMaxPages int
	OCRPageWorkers int
}

func Load() Config {
	return Config{
		ServiceName: mustEnv("SERVICE_NAME", "pdf-extract-api"),
		APIPort:     mustEnv("API_PORT", "10000"),
		LogLevel:    mustEnv("LOG_LEVEL", "info"),

		ExtractTimeout: time.Duration(mustEnvInt("EXTRACT_TIMEOUT_SECONDS", 120)) * time.Second,

		DirectTextMinChars: mustEnvInt("DIRECT_TEXT_MIN_CHARS", 100),

		TesseractLang:  mustEnv("TESSERACT_LANG", "eng"),
		PdftoppmPath:   mustEnv("PDFTOPPM_PATH", "pdftoppm"),
		RasterDPI:      mustEnvInt("RASTER_DPI", 300),
		RasterMaxPages: mustEnvInt("RASTER_MAX_PAGES", 0),
		OCRPageWorkers: mustEnvInt("OCR_PAGE_WORKERS", 2),
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
