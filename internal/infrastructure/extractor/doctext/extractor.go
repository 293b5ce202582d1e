// Package doctext turns raw uploaded bytes into plain text. Dispatch is
// format-first with an exhaustive fallback: PDF parsing, then image OCR,
// then empty text. Extraction never fails past this package; the worst
// outcome for a caller is an empty string.
package doctext

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

type Config struct {
	Tesseract     string // binary name or absolute path; if empty -> "tesseract"
	TesseractLang string // default "eng"
	OCRTimeout    time.Duration
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng"
	}
	if cfg.OCRTimeout <= 0 {
		cfg.OCRTimeout = 60 * time.Second
	}
	return &Extractor{cfg: cfg, runner: execRunner{}, logger: logger}
}

var imageExts = []string{".png", ".jpg", ".jpeg", ".tiff", ".bmp"}

func hasImageExt(name string) bool {
	for _, ext := range imageExts {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// Extract dispatches on the declared filename and content type. Neither
// hint is trusted exclusively: unrecognized inputs are probed as PDF
// first, then as an image, before degrading to empty text.
func (e *Extractor) Extract(ctx context.Context, filename, contentType string, data []byte) string {
	name := strings.ToLower(filename)

	switch {
	case strings.HasSuffix(name, ".pdf") || contentType == "application/pdf":
		text, err := extractPDF(data)
		if err != nil {
			e.logger.Warn("pdf extraction failed", "filename", filename, "error", err)
			return ""
		}
		return text

	case hasImageExt(name):
		text, err := e.extractImage(ctx, name, data)
		if err != nil {
			e.logger.Warn("image ocr failed", "filename", filename, "error", err)
			return ""
		}
		return text

	default:
		if text, err := extractPDF(data); err == nil {
			return text
		}
		text, err := e.extractImage(ctx, name, data)
		if err != nil {
			e.logger.Warn("fallback extraction exhausted", "filename", filename, "error", err)
			return ""
		}
		return text
	}
}
