// Package ocr holds the image-facing half of the pipeline: preprocessing,
// the Tesseract adapter, and PDF page rasterization.
package ocr

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"log/slog"
	"slices"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// neutralConfidence is reported when the engine returns text but no word
// carries a usable confidence value: uncertain, not worthless.
const neutralConfidence = 0.5

// EngineConfig configures the Tesseract adapter.
type EngineConfig struct {
	Language    string // default "spa"
	TessdataDir string
}

// Engine wraps Tesseract for Spanish receipt screenshots. Availability is
// probed once at construction and never re-checked; an unavailable engine
// degrades every call to ("", 0) instead of failing.
type Engine struct {
	cfg       EngineConfig
	available bool
	logger    *slog.Logger
}

func NewEngine(cfg EngineConfig, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Language == "" {
		cfg.Language = "spa"
	}
	e := &Engine{cfg: cfg, logger: logger}
	e.available = e.probe()
	if !e.available {
		logger.Warn("ocr engine unavailable, recognition degrades to empty text", "lang", cfg.Language)
	}
	return e
}

// Available reports the capability cached at construction time.
func (e *Engine) Available() bool {
	return e.available
}

func (e *Engine) probe() bool {
	langs, err := gosseract.GetAvailableLanguages()
	if err != nil {
		return false
	}
	return slices.Contains(langs, e.cfg.Language)
}

// Recognize runs OCR on a preprocessed image and returns the raw text plus
// an aggregate word confidence in 0..1. Degraded mode (engine unavailable)
// and internal engine failures both return ("", 0); upstream code treats
// empty text as the normal "nothing extracted" case.
func (e *Engine) Recognize(ctx context.Context, img image.Image) (string, float64) {
	if !e.available {
		return "", 0
	}
	if ctx.Err() != nil {
		return "", 0
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		e.logger.Error("encode image for ocr", "error", err)
		return "", 0
	}

	client := gosseract.NewClient()
	defer func() { _ = client.Close() }()

	if e.cfg.TessdataDir != "" {
		_ = client.SetTessdataPrefix(e.cfg.TessdataDir)
	}
	if err := client.SetLanguage(e.cfg.Language); err != nil {
		e.logger.Error("ocr set language", "lang", e.cfg.Language, "error", err)
		return "", 0
	}
	// Receipts render as one uniform block of text.
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		e.logger.Error("ocr set page seg mode", "error", err)
		return "", 0
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		e.logger.Error("ocr set image", "error", err)
		return "", 0
	}

	text, err := client.Text()
	if err != nil {
		e.logger.Error("ocr recognize", "error", err)
		return "", 0
	}
	return text, e.wordConfidence(client)
}

// wordConfidence averages per-word confidences, skipping the engine's
// "no confidence" sentinel (<= 0).
func (e *Engine) wordConfidence(client *gosseract.Client) float64 {
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return neutralConfidence
	}
	var sum float64
	var n int
	for _, b := range boxes {
		if strings.TrimSpace(b.Word) == "" || b.Confidence <= 0 {
			continue
		}
		sum += b.Confidence
		n++
	}
	if n == 0 {
		return neutralConfidence
	}
	return sum / float64(n) / 100
}
