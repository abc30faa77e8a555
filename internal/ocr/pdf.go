package ocr

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/disintegration/imaging"
)

// RendererConfig configures PDF page rasterization.
type RendererConfig struct {
	Pdftoppm string // binary name or absolute path; if empty -> "pdftoppm"
	DPI      int    // rasterization DPI, default 200
}

// PageRenderer rasterizes a PDF into one image per page using pdftoppm.
// Availability of the binary is probed once at construction; a missing
// renderer is a degraded-capability condition reported per file, never a
// batch-fatal error.
type PageRenderer struct {
	cfg       RendererConfig
	runner    Runner
	available bool
	logger    *slog.Logger
}

func NewPageRenderer(cfg RendererConfig, logger *slog.Logger) *PageRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 200
	}
	r := &PageRenderer{cfg: cfg, runner: execRunner{}, logger: logger}
	if _, err := exec.LookPath(cfg.Pdftoppm); err == nil {
		r.available = true
	} else {
		logger.Warn("pdf renderer unavailable", "binary", cfg.Pdftoppm)
	}
	return r
}

// Available reports the capability cached at construction time.
func (r *PageRenderer) Available() bool {
	return r.available
}

// Render rasterizes every page of the PDF, in page order.
func (r *PageRenderer) Render(ctx context.Context, pdf []byte) ([]image.Image, error) {
	if !r.available {
		return nil, fmt.Errorf("pdf rendering not available: %s not found", r.cfg.Pdftoppm)
	}

	tmpDir, err := os.MkdirTemp("", "rides-pages-*")
	if err != nil {
		return nil, err
	}
	defer func() {
		if rmErr := os.RemoveAll(tmpDir); rmErr != nil {
			r.logger.Warn("remove temp dir", "dir", tmpDir, "error", rmErr)
		}
	}()

	in := filepath.Join(tmpDir, "input.pdf")
	if err := os.WriteFile(in, pdf, 0o600); err != nil {
		return nil, err
	}

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r 200 -png <in.pdf> <tmp/page>
	_, errb, err := r.runner.Run(ctx, r.cfg.Pdftoppm, "-r", strconv.Itoa(r.cfg.DPI), "-png", in, prefix)
	if err != nil {
		return nil, fmt.Errorf("pdftoppm: %w: %s", err, truncate(string(errb), 512))
	}

	// pdftoppm pads page numbers, so a lexical sort keeps page order.
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if len(matches) == 0 {
		return nil, errors.New("no pages rendered")
	}

	pages := make([]image.Image, 0, len(matches))
	for _, path := range matches {
		img, err := imaging.Open(path)
		if err != nil {
			return nil, fmt.Errorf("read rendered page %s: %w", filepath.Base(path), err)
		}
		pages = append(pages, img)
	}
	return pages, nil
}
