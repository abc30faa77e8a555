// Package extract drives per-file and per-page extraction: dispatch by file
// type, normalize -> OCR -> parse -> acceptance gate, and batch aggregation.
// Each file or page is an independent unit; a failing unit becomes an entry
// in the error list and never aborts the batch.
package extract

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/ridetally/rides-tracker/constants"
	"github.com/ridetally/rides-tracker/internal/entity"
	"github.com/ridetally/rides-tracker/internal/ocr"
	"github.com/ridetally/rides-tracker/internal/parser"
)

// Service is the extraction orchestrator. Stateless across invocations;
// the capability descriptor is the only process-wide state and it is fixed
// at construction.
type Service struct {
	rec    Recognizer
	pdf    PageRenderer
	caps   Capabilities
	logger *slog.Logger
}

func NewService(rec Recognizer, pdf PageRenderer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		rec:    rec,
		pdf:    pdf,
		caps:   Capabilities{OCR: rec.Available(), PDF: pdf.Available()},
		logger: logger,
	}
}

// Capabilities returns the descriptor probed at construction.
func (s *Service) Capabilities() Capabilities {
	return s.caps
}

// unitResult is the catch-and-convert boundary for one extraction unit
// (a single image, or one PDF page): either a ride or a reason, never both.
type unitResult struct {
	label string
	ride  *entity.ExtractedRide
	err   string
}

// ExtractBatch processes the files strictly in order and aggregates per-unit
// outcomes. Error order follows file order, so two runs over the same inputs
// report identically.
func (s *Service) ExtractBatch(ctx context.Context, files []FileInput) entity.ExtractResponse {
	resp := entity.ExtractResponse{
		Results: []*entity.ExtractedRide{},
		Errors:  []entity.ExtractionError{},
	}

	for _, f := range files {
		for _, u := range s.extractFile(ctx, f) {
			if u.ride != nil {
				resp.Results = append(resp.Results, u.ride)
			} else {
				resp.Errors = append(resp.Errors, entity.ExtractionError{FileName: u.label, Error: u.err})
			}
		}
	}

	successful := len(resp.Results)
	var avg float64
	if successful > 0 {
		var sum float64
		for _, r := range resp.Results {
			sum += r.ExtractionConfidence
		}
		avg = math.Round(sum/float64(successful)*100) / 100
	}
	resp.Summary = entity.ExtractionSummary{
		TotalFiles:            len(files),
		SuccessfulExtractions: successful,
		FailedExtractions:     len(resp.Errors),
		AverageConfidence:     avg,
	}
	resp.Success = successful > 0

	s.logger.Info("extract.batch.done",
		"files", len(files),
		"ok", successful,
		"failed", len(resp.Errors),
		"avg_confidence", avg,
	)
	return resp
}

func (s *Service) extractFile(ctx context.Context, f FileInput) []unitResult {
	if err := ctx.Err(); err != nil {
		return []unitResult{{label: f.Name, err: err.Error()}}
	}
	if constants.IsPDF(f.Name) {
		return s.extractPDF(ctx, f)
	}
	return []unitResult{s.extractImage(ctx, f)}
}

func (s *Service) extractImage(ctx context.Context, f FileInput) unitResult {
	img, err := ocr.DecodeAndPreprocess(f.Data)
	if err != nil {
		return unitResult{label: f.Name, err: fmt.Sprintf("image processing error: %v", err)}
	}
	return s.extractUnit(ctx, img, f.Name)
}

func (s *Service) extractPDF(ctx context.Context, f FileInput) []unitResult {
	if !s.caps.PDF {
		return []unitResult{{label: f.Name, err: "PDF rendering not available: install poppler (pdftoppm)"}}
	}
	pages, err := s.pdf.Render(ctx, f.Data)
	if err != nil {
		return []unitResult{{label: f.Name, err: fmt.Sprintf("PDF processing error: %v", err)}}
	}
	if len(pages) == 0 {
		return []unitResult{{label: f.Name, err: "no pages found in PDF"}}
	}

	out := make([]unitResult, 0, len(pages))
	for i, page := range pages {
		label := fmt.Sprintf("%s (page %d)", f.Name, i+1)
		if err := ctx.Err(); err != nil {
			out = append(out, unitResult{label: label, err: err.Error()})
			continue
		}
		out = append(out, s.extractUnit(ctx, ocr.Preprocess(page), label))
	}
	return out
}

// extractUnit runs OCR and parsing for one normalized image and applies the
// acceptance gate.
func (s *Service) extractUnit(ctx context.Context, img image.Image, label string) unitResult {
	text, ocrConf := s.rec.Recognize(ctx, img)
	if strings.TrimSpace(text) == "" {
		return unitResult{label: label, err: "no text detected"}
	}

	ride := parser.Parse(text)
	ride.SourceRef = label
	// Derive the ID from the unit's content so a re-run of the same batch
	// yields the same records (and byte-identical exports).
	ride.ID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(label+"\n"+text))

	if !accepted(ride) {
		return unitResult{label: label, err: "could not extract required fields"}
	}

	s.logger.Debug("extract.unit.ok",
		"source", label,
		"confidence", ride.ExtractionConfidence,
		"ocr_confidence", ocrConf,
		"status", string(ride.Status),
	)
	return unitResult{label: label, ride: ride}
}

// accepted is the acceptance gate: a parsed record counts as a successful
// extraction iff it has money, identity, or an explicit cancellation.
// Cancelled rides legitimately carry zero amounts, which is why status is
// part of the gate.
func accepted(ride *entity.ExtractedRide) bool {
	hasFinancial := ride.NetIncome > 0 || ride.Fare > 0
	hasIdentity := ride.PassengerName != "" || ride.Date != nil
	isCancelled := ride.Status != constants.StatusCompleted
	return hasFinancial || hasIdentity || isCancelled
}
