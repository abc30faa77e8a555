package extract

import (
	"context"
	"image"
)

// Recognizer turns a normalized image into raw text plus an aggregate
// confidence in 0..1. A degraded engine returns ("", 0) rather than an
// error; empty text is the normal "nothing extracted" case.
type Recognizer interface {
	Recognize(ctx context.Context, img image.Image) (text string, confidence float64)
	Available() bool
}

// PageRenderer is the PDF boundary: raw bytes to one image per page, in
// page order.
type PageRenderer interface {
	Render(ctx context.Context, pdf []byte) ([]image.Image, error)
	Available() bool
}

// Capabilities describes which external tools were present at construction
// time. Probed once, injected into the orchestrator, and treated as
// immutable for the process lifetime.
type Capabilities struct {
	OCR bool
	PDF bool
}

// FileInput is one uploaded unit of work: raw bytes plus the declared file
// name. The name's extension alone selects the PDF-vs-image code path.
type FileInput struct {
	Name string
	Data []byte
}
