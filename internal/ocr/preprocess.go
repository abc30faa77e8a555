package ocr

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Preprocessing constants, empirically chosen for light-text-on-dark
// ride-hailing screenshots. They are fixed, not adaptive.
const (
	// Longer image dimension above which we downscale before OCR.
	maxDimension = 2000
	// Contrast boost equivalent to a 1.8x enhancement factor.
	contrastBoost = 80
	// Sharpen sigma equivalent to a 1.5x sharpness factor.
	sharpenSigma = 0.6
)

// Preprocess converts an arbitrary still image into the single-channel,
// dark-text-on-light form the OCR engine is tuned for. Total function:
// every input image yields an output image.
func Preprocess(src image.Image) *image.NRGBA {
	img := imaging.Clone(src)

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > maxDimension || h > maxDimension {
		if w >= h {
			img = imaging.Resize(img, maxDimension, 0, imaging.Lanczos)
		} else {
			img = imaging.Resize(img, 0, maxDimension, imaging.Lanczos)
		}
	}

	img = imaging.Grayscale(img)
	// The receipts are white text on a dark theme; OCR engines expect the
	// opposite polarity.
	img = imaging.Invert(img)
	img = imaging.AdjustContrast(img, contrastBoost)
	img = imaging.Sharpen(img, sharpenSigma)
	return img
}

// DecodeAndPreprocess decodes raw image bytes and normalizes them for OCR.
// Unreadable bytes are the only failure path.
func DecodeAndPreprocess(data []byte) (*image.NRGBA, error) {
	src, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return Preprocess(src), nil
}
