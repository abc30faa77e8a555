package ocr

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreprocess_DownscalesLargeImages(t *testing.T) {
	src := imaging.New(4000, 1000, color.NRGBA{R: 30, G: 30, B: 30, A: 255})

	out := Preprocess(src)

	b := out.Bounds()
	assert.Equal(t, maxDimension, b.Dx())
	assert.Equal(t, 500, b.Dy())
}

func TestPreprocess_KeepsSmallImages(t *testing.T) {
	src := imaging.New(800, 600, color.NRGBA{R: 30, G: 30, B: 30, A: 255})

	out := Preprocess(src)

	b := out.Bounds()
	assert.Equal(t, 800, b.Dx())
	assert.Equal(t, 600, b.Dy())
}

func TestPreprocess_InvertsPolarity(t *testing.T) {
	// Dark-theme background must come out light for OCR.
	src := imaging.New(10, 10, color.NRGBA{R: 10, G: 10, B: 10, A: 255})

	out := Preprocess(src)

	r, g, b, _ := out.At(5, 5).RGBA()
	gray := (r + g + b) / 3
	assert.Greater(t, gray, uint32(0x8000))
}

func TestDecodeAndPreprocess(t *testing.T) {
	var buf bytes.Buffer
	src := imaging.New(20, 20, color.NRGBA{R: 200, G: 200, B: 200, A: 255})
	require.NoError(t, imaging.Encode(&buf, src, imaging.PNG))

	out, err := DecodeAndPreprocess(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 20, out.Bounds().Dx())

	_, err = DecodeAndPreprocess([]byte("definitely not an image"))
	assert.Error(t, err)
}

func TestPageRenderer_Unavailable(t *testing.T) {
	r := NewPageRenderer(RendererConfig{Pdftoppm: "no-such-binary-for-tests"}, nil)

	assert.False(t, r.Available())

	_, err := r.Render(t.Context(), []byte("%PDF-1.4"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not available")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcde...(truncated)", truncate("abcdefgh", 5))
}
