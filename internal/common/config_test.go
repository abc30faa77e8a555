package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"TESSDATA_PREFIX", "OCR_LANG", "PDFTOPPM", "PDF_DPI", "RIDES_DB", "BATCH_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	assert.Equal(t, "spa", cfg.OCR.Language)
	assert.Equal(t, "pdftoppm", cfg.OCR.Pdftoppm)
	assert.Equal(t, 200, cfg.OCR.DPI)
	assert.Equal(t, "rides.db", cfg.Store.DSN)
	assert.Equal(t, 5*time.Minute, cfg.Batch.Timeout)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("OCR_LANG", "spa+eng")
	t.Setenv("PDF_DPI", "300")
	t.Setenv("RIDES_DB", "/tmp/test.db")
	t.Setenv("BATCH_TIMEOUT", "90s")

	cfg := LoadConfig()

	assert.Equal(t, "spa+eng", cfg.OCR.Language)
	assert.Equal(t, 300, cfg.OCR.DPI)
	assert.Equal(t, "/tmp/test.db", cfg.Store.DSN)
	assert.Equal(t, 90*time.Second, cfg.Batch.Timeout)
}

func TestLoadConfigIgnoresBadValues(t *testing.T) {
	t.Setenv("PDF_DPI", "not-a-number")
	t.Setenv("BATCH_TIMEOUT", "soon")

	cfg := LoadConfig()

	assert.Equal(t, 200, cfg.OCR.DPI)
	assert.Equal(t, 5*time.Minute, cfg.Batch.Timeout)
}
