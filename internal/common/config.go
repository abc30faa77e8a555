package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	OCR   OCRConfig
	Store StoreConfig
	Batch BatchConfig
}

// OCRConfig holds OCR-related configuration.
type OCRConfig struct {
	TessdataDir string
	Language    string
	Pdftoppm    string
	DPI         int
}

// StoreConfig holds ride-store configuration.
type StoreConfig struct {
	DSN string
}

// BatchConfig holds batch-extraction configuration.
type BatchConfig struct {
	Timeout time.Duration
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() *Config {
	return &Config{
		OCR: OCRConfig{
			TessdataDir: getEnv("TESSDATA_PREFIX", ""),
			Language:    getEnv("OCR_LANG", "spa"),
			Pdftoppm:    getEnv("PDFTOPPM", "pdftoppm"),
			DPI:         getEnvAsInt("PDF_DPI", 200),
		},
		Store: StoreConfig{
			DSN: getEnv("RIDES_DB", "rides.db"),
		},
		Batch: BatchConfig{
			Timeout: getEnvAsDuration("BATCH_TIMEOUT", 5*time.Minute),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
