package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dgallion1/docslice/internal/chunker"
	"github.com/dgallion1/docslice/internal/structure"
)

type Config struct {
	Port string

	// Auth. Empty disables authentication.
	APIKey string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Chunking defaults
	DefaultTargetTokens    int
	DefaultMaxTokens       int
	DefaultMinTokens       int
	PreserveStructure      bool
	MinStructureConfidence float64

	// Structure detection
	MaxPatterns           int
	SampleThresholdBytes  int
	SampleBytes           int
	SamplePenalty         float64
	MinArticlesRegulatory int
	MinChaptersManual     int
	MinSectionsReport     int

	// Job state
	JobTTL time.Duration

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("DOCSLICE_API_KEY"),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		DefaultTargetTokens:    envInt("DEFAULT_TARGET_TOKENS", 350),
		DefaultMaxTokens:       envInt("DEFAULT_MAX_TOKENS", 450),
		DefaultMinTokens:       envInt("DEFAULT_MIN_TOKENS", 200),
		PreserveStructure:      envBool("PRESERVE_STRUCTURE", true),
		MinStructureConfidence: envFloat("MIN_STRUCTURE_CONFIDENCE", 0.7),

		MaxPatterns:           envInt("MAX_PATTERNS", 1000),
		SampleThresholdBytes:  envInt("SAMPLE_THRESHOLD_BYTES", 5*1024*1024),
		SampleBytes:           envInt("SAMPLE_BYTES", 500*1024),
		SamplePenalty:         envFloat("SAMPLE_PENALTY", 0.9),
		MinArticlesRegulatory: envInt("MIN_ARTICLES_REGULATORY", 5),
		MinChaptersManual:     envInt("MIN_CHAPTERS_MANUAL", 3),
		MinSectionsReport:     envInt("MIN_SECTIONS_REPORT", 10),

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.DefaultTargetTokens <= 0 {
		cfg.DefaultTargetTokens = 350
	}
	if cfg.DefaultMaxTokens <= 0 {
		cfg.DefaultMaxTokens = 450
	}
	if cfg.DefaultMinTokens <= 0 {
		cfg.DefaultMinTokens = 200
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.DefaultMinTokens > c.DefaultTargetTokens {
		return fmt.Errorf("DEFAULT_MIN_TOKENS (%d) exceeds DEFAULT_TARGET_TOKENS (%d)", c.DefaultMinTokens, c.DefaultTargetTokens)
	}
	if c.DefaultTargetTokens > c.DefaultMaxTokens {
		return fmt.Errorf("DEFAULT_TARGET_TOKENS (%d) exceeds DEFAULT_MAX_TOKENS (%d)", c.DefaultTargetTokens, c.DefaultMaxTokens)
	}
	if c.MinStructureConfidence < 0 || c.MinStructureConfidence > 1 {
		return fmt.Errorf("MIN_STRUCTURE_CONFIDENCE must be in [0,1], got %g", c.MinStructureConfidence)
	}
	return nil
}

// ChunkOptions returns the default chunking options from configuration.
func (c Config) ChunkOptions() chunker.Options {
	return chunker.Options{
		TargetTokens:           c.DefaultTargetTokens,
		MaxTokens:              c.DefaultMaxTokens,
		MinTokens:              c.DefaultMinTokens,
		PreserveStructure:      c.PreserveStructure,
		MinStructureConfidence: c.MinStructureConfidence,
	}
}

// DetectorConfig returns the structure detection configuration.
func (c Config) DetectorConfig() structure.Config {
	return structure.Config{
		MaxPatterns:           c.MaxPatterns,
		SampleThresholdBytes:  c.SampleThresholdBytes,
		SampleBytes:           c.SampleBytes,
		SamplePenalty:         c.SamplePenalty,
		MinArticlesRegulatory: c.MinArticlesRegulatory,
		MinChaptersManual:     c.MinChaptersManual,
		MinSectionsReport:     c.MinSectionsReport,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
